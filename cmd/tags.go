package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "Manage record tags",
}

var tagsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all tags",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		tags, err := s.Tags().List(cmd.Context())
		if err != nil {
			return fmt.Errorf("list tags: %w", err)
		}
		if len(tags) == 0 {
			fmt.Println("暂无标签。")
			return nil
		}

		fmt.Printf("%-36s  %-10s  %s\n", "ID", "颜色", "名称")
		fmt.Println(strings.Repeat("─", 60))
		for _, t := range tags {
			color := t.Color
			if color == "" {
				color = "-"
			}
			fmt.Printf("%-36s  %-10s  %s\n", t.ID, color, t.Name)
		}
		return nil
	},
}

var tagsAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create a tag",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		color, _ := cmd.Flags().GetString("color")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		existing, err := s.Tags().FindByName(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("check tag: %w", err)
		}
		if existing != nil {
			return fmt.Errorf("tag %q already exists", args[0])
		}

		id, err := s.Tags().Create(cmd.Context(), args[0], color)
		if err != nil {
			return fmt.Errorf("create tag: %w", err)
		}
		fmt.Println(id)
		return nil
	},
}

var tagsRemoveCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a tag (records keep their other tags)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		if err := s.Tags().Delete(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("delete tag: %w", err)
		}
		fmt.Println("已删除。")
		return nil
	},
}

func init() {
	tagsAddCmd.Flags().String("color", "", "Display color for the tag")

	tagsCmd.AddCommand(tagsListCmd)
	tagsCmd.AddCommand(tagsAddCmd)
	tagsCmd.AddCommand(tagsRemoveCmd)
}
