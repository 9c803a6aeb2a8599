package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/feynlearn/feynlearn/internal/llm"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "Inspect and manage the model fallback roster",
}

var modelsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List roster models in priority order",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		roster := llm.NewRoster(nil, s.KV())
		current := roster.CurrentIndex()

		fmt.Printf("%-3s %-22s %-30s %s\n", "", "名称", "模型", "说明")
		fmt.Println(strings.Repeat("─", 90))
		for i, m := range roster.Models() {
			marker := " "
			if i == current {
				marker = "*"
			}
			fmt.Printf("%-3s %-22s %-30s %s\n", marker, m.Name, m.Model, m.Description)
		}
		return nil
	},
}

var modelsStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the model currently in use",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		roster := llm.NewRoster(nil, s.KV())
		i := roster.CurrentIndex()
		m := roster.Model(i)
		fmt.Printf("当前模型: %s (%s)，优先级 %d/%d\n", m.Name, m.Model, i+1, roster.Len())
		return nil
	},
}

var modelsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset the roster back to the preferred model",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		roster := llm.NewRoster(nil, s.KV())
		roster.Reset()
		m := roster.Model(0)
		fmt.Printf("已重置为首选模型 %s (%s)。\n", m.Name, m.Model)
		return nil
	},
}

func init() {
	modelsCmd.AddCommand(modelsListCmd)
	modelsCmd.AddCommand(modelsStatusCmd)
	modelsCmd.AddCommand(modelsResetCmd)
}
