package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/feynlearn/feynlearn/internal/export"
	"github.com/feynlearn/feynlearn/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse saved practice records",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List records, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		records, err := s.Records().List(cmd.Context())
		if err != nil {
			return fmt.Errorf("list records: %w", err)
		}
		if len(records) == 0 {
			fmt.Println("暂无记录。")
			return nil
		}

		fmt.Printf("%-36s  %-19s  %5s  %s\n", "ID", "创建时间", "评分", "知识点")
		fmt.Println(strings.Repeat("─", 90))
		for _, rec := range records {
			printRecordSummary(rec)
		}
		return nil
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one record in full",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		rec, err := s.Records().GetByID(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("get record: %w", err)
		}
		if rec == nil {
			return fmt.Errorf("record %s not found", args[0])
		}

		names, err := tagNamesFor(cmd.Context(), s, rec)
		if err != nil {
			return err
		}
		printRecord(rec, names)
		return nil
	},
}

var historySearchCmd = &cobra.Command{
	Use:   "search <keyword>",
	Short: "Search records by knowledge or answer text",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		records, err := s.Records().Search(cmd.Context(), strings.Join(args, " "))
		if err != nil {
			return fmt.Errorf("search records: %w", err)
		}
		if len(records) == 0 {
			fmt.Println("没有匹配的记录。")
			return nil
		}
		for _, rec := range records {
			printRecordSummary(rec)
		}
		return nil
	},
}

var historyDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete one record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		if err := s.Records().Delete(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("delete record: %w", err)
		}
		fmt.Println("已删除。")
		return nil
	},
}

var historyCompareCmd = &cobra.Command{
	Use:   "compare <id1> <id2>",
	Short: "Compare the scores of two records",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := cmd.Context()
		first, err := assessedRecord(ctx, s, args[0])
		if err != nil {
			return err
		}
		second, err := assessedRecord(ctx, s, args[1])
		if err != nil {
			return err
		}

		a, b := first.Assessment, second.Assessment
		fmt.Printf("%-10s  %8s  %8s  %6s\n", "维度", "记录 1", "记录 2", "变化")
		fmt.Println(strings.Repeat("─", 44))
		rows := []struct {
			label  string
			v1, v2 int
		}{
			{"总体", a.Overall, b.Overall},
			{"清晰度", a.Clarity, b.Clarity},
			{"逻辑性", a.Logic, b.Logic},
			{"完整性", a.Completeness, b.Completeness},
			{"术语使用", 11 - a.Terminology, 11 - b.Terminology},
		}
		for _, row := range rows {
			fmt.Printf("%-10s  %8d  %8d  %+6d\n", row.label, row.v1, row.v2, row.v2-row.v1)
		}
		return nil
	},
}

var historyImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import records from a JSON export file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read import file: %w", err)
		}

		records, err := export.ImportJSON(data)
		if err != nil {
			return err
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := cmd.Context()
		imported, skipped := 0, 0
		for _, rec := range records {
			existing, err := s.Records().GetByID(ctx, rec.ID)
			if err != nil {
				return fmt.Errorf("check record %s: %w", rec.ID, err)
			}
			if existing != nil {
				skipped++
				continue
			}
			// Imported tags reference the source database; drop the links.
			rec.Tags = nil
			if err := s.Records().Create(ctx, rec); err != nil {
				return fmt.Errorf("import record %s: %w", rec.ID, err)
			}
			imported++
		}

		fmt.Printf("导入 %d 条记录，跳过 %d 条已存在记录。\n", imported, skipped)
		return nil
	},
}

func assessedRecord(ctx context.Context, s *store.Store, id string) (*store.Record, error) {
	rec, err := s.Records().GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get record: %w", err)
	}
	if rec == nil {
		return nil, fmt.Errorf("record %s not found", id)
	}
	if rec.Assessment == nil {
		return nil, fmt.Errorf("record %s has no assessment", id)
	}
	return rec, nil
}

func tagNamesFor(ctx context.Context, s *store.Store, rec *store.Record) ([]string, error) {
	if len(rec.Tags) == 0 {
		return nil, nil
	}
	tags, err := s.Tags().GetByIDs(ctx, rec.Tags)
	if err != nil {
		return nil, fmt.Errorf("resolve tags: %w", err)
	}
	names := make([]string, 0, len(tags))
	for _, t := range tags {
		names = append(names, t.Name)
	}
	return names, nil
}

func init() {
	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historySearchCmd)
	historyCmd.AddCommand(historyDeleteCmd)
	historyCmd.AddCommand(historyCompareCmd)
	historyCmd.AddCommand(historyImportCmd)
}
