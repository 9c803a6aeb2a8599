package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/feynlearn/feynlearn/internal/export"
	"github.com/feynlearn/feynlearn/internal/store"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export records as JSON, Markdown, or CSV",
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		out, _ := cmd.Flags().GetString("out")
		id, _ := cmd.Flags().GetString("id")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := cmd.Context()
		var records []*store.Record
		if id != "" {
			rec, err := s.Records().GetByID(ctx, id)
			if err != nil {
				return fmt.Errorf("get record: %w", err)
			}
			if rec == nil {
				return fmt.Errorf("record %s not found", id)
			}
			records = []*store.Record{rec}
		} else {
			records, err = s.Records().List(ctx)
			if err != nil {
				return fmt.Errorf("list records: %w", err)
			}
		}

		var data []byte
		switch format {
		case "json":
			data, err = export.RecordsJSON(records)
		case "md", "markdown":
			if id != "" {
				names, nameErr := tagNamesFor(ctx, s, records[0])
				if nameErr != nil {
					return nameErr
				}
				data = []byte(export.RecordMarkdown(records[0], names))
			} else {
				data = []byte(export.ReportMarkdown(records))
			}
		case "csv":
			data, err = export.RecordsCSV(records)
		default:
			return fmt.Errorf("unknown format %q (want json, md, or csv)", format)
		}
		if err != nil {
			return fmt.Errorf("render export: %w", err)
		}

		if out == "" || out == "-" {
			_, err = os.Stdout.Write(data)
			return err
		}
		if err := os.WriteFile(out, data, 0o644); err != nil {
			return fmt.Errorf("write export file: %w", err)
		}
		fmt.Printf("已导出 %d 条记录到 %s\n", len(records), out)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringP("format", "f", "json", "Output format: json, md, or csv")
	exportCmd.Flags().StringP("out", "o", "", "Output file (defaults to stdout)")
	exportCmd.Flags().String("id", "", "Export a single record by ID")
}
