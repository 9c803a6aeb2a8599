// Package export renders learning records to JSON, Markdown, and CSV, and
// imports previously exported JSON back into records.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/feynlearn/feynlearn/internal/store"
)

// RecordsJSON renders records as indented JSON, the canonical exchange
// format (ImportJSON reads it back).
func RecordsJSON(records []*store.Record) ([]byte, error) {
	if records == nil {
		records = []*store.Record{}
	}
	return json.MarshalIndent(records, "", "  ")
}

// RecordMarkdown renders one record as a standalone Markdown document.
// tagNames are the record's resolved tag names, in display order.
func RecordMarkdown(rec *store.Record, tagNames []string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", rec.Knowledge)
	fmt.Fprintf(&b, "**创建时间**: %s\n", formatDateTime(rec.CreatedAt))
	if len(tagNames) > 0 {
		fmt.Fprintf(&b, "**标签**: %s\n", strings.Join(tagNames, ", "))
	}
	b.WriteString("\n")

	if len(rec.Questions) > 0 {
		b.WriteString("## 问题\n\n")
		for i, q := range rec.Questions {
			fmt.Fprintf(&b, "%d. %s\n", i+1, q)
		}
		b.WriteString("\n")
	}

	if rec.Answer != "" {
		b.WriteString("## 回答\n\n")
		b.WriteString(rec.Answer)
		b.WriteString("\n\n")
	}

	if a := rec.Assessment; a != nil {
		b.WriteString("## 评估结果\n\n")
		fmt.Fprintf(&b, "- **总体评分**: %d/10\n", a.Overall)
		fmt.Fprintf(&b, "- **清晰度**: %d/10\n", a.Clarity)
		fmt.Fprintf(&b, "- **逻辑性**: %d/10\n", a.Logic)
		fmt.Fprintf(&b, "- **完整性**: %d/10\n", a.Completeness)
		fmt.Fprintf(&b, "- **术语使用**: %d/10\n\n", 11-a.Terminology)

		if len(a.TerminologyList) > 0 {
			b.WriteString("### 检测到的专业术语\n\n")
			for _, item := range a.TerminologyList {
				fmt.Fprintf(&b, "- %s\n", item.Term)
			}
			b.WriteString("\n")
		}

		if len(a.Suggestions) > 0 {
			b.WriteString("### 改进建议\n\n")
			for _, s := range a.Suggestions {
				fmt.Fprintf(&b, "- %s\n", s)
			}
			b.WriteString("\n")
		}

		if a.ReferenceAnswer != "" {
			b.WriteString("### 参考讲解\n\n")
			b.WriteString(a.ReferenceAnswer)
			b.WriteString("\n")
		}
	}

	return b.String()
}

// ReportMarkdown renders all records as one Markdown report with summary
// statistics up front.
func ReportMarkdown(records []*store.Record) string {
	var b strings.Builder

	b.WriteString("# 知识点记录报告\n\n")
	fmt.Fprintf(&b, "**导出时间**: %s\n", formatDateTime(time.Now()))
	fmt.Fprintf(&b, "**记录数量**: %d\n\n", len(records))

	var assessed []*store.Record
	for _, r := range records {
		if r.Assessment != nil {
			assessed = append(assessed, r)
		}
	}
	if len(assessed) > 0 {
		sum, max, min := 0, assessed[0].Assessment.Overall, assessed[0].Assessment.Overall
		for _, r := range assessed {
			o := r.Assessment.Overall
			sum += o
			if o > max {
				max = o
			}
			if o < min {
				min = o
			}
		}
		b.WriteString("## 学习统计\n\n")
		fmt.Fprintf(&b, "- **平均评分**: %.1f/10\n", float64(sum)/float64(len(assessed)))
		fmt.Fprintf(&b, "- **最高评分**: %d/10\n", max)
		fmt.Fprintf(&b, "- **最低评分**: %d/10\n", min)
		fmt.Fprintf(&b, "- **训练次数**: %d 次\n\n", len(assessed))
		b.WriteString("---\n\n")
	}

	for i, rec := range records {
		if i > 0 {
			b.WriteString("\n---\n\n")
		}
		b.WriteString(RecordMarkdown(rec, nil))
	}

	return b.String()
}

// csvHeader is the fixed column order of the CSV summary.
var csvHeader = []string{
	"id", "knowledge", "answer",
	"overall", "clarity", "logic", "completeness", "terminology",
	"created_at",
}

// RecordsCSV renders a one-row-per-record score summary. Records without
// an assessment leave the score columns empty.
func RecordsCSV(records []*store.Record) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}
	for _, rec := range records {
		row := []string{rec.ID, rec.Knowledge, rec.Answer, "", "", "", "", "", rec.CreatedAt.Format(time.RFC3339)}
		if a := rec.Assessment; a != nil {
			row[3] = strconv.Itoa(a.Overall)
			row[4] = strconv.Itoa(a.Clarity)
			row[5] = strconv.Itoa(a.Logic)
			row[6] = strconv.Itoa(a.Completeness)
			row[7] = strconv.Itoa(a.Terminology)
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func formatDateTime(t time.Time) string {
	return t.Local().Format("2006-01-02 15:04:05")
}
