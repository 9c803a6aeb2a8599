package cmd

import (
	"fmt"
	"strings"

	"github.com/feynlearn/feynlearn/internal/feynman"
	"github.com/feynlearn/feynlearn/internal/store"
)

func printAssessment(a *feynman.AssessmentResult) {
	sep := strings.Repeat("─", 40)

	fmt.Println()
	fmt.Println(sep)
	fmt.Printf("总体评分:   %d/10\n", a.Overall)
	fmt.Println(sep)
	fmt.Printf("清晰度:     %d/10\n", a.Clarity)
	fmt.Printf("逻辑性:     %d/10\n", a.Logic)
	fmt.Printf("完整性:     %d/10\n", a.Completeness)
	fmt.Printf("术语使用:   %d/10\n", 11-a.Terminology)

	if len(a.TerminologyList) > 0 {
		fmt.Println()
		fmt.Println("检测到的专业术语:")
		for _, item := range a.TerminologyList {
			if item.Suggestion != "" {
				fmt.Printf("  - %s (%s)\n", item.Term, item.Suggestion)
				continue
			}
			fmt.Printf("  - %s\n", item.Term)
		}
	}

	if len(a.Suggestions) > 0 {
		fmt.Println()
		fmt.Println("改进建议:")
		for _, s := range a.Suggestions {
			fmt.Printf("  - %s\n", s)
		}
	}

	if a.ReferenceAnswer != "" {
		fmt.Println()
		fmt.Println("参考讲解:")
		fmt.Println(a.ReferenceAnswer)
	}
	fmt.Println(sep)
}

func printRecordSummary(rec *store.Record) {
	score := "-"
	if rec.Assessment != nil {
		score = fmt.Sprintf("%d", rec.Assessment.Overall)
	}
	fmt.Printf("%-36s  %-19s  %5s  %s\n",
		rec.ID,
		rec.CreatedAt.Local().Format("2006-01-02 15:04:05"),
		score,
		truncate(rec.Knowledge, 40),
	)
}

func printRecord(rec *store.Record, tagNames []string) {
	fmt.Printf("ID:       %s\n", rec.ID)
	fmt.Printf("知识点:   %s\n", rec.Knowledge)
	fmt.Printf("创建时间: %s\n", rec.CreatedAt.Local().Format("2006-01-02 15:04:05"))
	if len(tagNames) > 0 {
		fmt.Printf("标签:     %s\n", strings.Join(tagNames, ", "))
	}

	if len(rec.Questions) > 0 {
		fmt.Println()
		fmt.Println("问题:")
		for i, q := range rec.Questions {
			fmt.Printf("%d. %s\n", i+1, q)
		}
	}

	if rec.Answer != "" {
		fmt.Println()
		fmt.Println("回答:")
		fmt.Println(rec.Answer)
	}

	if rec.Assessment != nil {
		printAssessment(rec.Assessment)
	}
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}
