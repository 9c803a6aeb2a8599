package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/feynlearn/feynlearn/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning statistics and LLM usage",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := cmd.Context()
		records, err := s.Records().List(ctx)
		if err != nil {
			return fmt.Errorf("list records: %w", err)
		}

		fmt.Println("学习统计")
		fmt.Println(strings.Repeat("─", 44))
		fmt.Printf("记录总数: %d\n", len(records))

		sum := summarizeRecords(records)
		fmt.Printf("训练次数: %d\n", sum.Assessed)
		if sum.Assessed > 0 {
			fmt.Printf("平均评分: %.1f/10\n", sum.AvgOverall)
			fmt.Printf("最高评分: %d/10\n", sum.Best)
			fmt.Printf("最低评分: %d/10\n", sum.Worst)
			fmt.Println()
			fmt.Println("各维度平均")
			fmt.Printf("  清晰度:   %.1f/10\n", sum.AvgClarity)
			fmt.Printf("  逻辑性:   %.1f/10\n", sum.AvgLogic)
			fmt.Printf("  完整性:   %.1f/10\n", sum.AvgCompleteness)
			fmt.Printf("  术语使用: %.1f/10\n", sum.AvgTerminology)
		}

		usage, err := s.Events().UsageByPurpose(ctx)
		if err != nil {
			return fmt.Errorf("query usage: %w", err)
		}
		if len(usage) == 0 {
			return nil
		}

		fmt.Println()
		fmt.Println("LLM Usage by Purpose")
		fmt.Println(strings.Repeat("─", 72))
		fmt.Printf("%-18s  %6s  %10s  %10s  %10s  %8s\n",
			"Purpose", "Calls", "Input", "Output", "Total", "Avg Ms")
		fmt.Println(strings.Repeat("─", 72))

		var totalCalls, totalIn, totalOut int
		for _, u := range usage {
			total := u.InputTokens + u.OutputTokens
			fmt.Printf("%-18s  %6d  %10d  %10d  %10d  %8d\n",
				u.Purpose, u.Calls, u.InputTokens, u.OutputTokens, total, u.AvgLatencyMs)
			totalCalls += u.Calls
			totalIn += u.InputTokens
			totalOut += u.OutputTokens
		}

		fmt.Println(strings.Repeat("─", 72))
		fmt.Printf("%-18s  %6d  %10d  %10d  %10d\n",
			"TOTAL", totalCalls, totalIn, totalOut, totalIn+totalOut)
		return nil
	},
}

// recordSummary aggregates the assessed records of a history listing.
// Terminology averages are shown inverted (11 - score), matching the
// per-record display where a low jargon score reads as a high mark.
type recordSummary struct {
	Assessed        int
	AvgOverall      float64
	Best            int
	Worst           int
	AvgClarity      float64
	AvgLogic        float64
	AvgCompleteness float64
	AvgTerminology  float64
}

func summarizeRecords(records []*store.Record) recordSummary {
	var sum recordSummary
	var overall, clarity, logic, completeness, terminology int
	sum.Worst = 11
	for _, rec := range records {
		if rec.Assessment == nil {
			continue
		}
		a := rec.Assessment
		sum.Assessed++
		overall += a.Overall
		if a.Overall > sum.Best {
			sum.Best = a.Overall
		}
		if a.Overall < sum.Worst {
			sum.Worst = a.Overall
		}
		clarity += a.Clarity
		logic += a.Logic
		completeness += a.Completeness
		terminology += 11 - a.Terminology
	}
	if sum.Assessed == 0 {
		sum.Worst = 0
		return sum
	}
	n := float64(sum.Assessed)
	sum.AvgOverall = float64(overall) / n
	sum.AvgClarity = float64(clarity) / n
	sum.AvgLogic = float64(logic) / n
	sum.AvgCompleteness = float64(completeness) / n
	sum.AvgTerminology = float64(terminology) / n
	return sum
}
