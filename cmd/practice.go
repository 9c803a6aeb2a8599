package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/feynlearn/feynlearn/internal/feynman"
	"github.com/feynlearn/feynlearn/internal/store"
)

var practiceCmd = &cobra.Command{
	Use:   "practice",
	Short: "Start an interactive practice round",
	Long:  "Enter a concept, answer the generated questions in your own words, and get a scored assessment. The round is saved to history.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPractice(cmd)
	},
}

func runPractice(cmd *cobra.Command) error {
	s, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	provider, err := newProvider(cmd, s)
	if err != nil {
		return err
	}
	svc := feynman.NewService(provider)

	in := bufio.NewReader(os.Stdin)
	ctx := cmd.Context()

	for {
		fmt.Print("知识点 (回车退出): ")
		knowledge, err := readLine(in)
		if err != nil {
			return err
		}
		knowledge = strings.TrimSpace(knowledge)
		if knowledge == "" {
			return nil
		}

		if err := practiceRound(ctx, in, s, svc, knowledge); err != nil {
			fmt.Fprintln(os.Stderr, "practice round failed:", err)
		}
		fmt.Println()
	}
}

func practiceRound(ctx context.Context, in *bufio.Reader, s *store.Store, svc *feynman.Service, knowledge string) error {
	fmt.Println("正在生成问题...")
	questions, err := svc.GenerateQuestions(ctx, knowledge)
	if err != nil {
		return fmt.Errorf("generate questions: %w", err)
	}

	fmt.Println()
	for i, q := range questions {
		fmt.Printf("%d. %s\n", i+1, q)
	}
	fmt.Println()
	fmt.Println("请用自己的话讲解 (空行结束):")

	answer, err := readBlock(in)
	if err != nil {
		return err
	}
	if strings.TrimSpace(answer) == "" {
		fmt.Println("未输入讲解，本轮跳过。")
		return nil
	}

	fmt.Println("正在评估...")
	result, err := svc.AssessAnswer(ctx, knowledge, strings.Join(questions, "\n"), answer, questions)
	if err != nil {
		return fmt.Errorf("assess answer: %w", err)
	}

	printAssessment(result)

	rec := &store.Record{
		Knowledge:  knowledge,
		Questions:  questions,
		Answer:     answer,
		Assessment: result,
	}

	fmt.Print("标签 (逗号分隔，可留空): ")
	tagLine, err := readLine(in)
	if err != nil {
		return err
	}
	tagIDs, err := resolveTagNames(ctx, s.Tags(), tagLine)
	if err != nil {
		return fmt.Errorf("resolve tags: %w", err)
	}
	rec.Tags = tagIDs

	if err := s.Records().Create(ctx, rec); err != nil {
		return fmt.Errorf("save record: %w", err)
	}
	fmt.Printf("已保存记录 %s\n", rec.ID)
	return nil
}

// readLine reads one line, treating EOF with pending text as a final line.
func readLine(in *bufio.Reader) (string, error) {
	line, err := in.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	if err == io.EOF && line == "" {
		return "", nil
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// readBlock reads lines until a blank line or EOF.
func readBlock(in *bufio.Reader) (string, error) {
	var lines []string
	for {
		line, err := in.ReadString('\n')
		trimmed := strings.TrimRight(line, "\r\n")
		if trimmed == "" {
			return strings.Join(lines, "\n"), nil
		}
		lines = append(lines, trimmed)
		if err == io.EOF {
			return strings.Join(lines, "\n"), nil
		}
		if err != nil {
			return "", err
		}
	}
}

// resolveTagNames maps comma-separated tag names to IDs, creating tags that
// do not exist yet.
func resolveTagNames(ctx context.Context, tags *store.TagRepo, line string) ([]string, error) {
	var ids []string
	for _, name := range strings.Split(line, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		existing, err := tags.FindByName(ctx, name)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			ids = append(ids, existing.ID)
			continue
		}
		id, err := tags.Create(ctx, name, "")
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
