package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/feynlearn/feynlearn/internal/feynman"
	"github.com/feynlearn/feynlearn/internal/store"
)

var assessCmd = &cobra.Command{
	Use:   "assess <knowledge>",
	Short: "Assess an explanation of a concept",
	Long:  "Scores an explanation against the clarity, logic, completeness, and terminology rubric. The answer comes from --answer, --file, or stdin.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		knowledge := strings.Join(args, " ")
		question, _ := cmd.Flags().GetString("question")
		save, _ := cmd.Flags().GetBool("save")

		answer, err := readAnswer(cmd)
		if err != nil {
			return err
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		provider, err := newProvider(cmd, s)
		if err != nil {
			return err
		}

		result, err := feynman.NewService(provider).AssessAnswer(cmd.Context(), knowledge, question, answer, nil)
		if err != nil {
			return fmt.Errorf("assess answer: %w", err)
		}
		printAssessment(result)

		if save {
			rec := &store.Record{
				Knowledge:  knowledge,
				Answer:     answer,
				Assessment: result,
			}
			if question != "" {
				rec.Questions = []string{question}
			}
			if err := s.Records().Create(cmd.Context(), rec); err != nil {
				return fmt.Errorf("save record: %w", err)
			}
			fmt.Printf("已保存记录 %s\n", rec.ID)
		}
		return nil
	},
}

func readAnswer(cmd *cobra.Command) (string, error) {
	if answer, _ := cmd.Flags().GetString("answer"); answer != "" {
		return answer, nil
	}
	if file, _ := cmd.Flags().GetString("file"); file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("read answer file: %w", err)
		}
		return string(data), nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("read answer from stdin: %w", err)
	}
	return string(data), nil
}

func init() {
	assessCmd.Flags().StringP("answer", "a", "", "The explanation text to assess")
	assessCmd.Flags().StringP("file", "f", "", "Read the explanation from a file")
	assessCmd.Flags().StringP("question", "q", "", "The question the explanation answers")
	assessCmd.Flags().Bool("save", false, "Save the assessed round to history")
}
