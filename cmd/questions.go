package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/feynlearn/feynlearn/internal/feynman"
)

var questionsCmd = &cobra.Command{
	Use:   "questions <knowledge>",
	Short: "Generate probing questions for a concept",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		knowledge := strings.Join(args, " ")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		provider, err := newProvider(cmd, s)
		if err != nil {
			return err
		}

		questions, err := feynman.NewService(provider).GenerateQuestions(cmd.Context(), knowledge)
		if err != nil {
			return fmt.Errorf("generate questions: %w", err)
		}

		for i, q := range questions {
			fmt.Printf("%d. %s\n", i+1, q)
		}
		return nil
	},
}
