package cmd

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/feynlearn/feynlearn/internal/config"
	"github.com/feynlearn/feynlearn/internal/llm"
	"github.com/feynlearn/feynlearn/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "feynlearn",
	Short: "Feynman-technique learning trainer",
	Long:  "FeynLearn — practice explaining what you know in plain words and get AI-scored feedback.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPractice(cmd)
	},
}

func Execute() error {
	// A local .env is a convenience for API keys; absence is fine.
	_ = godotenv.Load()
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides FEYNLEARN_DB env var)")

	rootCmd.AddCommand(practiceCmd)
	rootCmd.AddCommand(questionsCmd)
	rootCmd.AddCommand(assessCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(tagsCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(modelsCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then FEYNLEARN_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}

// newProvider builds the configured LLM provider, backed by the store for
// roster persistence and event logging.
func newProvider(cmd *cobra.Command, s *store.Store) (llm.Provider, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return llm.NewProvider(cmd.Context(), cfg, s.KV(), s.Events())
}
