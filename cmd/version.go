package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/feynlearn/feynlearn/internal/update"
)

// version is set via -ldflags at build time.
var version = "(devel)"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current version",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("feynlearn", version)

		check, _ := cmd.Flags().GetBool("check")
		if !check {
			return nil
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		result, err := update.NewChecker().Check(ctx, &update.CheckInput{Version: version})
		if errors.Is(err, update.ErrDevBuild) {
			fmt.Println("Development build; cannot check for updates.")
			return nil
		}
		if err != nil {
			return fmt.Errorf("check for updates: %w", err)
		}

		if result.UpdateAvailable {
			fmt.Printf("New version available: %s\n", result.LatestVersion)
			if result.ReleaseURL != "" {
				fmt.Println(result.ReleaseURL)
			}
		} else {
			fmt.Println("Already the latest version.")
		}
		return nil
	},
}

func init() {
	versionCmd.Flags().Bool("check", false, "Check GitHub for a newer release")
}
