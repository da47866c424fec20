// Package cli provides the cobra command tree for lessonpage.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/lessonpage/internal/adapters/driven/config/file"
	"github.com/custodia-labs/lessonpage/internal/logger"
)

// version is stamped at build time via -ldflags.
var version = "dev"

// configStore is shared by every command; initialised before any RunE.
var configStore *file.ConfigStore

// verboseFlag enables debug logging on stderr.
var verboseFlag bool

var rootCmd = &cobra.Command{
	Use:   "lessonpage",
	Short: "Classify lesson pages into typed content sections",
	Long: `lessonpage fetches a lesson page's block tree from Notion (or a local
snapshot) and classifies it into semantically typed sections: safety
warnings, timed agendas, checklists, guided teaching steps, assessment
checkpoints, vocabulary, resources, prose and headings.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		logger.SetVerbose(verboseFlag)

		store, err := file.NewConfigStore("")
		if err != nil {
			return fmt.Errorf("open config: %w", err)
		}
		configStore = store
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable verbose logging")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
