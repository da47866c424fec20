package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/lessonpage/internal/adapters/driven/config/file"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage lessonpage configuration",
}

var configSetTokenCmd = &cobra.Command{
	Use:   "set-token [token]",
	Short: "Store the Notion integration token",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := configStore.Set(file.KeyNotionToken, args[0]); err != nil {
			return err
		}
		cmd.Printf("Token saved to %s\n", configStore.Path())
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current configuration",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cmd.Printf("Config file: %s\n", configStore.Path())

		token := configStore.GetString(file.KeyNotionToken)
		if token == "" {
			cmd.Println("Token: (not set)")
		} else {
			cmd.Println("Token: (set)")
		}

		if rps := configStore.GetInt(file.KeyRequestsPerSecond); rps > 0 {
			cmd.Printf("Requests per second: %d\n", rps)
		}
		if configStore.GetBool(file.KeyDocumentOrder) {
			cmd.Println("Default ordering: document")
		} else {
			cmd.Println("Default ordering: teaching")
		}
		return nil
	},
}

func init() {
	configCmd.AddCommand(configSetTokenCmd)
	configCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(configCmd)
}
