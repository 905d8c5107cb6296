package cli

import (
	"github.com/spf13/cobra"
)

var enableCmd = &cobra.Command{
	Use:   "enable",
	Short: "Enable background indexing",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := settings.SetIndexingEnabled(true); err != nil {
			return err
		}
		cmd.Println("Indexing enabled.")
		return nil
	},
}

var disableCmd = &cobra.Command{
	Use:   "disable",
	Short: "Disable background indexing",
	RunE: func(cmd *cobra.Command, _ []string) error {
		// Abort any in-flight build before persisting the flag.
		engine.SetEnabled(cmd.Context(), false)
		if err := settings.SetIndexingEnabled(false); err != nil {
			return err
		}
		cmd.Println("Indexing disabled.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(enableCmd)
	rootCmd.AddCommand(disableCmd)
}
