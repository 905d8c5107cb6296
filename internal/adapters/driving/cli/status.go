package cli

import (
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show index status",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	enabled := settings.IndexingEnabled()
	cmd.Printf("Indexing enabled: %v\n", enabled)

	// Read the persisted snapshot directly; the status command must
	// not trigger a build as a side effect.
	snap, err := snapshots.Load(cmd.Context())
	if err != nil {
		return err
	}

	if !snap.Exists {
		cmd.Println("No index yet. Run 'findex build'.")
		return nil
	}

	cmd.Printf("Indexed files:    %d\n", len(snap.Entries))
	if snap.LastIndexTime != nil {
		cmd.Printf("Last built:       %s\n", snap.LastIndexTime.Local().Format("2006-01-02 15:04:05"))
	} else {
		cmd.Println("Last built:       never")
	}
	return nil
}
