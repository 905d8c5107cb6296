package cli

import (
	"errors"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

var buildFromScratch bool

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build or refresh the file index",
	Long: `Loads the persisted index and rebuilds it when it is missing, empty
or older than seven days. Use --rebuild to discard the persisted
index and crawl from scratch.`,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().BoolVar(&buildFromScratch, "rebuild", false, "discard the persisted index and crawl from scratch")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, _ []string) error {
	if !settings.IndexingEnabled() {
		return errors.New("indexing is disabled; run 'findex enable' first")
	}

	ctx := cmd.Context()
	if buildFromScratch {
		engine.SetEnabled(ctx, true)
		engine.RebuildIndex(ctx)
	} else {
		engine.Initialize(ctx, true)
	}

	status := engine.Status(ctx)
	if !status.IsIndexing {
		cmd.Printf("Index is fresh: %d files.\n", status.IndexedFiles)
		return nil
	}

	bar := progressbar.NewOptions(status.TotalFiles,
		progressbar.OptionSetDescription("indexing"),
		progressbar.OptionSetWriter(cmd.ErrOrStderr()),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)

	for engine.Status(ctx).IsIndexing {
		_ = bar.Set(engine.Status(ctx).IndexedFiles)
		time.Sleep(200 * time.Millisecond)
	}
	engine.WaitForBuild()
	_ = bar.Finish()

	final := engine.Status(ctx)
	cmd.Printf("Indexed %d files.\n", final.IndexedFiles)
	return nil
}
