// Package cli implements the findex command-line interface. It is a
// driving adapter: commands wire the engine together and call its
// public operations, exactly the boundary a GUI shell would use.
package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	configfile "github.com/lumafile/findex-cli/internal/adapters/driven/config/file"
	"github.com/lumafile/findex-cli/internal/adapters/driven/snapshot"
	"github.com/lumafile/findex-cli/internal/adapters/driven/tasks"
	"github.com/lumafile/findex-cli/internal/core/ports/driven"
	"github.com/lumafile/findex-cli/internal/core/services"
	"github.com/lumafile/findex-cli/internal/crawler"
	"github.com/lumafile/findex-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

var (
	verbose   bool
	configDir string
	volumes   []string

	settings  *configfile.SettingsStore
	snapshots *snapshot.Store
	engine    *services.Engine
)

var rootCmd = &cobra.Command{
	Use:   "findex",
	Short: "Instant local file search",
	Long: `findex maintains a persisted catalog of file names across your
home area, shared locations and mounted volumes, so that searches
answer instantly instead of walking the filesystem every time.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "config directory (default ~/.findex)")
	rootCmd.PersistentFlags().StringArrayVar(&volumes, "volume", nil, "extra mounted volume root to index (repeatable)")
}

// setup wires the engine: TOML settings, the atomic snapshot store,
// the in-process task runner, and the resolved scan locations.
func setup(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)

	// The version command needs no engine.
	if cmd == versionCmd {
		return nil
	}

	var err error
	settings, err = configfile.NewSettingsStore(configDir)
	if err != nil {
		return fmt.Errorf("open settings: %w", err)
	}

	var lister driven.VolumeLister = driven.StaticVolumes(volumes)

	snapshots = snapshot.NewStore(filepath.Join(settings.Dir(), "index.json"))
	engine = services.NewEngine(services.Config{
		Runner:    tasks.NewLocalRunner(snapshots),
		Snapshots: snapshots,
		Locations: crawler.HostLocations(lister.Volumes()),
	})
	return nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
