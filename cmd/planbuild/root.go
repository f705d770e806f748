// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// NewRootCommand builds the planbuild command tree around app.
func NewRootCommand(app *App) *cobra.Command {
	flags := &rootFlagValues{}

	rootCmd := &cobra.Command{
		Use:   "planbuild",
		Short: "Derive build plans from a piece catalog",
		Long: TitleStyle.Render("planbuild") + SubtitleStyle.Render(" - derive build plans from a piece catalog") + `

planbuild scans piece catalogs (CUE, TOML or YAML files listing build
tables and their pieces), derives one plan per eligible piece, keeps plans
in sync across rescans and reports pieces that share a display name but
need different resources.

` + SubtitleStyle.Render("Examples:") + `
  planbuild scan ./catalog             Scan every catalog file in a directory
  planbuild scan pieces.cue --plans    Scan and list the derived plans
  planbuild lookup plan wood_wall_planned
  planbuild explain sapling_oak        Show why a piece has no plan
  planbuild watch ./catalog            Rescan whenever a catalog file changes`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "enable debug logging and full error chains")
	rootCmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "config file (default is $XDG_CONFIG_HOME/planbuild/config.cue)")

	rootCmd.AddCommand(
		newScanCommand(app, flags),
		newLookupCommand(app, flags),
		newExplainCommand(app, flags),
		newWatchCommand(app, flags),
		newToolsCommand(app),
		newConfigCommand(app, flags),
	)

	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute runs the CLI. It is called by main.main().
func Execute() {
	app := NewApp(Dependencies{})
	if err := fang.Execute(
		context.Background(),
		NewRootCommand(app),
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}
