// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/planbuild/planbuild/internal/watch"

	"github.com/spf13/cobra"
)

func newWatchCommand(app *App, rootFlags *rootFlagValues) *cobra.Command {
	return &cobra.Command{
		Use:   "watch [directory]",
		Short: "Rescan whenever a catalog file changes",
		Long: `Scan the catalog files in a directory, then rescan each time one of them
changes. Plans persist across rescans: removed pieces retire their plan
and restored pieces re-enable it. Press Ctrl+C to stop.

Debounce, watched patterns and screen clearing come from the watch section
of the config file.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, app, rootFlags, args)
		},
	}
}

func runWatch(cmd *cobra.Command, app *App, rootFlags *rootFlagValues, args []string) error {
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("watch %s: not a directory", dir)
	}

	s, err := app.newSession(cmd.Context(), rootFlags, []string{dir})
	if err != nil {
		printSuggestions(app.stderr, err, rootFlags.verbose)
		return err
	}

	debounce, err := s.cfg.Watch.DebounceDuration()
	if err != nil {
		return err
	}

	scans := 1
	report := s.index.Scan()
	renderReport(app.stdout, scans, &report)

	w, err := watch.New(watch.Config{
		BaseDir:     dir,
		Patterns:    s.cfg.Watch.Patterns,
		Debounce:    debounce,
		ClearScreen: s.cfg.Watch.ClearScreen,
		Stdout:      app.stdout,
		Logger:      s.logger,
		OnChange: func(_ context.Context, changed []string) error {
			s.logger.Info("catalog changed", "files", len(changed))
			if err := s.reload(); err != nil {
				// The previous catalog stays in place until the files parse again.
				printSuggestions(app.stderr, err, rootFlags.verbose)
				return err
			}
			scans++
			report := s.index.Scan()
			renderReport(app.stdout, scans, &report)
			return nil
		},
	})
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}

	fmt.Fprintf(app.stdout, "\n%s Watching %s for changes (Ctrl+C to stop)...\n\n", CmdStyle.Render("→"), w.BaseDir())
	return w.Run(cmd.Context())
}
