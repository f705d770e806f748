// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"

	"github.com/planbuild/planbuild/internal/issue"

	"github.com/spf13/cobra"
)

type scanFlagValues struct {
	rescan int
	plans  bool
	strict bool
}

func newScanCommand(app *App, rootFlags *rootFlagValues) *cobra.Command {
	flags := &scanFlagValues{}

	scanCmd := &cobra.Command{
		Use:   "scan [catalog files or directories...]",
		Short: "Scan piece catalogs and derive plans",
		Long: `Scan piece catalogs and derive one plan per eligible piece.

Catalog files are .cue, .toml, .yaml or .yml documents listing piece tables.
Directories are searched recursively. Without arguments catalog.paths from
the config file is used. Files merge in order; a table listed in several
files keeps the pieces of all of them.

Use --rescan to scan the same catalog repeatedly; later scans create no new
plans and report only collisions that appeared since the previous scan.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(cmd, app, rootFlags, flags, args)
		},
	}

	scanCmd.Flags().IntVar(&flags.rescan, "rescan", 1, "number of scans to run")
	scanCmd.Flags().BoolVar(&flags.plans, "plans", false, "list the plans after the last scan")
	scanCmd.Flags().BoolVar(&flags.strict, "strict", false, "exit 1 when a scan reports errors or display name collisions")

	return scanCmd
}

func runScan(cmd *cobra.Command, app *App, rootFlags *rootFlagValues, flags *scanFlagValues, args []string) error {
	if flags.rescan < 1 {
		return fmt.Errorf("--rescan must be at least 1, got %d", flags.rescan)
	}

	s, err := app.newSession(cmd.Context(), rootFlags, args)
	if err != nil {
		printSuggestions(app.stderr, err, rootFlags.verbose)
		return err
	}

	var (
		errCount   int
		collisions int
	)
	for i := 1; i <= flags.rescan; i++ {
		report := s.index.Scan()
		renderReport(app.stdout, i, &report)
		errCount += report.Errors()
		collisions += len(report.Collisions)
	}

	if flags.plans {
		fmt.Fprintln(app.stdout)
		renderPlans(app.stdout, s.index.Plans())
	}

	if flags.strict && (errCount > 0 || collisions > 0) {
		if collisions > 0 {
			app.renderIssue(issue.CollisionsDetectedId)
		}
		return &ExitError{Code: 1, Err: errors.New("scan reported errors or display name collisions")}
	}
	return nil
}
