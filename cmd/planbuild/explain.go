// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/planbuild/planbuild/internal/eligibility"
	"github.com/planbuild/planbuild/pkg/types"

	"github.com/spf13/cobra"
)

func newExplainCommand(app *App, rootFlags *rootFlagValues) *cobra.Command {
	var catalogs []string

	explainCmd := &cobra.Command{
		Use:   "explain <piece-name>",
		Short: "Explain whether a piece gets a plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.newSession(cmd.Context(), rootFlags, catalogs)
			if err != nil {
				printSuggestions(app.stderr, err, rootFlags.verbose)
				return err
			}

			name := types.PieceName(args[0])
			piece, ok := s.find(name)
			if !ok {
				s.index.Scan()
				return notFound(app, s, args[0])
			}

			reason := s.index.Explain(piece)
			if reason == eligibility.ReasonEligible {
				fmt.Fprintf(app.stdout, "%s %s is eligible: plan %s\n",
					SuccessStyle.Render("✓"), CmdStyle.Render(args[0]),
					CmdStyle.Render(string(types.PlanNameFor(name, s.cfg.Plans.Suffix))))
				return nil
			}
			fmt.Fprintf(app.stdout, "%s %s is not eligible: %s\n",
				WarningStyle.Render("✗"), CmdStyle.Render(args[0]), reason)
			return nil
		},
	}
	explainCmd.Flags().StringSliceVarP(&catalogs, "catalog", "c", nil, "catalog files or directories (default: catalog.paths)")

	return explainCmd
}
