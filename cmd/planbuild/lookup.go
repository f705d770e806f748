// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"strings"

	"github.com/planbuild/planbuild/internal/catalog"
	"github.com/planbuild/planbuild/internal/issue"
	"github.com/planbuild/planbuild/internal/source"
	"github.com/planbuild/planbuild/pkg/types"

	"github.com/spf13/cobra"
)

const suggestionLimit = 3

type lookupFlagValues struct {
	catalogs    []string
	ignoreClone bool
}

func newLookupCommand(app *App, rootFlags *rootFlagValues) *cobra.Command {
	flags := &lookupFlagValues{}

	lookupCmd := &cobra.Command{
		Use:   "lookup",
		Short: "Look up plans and pieces after a scan",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	lookupCmd.PersistentFlags().StringSliceVarP(&flags.catalogs, "catalog", "c", nil, "catalog files or directories (default: catalog.paths)")

	lookupCmd.AddCommand(&cobra.Command{
		Use:   "plan <plan-name>",
		Short: "Show the source piece of a plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := scanned(cmd, app, rootFlags, flags)
			if err != nil {
				return err
			}
			piece, ok := s.index.FindSourceByPlanName(types.PlanName(args[0]))
			if !ok {
				return notFound(app, s, args[0])
			}
			printPiece(app, piece)
			return nil
		},
	})

	prefabCmd := &cobra.Command{
		Use:   "prefab <name>",
		Short: "Show the plan whose prefab is called name",
		Long: `Show the plan whose prefab is called name.

Objects spawned in a world carry the instance suffix "(Clone)". Pass
--ignore-clone to strip it (and anything after it) before matching.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := scanned(cmd, app, rootFlags, flags)
			if err != nil {
				return err
			}
			plan, ok := s.index.FindPlanByPrefabName(args[0], flags.ignoreClone)
			if !ok {
				return notFound(app, s, args[0])
			}
			renderPlans(app.stdout, []*catalog.Plan{plan})
			return nil
		},
	}
	prefabCmd.Flags().BoolVar(&flags.ignoreClone, "ignore-clone", false, "strip the instance suffix before matching")
	lookupCmd.AddCommand(prefabCmd)

	lookupCmd.AddCommand(&cobra.Command{
		Use:   "name <display-name>",
		Short: "List the eligible pieces sharing a display name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := scanned(cmd, app, rootFlags, flags)
			if err != nil {
				return err
			}
			group, ok := s.index.FindGroupByDisplayName(types.DisplayName(args[0]))
			if !ok {
				return notFound(app, s, args[0])
			}
			for _, p := range group {
				printPiece(app, p)
			}
			return nil
		},
	})

	return lookupCmd
}

// scanned opens a session and runs one scan with its log output kept quiet.
func scanned(cmd *cobra.Command, app *App, rootFlags *rootFlagValues, flags *lookupFlagValues) (*session, error) {
	s, err := app.newSession(cmd.Context(), rootFlags, flags.catalogs)
	if err != nil {
		printSuggestions(app.stderr, err, rootFlags.verbose)
		return nil, err
	}
	s.index.Scan()
	return s, nil
}

func notFound(app *App, s *session, name string) error {
	fmt.Fprintf(app.stderr, "%s %q not found\n", ErrorStyle.Render("✗"), name)
	if suggestions := s.index.Suggest(name, suggestionLimit); len(suggestions) > 0 {
		fmt.Fprintf(app.stderr, "  Did you mean: %s\n", strings.Join(suggestions, ", "))
	}
	app.renderIssue(issue.PieceNotFoundId)
	return &ExitError{Code: 1, Err: fmt.Errorf("%q not found", name)}
}

func printPiece(app *App, p *source.Piece) {
	state := SuccessStyle.Render("enabled")
	if !p.Enabled {
		state = WarningStyle.Render("disabled")
	}
	fmt.Fprintf(app.stdout, "%s (%s) table=%s cost=%s %s\n",
		CmdStyle.Render(string(p.Name)), p.DisplayName, p.Table, p.Requirements, state)
}
