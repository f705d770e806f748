// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"github.com/planbuild/planbuild/internal/blueprint"

	"github.com/spf13/cobra"
)

func newToolsCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "tools",
		Short: "List the blueprint rune's tool pieces and their behaviour",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, t := range blueprint.Tables() {
				if t.Name == blueprint.TableName {
					renderTools(app.stdout, blueprint.ResolveTools(t))
				}
			}
			return nil
		},
	}
}
