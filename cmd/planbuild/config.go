// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/planbuild/planbuild/internal/config"

	"github.com/spf13/cobra"
)

// newConfigCommand creates the `planbuild config` command tree.
func newConfigCommand(app *App, rootFlags *rootFlagValues) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage planbuild configuration",
		Long: `Manage planbuild configuration.

Configuration is stored in:
  - Linux: ~/.config/planbuild/config.cue
  - macOS: ~/Library/Application Support/planbuild/config.cue
  - Windows: %APPDATA%\planbuild\config.cue

Any value can be overridden with a PLANBUILD_ environment variable, for
example PLANBUILD_LOG_LEVEL=debug.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.loadConfig(cmd.Context(), rootFlags)
			if err != nil {
				return err
			}
			showConfig(app, rootFlags, cfg)
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Output the effective configuration as CUE",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.loadConfig(cmd.Context(), rootFlags)
			if err != nil {
				return err
			}
			fmt.Fprint(app.stdout, config.GenerateCUE(cfg))
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgDir, err := config.ConfigDir()
			if err != nil {
				return err
			}
			fmt.Fprintf(app.stdout, "Config directory: %s\n", cfgDir)

			path, err := app.Config.Path(config.LoadOptions{ConfigFilePath: rootFlags.configPath})
			if err != nil {
				return err
			}
			if path == "" {
				path = SubtitleStyle.Render("(none, using defaults)")
			}
			fmt.Fprintf(app.stdout, "Config file: %s\n", path)
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.CreateDefaultConfig()
			if err != nil {
				return fmt.Errorf("failed to create config: %w", err)
			}
			fmt.Fprintf(app.stdout, "%s Default configuration at %s\n", SuccessStyle.Render("✓"), path)
			return nil
		},
	})

	return cfgCmd
}

func showConfig(app *App, rootFlags *rootFlagValues, cfg *config.Config) {
	keyStyle := CmdStyle
	valueStyle := SuccessStyle
	w := app.stdout

	fmt.Fprintln(w, TitleStyle.Render("Current Configuration"))
	fmt.Fprintln(w)

	path, err := app.Config.Path(config.LoadOptions{ConfigFilePath: rootFlags.configPath})
	if err != nil || path == "" {
		fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	} else {
		fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("Config file"), path)
	}

	list := func(values []string) string {
		if len(values) == 0 {
			return SubtitleStyle.Render("(none)")
		}
		return valueStyle.Render(strings.Join(values, ", "))
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", keyStyle.Render("catalog"))
	fmt.Fprintf(w, "  paths: %s\n", list(cfg.Catalog.Paths))
	fmt.Fprintf(w, "  blueprints: %s\n", valueStyle.Render(strconv.FormatBool(cfg.Catalog.Blueprints)))

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", keyStyle.Render("plans"))
	fmt.Fprintf(w, "  suffix: %s\n", valueStyle.Render(cfg.Plans.Suffix))
	fmt.Fprintf(w, "  clone_suffix: %s\n", valueStyle.Render(cfg.Plans.CloneSuffix))
	fmt.Fprintf(w, "  bucket: %s\n", valueStyle.Render(cfg.Plans.Bucket))
	fmt.Fprintf(w, "  lookup_cache_size: %s\n", valueStyle.Render(strconv.Itoa(cfg.Plans.LookupCacheSize)))

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", keyStyle.Render("eligibility"))
	fmt.Fprintf(w, "  reserved_names: %s\n", list(cfg.Eligibility.ReservedNames))
	fmt.Fprintf(w, "  denylist: %s\n", list(cfg.Eligibility.Denylist))
	fmt.Fprintf(w, "  excluded_tables: %s\n", list(cfg.Eligibility.ExcludedTables))

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", keyStyle.Render("log"))
	fmt.Fprintf(w, "  level: %s\n", valueStyle.Render(cfg.Log.Level.String()))
	fmt.Fprintf(w, "  timestamps: %s\n", valueStyle.Render(strconv.FormatBool(cfg.Log.Timestamps)))

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", keyStyle.Render("watch"))
	fmt.Fprintf(w, "  debounce: %s\n", valueStyle.Render(cfg.Watch.Debounce))
	fmt.Fprintf(w, "  patterns: %s\n", list(cfg.Watch.Patterns))
	fmt.Fprintf(w, "  clear_screen: %s\n", valueStyle.Render(strconv.FormatBool(cfg.Watch.ClearScreen)))
}
