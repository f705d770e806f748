// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"strings"

	"github.com/planbuild/planbuild/internal/blueprint"
	"github.com/planbuild/planbuild/internal/catalog"
	"github.com/planbuild/planbuild/internal/catalogfile"
	"github.com/planbuild/planbuild/internal/config"
	"github.com/planbuild/planbuild/internal/eligibility"
	"github.com/planbuild/planbuild/internal/issue"
	"github.com/planbuild/planbuild/internal/logging"
	"github.com/planbuild/planbuild/internal/registry"
	"github.com/planbuild/planbuild/internal/source"
	"github.com/planbuild/planbuild/pkg/types"

	"github.com/charmbracelet/log"
)

// session is the state of one CLI invocation: the loaded catalog files, an
// in-memory registry standing in for the host, and the plan index.
type session struct {
	cfg      *config.Config
	logger   *log.Logger
	paths    []string
	catalog  *source.MemoryCatalog
	registry *registry.Memory
	index    *catalog.Index
	seeded   bool
}

// newSession loads configuration and the catalog files named by args (or
// catalog.paths from the config) and builds an unscanned index.
func (a *App) newSession(ctx context.Context, flags *rootFlagValues, args []string) (*session, error) {
	cfg, err := a.loadConfig(ctx, flags)
	if err != nil {
		return nil, err
	}

	level := string(cfg.Log.Level)
	if flags.verbose {
		level = string(config.LogLevelDebug)
	}
	logger, err := logging.New(logging.Options{
		Writer:          a.stderr,
		Level:           level,
		ReportTimestamp: cfg.Log.Timestamps,
	})
	if err != nil {
		return nil, err
	}

	paths := args
	if len(paths) == 0 {
		paths = cfg.Catalog.Paths
	}
	if len(paths) == 0 {
		a.renderIssue(issue.CatalogNotFoundId)
		return nil, issue.NewErrorContext().
			WithOperation("load piece catalog").
			WithSuggestion("Pass catalog files or directories as arguments").
			WithSuggestion("Or set catalog.paths in the config file").
			Wrap(catalogfile.ErrNoFiles).
			BuildError()
	}

	s := &session{
		cfg:      cfg,
		logger:   logger,
		paths:    paths,
		catalog:  source.NewMemoryCatalog(),
		registry: registry.NewMemory(),
	}
	if err := s.reload(); err != nil {
		if errors.Is(err, catalogfile.ErrNoFiles) {
			a.renderIssue(issue.CatalogNotFoundId)
		} else {
			a.renderIssue(issue.CatalogParseErrorId)
		}
		return nil, err
	}

	s.index, err = catalog.New(catalog.Options{
		Catalog:         s.catalog,
		Registry:        s.registry,
		Prefabs:         s.registry,
		Filter:          eligibility.New(rulesFrom(cfg.Eligibility)),
		Logger:          logger,
		PlanSuffix:      cfg.Plans.Suffix,
		CloneSuffix:     cfg.Plans.CloneSuffix,
		Bucket:          types.TableName(cfg.Plans.Bucket),
		LookupCacheSize: cfg.Plans.LookupCacheSize,
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

// reload re-reads the catalog files into the in-memory catalog. The prefab
// registry is seeded from the files once; blueprint pieces and pieces added
// later reach the index unregistered and go through prefab repair.
func (s *session) reload() error {
	tables, err := catalogfile.Load(s.paths...)
	if err != nil {
		return issue.NewErrorContext().
			WithOperation("load piece catalog").
			WithResource(joinPaths(s.paths)).
			WithSuggestion("Check the catalog file syntax").
			WithSuggestion("Supported formats are .cue, .toml, .yaml and .yml").
			Wrap(err).
			BuildError()
	}

	if !s.seeded {
		s.registry.Seed(source.Snapshot{Tables: tables})
		s.seeded = true
	}
	if s.cfg.Catalog.Blueprints {
		tables = catalogfile.Merge(tables, blueprint.Tables()...)
	}
	s.catalog.Replace(tables...)
	s.logger.Debug("catalog loaded", "files", len(s.paths), "tables", len(tables))
	return nil
}

// find returns the piece called name in the current catalog.
func (s *session) find(name types.PieceName) (*source.Piece, bool) {
	snap, err := s.catalog.Snapshot()
	if err != nil {
		return nil, false
	}
	return snap.Find(name)
}

func rulesFrom(cfg config.EligibilityConfig) eligibility.Rules {
	rules := eligibility.Rules{}
	for _, n := range cfg.ReservedNames {
		rules.Reserved = append(rules.Reserved, types.PieceName(n))
	}
	for _, n := range cfg.Denylist {
		rules.Denied = append(rules.Denied, types.PieceName(n))
	}
	for _, t := range cfg.ExcludedTables {
		rules.ExcludedTables = append(rules.ExcludedTables, types.TableName(t))
	}
	return rules
}

func joinPaths(paths []string) string {
	return strings.Join(paths, ", ")
}
