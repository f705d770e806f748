// SPDX-License-Identifier: MPL-2.0

package catalog

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/planbuild/planbuild/internal/eligibility"
	"github.com/planbuild/planbuild/internal/source"
	"github.com/planbuild/planbuild/pkg/types"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/golang-lru/v2"
)

var (
	// ErrNoCatalog is returned by New when Options.Catalog is nil.
	ErrNoCatalog = errors.New("catalog: no piece catalog configured")
	// ErrNoRegistry is returned by New when Options.Registry is nil.
	ErrNoRegistry = errors.New("catalog: no plan registry configured")
)

// Index owns the plan catalog. It is not safe for concurrent use: Scan must
// not overlap with another Scan or with any lookup. Callers serialize scans.
type Index struct {
	catalog     Catalog
	registry    Registry
	prefabs     Prefabs
	filter      *eligibility.Filter
	logger      Logger
	planSuffix  string
	cloneSuffix string
	bucket      types.TableName

	// plans is the forward map, piece name -> plan. Entries are never
	// removed.
	plans map[types.PieceName]*Plan
	// originals is the reverse map, plan name -> most recently observed
	// source piece.
	originals map[types.PlanName]*source.Piece
	// byPrefab maps a source prefab name to its plan. The first plan to
	// claim a prefab name keeps it.
	byPrefab map[types.PieceName]*Plan
	// order is the plan creation order.
	order []types.PieceName
	// byDisplayName groups the eligible pieces of the last scan.
	byDisplayName map[types.DisplayName][]*source.Piece
	// reported holds the collision keys of the last scan.
	reported map[string]struct{}
	// prefabLookups memoizes FindPlanByPrefabName between scans.
	prefabLookups *lru.Cache[prefabKey, *Plan]
}

// prefabKey is a FindPlanByPrefabName cache key.
type prefabKey struct {
	name  string
	strip bool
}

// New creates an empty Index. Nothing is scanned until Scan is called.
func New(opts Options) (*Index, error) {
	if opts.Catalog == nil {
		return nil, ErrNoCatalog
	}
	if opts.Registry == nil {
		return nil, ErrNoRegistry
	}

	if opts.Filter == nil {
		opts.Filter = eligibility.New(eligibility.DefaultRules())
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.PlanSuffix == "" {
		opts.PlanSuffix = DefaultPlanSuffix
	}
	if opts.CloneSuffix == "" {
		opts.CloneSuffix = DefaultCloneSuffix
	}
	if opts.Bucket == "" {
		opts.Bucket = eligibility.PlanTableName
	}
	if opts.LookupCacheSize <= 0 {
		opts.LookupCacheSize = DefaultLookupCacheSize
	}

	cache, err := lru.New[prefabKey, *Plan](opts.LookupCacheSize)
	if err != nil {
		return nil, fmt.Errorf("catalog: create lookup cache: %w", err)
	}

	return &Index{
		catalog:       opts.Catalog,
		registry:      opts.Registry,
		prefabs:       opts.Prefabs,
		filter:        opts.Filter,
		logger:        opts.Logger,
		planSuffix:    opts.PlanSuffix,
		cloneSuffix:   opts.CloneSuffix,
		bucket:        opts.Bucket,
		plans:         make(map[types.PieceName]*Plan),
		originals:     make(map[types.PlanName]*source.Piece),
		byPrefab:      make(map[types.PieceName]*Plan),
		byDisplayName: make(map[types.DisplayName][]*source.Piece),
		reported:      make(map[string]struct{}),
		prefabLookups: cache,
	}, nil
}

// Bucket returns the table plans are registered into.
func (ix *Index) Bucket() types.TableName { return ix.bucket }

// Len returns the number of plans owned by the index.
func (ix *Index) Len() int { return len(ix.plans) }

// Plans returns every plan in creation order.
func (ix *Index) Plans() []*Plan {
	out := make([]*Plan, len(ix.order))
	for i, name := range ix.order {
		out[i] = ix.plans[name]
	}
	return out
}

// Plan returns the plan derived from piece.
func (ix *Index) Plan(piece types.PieceName) (*Plan, bool) {
	p, ok := ix.plans[piece]
	return p, ok
}

// FindSourceByPlanName returns the piece a plan was derived from, as observed
// in the most recent scan that saw it. A miss is a normal outcome.
func (ix *Index) FindSourceByPlanName(name types.PlanName) (*source.Piece, bool) {
	p, ok := ix.originals[name]
	return p, ok
}

// FindGroupByDisplayName returns every eligible piece of the last scan that
// uses displayName.
func (ix *Index) FindGroupByDisplayName(displayName types.DisplayName) ([]*source.Piece, bool) {
	group, ok := ix.byDisplayName[displayName]
	if !ok {
		return nil, false
	}
	return slices.Clone(group), true
}

// DisplayNames returns the display names of the last scan, sorted.
func (ix *Index) DisplayNames() []types.DisplayName {
	out := make([]types.DisplayName, 0, len(ix.byDisplayName))
	for name := range ix.byDisplayName {
		out = append(out, name)
	}
	slices.Sort(out)
	return out
}

// FindPlanByPrefabName returns the plan derived from the prefab called name.
// Spawned world objects carry an instance suffix (e.g. "wood_wall(Clone)");
// when ignoreCloneSuffix is set the suffix and everything after it is
// stripped before the lookup.
func (ix *Index) FindPlanByPrefabName(name string, ignoreCloneSuffix bool) (*Plan, bool) {
	key := prefabKey{name: name, strip: ignoreCloneSuffix}
	if plan, ok := ix.prefabLookups.Get(key); ok {
		return plan, plan != nil
	}

	lookup := name
	if ignoreCloneSuffix {
		lookup = StripCloneSuffix(name, ix.cloneSuffix)
	}
	plan := ix.byPrefab[types.PieceName(lookup)]
	ix.prefabLookups.Add(key, plan)
	return plan, plan != nil
}

// indexPrefab points prefab at plan unless another plan already holds it.
func (ix *Index) indexPrefab(plan *Plan, prefab types.PieceName) {
	if owner, ok := ix.byPrefab[prefab]; ok && owner != plan {
		ix.logger.Debug("prefab name already claimed", "prefab", prefab, "plan", plan.Name, "owner", owner.Name)
		return
	}
	if plan.Prefab != prefab && ix.byPrefab[plan.Prefab] == plan {
		delete(ix.byPrefab, plan.Prefab)
	}
	plan.Prefab = prefab
	ix.byPrefab[prefab] = plan
}

// CanDerive reports whether a plan may be derived from piece.
func (ix *Index) CanDerive(piece *source.Piece) bool {
	return ix.filter.IsEligible(piece)
}

// Explain returns the eligibility reason for piece.
func (ix *Index) Explain(piece *source.Piece) eligibility.Reason {
	return ix.filter.Check(piece)
}

// StripCloneSuffix cuts name at the first occurrence of suffix.
func StripCloneSuffix(name, suffix string) string {
	if suffix == "" {
		return name
	}
	if i := strings.Index(name, suffix); i != -1 {
		return name[:i]
	}
	return name
}
