// SPDX-License-Identifier: MPL-2.0

package catalog

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/planbuild/planbuild/internal/source"
	"github.com/planbuild/planbuild/pkg/requirements"
	"github.com/planbuild/planbuild/pkg/types"
)

const hammer types.TableName = "Hammer"

var errBoom = errors.New("boom")

type (
	// fakeRegistry records registrations per bucket. Hooks let tests fail or
	// panic on specific plans.
	fakeRegistry struct {
		prefabs       map[types.PlanName]int
		buckets       map[types.TableName]map[types.PlanName]*Plan
		registerCalls int
		onPrefab      func(*Plan) error
		onDeregister  func(types.PlanName) error
	}

	fakePrefabs struct {
		known map[types.PieceName]bool
		fail  map[types.PieceName]bool
		added []types.PieceName
	}

	// recordLogger captures log calls by level.
	recordLogger struct {
		mu    sync.Mutex
		debug []string
		info  []string
		warn  []string
		errs  []string
	}

	failingCatalog struct {
		err   error
		panic bool
	}

	// staticCatalog returns its snapshot as is, leaving Piece.Table alone.
	staticCatalog struct {
		snap source.Snapshot
	}
)

func newFakeRegistry() *fakeRegistry {
	return &fakeRegistry{
		prefabs: make(map[types.PlanName]int),
		buckets: make(map[types.TableName]map[types.PlanName]*Plan),
	}
}

func (r *fakeRegistry) RegisterPrefab(plan *Plan) error {
	if r.onPrefab != nil {
		if err := r.onPrefab(plan); err != nil {
			return err
		}
	}
	r.prefabs[plan.Name]++
	return nil
}

func (r *fakeRegistry) Register(bucket types.TableName, plan *Plan) error {
	r.registerCalls++
	if r.buckets[bucket] == nil {
		r.buckets[bucket] = make(map[types.PlanName]*Plan)
	}
	r.buckets[bucket][plan.Name] = plan
	return nil
}

func (r *fakeRegistry) Deregister(bucket types.TableName, name types.PlanName) error {
	if r.onDeregister != nil {
		if err := r.onDeregister(name); err != nil {
			return err
		}
	}
	delete(r.buckets[bucket], name)
	return nil
}

func (r *fakeRegistry) Contains(bucket types.TableName, name types.PlanName) bool {
	_, ok := r.buckets[bucket][name]
	return ok
}

func (p *fakePrefabs) HasPrefab(name types.PieceName) bool { return p.known[name] }

func (p *fakePrefabs) AddPrefab(piece *source.Piece) error {
	if p.fail[piece.PrefabName()] {
		return errBoom
	}
	p.known[piece.PrefabName()] = true
	p.added = append(p.added, piece.PrefabName())
	return nil
}

func (l *recordLogger) Debug(msg any, _ ...any) { l.add(&l.debug, msg) }
func (l *recordLogger) Info(msg any, _ ...any)  { l.add(&l.info, msg) }
func (l *recordLogger) Warn(msg any, _ ...any)  { l.add(&l.warn, msg) }
func (l *recordLogger) Error(msg any, _ ...any) { l.add(&l.errs, msg) }

func (l *recordLogger) add(dst *[]string, msg any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	*dst = append(*dst, fmt.Sprint(msg))
}

// warnsContaining counts warn messages containing substr.
func (l *recordLogger) warnsContaining(substr string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, w := range l.warn {
		if strings.Contains(w, substr) {
			n++
		}
	}
	return n
}

func (c failingCatalog) Snapshot() (source.Snapshot, error) {
	if c.panic {
		panic(c.err)
	}
	return source.Snapshot{}, c.err
}

func (c staticCatalog) Snapshot() (source.Snapshot, error) { return c.snap, nil }

// piece builds an enabled piece with display name display and the given
// requirements ("Wood", 2, "Stone", 1, ...).
func piece(name, display string, reqs ...any) *source.Piece {
	pairs := make([]requirements.Requirement, 0, len(reqs)/2)
	for i := 0; i+1 < len(reqs); i += 2 {
		pairs = append(pairs, requirements.Requirement{
			Resource: types.ResourceName(reqs[i].(string)),
			Amount:   reqs[i+1].(int),
		})
	}
	return &source.Piece{
		Name:         types.PieceName(name),
		DisplayName:  types.DisplayName(display),
		Enabled:      true,
		Requirements: requirements.New(pairs...),
		Category:     "Building",
	}
}

// testIndex wires an Index to a memory catalog holding pieces in the Hammer
// table.
func testIndex(t *testing.T, pieces ...*source.Piece) (*Index, *source.MemoryCatalog, *fakeRegistry, *recordLogger) {
	t.Helper()

	cat := source.NewMemoryCatalog(source.Table{Name: hammer, Pieces: pieces})
	reg := newFakeRegistry()
	logger := &recordLogger{}

	ix, err := New(Options{Catalog: cat, Registry: reg, Logger: logger})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return ix, cat, reg, logger
}

func diagnosticCodes(r Report) []string {
	codes := make([]string, len(r.Diagnostics))
	for i, d := range r.Diagnostics {
		codes[i] = d.Code
	}
	return codes
}
