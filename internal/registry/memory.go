// SPDX-License-Identifier: MPL-2.0

// Package registry provides an in-memory host registry: named buckets of
// published plans plus a prefab registry. It backs the CLI and tests where no
// live host is attached.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/planbuild/planbuild/internal/catalog"
	"github.com/planbuild/planbuild/internal/source"
	"github.com/planbuild/planbuild/pkg/types"
)

// ErrUnnamed is returned when a plan or piece without a name is registered.
var ErrUnnamed = errors.New("registry: empty name")

// Memory is an in-memory catalog.Registry and catalog.Prefabs.
// It is safe for concurrent use.
type Memory struct {
	mu      sync.RWMutex
	plans   map[types.PlanName]*catalog.Plan
	buckets map[types.TableName]map[types.PlanName]*catalog.Plan
	prefabs map[types.PieceName]struct{}
}

var (
	_ catalog.Registry = (*Memory)(nil)
	_ catalog.Prefabs  = (*Memory)(nil)
)

// NewMemory creates an empty registry.
func NewMemory() *Memory {
	return &Memory{
		plans:   make(map[types.PlanName]*catalog.Plan),
		buckets: make(map[types.TableName]map[types.PlanName]*catalog.Plan),
		prefabs: make(map[types.PieceName]struct{}),
	}
}

// RegisterPrefab records plan as a known prefab. Registering the same plan
// name again is a no-op.
func (m *Memory) RegisterPrefab(plan *catalog.Plan) error {
	if plan == nil || plan.Name == "" {
		return ErrUnnamed
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.plans[plan.Name]; !exists {
		m.plans[plan.Name] = plan
	}
	return nil
}

// Register publishes plan in bucket.
func (m *Memory) Register(bucket types.TableName, plan *catalog.Plan) error {
	if plan == nil || plan.Name == "" {
		return ErrUnnamed
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, known := m.plans[plan.Name]; !known {
		return fmt.Errorf("registry: plan %s published before its prefab was registered", plan.Name)
	}
	b, ok := m.buckets[bucket]
	if !ok {
		b = make(map[types.PlanName]*catalog.Plan)
		m.buckets[bucket] = b
	}
	b[plan.Name] = plan
	return nil
}

// Deregister retracts name from bucket. Retracting an absent plan is a no-op.
func (m *Memory) Deregister(bucket types.TableName, name types.PlanName) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.buckets[bucket], name)
	return nil
}

// Contains reports whether name is published in bucket.
func (m *Memory) Contains(bucket types.TableName, name types.PlanName) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.buckets[bucket][name]
	return ok
}

// Bucket returns the names published in bucket, sorted.
func (m *Memory) Bucket(bucket types.TableName) []types.PlanName {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]types.PlanName, 0, len(m.buckets[bucket]))
	for name := range m.buckets[bucket] {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

// Registered reports whether a plan prefab called name was registered.
func (m *Memory) Registered(name types.PlanName) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.plans[name]
	return ok
}

// HasPrefab reports whether the piece prefab called name is known.
func (m *Memory) HasPrefab(name types.PieceName) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.prefabs[name]
	return ok
}

// AddPrefab records the prefab backing piece.
func (m *Memory) AddPrefab(piece *source.Piece) error {
	if piece == nil || piece.PrefabName() == "" {
		return ErrUnnamed
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.prefabs[piece.PrefabName()] = struct{}{}
	return nil
}

// Seed marks the prefab of every piece in snap as known, mirroring a host
// whose prefab registry was populated before the first scan.
func (m *Memory) Seed(snap source.Snapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, t := range snap.Tables {
		for _, p := range t.Pieces {
			if p != nil && p.PrefabName() != "" {
				m.prefabs[p.PrefabName()] = struct{}{}
			}
		}
	}
}

// Forget drops a piece prefab, leaving the piece listed in its table but
// unregistered.
func (m *Memory) Forget(name types.PieceName) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.prefabs, name)
}
