// SPDX-License-Identifier: MPL-2.0

package source

import (
	"slices"
	"sync"

	"github.com/planbuild/planbuild/pkg/types"
)

// MemoryCatalog is an in-memory piece catalog. Tables can be replaced
// between scans to simulate pieces appearing, disappearing or toggling.
type MemoryCatalog struct {
	mu     sync.RWMutex
	tables []Table
}

// NewMemoryCatalog creates a catalog holding tables.
func NewMemoryCatalog(tables ...Table) *MemoryCatalog {
	c := &MemoryCatalog{}
	c.Replace(tables...)
	return c
}

// Replace swaps the full table list. Each piece's Table field is set to the
// table it is listed in, overwriting any previous value.
func (c *MemoryCatalog) Replace(tables ...Table) {
	cloned := make([]Table, len(tables))
	for i, t := range tables {
		cloned[i] = Table{Name: t.Name, Pieces: slices.Clone(t.Pieces)}
		for _, p := range cloned[i].Pieces {
			if p != nil {
				p.Table = t.Name
			}
		}
	}

	c.mu.Lock()
	c.tables = cloned
	c.mu.Unlock()
}

// Add appends pieces to the named table, creating the table when missing.
func (c *MemoryCatalog) Add(table types.TableName, pieces ...*Piece) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, p := range pieces {
		if p != nil {
			p.Table = table
		}
	}
	for i := range c.tables {
		if c.tables[i].Name == table {
			c.tables[i].Pieces = append(c.tables[i].Pieces, pieces...)
			return
		}
	}
	c.tables = append(c.tables, Table{Name: table, Pieces: slices.Clone(pieces)})
}

// Remove drops every piece named name from all tables and reports whether
// anything was removed.
func (c *MemoryCatalog) Remove(name types.PieceName) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := false
	for i := range c.tables {
		before := len(c.tables[i].Pieces)
		c.tables[i].Pieces = slices.DeleteFunc(c.tables[i].Pieces, func(p *Piece) bool {
			return p != nil && p.Name == name
		})
		removed = removed || len(c.tables[i].Pieces) != before
	}
	return removed
}

// Snapshot returns the current tables. The table and piece slices are copies;
// the pieces themselves are shared with the catalog.
func (c *MemoryCatalog) Snapshot() (Snapshot, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]Table, len(c.tables))
	for i, t := range c.tables {
		out[i] = Table{Name: t.Name, Pieces: slices.Clone(t.Pieces)}
	}
	return Snapshot{Tables: out}, nil
}
