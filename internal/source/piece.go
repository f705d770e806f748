// SPDX-License-Identifier: MPL-2.0

package source

import (
	"github.com/planbuild/planbuild/pkg/requirements"
	"github.com/planbuild/planbuild/pkg/types"
)

type (
	// Flags are the structural traits of a piece that decide whether a plan
	// may be derived from it. They mirror which behaviour components the
	// piece prefab carries.
	Flags struct {
		// Plant is set for growable pieces (saplings, crops).
		Plant bool
		// TerrainOp is set for pieces that run a one-shot terrain operation.
		TerrainOp bool
		// TerrainModifier is set for pieces that permanently modify terrain.
		TerrainModifier bool
		// Vehicle is set for ships and carts.
		Vehicle bool
		// Plan is set for pieces that already are generated plans.
		Plan bool
	}

	// Piece is a read-only view of one buildable item in the source catalog.
	Piece struct {
		// Name is the prefab name of the piece, unique within one snapshot.
		Name types.PieceName
		// Prefab is the name of the registered prefab backing the piece.
		// Empty means the prefab shares Name.
		Prefab types.PieceName
		// DisplayName is the human-readable name; not unique.
		DisplayName types.DisplayName
		// Enabled is toggled by the host between scans.
		Enabled bool
		// Requirements is the build cost of the piece.
		Requirements requirements.Set
		// Flags are the structural traits used for eligibility.
		Flags Flags
		// Icon references the piece icon sprite.
		Icon types.IconRef
		// Category is the build-menu category (e.g. "Building").
		Category string
		// Table is the piece table the piece was listed in for this snapshot.
		Table types.TableName
	}

	// Table is a named piece table (build menu) and its pieces in menu order.
	// Pieces may contain nil entries when the host catalog holds broken
	// references; consumers must tolerate them.
	Table struct {
		Name   types.TableName
		Pieces []*Piece
	}

	// Snapshot is the full catalog as observed at one instant, tables in host
	// order.
	Snapshot struct {
		Tables []Table
	}
)

// PrefabName returns the name of the prefab backing the piece.
func (p *Piece) PrefabName() types.PieceName {
	if p.Prefab != "" {
		return p.Prefab
	}
	return p.Name
}

// Any reports whether any structural flag is set.
func (f Flags) Any() bool {
	return f.Plant || f.TerrainOp || f.TerrainModifier || f.Vehicle || f.Plan
}

// Len returns the number of piece entries across all tables, nil entries
// included.
func (s Snapshot) Len() int {
	n := 0
	for _, t := range s.Tables {
		n += len(t.Pieces)
	}
	return n
}

// Find returns the first piece named name in snapshot order.
func (s Snapshot) Find(name types.PieceName) (*Piece, bool) {
	for _, t := range s.Tables {
		for _, p := range t.Pieces {
			if p != nil && p.Name == name {
				return p, true
			}
		}
	}
	return nil, false
}
