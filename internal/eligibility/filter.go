// SPDX-License-Identifier: MPL-2.0

// Package eligibility decides whether a plan may be derived from a piece.
package eligibility

import (
	"strings"

	"github.com/planbuild/planbuild/internal/source"
	"github.com/planbuild/planbuild/pkg/types"
)

const (
	// ReasonEligible means a plan may be derived.
	ReasonEligible Reason = iota
	// ReasonNil means the catalog held a nil piece reference.
	ReasonNil
	// ReasonUnnamed means the piece has an empty or whitespace-only name.
	ReasonUnnamed
	// ReasonPlant means the piece is growable.
	ReasonPlant
	// ReasonTerrainOp means the piece runs a terrain operation.
	ReasonTerrainOp
	// ReasonTerrainModifier means the piece modifies terrain.
	ReasonTerrainModifier
	// ReasonVehicle means the piece is a ship or cart.
	ReasonVehicle
	// ReasonAlreadyPlan means the piece itself is a generated plan.
	ReasonAlreadyPlan
	// ReasonReserved means the name is reserved by another feature.
	ReasonReserved
	// ReasonDenied means the name is on the utility denylist.
	ReasonDenied
	// ReasonExcludedTable means the piece is listed in a table plans are
	// never derived from.
	ReasonExcludedTable
)

// Default rule values.
const (
	// PlanTotemPieceName is the plan totem, reserved for the totem feature.
	PlanTotemPieceName types.PieceName = "piece_plan_totem"
	// RepairPieceName is the hammer's repair-only utility piece.
	RepairPieceName types.PieceName = "piece_repair"
	// PlanTableName is the table plans are registered into.
	PlanTableName types.TableName = "_planHammerPieceTable"
	// BlueprintTableName is the blueprint rune's tool table.
	BlueprintTableName types.TableName = "_BlueprintPieceTable"
)

type (
	// Reason explains an eligibility decision.
	Reason int

	// Rules configures a Filter.
	Rules struct {
		// Reserved are piece names owned by unrelated features.
		Reserved []types.PieceName
		// Denied are internal utility pieces that never get plans.
		Denied []types.PieceName
		// ExcludedTables are tables whose pieces never get plans.
		ExcludedTables []types.TableName
	}

	// Filter is a pure eligibility predicate. It is safe for concurrent use
	// once built.
	Filter struct {
		reserved map[types.PieceName]struct{}
		denied   map[types.PieceName]struct{}
		tables   map[types.TableName]struct{}
	}
)

// DefaultRules returns the built-in rules.
func DefaultRules() Rules {
	return Rules{
		Reserved:       []types.PieceName{PlanTotemPieceName},
		Denied:         []types.PieceName{RepairPieceName},
		ExcludedTables: []types.TableName{PlanTableName, BlueprintTableName},
	}
}

// New builds a Filter from rules.
func New(rules Rules) *Filter {
	f := &Filter{
		reserved: make(map[types.PieceName]struct{}, len(rules.Reserved)),
		denied:   make(map[types.PieceName]struct{}, len(rules.Denied)),
		tables:   make(map[types.TableName]struct{}, len(rules.ExcludedTables)),
	}
	for _, n := range rules.Reserved {
		f.reserved[n] = struct{}{}
	}
	for _, n := range rules.Denied {
		f.denied[n] = struct{}{}
	}
	for _, t := range rules.ExcludedTables {
		f.tables[t] = struct{}{}
	}
	return f
}

// IsEligible reports whether a plan may be derived from p. It never panics:
// a nil or malformed piece is simply ineligible.
func (f *Filter) IsEligible(p *source.Piece) bool {
	return f.Check(p) == ReasonEligible
}

// Check returns the first rule that makes p ineligible, or ReasonEligible.
// The table rule uses p.Table.
func (f *Filter) Check(p *source.Piece) Reason {
	if p == nil {
		return ReasonNil
	}
	return f.CheckIn(p, p.Table)
}

// CheckIn is Check for a piece listed in table, whatever p.Table says.
func (f *Filter) CheckIn(p *source.Piece, table types.TableName) Reason {
	if p == nil {
		return ReasonNil
	}
	if strings.TrimSpace(string(p.Name)) == "" {
		return ReasonUnnamed
	}

	switch {
	case p.Flags.Plant:
		return ReasonPlant
	case p.Flags.TerrainOp:
		return ReasonTerrainOp
	case p.Flags.TerrainModifier:
		return ReasonTerrainModifier
	case p.Flags.Vehicle:
		return ReasonVehicle
	case p.Flags.Plan:
		return ReasonAlreadyPlan
	}

	if f == nil {
		return ReasonEligible
	}
	if _, ok := f.reserved[p.Name]; ok {
		return ReasonReserved
	}
	if _, ok := f.denied[p.Name]; ok {
		return ReasonDenied
	}
	if _, ok := f.tables[table]; ok {
		return ReasonExcludedTable
	}
	return ReasonEligible
}

// String returns a short description of the reason.
func (r Reason) String() string {
	switch r {
	case ReasonEligible:
		return "eligible"
	case ReasonNil:
		return "nil piece"
	case ReasonUnnamed:
		return "unnamed piece"
	case ReasonPlant:
		return "plant"
	case ReasonTerrainOp:
		return "terrain operation"
	case ReasonTerrainModifier:
		return "terrain modifier"
	case ReasonVehicle:
		return "vehicle"
	case ReasonAlreadyPlan:
		return "already a plan"
	case ReasonReserved:
		return "reserved name"
	case ReasonDenied:
		return "denied utility piece"
	case ReasonExcludedTable:
		return "excluded piece table"
	default:
		return "unknown"
	}
}
