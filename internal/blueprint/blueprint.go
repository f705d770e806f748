// SPDX-License-Identifier: MPL-2.0

// Package blueprint contributes the blueprint feature's own pieces to the
// piece catalog: the world runes built from the hammer and the tool pieces of
// the blueprint rune's table. Tool behaviour is resolved once per table load
// through a name -> ToolKind table.
package blueprint

import (
	"github.com/planbuild/planbuild/internal/eligibility"
	"github.com/planbuild/planbuild/internal/source"
	"github.com/planbuild/planbuild/pkg/requirements"
	"github.com/planbuild/planbuild/pkg/types"
)

// Piece names.
const (
	StandingRuneName types.PieceName = "piece_world_standing_blueprint_rune"
	RuneStackName    types.PieceName = "piece_world_blueprint_rune_stack"

	CaptureName       types.PieceName = "piece_bpcapture"
	SelectAddName     types.PieceName = "piece_bpselectadd"
	SelectRemoveName  types.PieceName = "piece_bpselectremove"
	SelectSaveName    types.PieceName = "piece_bpselectsave"
	SnapPointName     types.PieceName = "piece_bpsnappoint"
	CenterPointName   types.PieceName = "piece_bpcenterpoint"
	DeletePlansName   types.PieceName = "piece_bpdelete"
	TerrainName       types.PieceName = "piece_bpterrain"
	DeleteObjectsName types.PieceName = "piece_bpobjects"
	PaintName         types.PieceName = "piece_bppaint"
)

const (
	// HammerTableName is the vanilla build table the world runes are added to.
	HammerTableName types.TableName = "Hammer"
	// TableName is the blueprint rune's own tool table.
	TableName = eligibility.BlueprintTableName

	// CategoryTools groups the tool pieces.
	CategoryTools = "Tools"
	// CategoryBlueprints groups saved blueprints.
	CategoryBlueprints = "Blueprints"
	// CategoryMisc holds the world runes in the hammer menu.
	CategoryMisc = "Misc"
)

// runeCost is the build cost of each world rune.
var runeCost = requirements.New(requirements.Requirement{Resource: "Stone", Amount: 5})

// toolOrder is the menu order of the tool table.
var toolOrder = []types.PieceName{
	CaptureName, SelectAddName, SelectRemoveName, SelectSaveName,
	SnapPointName, CenterPointName,
	DeletePlansName, TerrainName, DeleteObjectsName,
	PaintName,
}

// Tables returns freshly allocated tables holding the blueprint pieces: the
// world runes in the hammer table and the tools in the blueprint table.
func Tables() []source.Table {
	runes := []*source.Piece{
		newPiece(StandingRuneName, "Standing blueprint rune", CategoryMisc, HammerTableName, runeCost),
		newPiece(RuneStackName, "Blueprint rune stack", CategoryMisc, HammerTableName, runeCost),
	}

	tools := make([]*source.Piece, len(toolOrder))
	for i, name := range toolOrder {
		tools[i] = newPiece(name, displayNames[name], CategoryTools, TableName, requirements.Set{})
	}

	return []source.Table{
		{Name: HammerTableName, Pieces: runes},
		{Name: TableName, Pieces: tools},
	}
}

var displayNames = map[types.PieceName]types.DisplayName{
	CaptureName:       "Capture blueprint",
	SelectAddName:     "Add to selection",
	SelectRemoveName:  "Remove from selection",
	SelectSaveName:    "Save selection",
	SnapPointName:     "Snap point",
	CenterPointName:   "Center point",
	DeletePlansName:   "Delete plans",
	TerrainName:       "Terrain tool",
	DeleteObjectsName: "Delete objects",
	PaintName:         "Paint tool",
}

func newPiece(name types.PieceName, display types.DisplayName, category string, table types.TableName, cost requirements.Set) *source.Piece {
	return &source.Piece{
		Name:         name,
		DisplayName:  display,
		Enabled:      true,
		Requirements: cost,
		Category:     category,
		Table:        table,
		Icon:         types.IconRef("icons/" + string(name)),
	}
}
