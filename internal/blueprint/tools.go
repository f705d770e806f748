// SPDX-License-Identifier: MPL-2.0

package blueprint

import (
	"github.com/planbuild/planbuild/internal/source"
	"github.com/planbuild/planbuild/pkg/types"
)

const (
	// KindNone marks pieces without tool behaviour (snap and center points).
	KindNone ToolKind = iota
	KindCapture
	KindSelectAdd
	KindSelectRemove
	KindSelectSave
	KindDeletePlans
	KindTerrain
	KindDeleteObjects
	KindPaint
)

type (
	// ToolKind identifies the behaviour attached to a tool piece.
	ToolKind int

	// Tool is a tool piece with its resolved behaviour.
	Tool struct {
		Piece *source.Piece
		Kind  ToolKind
	}
)

var toolKinds = map[types.PieceName]ToolKind{
	CaptureName:       KindCapture,
	SelectAddName:     KindSelectAdd,
	SelectRemoveName:  KindSelectRemove,
	SelectSaveName:    KindSelectSave,
	DeletePlansName:   KindDeletePlans,
	TerrainName:       KindTerrain,
	DeleteObjectsName: KindDeleteObjects,
	PaintName:         KindPaint,
}

// KindOf returns the behaviour of the tool piece called name.
func KindOf(name types.PieceName) ToolKind {
	return toolKinds[name]
}

// ResolveTools attaches a ToolKind to every piece of table, in menu order.
// Nil entries are dropped.
func ResolveTools(table source.Table) []Tool {
	out := make([]Tool, 0, len(table.Pieces))
	for _, p := range table.Pieces {
		if p == nil {
			continue
		}
		out = append(out, Tool{Piece: p, Kind: KindOf(p.Name)})
	}
	return out
}

// String returns the tool behaviour name.
func (k ToolKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindCapture:
		return "capture"
	case KindSelectAdd:
		return "select-add"
	case KindSelectRemove:
		return "select-remove"
	case KindSelectSave:
		return "select-save"
	case KindDeletePlans:
		return "delete-plans"
	case KindTerrain:
		return "terrain"
	case KindDeleteObjects:
		return "delete-objects"
	case KindPaint:
		return "paint"
	default:
		return "unknown"
	}
}
