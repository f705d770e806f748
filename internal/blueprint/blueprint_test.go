// SPDX-License-Identifier: MPL-2.0

package blueprint

import (
	"testing"

	"github.com/planbuild/planbuild/internal/catalog"
	"github.com/planbuild/planbuild/internal/registry"
	"github.com/planbuild/planbuild/internal/source"
	"github.com/planbuild/planbuild/pkg/types"
)

func TestTables(t *testing.T) {
	t.Parallel()

	tables := Tables()
	if len(tables) != 2 {
		t.Fatalf("len(Tables()) = %d, want 2", len(tables))
	}
	if tables[0].Name != HammerTableName || len(tables[0].Pieces) != 2 {
		t.Errorf("hammer table = %s with %d pieces", tables[0].Name, len(tables[0].Pieces))
	}
	for _, p := range tables[0].Pieces {
		if got := p.Requirements.String(); got != "Stone:5" {
			t.Errorf("%s requirements = %q, want Stone:5", p.Name, got)
		}
	}
	if tables[1].Name != TableName || len(tables[1].Pieces) != 10 {
		t.Errorf("tool table = %s with %d pieces", tables[1].Name, len(tables[1].Pieces))
	}

	// Each call allocates new pieces.
	again := Tables()
	if again[0].Pieces[0] == tables[0].Pieces[0] {
		t.Error("Tables() shares pieces between calls")
	}
}

func TestResolveTools(t *testing.T) {
	t.Parallel()

	tools := ResolveTools(Tables()[1])
	want := map[types.PieceName]ToolKind{
		CaptureName:       KindCapture,
		SelectAddName:     KindSelectAdd,
		SelectRemoveName:  KindSelectRemove,
		SelectSaveName:    KindSelectSave,
		SnapPointName:     KindNone,
		CenterPointName:   KindNone,
		DeletePlansName:   KindDeletePlans,
		TerrainName:       KindTerrain,
		DeleteObjectsName: KindDeleteObjects,
		PaintName:         KindPaint,
	}
	if len(tools) != len(want) {
		t.Fatalf("len(ResolveTools()) = %d, want %d", len(tools), len(want))
	}
	for _, tool := range tools {
		if tool.Kind != want[tool.Piece.Name] {
			t.Errorf("%s kind = %v, want %v", tool.Piece.Name, tool.Kind, want[tool.Piece.Name])
		}
	}
	if tools[0].Piece.Name != CaptureName {
		t.Errorf("first tool = %s, want menu order", tools[0].Piece.Name)
	}
}

func TestResolveTools_UnknownAndNil(t *testing.T) {
	t.Parallel()

	table := source.Table{Name: TableName, Pieces: []*source.Piece{nil, {Name: "piece_custom_tool"}}}
	tools := ResolveTools(table)
	if len(tools) != 1 || tools[0].Kind != KindNone {
		t.Errorf("ResolveTools() = %+v, want one KindNone tool", tools)
	}
	if KindPaint.String() != "paint" || ToolKind(99).String() != "unknown" {
		t.Error("ToolKind.String() mismatch")
	}
}

func TestTables_OnlyRunesGetPlans(t *testing.T) {
	t.Parallel()

	reg := registry.NewMemory()
	ix, err := catalog.New(catalog.Options{Catalog: source.NewMemoryCatalog(Tables()...), Registry: reg})
	if err != nil {
		t.Fatal(err)
	}

	r := ix.Scan()
	if r.Created != 2 || r.Ineligible != 10 {
		t.Errorf("Scan() = %s, want 2 rune plans and 10 ineligible tools", r.Summary())
	}
	for _, name := range []types.PieceName{StandingRuneName, RuneStackName} {
		if _, ok := ix.Plan(name); !ok {
			t.Errorf("no plan for %s", name)
		}
	}
}
