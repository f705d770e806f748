// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"testing"
)

func TestPieceName_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		piece   PieceName
		want    bool
		wantErr bool
	}{
		{"simple name", PieceName("wood_wall"), true, false},
		{"mod prefixed", PieceName("MyMod_stone_floor"), true, false},
		{"empty is invalid", PieceName(""), false, true},
		{"whitespace only is invalid", PieceName("  \t"), false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			isValid, errs := tt.piece.IsValid()
			if isValid != tt.want {
				t.Errorf("PieceName(%q).IsValid() = %v, want %v", tt.piece, isValid, tt.want)
			}
			if tt.wantErr {
				if len(errs) == 0 {
					t.Fatalf("PieceName(%q).IsValid() returned no errors, want error", tt.piece)
				}
				if !errors.Is(errs[0], ErrInvalidPieceName) {
					t.Errorf("error should wrap ErrInvalidPieceName, got: %v", errs[0])
				}
				var pnErr *InvalidPieceNameError
				if !errors.As(errs[0], &pnErr) {
					t.Errorf("error should be *InvalidPieceNameError, got: %T", errs[0])
				}
			} else if len(errs) > 0 {
				t.Errorf("PieceName(%q).IsValid() returned unexpected errors: %v", tt.piece, errs)
			}
		})
	}
}

func TestPlanName_IsValid(t *testing.T) {
	t.Parallel()

	if ok, _ := PlanName("wood_wall_planned").IsValid(); !ok {
		t.Error("PlanName(wood_wall_planned) should be valid")
	}
	ok, errs := PlanName(" ").IsValid()
	if ok {
		t.Fatal("whitespace PlanName should be invalid")
	}
	if !errors.Is(errs[0], ErrInvalidPlanName) {
		t.Errorf("error should wrap ErrInvalidPlanName, got: %v", errs[0])
	}
}

func TestPlanNameFor(t *testing.T) {
	t.Parallel()

	got := PlanNameFor("wood_wall", "_planned")
	if got != PlanName("wood_wall_planned") {
		t.Errorf("PlanNameFor() = %q, want %q", got, "wood_wall_planned")
	}
	// Deterministic: same input always yields the same name.
	if PlanNameFor("wood_wall", "_planned") != got {
		t.Error("PlanNameFor() is not deterministic")
	}
}
