// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"strings"
	"testing"

	"github.com/planbuild/planbuild/internal/testutil"
)

func TestLookupCommands(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		args       []string
		wantStdout []string
		wantStderr []string
		wantErr    bool
	}{
		{
			name:       "plan found",
			args:       []string{"lookup", "plan", "wood_wall_planned"},
			wantStdout: []string{"wood_wall", "Wood Wall", "Wood:2", "enabled"},
		},
		{
			name:       "plan missing suggests",
			args:       []string{"lookup", "plan", "wood_wal_planned"},
			wantStderr: []string{"not found", "Did you mean", "wood_wall_planned"},
			wantErr:    true,
		},
		{
			name:       "prefab with clone suffix",
			args:       []string{"lookup", "prefab", "stone_floor(Clone)", "--ignore-clone"},
			wantStdout: []string{"stone_floor_planned"},
		},
		{
			name:    "prefab clone suffix kept",
			args:    []string{"lookup", "prefab", "stone_floor(Clone)"},
			wantErr: true,
		},
		{
			name:       "display name group",
			args:       []string{"lookup", "name", "Wood Wall"},
			wantStdout: []string{"wood_wall", "modded_wall"},
		},
		{
			name:    "plant has no group",
			args:    []string{"lookup", "name", "Oak Sapling"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := testutil.CatalogDir(t, map[string]string{
				"a_vanilla.cue": testutil.VanillaCatalog,
				"b_modded.toml": testutil.ModdedCatalog,
			})

			args := append(tt.args, "--catalog", dir)
			stdout, stderr, err := runCommand(t, testConfig(), args...)

			if tt.wantErr {
				var exitErr *ExitError
				if !errors.As(err, &exitErr) || exitErr.Code != 1 {
					t.Fatalf("err = %v, want ExitError code 1", err)
				}
			} else if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			for _, want := range tt.wantStdout {
				if !strings.Contains(stdout, want) {
					t.Errorf("stdout missing %q:\n%s", want, stdout)
				}
			}
			for _, want := range tt.wantStderr {
				if !strings.Contains(stderr, want) {
					t.Errorf("stderr missing %q:\n%s", want, stderr)
				}
			}
		})
	}
}
