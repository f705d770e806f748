// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/planbuild/planbuild/internal/testutil"
)

func TestScanCommand(t *testing.T) {
	t.Parallel()

	dir := testutil.CatalogDir(t, map[string]string{"vanilla.cue": testutil.VanillaCatalog})

	stdout, _, err := runCommand(t, testConfig(), "scan", dir, "--rescan", "2", "--plans")
	if err != nil {
		t.Fatalf("scan error = %v", err)
	}

	for _, want := range []string{
		"created=2 updated=0 retired=0 skipped=0 ineligible=1 active=2 total=2",
		"created=0 updated=0 retired=0 skipped=0 ineligible=1 active=2 total=2",
		"wood_wall_planned",
		"stone_floor_planned",
		"Stone:4",
	} {
		if !strings.Contains(stdout, want) {
			t.Errorf("stdout missing %q:\n%s", want, stdout)
		}
	}
	if strings.Contains(stdout, "sapling_oak_planned") {
		t.Error("plant piece must not get a plan")
	}
}

func TestScanCommand_Collisions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		args     []string
		wantCode int
	}{
		{"report only", nil, 0},
		{"strict", []string{"--strict"}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := testutil.CatalogDir(t, map[string]string{
				"a_vanilla.cue": testutil.VanillaCatalog,
				"b_modded.toml": testutil.ModdedCatalog,
			})

			args := append([]string{"scan", dir, "--rescan", "2"}, tt.args...)
			stdout, _, err := runCommand(t, testConfig(), args...)

			if strings.Count(stdout, "Warning for mod developers") != 1 {
				t.Errorf("collision should be reported once across rescans:\n%s", stdout)
			}

			if tt.wantCode == 0 {
				if err != nil {
					t.Fatalf("scan error = %v", err)
				}
				return
			}
			var exitErr *ExitError
			if !errors.As(err, &exitErr) || exitErr.Code != tt.wantCode {
				t.Fatalf("err = %v, want ExitError code %d", err, tt.wantCode)
			}
		})
	}
}

func TestScanCommand_InvalidRescan(t *testing.T) {
	t.Parallel()

	dir := testutil.CatalogDir(t, map[string]string{"vanilla.cue": testutil.VanillaCatalog})

	_, _, err := runCommand(t, testConfig(), "scan", dir, "--rescan", "0")
	if err == nil || !strings.Contains(err.Error(), "--rescan") {
		t.Fatalf("err = %v, want --rescan validation error", err)
	}
}

func TestScanCommand_NoCatalog(t *testing.T) {
	t.Parallel()

	_, stderr, err := runCommand(t, testConfig(), "scan")
	if err == nil {
		t.Fatal("expected an error without catalog paths")
	}
	if !strings.Contains(stderr, "catalog.paths") {
		t.Errorf("stderr should suggest catalog.paths:\n%s", stderr)
	}
}

func TestScanCommand_ParseError(t *testing.T) {
	t.Parallel()

	dir := testutil.CatalogDir(t, map[string]string{"broken.yaml": "tables: [unterminated\n"})

	if _, _, err := runCommand(t, testConfig(), "scan", dir); err == nil {
		t.Fatal("expected an error for a malformed catalog")
	}
}

func TestScanCommand_ConfigPaths(t *testing.T) {
	t.Parallel()

	dir := testutil.CatalogDir(t, map[string]string{"vanilla.cue": testutil.VanillaCatalog})
	cfg := testConfig()
	cfg.Catalog.Paths = []string{filepath.Join(dir, "vanilla.cue")}

	stdout, _, err := runCommand(t, cfg, "scan")
	if err != nil {
		t.Fatalf("scan error = %v", err)
	}
	if !strings.Contains(stdout, "created=2") {
		t.Errorf("stdout = %s", stdout)
	}
}

func TestScanCommand_Blueprints(t *testing.T) {
	t.Parallel()

	dir := testutil.CatalogDir(t, map[string]string{"vanilla.cue": testutil.VanillaCatalog})
	cfg := testConfig()
	cfg.Catalog.Blueprints = true

	stdout, _, err := runCommand(t, cfg, "scan", dir, "--plans")
	if err != nil {
		t.Fatalf("scan error = %v", err)
	}
	// The two world runes get plans after prefab repair; the tool table is excluded.
	for _, want := range []string{"created=4", "ineligible=11", "prefab_unregistered", "piece_world_blueprint_rune_stack_planned"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("stdout missing %q:\n%s", want, stdout)
		}
	}
	if strings.Contains(stdout, "piece_bpcapture_planned") {
		t.Errorf("blueprint tools must not get plans:\n%s", stdout)
	}
}
