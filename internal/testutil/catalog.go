// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"path/filepath"
	"testing"
)

// VanillaCatalog is a CUE catalog with two eligible hammer pieces and a
// plant in the cultivator table.
const VanillaCatalog = `tables: [{
	name: "Hammer"
	pieces: [{
		name:         "wood_wall"
		display_name: "Wood Wall"
		category:     "Building"
		requirements: {Wood: 2}
	}, {
		name:         "stone_floor"
		display_name: "Stone Floor"
		category:     "Building"
		requirements: {Stone: 4}
	}]
}, {
	name: "Cultivator"
	pieces: [{
		name:         "sapling_oak"
		display_name: "Oak Sapling"
		requirements: {Wood: 1}
		flags: plant: true
	}]
}]
`

// ModdedCatalog is a TOML catalog whose only piece shares the display name
// "Wood Wall" with VanillaCatalog at a different cost.
const ModdedCatalog = `[[tables]]
name = "Hammer"

[[tables.pieces]]
name = "modded_wall"
display_name = "Wood Wall"
category = "Building"
requirements = { Wood = 2, Resin = 1 }
`

// CatalogDir writes files (name to content) into a fresh temporary
// directory and returns it. Names may contain slashes.
func CatalogDir(t testing.TB, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		MustWriteFile(t, filepath.Join(dir, filepath.FromSlash(name)), content)
	}
	return dir
}
