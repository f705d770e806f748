// SPDX-License-Identifier: MPL-2.0

// Package catalogfile loads piece catalogs from files. A catalog file lists
// piece tables and their pieces; the same document shape is accepted as CUE
// (.cue), TOML (.toml) or YAML (.yaml, .yml) and is validated against the
// embedded #Catalog schema regardless of format.
//
//	tables: [{
//		name: "Hammer"
//		pieces: [{
//			name:         "wood_wall"
//			display_name: "Wood Wall"
//			category:     "Building"
//			requirements: {Wood: 2}
//		}]
//	}]
//
// Several files load into one ordered snapshot: file order first, then table
// order. Tables sharing a name are merged in place.
package catalogfile
