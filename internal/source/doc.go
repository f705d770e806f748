// SPDX-License-Identifier: MPL-2.0

// Package source models the externally owned piece catalog that plans are
// derived from: pieces grouped into piece tables, captured as a Snapshot for
// each scan.
//
// The catalog belongs to the host (the game and any mods); the plan catalog
// only reads it. MemoryCatalog is the in-process implementation used by the
// CLI (fed from catalog files) and by tests.
package source
