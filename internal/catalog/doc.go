// SPDX-License-Identifier: MPL-2.0

// Package catalog maintains the plan catalog: one generated plan per eligible
// piece of the host's piece catalog, kept in sync across rescans.
//
// Index owns every plan, the plan -> piece reverse map and the display-name
// grouping used for collision reports. Scan is the only mutating operation;
// the lookups are read-only and may be called freely between scans.
//
// File organization:
//   - types.go: Plan, Options and the collaborator interfaces
//   - diagnostic.go: Diagnostic, Report
//   - index.go: Index construction and lookups
//   - scan.go: the reconciliation pass
//   - repair.go: best-effort prefab registration repair
//   - suggest.go: nearest-name suggestions for lookup misses
package catalog
