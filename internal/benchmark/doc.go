// SPDX-License-Identifier: MPL-2.0

// Package benchmark provides benchmarks for PGO profile generation.
// They cover the hot paths of a planbuild run:
//   - catalog file parsing (CUE, TOML and YAML)
//   - first scans and steady-state rescans of large catalogs
//   - plan lookups and name suggestions
//   - display-name collision detection
//
// To generate a profile, run:
//
//	go test -run '^$' -bench . -cpuprofile default.pgo ./internal/benchmark
package benchmark
