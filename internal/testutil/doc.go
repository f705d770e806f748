// SPDX-License-Identifier: MPL-2.0

// Package testutil provides helpers for tests that write catalog and config
// files, failing the test immediately when the filesystem misbehaves.
//
// The catalog fixtures (VanillaCatalog, ModdedCatalog) are shared by the
// command tests so that every package scans the same pieces.
package testutil
