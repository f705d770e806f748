// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the planbuild CLI commands. Every command handler
// receives the App composition root and builds a per-invocation session:
// configuration, logger, catalog files, registry and plan index.
package cmd
