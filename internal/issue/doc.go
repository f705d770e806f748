// SPDX-License-Identifier: MPL-2.0

// Package issue provides user-facing errors for the planbuild CLI: errors
// that carry the failed operation, the resource involved and suggestions, plus
// longer Markdown help pages rendered with glamour for the common failures.
package issue
