// SPDX-License-Identifier: MPL-2.0

package catalog

import (
	"fmt"
	"time"

	"github.com/planbuild/planbuild/internal/duplicates"
	"github.com/planbuild/planbuild/pkg/types"
)

const (
	// SeverityWarning indicates a recoverable scan warning.
	SeverityWarning Severity = "warning"
	// SeverityError indicates a non-fatal scan error.
	SeverityError Severity = "error"
)

// Diagnostic codes.
const (
	CodeSnapshotFailed        = "snapshot_failed"
	CodeInvalidPiece          = "invalid_piece"
	CodeDuplicatePiece        = "duplicate_piece"
	CodePrefabUnregistered    = "prefab_unregistered"
	CodePrefabRepairFailed    = "prefab_repair_failed"
	CodePieceFailed           = "piece_failed"
	CodePlanSyncFailed        = "plan_sync_failed"
	CodeDuplicateReportFailed = "duplicate_report_failed"
)

type (
	// Severity represents scan diagnostic severity.
	Severity string

	// Diagnostic is a structured scan diagnostic. Scan never returns an
	// error; everything that went wrong is reported as diagnostics.
	Diagnostic struct {
		// Severity is the diagnostic level (warning or error).
		Severity Severity
		// Code is a machine-readable identifier (e.g., "duplicate_piece").
		Code string
		// Message is the human-readable description.
		Message string
		// Piece is the piece associated with this diagnostic (optional).
		Piece types.PieceName
		// Cause is the underlying error (optional).
		Cause error
	}

	// Report summarizes one scan.
	Report struct {
		// Created counts plans created by this scan.
		Created int
		// Updated counts existing plans whose enabled flag or icon changed.
		Updated int
		// Retired counts plans disabled or deregistered by this scan.
		Retired int
		// Skipped counts pieces skipped as malformed, duplicated, unrepairable
		// or failing.
		Skipped int
		// Ineligible counts pieces rejected by the eligibility filter.
		Ineligible int
		// Active counts enabled plans after the scan.
		Active int
		// Total counts all plans owned by the index after the scan.
		Total int
		// Diagnostics lists warnings and errors in the order they occurred.
		Diagnostics []Diagnostic
		// Collisions lists every display-name collision of this scan.
		Collisions []duplicates.Collision
		// DuplicateReport is the formatted report of collisions that were not
		// already present in the previous scan; "" when nothing is new.
		DuplicateReport string
		// Duration is the wall time the scan took.
		Duration time.Duration
	}

	// PanicError wraps a value recovered while processing one piece.
	PanicError struct {
		Value any
		Stack []byte
	}
)

// Warnings returns the number of warning diagnostics.
func (r *Report) Warnings() int {
	n := 0
	for _, d := range r.Diagnostics {
		if d.Severity == SeverityWarning {
			n++
		}
	}
	return n
}

// Errors returns the number of error diagnostics.
func (r *Report) Errors() int {
	return len(r.Diagnostics) - r.Warnings()
}

// Summary returns a one-line count summary.
func (r *Report) Summary() string {
	return fmt.Sprintf("created=%d updated=%d retired=%d skipped=%d ineligible=%d active=%d total=%d warnings=%d",
		r.Created, r.Updated, r.Retired, r.Skipped, r.Ineligible, r.Active, r.Total, r.Warnings())
}

// Error implements the error interface.
func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}
