// SPDX-License-Identifier: MPL-2.0

package catalog

import (
	"fmt"
	"runtime/debug"
	"time"

	"github.com/planbuild/planbuild/internal/duplicates"
	"github.com/planbuild/planbuild/internal/eligibility"
	"github.com/planbuild/planbuild/internal/source"
	"github.com/planbuild/planbuild/pkg/types"
)

// scanState is the per-scan working set.
type scanState struct {
	report *Report
	// current holds the pieces a plan was derived from or retained for in
	// this scan, keyed by piece name.
	current map[types.PieceName]*source.Piece
	// seen holds every named piece of the snapshot; the first one wins.
	seen map[types.PieceName]*source.Piece
	// created holds the pieces whose plan was created in this scan.
	created  map[types.PieceName]struct{}
	grouping map[types.DisplayName][]*source.Piece
}

// Scan reconciles the index against a fresh snapshot of the catalog. It
// never returns an error and never panics on behalf of a single piece:
// everything that went wrong is listed in Report.Diagnostics.
//
// Scan must not be called concurrently with itself or with any lookup.
func (ix *Index) Scan() (report Report) {
	start := time.Now()
	defer func() {
		report.Active, report.Total = ix.counts()
		report.Duration = time.Since(start)
	}()

	snap, err := ix.snapshot()
	if err != nil {
		ix.record(&report, Diagnostic{
			Severity: SeverityError,
			Code:     CodeSnapshotFailed,
			Message:  "could not read piece catalog; index left unchanged",
			Cause:    err,
		})
		return report
	}

	ix.prefabLookups.Purge()

	st := &scanState{
		report:   &report,
		current:  make(map[types.PieceName]*source.Piece, snap.Len()),
		seen:     make(map[types.PieceName]*source.Piece, snap.Len()),
		created:  make(map[types.PieceName]struct{}),
		grouping: make(map[types.DisplayName][]*source.Piece),
	}

	for _, table := range snap.Tables {
		for i, piece := range table.Pieces {
			ix.visit(st, table.Name, i, piece)
		}
	}

	for _, name := range ix.order {
		ix.sync(st, ix.plans[name])
	}

	ix.byDisplayName = st.grouping
	ix.reportCollisions(&report)

	return report
}

func (ix *Index) snapshot() (snap source.Snapshot, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Value: r, Stack: debug.Stack()}
		}
	}()
	return ix.catalog.Snapshot()
}

// visit handles one snapshot entry.
func (ix *Index) visit(st *scanState, table types.TableName, pos int, piece *source.Piece) {
	if piece == nil {
		st.report.Skipped++
		ix.record(st.report, Diagnostic{
			Severity: SeverityWarning,
			Code:     CodeInvalidPiece,
			Message:  fmt.Sprintf("nil piece at position %d of table %q", pos, table),
		})
		return
	}

	if first, ok := st.seen[piece.Name]; ok {
		if first != piece {
			st.report.Skipped++
			ix.record(st.report, Diagnostic{
				Severity: SeverityWarning,
				Code:     CodeDuplicatePiece,
				Message:  fmt.Sprintf("piece listed again in table %q with a different definition; keeping the one from table %q", table, first.Table),
				Piece:    piece.Name,
			})
		}
		return
	}
	st.seen[piece.Name] = piece

	if reason := ix.filter.CheckIn(piece, table); reason != eligibility.ReasonEligible {
		st.report.Ineligible++
		ix.logger.Debug("skipping piece", "piece", piece.Name, "table", table, "reason", reason)
		return
	}

	err := guard(func() error { return ix.derive(st, piece) })
	if err != nil {
		st.report.Skipped++
		ix.record(st.report, Diagnostic{
			Severity: SeverityError,
			Code:     CodePieceFailed,
			Message:  "failed to derive plan",
			Piece:    piece.Name,
			Cause:    err,
		})
	}
}

// derive creates or retains the plan for an eligible piece.
func (ix *Index) derive(st *scanState, piece *source.Piece) error {
	ok, err := ix.ensurePrefab(st.report, piece)
	if err != nil {
		return err
	}
	if !ok {
		st.report.Skipped++
		return nil
	}

	plan, exists := ix.plans[piece.Name]
	if !exists {
		plan = &Plan{
			Name:         types.PlanNameFor(piece.Name, ix.planSuffix),
			Source:       piece.Name,
			DisplayName:  piece.DisplayName,
			Requirements: piece.Requirements,
			Category:     piece.Category,
			Icon:         piece.Icon,
		}
		if err := ix.registry.RegisterPrefab(plan); err != nil {
			return fmt.Errorf("register plan %s: %w", plan.Name, err)
		}
		ix.plans[piece.Name] = plan
		ix.originals[plan.Name] = piece
		ix.order = append(ix.order, piece.Name)
		st.created[piece.Name] = struct{}{}
		st.report.Created++
		ix.logger.Debug("created plan", "plan", plan.Name, "piece", piece.Name)
	} else {
		ix.originals[plan.Name] = piece
	}
	ix.indexPrefab(plan, piece.PrefabName())

	st.current[piece.Name] = piece
	st.grouping[piece.DisplayName] = append(st.grouping[piece.DisplayName], piece)
	return nil
}

// sync mirrors the source piece onto plan and publishes or retracts it.
func (ix *Index) sync(st *scanState, plan *Plan) {
	err := guard(func() error {
		piece, present := st.current[plan.Source]
		wasEnabled := plan.Enabled

		if present && piece.Enabled {
			changed := !wasEnabled || plan.Icon != piece.Icon
			plan.Enabled = true
			plan.Icon = piece.Icon
			if err := ix.registry.Register(ix.bucket, plan); err != nil {
				return fmt.Errorf("register plan %s in %s: %w", plan.Name, ix.bucket, err)
			}
			if _, fresh := st.created[plan.Source]; changed && !fresh {
				st.report.Updated++
			}
			return nil
		}

		plan.Enabled = false
		retired := wasEnabled
		if present && plan.Icon != piece.Icon {
			plan.Icon = piece.Icon
			if !retired {
				st.report.Updated++
			}
		}
		if ix.registry.Contains(ix.bucket, plan.Name) {
			if err := ix.registry.Deregister(ix.bucket, plan.Name); err != nil {
				if retired {
					st.report.Retired++
				}
				return fmt.Errorf("deregister plan %s from %s: %w", plan.Name, ix.bucket, err)
			}
			retired = true
		}
		if retired {
			st.report.Retired++
			ix.logger.Debug("retired plan", "plan", plan.Name, "present", present)
		}
		return nil
	})
	if err != nil {
		ix.record(st.report, Diagnostic{
			Severity: SeverityError,
			Code:     CodePlanSyncFailed,
			Message:  "failed to sync plan",
			Piece:    plan.Source,
			Cause:    err,
		})
	}
}

// reportCollisions finds display-name collisions and logs the ones that are
// new since the previous scan as a single warning.
func (ix *Index) reportCollisions(report *Report) {
	err := guard(func() error {
		collisions := duplicates.Find(ix.byDisplayName)
		report.Collisions = collisions

		keys := make(map[string]struct{}, len(collisions))
		var fresh []duplicates.Collision
		for _, c := range collisions {
			key := c.Key()
			keys[key] = struct{}{}
			if _, ok := ix.reported[key]; !ok {
				fresh = append(fresh, c)
			}
		}
		ix.reported = keys

		report.DuplicateReport = duplicates.Format(fresh)
		if report.DuplicateReport != "" {
			ix.logger.Warn(report.DuplicateReport)
		}
		return nil
	})
	if err != nil {
		ix.record(report, Diagnostic{
			Severity: SeverityError,
			Code:     CodeDuplicateReportFailed,
			Message:  "duplicate detection failed",
			Cause:    err,
		})
	}
}

// record appends d to report and logs it.
func (ix *Index) record(report *Report, d Diagnostic) {
	report.Diagnostics = append(report.Diagnostics, d)

	keyvals := []any{"code", d.Code}
	if d.Piece != "" {
		keyvals = append(keyvals, "piece", d.Piece)
	}
	if d.Cause != nil {
		keyvals = append(keyvals, "err", d.Cause)
	}
	if d.Severity == SeverityError {
		ix.logger.Error(d.Message, keyvals...)
		return
	}
	ix.logger.Warn(d.Message, keyvals...)
}

func (ix *Index) counts() (active, total int) {
	for _, p := range ix.plans {
		if p.Enabled {
			active++
		}
	}
	return active, len(ix.plans)
}

// guard runs fn and converts a panic into a *PanicError.
func guard(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Value: r, Stack: debug.Stack()}
		}
	}()
	return fn()
}
