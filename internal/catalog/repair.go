// SPDX-License-Identifier: MPL-2.0

package catalog

import (
	"github.com/planbuild/planbuild/internal/source"
)

// ensurePrefab repairs hosts whose prefab registry lost track of a piece
// that is still listed in a table. It reports false when the piece must be
// skipped for this scan. Without a Prefabs collaborator every piece passes.
func (ix *Index) ensurePrefab(report *Report, piece *source.Piece) (bool, error) {
	if ix.prefabs == nil {
		return true, nil
	}

	name := piece.PrefabName()
	if ix.prefabs.HasPrefab(name) {
		return true, nil
	}

	ix.record(report, Diagnostic{
		Severity: SeverityWarning,
		Code:     CodePrefabUnregistered,
		Message:  "prefab " + name.String() + " is not registered; adding it",
		Piece:    piece.Name,
	})

	if err := ix.prefabs.AddPrefab(piece); err != nil {
		ix.record(report, Diagnostic{
			Severity: SeverityWarning,
			Code:     CodePrefabRepairFailed,
			Message:  "could not register prefab " + name.String() + "; skipping piece",
			Piece:    piece.Name,
			Cause:    err,
		})
		return false, nil
	}
	return true, nil
}
