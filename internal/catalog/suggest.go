// SPDX-License-Identifier: MPL-2.0

package catalog

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

type suggestion struct {
	name string
	dist int
}

// Suggest returns up to limit known piece, plan and display names close to
// name, nearest first. Names containing name as a substring always qualify.
func (ix *Index) Suggest(name string, limit int) []string {
	name = strings.TrimSpace(name)
	if name == "" || limit <= 0 {
		return nil
	}
	needle := strings.ToLower(name)

	seen := make(map[string]struct{})
	var cands []suggestion
	consider := func(candidate string) {
		if candidate == "" || candidate == name {
			return
		}
		if _, ok := seen[candidate]; ok {
			return
		}
		seen[candidate] = struct{}{}

		lower := strings.ToLower(candidate)
		dist := levenshtein.ComputeDistance(needle, lower)
		if dist > suggestLimit(len(candidate)) && !strings.Contains(lower, needle) {
			return
		}
		cands = append(cands, suggestion{name: candidate, dist: dist})
	}

	for _, pieceName := range ix.order {
		plan := ix.plans[pieceName]
		consider(pieceName.String())
		consider(plan.Name.String())
	}
	for displayName := range ix.byDisplayName {
		consider(displayName.String())
	}

	sort.Slice(cands, func(i, j int) bool {
		if cands[i].dist == cands[j].dist {
			return cands[i].name < cands[j].name
		}
		return cands[i].dist < cands[j].dist
	})

	out := make([]string, 0, min(limit, len(cands)))
	for _, c := range cands {
		if len(out) == limit {
			break
		}
		out = append(out, c.name)
	}
	return out
}

func suggestLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	case length <= 16:
		return 3
	default:
		return length / 4
	}
}
