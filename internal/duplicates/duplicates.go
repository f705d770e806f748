// SPDX-License-Identifier: MPL-2.0

// Package duplicates finds display-name collisions: pieces that share a
// display name but differ in build requirements. Consumers that key recipes
// by display name alone cannot tell such pieces apart.
package duplicates

import (
	"sort"
	"strings"

	"github.com/planbuild/planbuild/internal/source"
	"github.com/planbuild/planbuild/pkg/requirements"
	"github.com/planbuild/planbuild/pkg/types"
)

// reportHeader opens every formatted report.
const reportHeader = "Warning for mod developers:\n" +
	"Multiple pieces share a display name but have different resource requirements; " +
	"recipes keyed by display name cannot tell them apart!"

type (
	// RequirementGroup is a set of same-named pieces with equal requirements.
	RequirementGroup struct {
		Requirements requirements.Set
		Pieces       []types.PieceName
	}

	// Collision is one display name mapped to more than one distinct
	// requirement set.
	Collision struct {
		DisplayName types.DisplayName
		Groups      []RequirementGroup
	}
)

// Find returns the collisions in groups, sorted by display name. Groups
// within a collision keep the order of first appearance. Nil pieces are
// ignored.
func Find(groups map[types.DisplayName][]*source.Piece) []Collision {
	var out []Collision

	for name, pieces := range groups {
		if len(pieces) < 2 {
			continue
		}

		live := make([]*source.Piece, 0, len(pieces))
		for _, p := range pieces {
			if p != nil {
				live = append(live, p)
			}
		}

		byReq := requirements.GroupBy(live, func(p *source.Piece) requirements.Set { return p.Requirements })
		if len(byReq) < 2 {
			continue
		}

		c := Collision{DisplayName: name, Groups: make([]RequirementGroup, len(byReq))}
		for i, g := range byReq {
			names := make([]types.PieceName, len(g.Members))
			for j, p := range g.Members {
				names[j] = p.Name
			}
			c.Groups[i] = RequirementGroup{Requirements: g.Set, Pieces: names}
		}
		out = append(out, c)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].DisplayName < out[j].DisplayName })
	return out
}

// Key identifies a collision by name, requirement sets and member pieces, so
// a later scan can tell whether it is still the same collision.
func (c Collision) Key() string {
	parts := make([]string, len(c.Groups))
	for i, g := range c.Groups {
		names := make([]string, len(g.Pieces))
		for j, n := range g.Pieces {
			names[j] = string(n)
		}
		sort.Strings(names)
		parts[i] = g.Requirements.Key() + "=>" + strings.Join(names, ",")
	}
	sort.Strings(parts)
	return string(c.DisplayName) + "|" + strings.Join(parts, "|")
}

// Format renders collisions as a single multi-line block. It returns "" when
// there is nothing to report.
func Format(collisions []Collision) string {
	if len(collisions) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(reportHeader)
	sb.WriteString("\n")
	for _, c := range collisions {
		sb.WriteString("Piece display name: ")
		sb.WriteString(string(c.DisplayName))
		sb.WriteString("\n")
		for _, g := range c.Groups {
			sb.WriteString(" Requirements: ")
			sb.WriteString(g.Requirements.String())
			sb.WriteString("\n Pieces: ")
			for i, n := range g.Pieces {
				if i > 0 {
					sb.WriteString(", ")
				}
				sb.WriteString(string(n))
			}
			sb.WriteString("\n\n")
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}
