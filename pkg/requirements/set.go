// SPDX-License-Identifier: MPL-2.0

package requirements

import (
	"sort"
	"strconv"
	"strings"

	"github.com/planbuild/planbuild/pkg/types"

	"github.com/cespare/xxhash/v2"
)

const (
	hashSeed       uint64 = 13
	hashMultiplier uint64 = 7
)

type (
	// Requirement is a single resource cost of a piece.
	Requirement struct {
		Resource types.ResourceName
		Amount   int
	}

	// Set is an immutable multiset of requirements keyed by resource name.
	// The zero value is the empty set.
	Set struct {
		// pairs is sorted by Resource and holds each Resource once.
		pairs []Requirement
	}
)

// New builds a Set from pairs in any order. When the same resource appears
// more than once, the last amount wins.
func New(pairs ...Requirement) Set {
	if len(pairs) == 0 {
		return Set{}
	}
	byName := make(map[types.ResourceName]int, len(pairs))
	for _, p := range pairs {
		byName[p.Resource] = p.Amount
	}
	return FromMap(byName)
}

// FromMap builds a Set from a resource -> amount map.
func FromMap(m map[types.ResourceName]int) Set {
	if len(m) == 0 {
		return Set{}
	}
	out := make([]Requirement, 0, len(m))
	for name, amount := range m {
		out = append(out, Requirement{Resource: name, Amount: amount})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Resource < out[j].Resource })
	return Set{pairs: out}
}

// Len returns the number of distinct resources in the set.
func (s Set) Len() int { return len(s.pairs) }

// IsEmpty reports whether the set has no requirements.
func (s Set) IsEmpty() bool { return len(s.pairs) == 0 }

// Pairs returns a copy of the requirements sorted by resource name.
func (s Set) Pairs() []Requirement {
	out := make([]Requirement, len(s.pairs))
	copy(out, s.pairs)
	return out
}

// Amount returns the amount required for resource and whether it is present.
func (s Set) Amount(resource types.ResourceName) (int, bool) {
	i := sort.Search(len(s.pairs), func(i int) bool { return s.pairs[i].Resource >= resource })
	if i < len(s.pairs) && s.pairs[i].Resource == resource {
		return s.pairs[i].Amount, true
	}
	return 0, false
}

// Equal reports whether s and other hold the same (resource, amount) pairs.
func (s Set) Equal(other Set) bool {
	if len(s.pairs) != len(other.pairs) {
		return false
	}
	for i := range s.pairs {
		if s.pairs[i] != other.pairs[i] {
			return false
		}
	}
	return true
}

// Hash returns a stable, order-independent hash of the set. The accumulator
// folds in every pair in ascending resource order:
//
//	acc = acc*7 + hash(resource)
//	acc = acc*7 + amount
//
// starting from 13. Resource names are hashed with xxhash so the value is
// stable across processes.
func (s Set) Hash() uint64 {
	acc := hashSeed
	for _, p := range s.pairs {
		acc = acc*hashMultiplier + xxhash.Sum64String(string(p.Resource))
		acc = acc*hashMultiplier + uint64(int64(p.Amount))
	}
	return acc
}

// Key returns a canonical string encoding of the set, suitable as a map key.
func (s Set) Key() string {
	var sb strings.Builder
	for i, p := range s.pairs {
		if i > 0 {
			sb.WriteByte(';')
		}
		sb.WriteString(strconv.Quote(string(p.Resource)))
		sb.WriteByte('=')
		sb.WriteString(strconv.Itoa(p.Amount))
	}
	return sb.String()
}

// String renders the set as "Stone:1, Wood:2".
func (s Set) String() string {
	parts := make([]string, len(s.pairs))
	for i, p := range s.pairs {
		parts[i] = string(p.Resource) + ":" + strconv.Itoa(p.Amount)
	}
	return strings.Join(parts, ", ")
}
