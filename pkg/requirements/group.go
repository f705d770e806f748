// SPDX-License-Identifier: MPL-2.0

package requirements

// Group is a run of values whose requirement sets are equal.
type Group[T any] struct {
	Set     Set
	Members []T
}

// GroupBy partitions items by requirement-set equality. Groups are returned
// in order of first appearance and members keep their input order.
//
// Hash selects a bucket and Equal resolves hash collisions inside it, so two
// sets land in the same group only when they are structurally equal.
func GroupBy[T any](items []T, key func(T) Set) []Group[T] {
	var groups []Group[T]
	buckets := make(map[uint64][]int)

	for _, item := range items {
		set := key(item)
		h := set.Hash()

		idx := -1
		for _, gi := range buckets[h] {
			if groups[gi].Set.Equal(set) {
				idx = gi
				break
			}
		}
		if idx == -1 {
			idx = len(groups)
			groups = append(groups, Group[T]{Set: set})
			buckets[h] = append(buckets[h], idx)
		}
		groups[idx].Members = append(groups[idx].Members, item)
	}

	return groups
}
