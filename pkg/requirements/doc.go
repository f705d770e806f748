// SPDX-License-Identifier: MPL-2.0

// Package requirements provides Set, an immutable and order-independent
// collection of (resource, amount) pairs describing what a piece costs to
// build.
//
// Two sets are equal when they hold the same pairs, regardless of the order
// the pairs were supplied in, and equal sets always produce the same Hash.
// This makes Set usable as a grouping key without relying on the identity of
// a Go map.
package requirements
