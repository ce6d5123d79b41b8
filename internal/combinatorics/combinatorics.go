// Package combinatorics provides cartesian products, permutations and
// combinations over arbitrary sequences.
//
// Every selection is computed over the indices of the input rather than its
// values, so duplicate values at different positions are treated as distinct
// elements. Results are enumerated in odometer order: the last position
// varies fastest.
package combinatorics

import (
	"errors"
	"fmt"
	"strconv"
)

// DefaultMaxTuples is the default upper bound on the number of index tuples a
// single call may enumerate.
const DefaultMaxTuples = 1 << 20

var (
	// ErrNegativeWidth is returned when a selection width is below zero.
	ErrNegativeWidth = errors.New("selection width must not be negative")

	// ErrTooLarge is returned when an enumeration would exceed the tuple limit.
	ErrTooLarge = errors.New("enumeration exceeds tuple limit")
)

// Option configures a selection call.
type Option func(*options)

type options struct {
	maxTuples int
}

// WithMaxTuples overrides DefaultMaxTuples for a single call. Values of zero
// or below are ignored.
func WithMaxTuples(limit int) Option {
	return func(o *options) {
		if limit > 0 {
			o.maxTuples = limit
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{maxTuples: DefaultMaxTuples}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// CheckBounds reports whether enumerating n^k tuples stays within limit.
func CheckBounds(n, k, limit int) error {
	if k < 0 {
		return ErrNegativeWidth
	}
	if n <= 1 || k == 0 {
		return nil
	}
	total := 1
	for i := 0; i < k; i++ {
		if total > limit/n {
			return fmt.Errorf("%w: %d^%d tuples requested, limit is %d", ErrTooLarge, n, k, limit)
		}
		total *= n
	}
	return nil
}

// Product returns the cartesian product of seqs. Tuple i holds one element
// from each sequence in argument order. The product of no sequences is a
// single empty tuple; the product involving an empty sequence is empty.
func Product[T comparable](seqs ...[]T) [][]T {
	result := [][]T{{}}
	for _, seq := range seqs {
		next := make([][]T, 0, len(result)*len(seq))
		for _, prefix := range result {
			for _, v := range seq {
				tuple := make([]T, len(prefix)+1)
				copy(tuple, prefix)
				tuple[len(prefix)] = v
				next = append(next, tuple)
			}
		}
		result = next
	}
	return result
}

// ProductStrings treats every word as the sequence of its characters and
// returns their cartesian product.
//
//	ProductStrings("me", "hi") // [[m h] [m i] [e h] [e i]]
func ProductStrings(words ...string) [][]string {
	seqs := make([][]string, len(words))
	for i, w := range words {
		seqs[i] = Chars(w)
	}
	return Product(seqs...)
}

// Chars splits s into its characters.
func Chars(s string) []string {
	chars := make([]string, 0, len(s))
	for _, r := range s {
		chars = append(chars, string(r))
	}
	return chars
}

// Permutations returns every ordered k-length selection drawn from the
// indices of seq, skipping tuples whose first two positions share an index.
// Only positions 0 and 1 are compared: for k > 2 a tuple may repeat an index
// at a later position. A k of zero selects len(seq) elements, so an empty
// seq yields a single empty tuple.
func Permutations[T comparable](seq []T, k int, opts ...Option) ([][]T, error) {
	indices, err := permutationIndices(len(seq), k, buildOptions(opts).maxTuples)
	if err != nil {
		return nil, err
	}
	return pick(seq, indices), nil
}

// Combinations returns the permutations of seq whose indices are in
// non-decreasing order, compared as decimal strings. For k <= 2 this yields
// each unordered selection exactly once.
func Combinations[T comparable](seq []T, k int, opts ...Option) ([][]T, error) {
	indices, err := permutationIndices(len(seq), k, buildOptions(opts).maxTuples)
	if err != nil {
		return nil, err
	}
	return pick(seq, filterSorted(indices)), nil
}

// CombinationsWithReplacement returns the k-fold product of the indices of seq
// filtered to non-decreasing index order, so an element may be selected more
// than once.
func CombinationsWithReplacement[T comparable](seq []T, k int, opts ...Option) ([][]T, error) {
	indices, err := indexProduct(len(seq), k, buildOptions(opts).maxTuples)
	if err != nil {
		return nil, err
	}
	return pick(seq, filterSorted(indices)), nil
}

// indexProduct returns the k-fold cartesian product of [0, n).
func indexProduct(n, k, limit int) ([][]int, error) {
	if k == 0 {
		k = n
	}
	if err := CheckBounds(n, k, limit); err != nil {
		return nil, err
	}
	if k == 0 {
		// Selecting nothing from an empty sequence yields the empty tuple,
		// as the product of no sequences does.
		return [][]int{{}}, nil
	}

	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	copies := make([][]int, k)
	for i := range copies {
		copies[i] = idx
	}
	return Product(copies...), nil
}

func permutationIndices(n, k, limit int) ([][]int, error) {
	all, err := indexProduct(n, k, limit)
	if err != nil {
		return nil, err
	}
	kept := all[:0]
	for _, t := range all {
		if len(t) >= 2 && t[0] == t[1] {
			continue
		}
		kept = append(kept, t)
	}
	return kept, nil
}

// filterSorted keeps the tuples whose indices never decrease when compared
// as decimal strings.
func filterSorted(tuples [][]int) [][]int {
	kept := make([][]int, 0, len(tuples))
	for _, t := range tuples {
		if isSorted(t) {
			kept = append(kept, t)
		}
	}
	return kept
}

func isSorted(t []int) bool {
	for i := 1; i < len(t); i++ {
		if strconv.Itoa(t[i-1]) > strconv.Itoa(t[i]) {
			return false
		}
	}
	return true
}

func pick[T comparable](seq []T, tuples [][]int) [][]T {
	out := make([][]T, len(tuples))
	for i, t := range tuples {
		vals := make([]T, len(t))
		for j, idx := range t {
			vals[j] = seq[idx]
		}
		out[i] = vals
	}
	return out
}
