package perm

import (
	"cmp"
	"iter"
	"slices"
)

// NextPermutation rearranges s into the lexicographically next permutation
// (Knuth's Algorithm L) and reports whether one existed.
//
// When s is already the last permutation (non-increasing order) NextPermutation
// returns false and leaves s untouched. Starting from sorted order, repeated
// calls visit every distinct ordering exactly once, duplicates included, and
// then return false forever after.
func NextPermutation[T cmp.Ordered](s []T) bool {
	return NextPermutationFunc(s, cmp.Compare[T])
}

// NextPermutationFunc is NextPermutation with a custom comparison. cmp must
// return a negative number when a < b, zero when equal, positive otherwise.
func NextPermutationFunc[T any](s []T, cmp func(a, b T) int) bool {
	// L2: find the largest j with s[j] < s[j+1].
	j := len(s) - 2
	for j >= 0 && cmp(s[j], s[j+1]) >= 0 {
		j--
	}
	if j < 0 {
		return false
	}

	// L3: find the largest l > j with s[l] > s[j].
	l := len(s) - 1
	for cmp(s[l], s[j]) <= 0 {
		l--
	}
	s[j], s[l] = s[l], s[j]

	// L4: reverse the suffix.
	slices.Reverse(s[j+1:])
	return true
}

// PrevPermutation is the mirror of NextPermutation: it rearranges s into the
// lexicographically previous permutation and returns false, without mutating
// s, when s is already sorted.
func PrevPermutation[T cmp.Ordered](s []T) bool {
	return NextPermutationFunc(s, func(a, b T) int { return cmp.Compare(b, a) })
}

// Lexicographic yields every distinct permutation of s in lexicographic order.
//
// s itself is not modified; the sequence works on a sorted copy and, like
// Permutations, yields that same copy on every step.
func Lexicographic[T cmp.Ordered](s []T) iter.Seq[[]T] {
	return func(yield func([]T) bool) {
		work := slices.Clone(s)
		slices.Sort(work)
		for {
			if !yield(work) {
				return
			}
			if !NextPermutation(work) {
				return
			}
		}
	}
}
