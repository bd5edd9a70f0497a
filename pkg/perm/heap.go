package perm

import "iter"

// Permutations returns a lazy sequence of all n! orderings of source using
// Heap's algorithm, which moves from one permutation to the next with a single
// swap.
//
// Every yielded slice IS source: the sequence permutes the caller's storage in
// place and yields it after each swap. A consumer that needs to keep a
// permutation past the current iteration must copy it (slices.Clone) before
// continuing. When the sequence finishes, source holds the last permutation
// produced, not the original order.
//
// The sequence is finite and not restartable mid-way; ranging over it a second
// time starts Heap's algorithm again from whatever order source is in. An
// empty or single-element source yields exactly once.
//
// Generation order is algorithm-defined, not lexicographic. For [1 2 3]:
//
//	[1 2 3] [2 1 3] [3 1 2] [1 3 2] [2 3 1] [3 2 1]
func Permutations[T any](source []T) iter.Seq[[]T] {
	return func(yield func([]T) bool) {
		if !yield(source) {
			return
		}

		n := len(source)
		counter := make([]int, n)
		for i := 1; i < n; {
			if counter[i] < i {
				if i&1 == 0 {
					source[0], source[i] = source[i], source[0]
				} else {
					source[counter[i]], source[i] = source[i], source[counter[i]]
				}
				counter[i]++
				i = 1
				if !yield(source) {
					return
				}
			} else {
				counter[i] = 0
				i++
			}
		}
	}
}
