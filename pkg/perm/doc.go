// Package perm provides permutation enumeration algorithms and the helpers
// shared by the ranking packages below it.
//
// # Overview
//
// Permutations are represented as []int index slices over an alphabet of n
// symbols (or directly as []T). The sub-packages each implement one ranking
// scheme, a bijection between permutations and integers:
//
//   - lehmer: mixed-radix Lehmer codes and pool-based unranking
//   - factoradic: the factorial number system, with and without repetition
//   - bijective: bijective base-n numbering of words of length 1..k
//   - myrvold: Myrvold-Ruskey linear-time ranking (not lexicographic)
//
// This package holds the two enumeration algorithms:
//
//   - [NextPermutation]: Knuth's Algorithm L, lexicographic successor in place
//   - [Permutations]: Heap's algorithm as a lazy iter.Seq
//
// # Aliasing
//
// Both enumerators work in place. [Permutations] yields the caller's slice on
// every step, so copy a permutation before advancing if you need to keep it:
//
//	var all [][]int
//	for p := range perm.Permutations(perm.Seq(3)) {
//	    all = append(all, slices.Clone(p))
//	}
//
// [Generate] does that copy for you.
//
// # Lexicographic Order
//
// Starting from sorted order, repeated [NextPermutation] calls enumerate all
// distinct orderings and then return false:
//
//	s := []int{1, 2, 3}
//	for ok := true; ok; ok = perm.NextPermutation(s) {
//	    fmt.Println(s) // 123, 132, 213, 231, 312, 321
//	}
//
// # Rendering
//
// [ToDOT] and [RenderSVG] draw an enumeration as a chain of nodes with the
// changed positions on each edge, which makes the difference between Heap's
// single swaps and Algorithm L's suffix reversals easy to see.
//
// # Errors
//
// Functions that validate input return *errors.Error values from
// github.com/matzehuels/permrank/pkg/errors. The enumeration functions here
// cannot fail.
package perm
