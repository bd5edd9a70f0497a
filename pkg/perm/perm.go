package perm

import (
	"slices"

	perrors "github.com/matzehuels/permrank/pkg/errors"
)

// Seq returns a slice containing the sequence [0, 1, 2, ..., n-1].
// This is the identity permutation and the usual starting point for
// NextPermutation and Permutations.
//
// For n <= 0, Seq returns an empty slice.
func Seq(n int) []int {
	if n <= 0 {
		return []int{}
	}
	result := make([]int, n)
	for i := range result {
		result[i] = i
	}
	return result
}

// Factorial returns n! (n factorial), the product 1 × 2 × ... × n.
// For n <= 1, Factorial returns 1.
//
// Factorial does not check for overflow: 21! already exceeds uint64. Use
// factoradic.CountWithoutRepetition when the result must be exact.
func Factorial(n int) int {
	result := 1
	for i := 2; i <= n; i++ {
		result *= i
	}
	return result
}

// Indices maps each symbol of word to its position in alphabet.
// It returns an INVALID_INPUT error naming the first symbol that is not part
// of the alphabet.
func Indices[T comparable](word, alphabet []T) ([]int, error) {
	pos := make(map[T]int, len(alphabet))
	for i, s := range alphabet {
		if _, ok := pos[s]; !ok {
			pos[s] = i
		}
	}
	out := make([]int, len(word))
	for i, s := range word {
		p, ok := pos[s]
		if !ok {
			return nil, perrors.New(perrors.ErrCodeInvalidInput, "symbol %v at position %d is not in the alphabet", s, i)
		}
		out[i] = p
	}
	return out, nil
}

// Apply maps indices back to symbols. The caller guarantees every index is
// valid for alphabet.
func Apply[T any](indices []int, alphabet []T) []T {
	out := make([]T, len(indices))
	for i, idx := range indices {
		out[i] = alphabet[idx]
	}
	return out
}

// Generate returns permutations of [0, 1, ..., n-1] using Heap's algorithm.
//
// If limit > 0, Generate returns at most limit permutations.
// If limit <= 0, Generate returns all n! permutations.
//
// Each returned slice is a separate allocation, safe to modify without affecting
// others. Use Permutations directly to avoid the per-step copy.
//
// Generate handles edge cases gracefully:
//   - n = 0: returns [[]] (one empty permutation)
//   - n = 1: returns [[0]] (one single-element permutation)
//
// For n >= 13, the number of permutations exceeds billions. Always use a limit
// when n is large, or your program will exhaust memory.
func Generate(n, limit int) [][]int {
	capacity := limit
	if capacity <= 0 || n <= 12 {
		capacity = Factorial(min(max(n, 0), 12))
		if limit > 0 {
			capacity = min(capacity, limit)
		}
	}
	result := make([][]int, 0, capacity)
	for p := range Permutations(Seq(n)) {
		result = append(result, slices.Clone(p))
		if limit > 0 && len(result) >= limit {
			break
		}
	}
	return result
}
