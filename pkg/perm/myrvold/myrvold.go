// Package myrvold implements the Myrvold-Ruskey linear-time ranking of
// permutations.
//
// Ranking and unranking each take O(n) time, at the price of order: rank
// order is not lexicographic, and callers must not rely on any relation
// between rank order and sorted order. Rank 0 is always the identity
// permutation.
//
// The textbook recursion ranks with s + n*rank(...), where s is the value at
// the last position and swaps with position rank mod n. Under that formula
// the identity ranks n!-1. Here the digit is (n-1) - s and unranking swaps
// with position (n-1) - rank mod n, so every rank equals n!-1 minus the
// textbook rank and the identity gets rank 0.
//
// The in-place forms mutate their arguments. [Rank] and [Unrank] wrap them
// with validation and scratch buffers taken from a sync.Pool, so they are
// safe to call from multiple goroutines with distinct arguments.
package myrvold

import (
	"math/bits"

	perrors "github.com/matzehuels/permrank/pkg/errors"
)

// Identity fills buf with buf[i] = i.
func Identity(buf []int) {
	for i := range buf {
		buf[i] = i
	}
}

// Inverse writes the inverse of perm into inv, so that inv[perm[i]] = i.
func Inverse(perm, inv []int) error {
	if len(inv) != len(perm) {
		return perrors.LengthMismatch("inverse", len(inv), len(perm))
	}
	if err := perrors.ValidatePermutation(perm, len(perm), false); err != nil {
		return err
	}
	for i, v := range perm {
		inv[v] = i
	}
	return nil
}

// Count returns n!, the number of ranks for permutations of length n.
func Count(n int) (uint64, error) {
	if n < 0 {
		return 0, perrors.New(perrors.ErrCodeInvalidInput, "permutation length must be non-negative, got %d", n)
	}
	count := uint64(1)
	for i := 2; i <= n; i++ {
		hi, lo := bits.Mul64(count, uint64(i))
		if hi != 0 {
			return 0, perrors.Overflow("%d!", n)
		}
		count = lo
	}
	return count, nil
}

// RankInPlace ranks the first k positions of perm, given its inverse inv.
// Both slices are consumed: on return perm[:k] holds the identity and inv is
// updated to match. Inputs are not validated; see Rank.
//
// At step k the value s = perm[k-1] is moved out of the last position by
// swapping it with the position holding k-1, and contributes the mixed-radix
// digit (k-1)-s with radix k.
func RankInPlace(perm, inv []int, k int) uint64 {
	var rank uint64
	mult := uint64(1)
	for ; k > 1; k-- {
		s := perm[k-1]
		j := inv[k-1]
		perm[k-1], perm[j] = perm[j], perm[k-1]
		inv[s], inv[k-1] = inv[k-1], inv[s]

		rank += uint64(k-1-s) * mult
		mult *= uint64(k)
	}
	return rank
}

// UnrankInPlace applies the permutation with the given rank to perm[:k],
// which normally starts as the identity. For each k from the top down, it
// swaps perm[k-1] with perm[(k-1) - rank%k] and divides rank by k.
func UnrankInPlace(rank uint64, perm []int, k int) {
	for ; k > 0; k-- {
		j := k - 1 - int(rank%uint64(k))
		perm[k-1], perm[j] = perm[j], perm[k-1]
		rank /= uint64(k)
	}
}
