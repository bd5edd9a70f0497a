package factoradic

import (
	"slices"

	perrors "github.com/matzehuels/permrank/pkg/errors"
	"github.com/matzehuels/permrank/pkg/perm"
)

// RankWithoutRepetition returns the lexicographic rank of the k-permutation
// p over the indices [0, n), where k = len(p).
//
// Position i contributes (number of smaller unused indices) times the block
// size (n-i-1)!/(n-k)!, the count of completions of the remaining positions.
func RankWithoutRepetition(p []int, n int) (uint64, error) {
	if err := perrors.ValidatePermutation(p, n, false); err != nil {
		return 0, err
	}
	k := len(p)
	if _, err := CountWithoutRepetition(n, k); err != nil {
		return 0, err
	}

	blocks := blockSizes(n, k)
	avail := perm.Seq(n)
	var rank uint64
	for i, v := range p {
		pos := slices.Index(avail, v)
		rank += uint64(pos) * blocks[i]
		avail = slices.Delete(avail, pos, pos+1)
	}
	return rank, nil
}

// UnrankWithoutRepetition returns the k-permutation of [0, n) with the given
// lexicographic rank. It fails with RANGE_VIOLATION when rank >= n!/(n-k)!.
func UnrankWithoutRepetition(rank uint64, n, k int) ([]int, error) {
	count, err := CountWithoutRepetition(n, k)
	if err != nil {
		return nil, err
	}
	if rank >= count {
		return nil, perrors.RangeViolation(rank, count)
	}

	blocks := blockSizes(n, k)
	avail := perm.Seq(n)
	out := make([]int, k)
	for i := range out {
		pos := int(rank / blocks[i])
		rank %= blocks[i]
		out[i] = avail[pos]
		avail = slices.Delete(avail, pos, pos+1)
	}
	return out, nil
}

// blockSizes returns (n-i-1)!/(n-k)! for i in [0, k). The caller has checked
// that n!/(n-k)! fits in a uint64, so every block does too.
func blockSizes(n, k int) []uint64 {
	blocks := make([]uint64, k)
	size := uint64(1)
	for i := k - 1; i >= 0; i-- {
		blocks[i] = size
		size *= uint64(n - i)
	}
	return blocks
}

// RankWithRepetition returns the base-n value of p (Horner's method), the
// rank of the word among all n^k words of the same length.
func RankWithRepetition(p []int, n int) (uint64, error) {
	if err := perrors.ValidatePermutation(p, n, true); err != nil {
		return 0, err
	}
	if _, err := CountWithRepetition(n, len(p)); err != nil {
		return 0, err
	}

	var rank uint64
	for _, d := range p {
		rank = rank*uint64(n) + uint64(d)
	}
	return rank, nil
}

// UnrankWithRepetition returns the length-k word over [0, n) whose base-n
// value is rank. It fails with RANGE_VIOLATION when rank >= n^k.
func UnrankWithRepetition(rank uint64, n, k int) ([]int, error) {
	count, err := CountWithRepetition(n, k)
	if err != nil {
		return nil, err
	}
	if rank >= count {
		return nil, perrors.RangeViolation(rank, count)
	}

	out := make([]int, k)
	for i := k - 1; i >= 0; i-- {
		out[i] = int(rank % uint64(n))
		rank /= uint64(n)
	}
	return out, nil
}

// Rank ranks a word of distinct symbols drawn from alphabet, in lexicographic
// order of alphabet positions.
func Rank[T comparable](word, alphabet []T) (uint64, error) {
	if err := perrors.ValidateAlphabet(alphabet); err != nil {
		return 0, err
	}
	idx, err := perm.Indices(word, alphabet)
	if err != nil {
		return 0, err
	}
	return RankWithoutRepetition(idx, len(alphabet))
}

// Unrank returns the k distinct symbols of alphabet with the given rank.
func Unrank[T comparable](rank uint64, alphabet []T, k int) ([]T, error) {
	if err := perrors.ValidateAlphabet(alphabet); err != nil {
		return nil, err
	}
	idx, err := UnrankWithoutRepetition(rank, len(alphabet), k)
	if err != nil {
		return nil, err
	}
	return perm.Apply(idx, alphabet), nil
}
