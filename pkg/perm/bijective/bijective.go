// Package bijective ranks words over an alphabet in bijective base-n
// numeration.
//
// Bijective numeration has no zero digit: symbol i of the alphabet is the
// digit i+1, so every positive integer names exactly one non-empty word and 0
// names the empty word. Rank order is shortlex: shorter words first, then
// lexicographic by alphabet position. With n = 2 over "ab":
//
//	0 ""   1 a   2 b   3 aa   4 ab   5 ba   6 bb   7 aaa ...
package bijective

import (
	"math/bits"

	perrors "github.com/matzehuels/permrank/pkg/errors"
)

// CountWithRepetition returns n + n^2 + ... + n^k, the number of non-empty
// words of length at most k over n symbols.
func CountWithRepetition(n, k int) (uint64, error) {
	if err := perrors.ValidateNK(n, k, true); err != nil {
		return 0, err
	}
	var total uint64
	power := uint64(1)
	for i := 1; i <= k; i++ {
		var ok bool
		if power, ok = mul(power, uint64(n)); !ok {
			return 0, perrors.Overflow("%d^%d", n, i)
		}
		if total, ok = add(total, power); !ok {
			return 0, perrors.Overflow("sum of %d^1..%d^%d", n, n, k)
		}
	}
	return total, nil
}

// Interval returns the closed rank interval [min, max] of the words of length
// exactly k. The intervals for k = 1, 2, ... are contiguous and together cover
// [1, CountWithRepetition(n, k)]. Length 0 holds only the empty word, [0, 0].
// For n = 0 and k > 0 the interval is empty and min > max.
//
// Interval is the block of one length, not the range of all words up to
// length k: for n = 2 and k = 3 it returns [7, 14], while words of length 1..3
// span [1, 14].
func Interval(n, k int) (lo, hi uint64, err error) {
	if err := perrors.ValidateNK(n, k, true); err != nil {
		return 0, 0, err
	}
	power := uint64(1)
	for i := 1; i <= k; i++ {
		var ok bool
		if power, ok = mul(power, uint64(n)); !ok {
			return 0, 0, perrors.Overflow("%d^%d", n, i)
		}
		lo = hi + 1
		if hi, ok = add(hi, power); !ok {
			return 0, 0, perrors.Overflow("sum of %d^1..%d^%d", n, n, i)
		}
	}
	return lo, hi, nil
}

// Rank returns the bijective rank of word: each symbol contributes its
// 1-based alphabet position times n^p, where p counts places from the right.
// The empty word ranks 0.
func Rank[T comparable](word, alphabet []T) (uint64, error) {
	if err := perrors.ValidateAlphabet(alphabet); err != nil {
		return 0, err
	}
	index := make(map[T]int, len(alphabet))
	for i, s := range alphabet {
		index[s] = i
	}

	n := uint64(len(alphabet))
	var rank uint64
	place := uint64(1)
	for i := len(word) - 1; i >= 0; i-- {
		pos, found := index[word[i]]
		if !found {
			return 0, perrors.New(perrors.ErrCodeInvalidInput, "symbol %v at position %d not in alphabet", word[i], i)
		}
		term, ok := mul(uint64(pos+1), place)
		if !ok {
			return 0, perrors.Overflow("rank of %d-symbol word", len(word))
		}
		if rank, ok = add(rank, term); !ok {
			return 0, perrors.Overflow("rank of %d-symbol word", len(word))
		}
		if i > 0 {
			if place, ok = mul(place, n); !ok {
				return 0, perrors.Overflow("rank of %d-symbol word", len(word))
			}
		}
	}
	return rank, nil
}

// Unrank writes the word with the given bijective rank into the tail of buf
// and returns that suffix. Rank 0 returns an empty slice without touching buf.
//
// Each step divides with the bijective divmod q = ceil(rank/n) - 1,
// r = rank - q*n, which keeps the digit r in [1, n]. buf must be long enough
// for the whole word; otherwise LENGTH_MISMATCH is returned and buf is left
// unmodified.
func Unrank[T any](buf []T, rank uint64, alphabet []T) ([]T, error) {
	if len(alphabet) == 0 {
		return nil, perrors.New(perrors.ErrCodeInvalidAlphabet, "alphabet cannot be empty")
	}
	n := uint64(len(alphabet))

	if need := Length(rank, len(alphabet)); need > len(buf) {
		return nil, perrors.LengthMismatch("buffer", len(buf), need)
	}

	i := len(buf)
	for rank > 0 {
		q, r := divmod(rank, n)
		i--
		buf[i] = alphabet[r-1]
		rank = q
	}
	return buf[i:], nil
}

// Length returns the number of symbols in the word with the given bijective
// rank over an alphabet of n symbols. n must be positive.
func Length(rank uint64, n int) int {
	length := 0
	for rank > 0 {
		rank, _ = divmod(rank, uint64(n))
		length++
	}
	return length
}

// divmod is the bijective division of a positive rank: rank = q*n + r with
// r in [1, n].
func divmod(rank, n uint64) (q, r uint64) {
	q = (rank - 1) / n
	return q, rank - q*n
}

func mul(a, b uint64) (uint64, bool) {
	hi, lo := bits.Mul64(a, b)
	return lo, hi == 0
}

func add(a, b uint64) (uint64, bool) {
	sum, carry := bits.Add64(a, b, 0)
	return sum, carry == 0
}
