package lehmer

import (
	"slices"

	perrors "github.com/matzehuels/permrank/pkg/errors"
)

// Encode writes the Lehmer digits of the k-permutation p of [0, n) into
// digits: digits[i] is the number of indices smaller than p[i] not used by
// p[0:i].
func Encode(p []int, n int, digits []uint64) error {
	if len(digits) != len(p) {
		return perrors.LengthMismatch("digits", len(digits), len(p))
	}
	if err := perrors.ValidatePermutation(p, n, false); err != nil {
		return err
	}
	for i, v := range p {
		smaller := v
		for _, u := range p[:i] {
			if u < v {
				smaller--
			}
		}
		digits[i] = uint64(smaller)
	}
	return nil
}

// Decode is the inverse of Encode: digit i selects the digits[i]-th smallest
// index of [0, n) not yet used.
func Decode(digits []uint64, n int, p []int) error {
	if len(p) != len(digits) {
		return perrors.LengthMismatch("permutation", len(p), len(digits))
	}
	if err := perrors.ValidateNK(n, len(digits), false); err != nil {
		return err
	}
	for i, d := range digits {
		if d >= uint64(n-i) {
			return perrors.New(perrors.ErrCodeInvalidInput, "digit %d at position %d not below radix %d", d, i, n-i)
		}
	}

	used := make([]bool, n)
	for i, d := range digits {
		skip := int(d)
		for v := range used {
			if used[v] {
				continue
			}
			if skip == 0 {
				p[i] = v
				used[v] = true
				break
			}
			skip--
		}
	}
	return nil
}

// Rank returns the lexicographic rank of the k-permutation p of [0, n).
func Rank(p []int, n int) (uint64, error) {
	digits := make([]uint64, len(p))
	if err := Encode(p, n, digits); err != nil {
		return 0, err
	}
	radixes := make([]uint64, len(p))
	if _, err := Radixes(radixes, n); err != nil {
		return 0, err
	}
	return Pack(digits, radixes)
}

// Unrank returns the k-permutation of [0, n) with the given lexicographic
// rank.
func Unrank(rank uint64, n, k int) ([]int, error) {
	if err := perrors.ValidateNK(n, k, false); err != nil {
		return nil, err
	}
	radixes := make([]uint64, k)
	if _, err := radixesChecked(radixes, n, rank); err != nil {
		return nil, err
	}
	digits := make([]uint64, k)
	if err := Unpack(rank, radixes, digits); err != nil {
		return nil, err
	}
	p := make([]int, k)
	if err := Decode(digits, n, p); err != nil {
		return nil, err
	}
	return p, nil
}

// NthPermutation returns the k symbols of alphabet with the given
// lexicographic rank, decoding through a working pool from which each chosen
// symbol is removed. O(k^2) from the removals.
func NthPermutation[T any](alphabet []T, rank uint64, k int) ([]T, error) {
	if err := perrors.ValidateNK(len(alphabet), k, false); err != nil {
		return nil, err
	}
	radixes := make([]uint64, k)
	if _, err := radixesChecked(radixes, len(alphabet), rank); err != nil {
		return nil, err
	}
	digits := make([]uint64, k)
	if err := Unpack(rank, radixes, digits); err != nil {
		return nil, err
	}

	pool := slices.Clone(alphabet)
	out := make([]T, k)
	for i, d := range digits {
		out[i] = pool[d]
		pool = slices.Delete(pool, int(d), int(d)+1)
	}
	return out, nil
}

func radixesChecked(buf []uint64, n int, rank uint64) (uint64, error) {
	count, err := Radixes(buf, n)
	if err != nil {
		return 0, err
	}
	if rank >= count {
		return 0, perrors.RangeViolation(rank, count)
	}
	return count, nil
}
