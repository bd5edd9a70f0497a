// Package factoradic ranks and unranks permutations through the factorial
// number system.
//
// In the factorial number system the digit at place p (counting from 1 at the
// right) has radix p, so an integer below len! has exactly one representation
// as len digits. Read left to right, those digits say "take the d-th smallest
// symbol still unused", which is why factoradic rank order is lexicographic
// order.
//
// Two families of functions are provided:
//
//   - without repetition: k-permutations of n distinct symbols, ranks in
//     [0, n!/(n-k)!)
//   - with repetition: words of length k over n symbols, ranks in [0, n^k),
//     a plain base-n positional encoding
//
// Each comes in a uint64 flavour and a *big.Int flavour (suffix Big) for
// alphabets past 20 symbols. All functions are strict: an out-of-range rank
// returns a RANGE_VIOLATION error, a count that does not fit uint64 returns
// OVERFLOW, and nothing is mutated when an error is returned.
package factoradic

import (
	"math/bits"

	perrors "github.com/matzehuels/permrank/pkg/errors"
)

// CountWithoutRepetition returns n!/(n-k)!, the number of k-permutations of n
// distinct symbols.
func CountWithoutRepetition(n, k int) (uint64, error) {
	if err := perrors.ValidateNK(n, k, false); err != nil {
		return 0, err
	}
	count := uint64(1)
	for i := n - k + 1; i <= n; i++ {
		hi, lo := bits.Mul64(count, uint64(i))
		if hi != 0 {
			return 0, perrors.Overflow("%d!/%d!", n, n-k)
		}
		count = lo
	}
	return count, nil
}

// CountWithRepetition returns n^k, the number of words of length k over n
// symbols.
func CountWithRepetition(n, k int) (uint64, error) {
	if err := perrors.ValidateNK(n, k, true); err != nil {
		return 0, err
	}
	count := uint64(1)
	for range k {
		hi, lo := bits.Mul64(count, uint64(n))
		if hi != 0 {
			return 0, perrors.Overflow("%d^%d", n, k)
		}
		count = lo
	}
	return count, nil
}

// Digits writes the factorial-base representation of rank into buf, most
// significant digit first. buf[len-p] is the digit at place p and lies in
// [0, p). Once the remaining quotient reaches zero the leading digits are left
// at zero.
//
// rank must be below len(buf)!.
func Digits(buf []int, rank uint64) error {
	if count, err := CountWithoutRepetition(len(buf), len(buf)); err == nil && rank >= count {
		return perrors.RangeViolation(rank, count)
	}

	clear(buf)
	divisor := uint64(1)
	for p := 1; p <= len(buf); p++ {
		q := rank / divisor
		if q == 0 {
			break
		}
		buf[len(buf)-p] = int(q % uint64(p))
		if hi, lo := bits.Mul64(divisor, uint64(p)); hi == 0 {
			divisor = lo
		} else {
			break
		}
	}
	return nil
}

// DigitsToIndices turns factorial digits, as produced by Digits, into the
// permutation of [0, len) they encode, in place and without an explicit pool
// of unused symbols.
//
// Working from the right, every later value greater than or equal to the
// current one is bumped by one. This accounts for the symbols already taken
// by earlier positions. O(len^2).
func DigitsToIndices(buf []int) error {
	n := len(buf)
	for i, d := range buf {
		if d < 0 || d >= n-i {
			return perrors.New(perrors.ErrCodeInvalidInput, "digit %d at position %d outside [0, %d)", d, i, n-i)
		}
	}
	for i := n - 2; i >= 0; i-- {
		for j := i + 1; j < n; j++ {
			if buf[j] >= buf[i] {
				buf[j]++
			}
		}
	}
	return nil
}
