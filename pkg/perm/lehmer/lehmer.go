// Package lehmer converts between permutations and mixed-radix integers via
// Lehmer codes.
//
// A k-permutation of n symbols has the radix vector [n, n-1, ..., n-k+1]; its
// Lehmer digit at position i counts the unused symbols smaller than the one
// chosen there. Packing those digits with the radix vector yields the
// lexicographic rank.
package lehmer

import (
	"math/bits"

	perrors "github.com/matzehuels/permrank/pkg/errors"
)

// Radixes fills buf with the descending radix vector [n, n-1, ..., n-k+1],
// where k = len(buf), and returns the permutation count n!/(n-k)!.
func Radixes(buf []uint64, n int) (uint64, error) {
	if err := perrors.ValidateNK(n, len(buf), false); err != nil {
		return 0, err
	}
	for i := range buf {
		buf[i] = uint64(n - i)
	}
	count, ok := product(buf)
	if !ok {
		return 0, perrors.Overflow("%d!/%d!", n, n-len(buf))
	}
	return count, nil
}

// Pack encodes per-position digits as a single mixed-radix integer:
// result = result*radixes[i] + digits[i] over all positions.
func Pack(digits, radixes []uint64) (uint64, error) {
	if len(digits) != len(radixes) {
		return 0, perrors.LengthMismatch("digits", len(digits), len(radixes))
	}
	var result uint64
	for i, d := range digits {
		if d >= radixes[i] {
			return 0, perrors.New(perrors.ErrCodeInvalidInput, "digit %d at position %d not below radix %d", d, i, radixes[i])
		}
		hi, lo := bits.Mul64(result, radixes[i])
		if hi != 0 {
			return 0, perrors.Overflow("packed value")
		}
		sum, carry := bits.Add64(lo, d, 0)
		if carry != 0 {
			return 0, perrors.Overflow("packed value")
		}
		result = sum
	}
	return result, nil
}

// Unpack is the inverse of Pack. Digits are extracted from the last position
// backward with index % radix, index /= radix. index must be below the product
// of radixes.
func Unpack(index uint64, radixes, digits []uint64) error {
	if len(digits) != len(radixes) {
		return perrors.LengthMismatch("digits", len(digits), len(radixes))
	}
	for i, r := range radixes {
		if r == 0 {
			return perrors.New(perrors.ErrCodeInvalidInput, "radix at position %d is zero", i)
		}
	}
	if total, ok := product(radixes); ok && index >= total {
		return perrors.RangeViolation(index, total)
	}
	for i := len(radixes) - 1; i >= 0; i-- {
		digits[i] = index % radixes[i]
		index /= radixes[i]
	}
	return nil
}

// product multiplies xs, reporting false on uint64 overflow.
func product(xs []uint64) (uint64, bool) {
	p := uint64(1)
	for _, x := range xs {
		hi, lo := bits.Mul64(p, x)
		if hi != 0 {
			return 0, false
		}
		p = lo
	}
	return p, true
}
