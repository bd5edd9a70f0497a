package errors

import (
	"unicode"
)

// ValidateNK checks the size parameters shared by every scheme: an alphabet of
// n symbols and permutations of length k. Both must be non-negative and, when
// repetition is not allowed, k may not exceed n.
func ValidateNK(n, k int, repetition bool) error {
	if n < 0 {
		return New(ErrCodeInvalidInput, "alphabet size must be non-negative, got %d", n)
	}
	if k < 0 {
		return New(ErrCodeInvalidInput, "permutation length must be non-negative, got %d", k)
	}
	if !repetition && k > n {
		return New(ErrCodeInvalidInput, "permutation length %d exceeds alphabet size %d", k, n)
	}
	return nil
}

// ValidatePermutation checks that perm holds indices in [0, n) and, unless
// repetition is allowed, that no index occurs twice.
func ValidatePermutation(perm []int, n int, repetition bool) error {
	if err := ValidateNK(n, len(perm), repetition); err != nil {
		return err
	}
	var seen []bool
	if !repetition {
		seen = make([]bool, n)
	}
	for i, v := range perm {
		if v < 0 || v >= n {
			return New(ErrCodeInvalidInput, "index %d at position %d outside [0, %d)", v, i, n)
		}
		if seen != nil {
			if seen[v] {
				return New(ErrCodeInvalidInput, "index %d repeated at position %d", v, i)
			}
			seen[v] = true
		}
	}
	return nil
}

// ValidateAlphabet checks that an alphabet is non-empty and holds distinct
// symbols.
func ValidateAlphabet[T comparable](alphabet []T) error {
	if len(alphabet) == 0 {
		return New(ErrCodeInvalidAlphabet, "alphabet cannot be empty")
	}
	seen := make(map[T]int, len(alphabet))
	for i, s := range alphabet {
		if j, ok := seen[s]; ok {
			return New(ErrCodeInvalidAlphabet, "symbol %v repeated at positions %d and %d", s, j, i)
		}
		seen[s] = i
	}
	return nil
}

// ValidateSymbol rejects symbols that cannot be echoed safely back to a
// terminal or an HTTP client.
//
// Validation rules:
//   - Symbol cannot be empty
//   - Maximum length of 64 bytes
//   - No control characters or null bytes
func ValidateSymbol(s string) error {
	if s == "" {
		return New(ErrCodeInvalidAlphabet, "symbol cannot be empty")
	}

	const maxSymbolLength = 64
	if len(s) > maxSymbolLength {
		return New(ErrCodeInvalidAlphabet, "symbol too long (max %d characters)", maxSymbolLength)
	}

	for _, r := range s {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidAlphabet, "symbol contains invalid control characters")
		}
	}

	return nil
}
