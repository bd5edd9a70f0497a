package bijective

import (
	"iter"

	perrors "github.com/matzehuels/permrank/pkg/errors"
)

// SearchSpace indexes every non-empty word of length at most maxLen over an
// alphabet. Index i is the word of bijective rank i+1, so indices run over
// [0, TotalSize()) in shortlex order.
type SearchSpace[T any] struct {
	alphabet []T
	base     uint64
	maxLen   int

	// prefix[l] is the number of words of length 1..l; prefix[0] = 0.
	prefix []uint64
}

// Range is a half-open interval [Start, End) of search space indices.
type Range struct {
	Start uint64 `json:"start"`
	End   uint64 `json:"end"`
}

// Len returns End - Start.
func (r Range) Len() uint64 { return r.End - r.Start }

// NewSearchSpace builds the index tables for words of length 1..maxLen. It
// fails when the alphabet is empty or the total size overflows uint64.
func NewSearchSpace[T any](alphabet []T, maxLen int) (*SearchSpace[T], error) {
	if len(alphabet) == 0 {
		return nil, perrors.New(perrors.ErrCodeInvalidAlphabet, "alphabet cannot be empty")
	}
	if maxLen < 0 {
		return nil, perrors.New(perrors.ErrCodeInvalidInput, "max length must be non-negative, got %d", maxLen)
	}

	base := uint64(len(alphabet))
	prefix := make([]uint64, maxLen+1)
	power := uint64(1)
	for l := 1; l <= maxLen; l++ {
		var ok bool
		if power, ok = mul(power, base); !ok {
			return nil, perrors.Overflow("%d^%d", base, l)
		}
		if prefix[l], ok = add(prefix[l-1], power); !ok {
			return nil, perrors.Overflow("search space of %d symbols up to length %d", base, maxLen)
		}
	}

	return &SearchSpace[T]{
		alphabet: alphabet,
		base:     base,
		maxLen:   maxLen,
		prefix:   prefix,
	}, nil
}

// TotalSize returns the number of words in the search space.
func (s *SearchSpace[T]) TotalSize() uint64 {
	return s.prefix[s.maxLen]
}

// MaxLen returns the longest word length in the search space.
func (s *SearchSpace[T]) MaxLen() int { return s.maxLen }

// FillWord writes the word at index into buf and returns its length, or 0 if
// index is out of range. buf must hold at least MaxLen symbols.
func (s *SearchSpace[T]) FillWord(index uint64, buf []T) int {
	length := 0
	for l := 1; l <= s.maxLen; l++ {
		if index < s.prefix[l] {
			length = l
			index -= s.prefix[l-1]
			break
		}
	}
	if length == 0 {
		return 0
	}

	for i := length - 1; i >= 0; i-- {
		buf[i] = s.alphabet[index%s.base]
		index /= s.base
	}
	return length
}

// Words yields every word in index order. See WordsRange.
func (s *SearchSpace[T]) Words() iter.Seq2[uint64, []T] {
	return s.WordsRange(Range{Start: 0, End: s.TotalSize()})
}

// WordsRange yields the index and word for each index in r, clamped to the
// search space. The yielded slice is reused between steps; copy it to keep
// it.
func (s *SearchSpace[T]) WordsRange(r Range) iter.Seq2[uint64, []T] {
	return func(yield func(uint64, []T) bool) {
		end := min(r.End, s.TotalSize())
		if r.Start >= end {
			return
		}

		buf := make([]T, s.maxLen)
		length := s.FillWord(r.Start, buf)

		// digits[i] is the alphabet position of buf[i]; advancing is an
		// odometer over digits that grows the word when every place wraps.
		digits := make([]uint64, s.maxLen)
		index := r.Start - s.prefix[length-1]
		for i := length - 1; i >= 0; i-- {
			digits[i] = index % s.base
			index /= s.base
		}

		for idx := r.Start; idx < end; idx++ {
			if !yield(idx, buf[:length]) {
				return
			}

			pos := length - 1
			for pos >= 0 {
				digits[pos]++
				if digits[pos] < s.base {
					buf[pos] = s.alphabet[digits[pos]]
					break
				}
				digits[pos] = 0
				buf[pos] = s.alphabet[0]
				pos--
			}
			if pos < 0 && length < s.maxLen {
				digits[length] = 0
				buf[length] = s.alphabet[0]
				length++
			}
		}
	}
}

// Split divides the search space into at most parts contiguous ranges whose
// sizes differ by at most one. Empty ranges are omitted.
func (s *SearchSpace[T]) Split(parts int) []Range {
	total := s.TotalSize()
	if parts <= 0 || total == 0 {
		return nil
	}
	p := uint64(parts)
	if p > total {
		p = total
	}

	size, extra := total/p, total%p
	ranges := make([]Range, 0, p)
	var start uint64
	for i := range p {
		n := size
		if i < extra {
			n++
		}
		ranges = append(ranges, Range{Start: start, End: start + n})
		start += n
	}
	return ranges
}
