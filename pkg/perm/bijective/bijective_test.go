package bijective

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	perrors "github.com/matzehuels/permrank/pkg/errors"
)

var ab = []string{"a", "b"}

func word(s string) []string {
	if s == "" {
		return []string{}
	}
	return strings.Split(s, "")
}

func TestCountWithRepetition(t *testing.T) {
	tests := []struct {
		n, k int
		want uint64
	}{
		{2, 3, 14},
		{2, 0, 0},
		{3, 2, 12},
		{36, 2, 36 + 36*36},
		{0, 5, 0},
		{1, 7, 7},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("n=%d,k=%d", tt.n, tt.k), func(t *testing.T) {
			got, err := CountWithRepetition(tt.n, tt.k)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("overflow", func(t *testing.T) {
		_, err := CountWithRepetition(2, 64)
		assert.True(t, perrors.Is(err, perrors.ErrCodeOverflow))
	})

	t.Run("negative", func(t *testing.T) {
		_, err := CountWithRepetition(2, -1)
		assert.True(t, perrors.Is(err, perrors.ErrCodeInvalidInput))
	})
}

func TestInterval(t *testing.T) {
	tests := []struct {
		k      int
		lo, hi uint64
	}{
		{0, 0, 0},
		{1, 1, 2},
		{2, 3, 6},
		{3, 7, 14},
	}

	for _, tt := range tests {
		lo, hi, err := Interval(2, tt.k)
		require.NoError(t, err)
		assert.Equal(t, tt.lo, lo, "k=%d", tt.k)
		assert.Equal(t, tt.hi, hi, "k=%d", tt.k)
	}

	t.Run("one length only", func(t *testing.T) {
		lo, hi, err := Interval(2, 3)
		require.NoError(t, err)
		total, err := CountWithRepetition(2, 3)
		require.NoError(t, err)
		assert.Equal(t, uint64(7), lo, "lengths below 3 are excluded")
		assert.Equal(t, total, hi)
	})

	t.Run("contiguous", func(t *testing.T) {
		var prevHi uint64
		for k := 1; k <= 6; k++ {
			lo, hi, err := Interval(3, k)
			require.NoError(t, err)
			assert.Equal(t, prevHi+1, lo)
			count, err := CountWithRepetition(3, k)
			require.NoError(t, err)
			assert.Equal(t, count, hi)
			prevHi = hi
		}
	})
}

func TestRank(t *testing.T) {
	tests := []struct {
		word string
		want uint64
	}{
		{"", 0},
		{"a", 1},
		{"b", 2},
		{"aa", 3},
		{"ab", 4},
		{"ba", 5},
		{"bb", 6},
		{"aaa", 7},
		{"bbb", 14},
	}

	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			got, err := Rank(word(tt.word), ab)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("unknown symbol", func(t *testing.T) {
		_, err := Rank(word("ac"), ab)
		assert.True(t, perrors.Is(err, perrors.ErrCodeInvalidInput))
	})

	t.Run("bad alphabet", func(t *testing.T) {
		_, err := Rank(word("a"), []string{"a", "a"})
		assert.True(t, perrors.Is(err, perrors.ErrCodeInvalidAlphabet))
	})

	t.Run("overflow", func(t *testing.T) {
		_, err := Rank(word(strings.Repeat("b", 64)), ab)
		assert.True(t, perrors.Is(err, perrors.ErrCodeOverflow))
	})
}

func TestUnrank(t *testing.T) {
	buf := make([]string, 3)

	got, err := Unrank(buf, 0, ab)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Equal(t, []string{"", "", ""}, buf, "rank 0 consumes no digits")

	got, err = Unrank(buf, 5, ab)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, got)
	assert.Equal(t, "b", buf[1], "word fills the tail of buf")

	got, err = Unrank(buf, 14, ab)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "b", "b"}, got)

	t.Run("buffer too short", func(t *testing.T) {
		short := []string{"x", "y"}
		_, err := Unrank(short, 7, ab)
		assert.True(t, perrors.Is(err, perrors.ErrCodeLengthMismatch))
		assert.Equal(t, []string{"x", "y"}, short)
	})

	t.Run("empty alphabet", func(t *testing.T) {
		_, err := Unrank(buf, 1, []string{})
		assert.True(t, perrors.Is(err, perrors.ErrCodeInvalidAlphabet))
	})
}

func TestBijection(t *testing.T) {
	alphabets := [][]string{word("a"), word("ab"), word("xyz"), word("0123456789")}
	for _, alphabet := range alphabets {
		count, err := CountWithRepetition(len(alphabet), 4)
		require.NoError(t, err)

		buf := make([]string, 4)
		seen := make(map[string]bool)
		prev := ""
		for r := uint64(0); r <= count; r++ {
			w, err := Unrank(buf, r, alphabet)
			require.NoError(t, err)
			assert.Equal(t, Length(r, len(alphabet)), len(w))

			key := strings.Join(w, "")
			assert.False(t, seen[key], "duplicate %q", key)
			seen[key] = true
			if r > 0 {
				less := len(prev) < len(key) || (len(prev) == len(key) && prev < key)
				assert.True(t, less, "%q should follow %q in shortlex order", key, prev)
			}
			prev = key

			back, err := Rank(w, alphabet)
			require.NoError(t, err)
			assert.Equal(t, r, back)
		}
		assert.Len(t, seen, int(count)+1)
	}
}
