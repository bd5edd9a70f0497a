package pipeline

import (
	"context"
	"errors"
	"math/big"
	"slices"
	"testing"

	"github.com/matzehuels/permrank/pkg/cache"
	perrors "github.com/matzehuels/permrank/pkg/errors"
)

func TestValidateOrder(t *testing.T) {
	tests := []struct {
		order   string
		wantErr bool
	}{
		{"heap", false},
		{"lexicographic", false},
		{"rank", false},
		{"Heap", true}, // case-sensitive
		{"random", true},
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateOrder(tt.order)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateOrder(%q) error = %v, wantErr %v", tt.order, err, tt.wantErr)
		}
	}
}

func TestOptionsValidateDefaults(t *testing.T) {
	var opts Options
	if err := opts.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if opts.Alphabet != DefaultAlphabet {
		t.Errorf("Alphabet = %q, want %q", opts.Alphabet, DefaultAlphabet)
	}
	if opts.Scheme != "lexicographic" {
		t.Errorf("Scheme = %q, want lexicographic", opts.Scheme)
	}
	if opts.K != 3 {
		t.Errorf("K = %d, want 3", opts.K)
	}
	if opts.Order != OrderRank {
		t.Errorf("Order = %q, want %q", opts.Order, OrderRank)
	}
	if err := opts.Validate(); err != nil {
		t.Errorf("second Validate() error = %v", err)
	}
}

func TestOptionsValidateNormalizes(t *testing.T) {
	opts := Options{Scheme: "MyRvold", Alphabet: "x, y ,z"}
	if err := opts.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if opts.Scheme != "myrvold" {
		t.Errorf("Scheme = %q, want myrvold", opts.Scheme)
	}
	if opts.Alphabet != "xyz" {
		t.Errorf("Alphabet = %q, want xyz", opts.Alphabet)
	}
}

func TestOptionsValidateErrors(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code perrors.Code
	}{
		{"negative k", Options{K: -1}, perrors.ErrCodeInvalidInput},
		{"k exceeds alphabet", Options{Alphabet: "ab", K: 3}, perrors.ErrCodeInvalidInput},
		{"unknown scheme", Options{Scheme: "gray"}, perrors.ErrCodeInvalidScheme},
		{"duplicate symbol", Options{Alphabet: "aba"}, perrors.ErrCodeInvalidAlphabet},
		{"unknown order", Options{Order: "random"}, perrors.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			if !perrors.Is(err, tt.code) {
				t.Errorf("Validate() error = %v, want code %s", err, tt.code)
			}
		})
	}

	t.Run("repetition allows long words", func(t *testing.T) {
		opts := Options{Scheme: "repetition", Alphabet: "ab", K: 5}
		if err := opts.Validate(); err != nil {
			t.Errorf("Validate() error = %v", err)
		}
	})
}

func TestArtifactKeyOpts(t *testing.T) {
	heap := Options{Order: OrderHeap}
	rank := Options{Order: OrderRank, Scheme: "myrvold"}
	for _, o := range []*Options{&heap, &rank} {
		if err := o.Validate(); err != nil {
			t.Fatal(err)
		}
	}

	if got := heap.ArtifactKeyOpts(10).Order; got != "heap" {
		t.Errorf("heap order key = %q", got)
	}
	if got := rank.ArtifactKeyOpts(10).Order; got != "rank:myrvold:3" {
		t.Errorf("rank order key = %q", got)
	}
}

func TestRunnerRank(t *testing.T) {
	ctx := context.Background()
	r := NewRunner(nil, nil, nil)

	res, err := r.Rank(ctx, Options{Alphabet: "abc"}, "bca")
	if err != nil {
		t.Fatalf("Rank() error = %v", err)
	}
	if res.Rank.Int64() != 3 {
		t.Errorf("Rank = %v, want 3", res.Rank)
	}
	if res.Count.Int64() != 6 {
		t.Errorf("Count = %v, want 6", res.Count)
	}
	if !slices.Equal(res.Indices, []int{1, 2, 0}) {
		t.Errorf("Indices = %v", res.Indices)
	}

	_, err = r.Rank(ctx, Options{Alphabet: "abc"}, "ab")
	if !perrors.Is(err, perrors.ErrCodeLengthMismatch) {
		t.Errorf("short word error = %v, want LENGTH_MISMATCH", err)
	}

	_, err = r.Rank(ctx, Options{Alphabet: "abc"}, "abz")
	if !perrors.Is(err, perrors.ErrCodeInvalidInput) {
		t.Errorf("foreign symbol error = %v, want INVALID_INPUT", err)
	}

	_, err = r.Rank(ctx, Options{Alphabet: "abc"}, "aab")
	if !perrors.Is(err, perrors.ErrCodeInvalidInput) {
		t.Errorf("repeated symbol error = %v, want INVALID_INPUT", err)
	}
}

func TestRunnerRankBijective(t *testing.T) {
	ctx := context.Background()
	r := NewRunner(nil, nil, nil)
	opts := Options{Scheme: "bijective", Alphabet: "ab", K: 3}

	tests := []struct {
		word string
		want int64
	}{
		{"a", 1},
		{"b", 2},
		{"aa", 3},
		{"bb", 6},
		{"aaa", 7},
		{"bbb", 14},
	}
	for _, tt := range tests {
		res, err := r.Rank(ctx, opts, tt.word)
		if err != nil {
			t.Fatalf("Rank(%q) error = %v", tt.word, err)
		}
		if res.Rank.Int64() != tt.want {
			t.Errorf("Rank(%q) = %v, want %d", tt.word, res.Rank, tt.want)
		}
	}

	if _, err := r.Rank(ctx, opts, "abab"); !perrors.Is(err, perrors.ErrCodeLengthMismatch) {
		t.Errorf("long word error = %v, want LENGTH_MISMATCH", err)
	}
}

func TestRunnerUnrank(t *testing.T) {
	ctx := context.Background()
	r := NewRunner(nil, nil, nil)

	res, err := r.Unrank(ctx, Options{Alphabet: "abc"}, big.NewInt(4))
	if err != nil {
		t.Fatalf("Unrank() error = %v", err)
	}
	if res.Word != "cab" {
		t.Errorf("Word = %q, want cab", res.Word)
	}

	_, err = r.Unrank(ctx, Options{Alphabet: "abc"}, big.NewInt(6))
	if !perrors.Is(err, perrors.ErrCodeRangeViolation) {
		t.Errorf("out of range error = %v, want RANGE_VIOLATION", err)
	}

	_, err = r.Unrank(ctx, Options{Alphabet: "abc"}, nil)
	if !perrors.Is(err, perrors.ErrCodeInvalidInput) {
		t.Errorf("nil rank error = %v, want INVALID_INPUT", err)
	}

	res, err = r.Unrank(ctx, Options{Alphabet: "red,green,blue", K: 2}, big.NewInt(5))
	if err != nil {
		t.Fatalf("Unrank() error = %v", err)
	}
	if res.Word != "blue,green" {
		t.Errorf("Word = %q, want blue,green", res.Word)
	}
}

func TestRunnerCache(t *testing.T) {
	ctx := context.Background()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(fc, nil, nil)
	defer r.Close()

	first, err := r.Rank(ctx, Options{Alphabet: "abcd"}, "dcba")
	if err != nil {
		t.Fatal(err)
	}
	if first.Cached {
		t.Error("first call should not be cached")
	}

	second, err := r.Rank(ctx, Options{Alphabet: "abcd"}, "dcba")
	if err != nil {
		t.Fatal(err)
	}
	if !second.Cached {
		t.Error("second call should be cached")
	}
	if second.Rank.Cmp(first.Rank) != 0 {
		t.Errorf("cached rank = %v, want %v", second.Rank, first.Rank)
	}

	refreshed, err := r.Rank(ctx, Options{Alphabet: "abcd", Refresh: true}, "dcba")
	if err != nil {
		t.Fatal(err)
	}
	if refreshed.Cached {
		t.Error("refresh should bypass the cache")
	}

	u1, err := r.Unrank(ctx, Options{Alphabet: "abcd"}, big.NewInt(23))
	if err != nil {
		t.Fatal(err)
	}
	u2, err := r.Unrank(ctx, Options{Alphabet: "abcd"}, big.NewInt(23))
	if err != nil {
		t.Fatal(err)
	}
	if !u2.Cached || u2.Word != u1.Word || u1.Word != "dcba" {
		t.Errorf("unrank cache: first %q, second %q cached=%v", u1.Word, u2.Word, u2.Cached)
	}
}

func TestRunnerCount(t *testing.T) {
	ctx := context.Background()
	r := NewRunner(nil, nil, nil)

	tests := []struct {
		opts      Options
		wantFirst int64
		wantCount string
	}{
		{Options{Alphabet: "abcde", K: 2}, 0, "20"},
		{Options{Scheme: "repetition", Alphabet: "ab", K: 3}, 0, "8"},
		{Options{Scheme: "bijective", Alphabet: "ab", K: 3}, 1, "14"},
		{Options{Alphabet: "abcdefghijklmnopqrstuvwxyz"}, 0, "403291461126605635584000000"},
	}
	for _, tt := range tests {
		res, err := r.Count(ctx, tt.opts)
		if err != nil {
			t.Fatalf("Count(%+v) error = %v", tt.opts, err)
		}
		if res.First.Int64() != tt.wantFirst {
			t.Errorf("First = %v, want %d", res.First, tt.wantFirst)
		}
		if res.Count.String() != tt.wantCount {
			t.Errorf("Count = %v, want %s", res.Count, tt.wantCount)
		}
	}

	_, err := r.Count(ctx, Options{Scheme: "lehmer", Alphabet: "abcdefghijklmnopqrstuvwxyz"})
	if !perrors.Is(err, perrors.ErrCodeOverflow) {
		t.Errorf("lehmer 26! error = %v, want OVERFLOW", err)
	}
}

func TestRunnerInterval(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	got, err := r.Interval(context.Background(), Options{Scheme: "bijective", Alphabet: "ab", K: 3})
	if err != nil {
		t.Fatal(err)
	}
	want := []LengthInterval{
		{Length: 1, Min: 1, Max: 2},
		{Length: 2, Min: 3, Max: 6},
		{Length: 3, Min: 7, Max: 14},
	}
	if !slices.Equal(got, want) {
		t.Errorf("Interval() = %v, want %v", got, want)
	}
}

func TestRunnerNext(t *testing.T) {
	ctx := context.Background()
	r := NewRunner(nil, nil, nil)
	opts := Options{Alphabet: "abc"}

	tests := []struct {
		word    string
		reverse bool
		want    string
		wantOK  bool
	}{
		{"bca", false, "cab", true},
		{"cba", false, "cba", false},
		{"bca", true, "bac", true},
		{"abc", true, "abc", false},
	}
	for _, tt := range tests {
		got, ok, err := r.Next(ctx, opts, tt.word, tt.reverse)
		if err != nil {
			t.Fatalf("Next(%q) error = %v", tt.word, err)
		}
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("Next(%q, reverse=%v) = %q, %v; want %q, %v", tt.word, tt.reverse, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestRunnerEnumerate(t *testing.T) {
	ctx := context.Background()
	r := NewRunner(nil, nil, nil)

	tests := []struct {
		name string
		opts Options
		want []string
	}{
		{"heap", Options{Order: OrderHeap}, []string{"abc", "bac", "cab", "acb", "bca", "cba"}},
		{"lexicographic", Options{Order: OrderLexicographic}, []string{"abc", "acb", "bac", "bca", "cab", "cba"}},
		{"rank lexicographic", Options{}, []string{"abc", "acb", "bac", "bca", "cab", "cba"}},
		{"rank myrvold", Options{Scheme: "myrvold"}, []string{"abc", "acb", "cba", "bac", "cab", "bca"}},
		{"rank bijective", Options{Scheme: "bijective", Alphabet: "ab", K: 2}, []string{"a", "b", "aa", "ab", "ba", "bb"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := r.Enumerate(ctx, tt.opts, 0)
			if err != nil {
				t.Fatalf("Enumerate() error = %v", err)
			}
			if !slices.Equal(res.Words, tt.want) {
				t.Errorf("Words = %v, want %v", res.Words, tt.want)
			}
			if res.Truncated {
				t.Error("Truncated = true, want false")
			}
			if res.Total.Int64() != int64(len(tt.want)) {
				t.Errorf("Total = %v, want %d", res.Total, len(tt.want))
			}
		})
	}
}

func TestRunnerEnumerateLimits(t *testing.T) {
	ctx := context.Background()
	r := NewRunner(nil, nil, nil)

	res, err := r.Enumerate(ctx, Options{Alphabet: "abcd", Order: OrderHeap}, 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Words) != 5 || !res.Truncated {
		t.Errorf("got %d words truncated=%v, want 5 truncated", len(res.Words), res.Truncated)
	}
	if res.Total.Int64() != 24 {
		t.Errorf("Total = %v, want 24", res.Total)
	}

	_, err = r.Enumerate(ctx, Options{}, MaxEnumerateLimit+1)
	if !perrors.Is(err, perrors.ErrCodeInvalidInput) {
		t.Errorf("over limit error = %v, want INVALID_INPUT", err)
	}

	_, err = r.Enumerate(ctx, Options{Alphabet: "abc", K: 2, Order: OrderHeap}, 0)
	if !perrors.Is(err, perrors.ErrCodeInvalidInput) {
		t.Errorf("partial heap error = %v, want INVALID_INPUT", err)
	}

	_, err = r.Enumerate(ctx, Options{Scheme: "myrvold", Alphabet: "abc", K: 2}, 0)
	if err == nil {
		t.Error("myrvold with k < n should fail")
	}
}

func TestRunnerEnumerateCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := NewRunner(nil, nil, nil)
	_, err := r.Enumerate(ctx, Options{Alphabet: "abcdef", Order: OrderLexicographic}, 0)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Enumerate() error = %v, want context.Canceled", err)
	}
}

func TestRunnerEnumerateProgress(t *testing.T) {
	var reports []int
	opts := Options{
		Alphabet: "abcdefg",
		Order:    OrderLexicographic,
		Progress: func(produced int) { reports = append(reports, produced) },
	}

	r := NewRunner(nil, nil, nil)
	res, err := r.Enumerate(context.Background(), opts, 600)
	if err != nil {
		t.Fatalf("Enumerate() error = %v", err)
	}
	if len(res.Words) != 600 {
		t.Fatalf("len(Words) = %d, want 600", len(res.Words))
	}
	want := []int{256, 512, 600}
	if !slices.Equal(reports, want) {
		t.Errorf("progress reports = %v, want %v", reports, want)
	}
}

func TestClampLimit(t *testing.T) {
	if got, _ := clampLimit(0, 10, 100); got != 10 {
		t.Errorf("clampLimit(0) = %d, want default", got)
	}
	if got, _ := clampLimit(-3, 10, 100); got != 10 {
		t.Errorf("clampLimit(-3) = %d, want default", got)
	}
	if got, _ := clampLimit(100, 10, 100); got != 100 {
		t.Errorf("clampLimit(100) = %d, want 100", got)
	}
	if _, err := clampLimit(101, 10, 100); err == nil {
		t.Error("clampLimit(101) should fail")
	}
}
