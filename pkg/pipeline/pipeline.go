// Package pipeline runs ranking requests for the CLI and the HTTP API.
//
// Both front ends describe a request with Options (scheme, alphabet, length)
// and hand it to a Runner, which validates it, calls the scheme, logs,
// fires observability hooks and caches what is worth caching. Keeping that
// here means `permrank rank` and `POST /v1/rank` cannot drift apart.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	res, err := runner.Rank(ctx, pipeline.Options{
//	    Scheme:   "lexicographic",
//	    Alphabet: "abc",
//	}, "bca")
//	// res.Rank == 3
//
//	svg, err := runner.Render(ctx, pipeline.Options{Alphabet: "abcd", Order: "heap"}, 0)
package pipeline

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/permrank/pkg/cache"
	perrors "github.com/matzehuels/permrank/pkg/errors"
	"github.com/matzehuels/permrank/pkg/scheme"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultAlphabet is used when a request names no alphabet.
	DefaultAlphabet = "abc"

	// DefaultEnumerateLimit caps enumerations that do not set a limit.
	DefaultEnumerateLimit = 1000

	// MaxEnumerateLimit is the largest enumeration a single request may ask
	// for.
	MaxEnumerateLimit = 1_000_000

	// DefaultRenderLimit caps rendered enumerations that do not set a limit.
	DefaultRenderLimit = 120

	// MaxRenderLimit bounds the node count of a rendered graph; Graphviz
	// layout time grows quickly past a few thousand nodes.
	MaxRenderLimit = 5040
)

// Enumeration orders.
const (
	// OrderHeap is Heap's algorithm: one swap between consecutive
	// permutations. Full permutations only.
	OrderHeap = "heap"

	// OrderLexicographic is Knuth's Algorithm L. Full permutations only.
	OrderLexicographic = "lexicographic"

	// OrderRank unranks 0, 1, 2, ... with the request's scheme.
	OrderRank = "rank"
)

// ValidOrders is the set of supported enumeration orders.
var ValidOrders = map[string]bool{
	OrderHeap:          true,
	OrderLexicographic: true,
	OrderRank:          true,
}

// FormatSVG is the only artifact format.
const FormatSVG = "svg"

// =============================================================================
// Options
// =============================================================================

// Options describes one request. The zero value asks for the default scheme
// over DefaultAlphabet with k equal to the alphabet size.
type Options struct {
	Scheme   string `json:"scheme,omitempty"`
	Alphabet string `json:"alphabet,omitempty"`

	// K is the permutation length; for the bijective scheme it is the
	// maximum word length. 0 means the alphabet size.
	K int `json:"k,omitempty"`

	// Order selects the enumeration order for Enumerate and Render.
	Order string `json:"order,omitempty"`

	// Refresh bypasses cache reads; results are still written.
	Refresh bool `json:"refresh,omitempty"`

	// Logger overrides the runner's logger for this request.
	Logger *log.Logger `json:"-"`

	// Progress, when set, receives the number of permutations produced so
	// far while Enumerate or Render runs. It is called from the calling
	// goroutine.
	Progress func(produced int) `json:"-"`

	scheme    scheme.Scheme
	alphabet  scheme.Alphabet
	validated bool
}

// ValidateOrder checks that an enumeration order is valid.
func ValidateOrder(order string) error {
	if !ValidOrders[order] {
		return perrors.New(perrors.ErrCodeInvalidInput, "invalid order: %q (must be one of: heap, lexicographic, rank)", order)
	}
	return nil
}

// Validate applies defaults and checks the options. It is idempotent.
func (o *Options) Validate() error {
	if o.validated {
		return nil
	}
	if o.Alphabet == "" {
		o.Alphabet = DefaultAlphabet
	}
	alphabet, err := scheme.ParseAlphabet(o.Alphabet)
	if err != nil {
		return err
	}
	s, err := scheme.Get(o.Scheme)
	if err != nil {
		return err
	}

	if o.K < 0 {
		return perrors.New(perrors.ErrCodeInvalidInput, "k must be non-negative, got %d", o.K)
	}
	if o.K == 0 {
		o.K = alphabet.Size()
	}
	if !s.Repetition() && o.K > alphabet.Size() {
		return perrors.New(perrors.ErrCodeInvalidInput, "k=%d exceeds alphabet size %d for scheme %s", o.K, alphabet.Size(), s.Name())
	}

	if o.Order == "" {
		o.Order = OrderRank
	}
	if err := ValidateOrder(o.Order); err != nil {
		return err
	}

	o.Scheme = s.Name()
	o.Alphabet = alphabet.String()
	o.scheme = s
	o.alphabet = alphabet
	o.validated = true
	return nil
}

// SchemeImpl returns the resolved scheme. Validate must have succeeded.
func (o *Options) SchemeImpl() scheme.Scheme { return o.scheme }

// Symbols returns the parsed alphabet. Validate must have succeeded.
func (o *Options) Symbols() scheme.Alphabet { return o.alphabet }

// ResultKeyOpts returns cache key options for a result of this request.
func (o *Options) ResultKeyOpts(input string) cache.ResultKeyOpts {
	return cache.ResultKeyOpts{
		Scheme:   o.Scheme,
		Alphabet: o.Alphabet,
		K:        o.K,
		Input:    input,
	}
}

// ArtifactKeyOpts returns cache key options for a rendered enumeration.
func (o *Options) ArtifactKeyOpts(limit int) cache.ArtifactKeyOpts {
	order := o.Order
	if order == OrderRank {
		order = fmt.Sprintf("%s:%s:%d", order, o.Scheme, o.K)
	}
	return cache.ArtifactKeyOpts{
		Format:   FormatSVG,
		Alphabet: o.Alphabet,
		Order:    order,
		Limit:    limit,
	}
}
