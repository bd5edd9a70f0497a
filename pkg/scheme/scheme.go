// Package scheme puts the ranking algorithms behind one interface so callers
// can pick an ordering by name.
//
// Every scheme works on index permutations over [0, n) and exchanges ranks as
// *big.Int, whatever its native width. Schemes backed by uint64 algorithms
// report OVERFLOW when n and k are too large for them.
//
// # Schemes
//
//   - lexicographic: k-permutations without repetition, factoradic order
//   - repetition: words of length k, base-n order
//   - lehmer: k-permutations without repetition through Lehmer codes; same
//     order as lexicographic, limited to uint64
//   - bijective: words of length 1..k in shortlex order, ranks from 1
//   - myrvold: full permutations (k = n), linear time, not lexicographic
package scheme

import (
	"math/big"
	"slices"
	"strings"

	perrors "github.com/matzehuels/permrank/pkg/errors"
)

// Scheme is a bijection between permutations of [0, n) and integer ranks.
type Scheme interface {
	// Name is the registry key.
	Name() string

	// Description is a one-line summary for help output.
	Description() string

	// Ordered reports whether rank order is lexicographic order.
	Ordered() bool

	// Repetition reports whether a permutation may repeat an index.
	Repetition() bool

	// Count returns the number of valid ranks for (n, k).
	Count(n, k int) (*big.Int, error)

	// First returns the smallest valid rank.
	First() *big.Int

	// Rank returns the rank of p, a permutation of indices in [0, n).
	Rank(p []int, n int) (*big.Int, error)

	// Unrank returns the permutation with the given rank. rank is not
	// modified.
	Unrank(rank *big.Int, n, k int) ([]int, error)
}

// Scheme names.
const (
	Lexicographic = "lexicographic"
	Repetition    = "repetition"
	Lehmer        = "lehmer"
	Bijective     = "bijective"
	Myrvold       = "myrvold"
)

// Default is the scheme used when none is named.
const Default = Lexicographic

// definition implements Scheme with plain function fields.
type definition struct {
	name        string
	description string
	ordered     bool
	repetition  bool
	first       int64
	count       func(n, k int) (*big.Int, error)
	rank        func(p []int, n int) (*big.Int, error)
	unrank      func(rank *big.Int, n, k int) ([]int, error)
}

func (d *definition) Name() string        { return d.name }
func (d *definition) Description() string { return d.description }
func (d *definition) Ordered() bool       { return d.ordered }
func (d *definition) Repetition() bool    { return d.repetition }
func (d *definition) First() *big.Int     { return big.NewInt(d.first) }

func (d *definition) Count(n, k int) (*big.Int, error) {
	return d.count(n, k)
}

func (d *definition) Rank(p []int, n int) (*big.Int, error) {
	return d.rank(p, n)
}

// Unrank checks rank against [First, First+Count) before delegating.
func (d *definition) Unrank(rank *big.Int, n, k int) ([]int, error) {
	if rank == nil {
		return nil, perrors.New(perrors.ErrCodeInvalidInput, "rank is required")
	}
	count, err := d.count(n, k)
	if err != nil {
		return nil, err
	}
	first := d.First()
	last := new(big.Int).Add(first, count)
	if rank.Cmp(first) < 0 || rank.Cmp(last) >= 0 {
		if d.first == 0 {
			return nil, perrors.RangeViolation(rank, count)
		}
		return nil, perrors.New(perrors.ErrCodeRangeViolation, "rank %v out of range [%v, %v)", rank, first, last)
	}
	return d.unrank(rank, n, k)
}

var registry = map[string]Scheme{
	Lexicographic: lexicographic,
	Repetition:    repetition,
	Lehmer:        lehmerScheme,
	Bijective:     bijectiveScheme,
	Myrvold:       myrvoldScheme,
}

// Get returns the scheme registered under name. The empty name selects
// Default.
func Get(name string) (Scheme, error) {
	if name == "" {
		name = Default
	}
	s, ok := registry[strings.ToLower(name)]
	if !ok {
		return nil, perrors.New(perrors.ErrCodeInvalidScheme, "unknown scheme %q (available: %s)", name, strings.Join(Names(), ", "))
	}
	return s, nil
}

// Names returns the registered scheme names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// All returns every registered scheme, sorted by name.
func All() []Scheme {
	out := make([]Scheme, 0, len(registry))
	for _, name := range Names() {
		out = append(out, registry[name])
	}
	return out
}
