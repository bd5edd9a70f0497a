package pipeline

import (
	"context"
	"iter"
	"math/big"
	"slices"

	"github.com/matzehuels/permrank/pkg/cache"
	perrors "github.com/matzehuels/permrank/pkg/errors"
	"github.com/matzehuels/permrank/pkg/observability"
	"github.com/matzehuels/permrank/pkg/perm"
)

// Enumeration is the outcome of Enumerate.
type Enumeration struct {
	Order     string   `json:"order"`
	Scheme    string   `json:"scheme,omitempty"`
	Alphabet  string   `json:"alphabet"`
	K         int      `json:"k"`
	Total     *big.Int `json:"total"`
	Truncated bool     `json:"truncated"`
	Perms     [][]int  `json:"-"`
	Words     []string `json:"words"`
}

// ctxCheckInterval is how many permutations are produced between context
// checks.
const ctxCheckInterval = 256

// Enumerate lists up to limit permutations in the requested order. limit <= 0
// means DefaultEnumerateLimit. The heap and lexicographic orders cover the
// full permutations of the alphabet and require K to equal its size.
func (r *Runner) Enumerate(ctx context.Context, opts Options, limit int) (res *Enumeration, err error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	limit, err = clampLimit(limit, DefaultEnumerateLimit, MaxEnumerateLimit)
	if err != nil {
		return nil, err
	}
	done := r.observe(ctx, "enumerate", &opts)
	defer func() { done(err) }()

	alphabet := opts.Symbols()
	n := alphabet.Size()
	res = &Enumeration{
		Order:    opts.Order,
		Alphabet: opts.Alphabet,
		K:        opts.K,
	}

	var seq iter.Seq[[]int]
	switch opts.Order {
	case OrderHeap, OrderLexicographic:
		if opts.K != n {
			return nil, perrors.New(perrors.ErrCodeInvalidInput, "order %s enumerates full permutations: k=%d must equal alphabet size %d", opts.Order, opts.K, n)
		}
		res.Total = new(big.Int).MulRange(1, int64(n))
		if opts.Order == OrderHeap {
			seq = perm.Permutations(perm.Seq(n))
		} else {
			seq = perm.Lexicographic(perm.Seq(n))
		}
	case OrderRank:
		s := opts.SchemeImpl()
		res.Scheme = s.Name()
		res.Total, err = s.Count(n, opts.K)
		if err != nil {
			return nil, err
		}
		seq, err = r.rankOrder(opts, res.Total)
		if err != nil {
			return nil, err
		}
	}

	for p := range seq {
		if produced := len(res.Perms); produced%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			if produced > 0 {
				opts.report(produced)
			}
		}
		if len(res.Perms) == limit {
			break
		}
		res.Perms = append(res.Perms, slices.Clone(p))
	}
	opts.report(len(res.Perms))

	res.Words = make([]string, len(res.Perms))
	for i, p := range res.Perms {
		res.Words[i] = alphabet.Format(p)
	}
	res.Truncated = res.Total.Cmp(big.NewInt(int64(len(res.Perms)))) > 0
	observability.Scheme().OnEnumerated(ctx, opts.Order, len(res.Perms))
	return res, nil
}

func (o *Options) report(produced int) {
	if o.Progress != nil {
		o.Progress(produced)
	}
}

// rankOrder yields the scheme's permutations for consecutive ranks starting
// at its first rank.
func (r *Runner) rankOrder(opts Options, count *big.Int) (iter.Seq[[]int], error) {
	s := opts.SchemeImpl()
	n := opts.Symbols().Size()
	first := s.First()
	end := new(big.Int).Add(first, count)

	// Unrank the first rank eagerly so argument errors surface here rather
	// than as a silently empty sequence.
	if count.Sign() > 0 {
		if _, err := s.Unrank(first, n, opts.K); err != nil {
			return nil, err
		}
	}

	return func(yield func([]int) bool) {
		one := big.NewInt(1)
		for rank := new(big.Int).Set(first); rank.Cmp(end) < 0; rank.Add(rank, one) {
			p, err := s.Unrank(rank, n, opts.K)
			if err != nil {
				return
			}
			if !yield(p) {
				return
			}
		}
	}, nil
}

// Render draws an enumeration as SVG, caching the result by its artifact key.
// limit <= 0 means DefaultRenderLimit. hit reports a cache hit.
func (r *Runner) Render(ctx context.Context, opts Options, limit int) (svg []byte, hit bool, err error) {
	if err := opts.Validate(); err != nil {
		return nil, false, err
	}
	limit, err = clampLimit(limit, DefaultRenderLimit, MaxRenderLimit)
	if err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	key := r.Keyer.ArtifactKey(opts.ArtifactKeyOpts(limit))
	if data, ok := r.cacheGet(ctx, "artifact", key, opts.Refresh); ok {
		opts.Logger.Debug("render cache hit", "order", opts.Order, "limit", limit)
		return data, true, nil
	}

	enum, err := r.Enumerate(ctx, opts, limit)
	if err != nil {
		return nil, false, err
	}

	done := r.observe(ctx, "render", &opts)
	defer func() { done(err) }()

	svg, err = perm.RenderSVG(ctx, enum.Perms, opts.Symbols())
	if err != nil {
		return nil, false, perrors.Wrap(perrors.ErrCodeInternal, err, "render %s enumeration", opts.Order)
	}
	r.cacheSet(ctx, "artifact", key, svg, cache.TTLArtifact)
	return svg, false, nil
}

func clampLimit(limit, def, maxLimit int) (int, error) {
	if limit <= 0 {
		return def, nil
	}
	if limit > maxLimit {
		return 0, perrors.New(perrors.ErrCodeInvalidInput, "limit %d exceeds maximum %d", limit, maxLimit)
	}
	return limit, nil
}
