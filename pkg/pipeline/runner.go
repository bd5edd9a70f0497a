package pipeline

import (
	"context"
	"encoding/json"
	"math/big"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/permrank/pkg/cache"
	perrors "github.com/matzehuels/permrank/pkg/errors"
	"github.com/matzehuels/permrank/pkg/observability"
	"github.com/matzehuels/permrank/pkg/perm"
	"github.com/matzehuels/permrank/pkg/perm/bijective"
	"github.com/matzehuels/permrank/pkg/scheme"
)

// Runner executes requests with caching, logging and hooks.
//
// The Runner is stateless apart from its cache and logger, so one Runner can
// serve concurrent requests.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL overrides the per-kind cache lifetimes when positive.
	TTL time.Duration
}

// NewRunner creates a runner. A nil cache disables caching, a nil keyer uses
// the DefaultKeyer and a nil logger uses log.Default().
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// RankResult is the outcome of Rank and Unrank.
type RankResult struct {
	Scheme   string   `json:"scheme"`
	Alphabet string   `json:"alphabet"`
	K        int      `json:"k"`
	Word     string   `json:"word"`
	Indices  []int    `json:"indices"`
	Rank     *big.Int `json:"rank"`
	Count    *big.Int `json:"count"`
	Cached   bool     `json:"cached"`
}

// CountResult is the outcome of Count.
type CountResult struct {
	Scheme   string   `json:"scheme"`
	Alphabet string   `json:"alphabet"`
	K        int      `json:"k"`
	First    *big.Int `json:"first"`
	Count    *big.Int `json:"count"`
}

// Rank returns the rank of word under the request's scheme.
func (r *Runner) Rank(ctx context.Context, opts Options, word string) (res *RankResult, err error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	done := r.observe(ctx, "rank", &opts)
	defer func() { done(err) }()

	s, alphabet := opts.SchemeImpl(), opts.Symbols()
	idx, err := alphabet.Indices(word)
	if err != nil {
		return nil, err
	}
	if err := checkLength(s, len(idx), opts.K); err != nil {
		return nil, err
	}
	count, err := s.Count(alphabet.Size(), opts.K)
	if err != nil {
		return nil, err
	}

	res = &RankResult{
		Scheme:   opts.Scheme,
		Alphabet: opts.Alphabet,
		K:        opts.K,
		Word:     alphabet.Format(idx),
		Indices:  idx,
		Count:    count,
	}

	key := r.Keyer.ResultKey("rank", opts.ResultKeyOpts(res.Word))
	if data, hit := r.cacheGet(ctx, "result", key, opts.Refresh); hit {
		if rank, ok := new(big.Int).SetString(string(data), 10); ok {
			res.Rank, res.Cached = rank, true
			return res, nil
		}
	}

	rank, err := s.Rank(idx, alphabet.Size())
	if err != nil {
		return nil, err
	}
	res.Rank = rank
	r.cacheSet(ctx, "result", key, []byte(rank.String()), cache.TTLResult)
	return res, nil
}

// Unrank returns the permutation with the given rank.
func (r *Runner) Unrank(ctx context.Context, opts Options, rank *big.Int) (res *RankResult, err error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if rank == nil {
		return nil, perrors.New(perrors.ErrCodeInvalidInput, "rank is required")
	}
	done := r.observe(ctx, "unrank", &opts)
	defer func() { done(err) }()

	s, alphabet := opts.SchemeImpl(), opts.Symbols()
	count, err := s.Count(alphabet.Size(), opts.K)
	if err != nil {
		return nil, err
	}
	res = &RankResult{
		Scheme:   opts.Scheme,
		Alphabet: opts.Alphabet,
		K:        opts.K,
		Rank:     new(big.Int).Set(rank),
		Count:    count,
	}

	key := r.Keyer.ResultKey("unrank", opts.ResultKeyOpts(rank.String()))
	if data, hit := r.cacheGet(ctx, "result", key, opts.Refresh); hit {
		var idx []int
		if json.Unmarshal(data, &idx) == nil && perrors.ValidatePermutation(idx, alphabet.Size(), true) == nil {
			res.Indices, res.Word, res.Cached = idx, alphabet.Format(idx), true
			return res, nil
		}
	}

	idx, err := s.Unrank(rank, alphabet.Size(), opts.K)
	if err != nil {
		return nil, err
	}
	res.Indices = idx
	res.Word = alphabet.Format(idx)
	if data, err := json.Marshal(idx); err == nil {
		r.cacheSet(ctx, "result", key, data, cache.TTLResult)
	}
	return res, nil
}

// Count returns the number of ranks for the request and the first rank.
func (r *Runner) Count(ctx context.Context, opts Options) (res *CountResult, err error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	done := r.observe(ctx, "count", &opts)
	defer func() { done(err) }()

	s := opts.SchemeImpl()
	count, err := s.Count(opts.Symbols().Size(), opts.K)
	if err != nil {
		return nil, err
	}
	return &CountResult{
		Scheme:   opts.Scheme,
		Alphabet: opts.Alphabet,
		K:        opts.K,
		First:    s.First(),
		Count:    count,
	}, nil
}

// LengthInterval is the closed bijective rank interval of words of one
// length.
type LengthInterval struct {
	Length int    `json:"length"`
	Min    uint64 `json:"min"`
	Max    uint64 `json:"max"`
}

// Interval returns the bijective rank interval of each word length 1..K.
func (r *Runner) Interval(ctx context.Context, opts Options) (out []LengthInterval, err error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	done := r.observe(ctx, "interval", &opts)
	defer func() { done(err) }()

	n := opts.Symbols().Size()
	for k := 1; k <= opts.K; k++ {
		lo, hi, err := bijective.Interval(n, k)
		if err != nil {
			return nil, err
		}
		out = append(out, LengthInterval{Length: k, Min: lo, Max: hi})
	}
	return out, nil
}

// Next returns the lexicographic successor of word among the arrangements of
// its own symbols, or the predecessor when reverse is set. ok is false when
// word is already the last (first) arrangement; word is then returned as is.
func (r *Runner) Next(ctx context.Context, opts Options, word string, reverse bool) (next string, ok bool, err error) {
	if err := opts.Validate(); err != nil {
		return "", false, err
	}
	done := r.observe(ctx, "next", &opts)
	defer func() { done(err) }()

	alphabet := opts.Symbols()
	idx, err := alphabet.Indices(word)
	if err != nil {
		return "", false, err
	}
	if reverse {
		ok = perm.PrevPermutation(idx)
	} else {
		ok = perm.NextPermutation(idx)
	}
	return alphabet.Format(idx), ok, nil
}

// Close releases the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// checkLength enforces the word length a scheme accepts for k.
func checkLength(s scheme.Scheme, got, k int) error {
	if s.Name() == scheme.Bijective {
		if got < 1 || got > k {
			return perrors.New(perrors.ErrCodeLengthMismatch, "word has length %d, want 1..%d", got, k)
		}
		return nil
	}
	if got != k {
		return perrors.LengthMismatch("word", got, k)
	}
	return nil
}

// observe fires the start hook and returns a func that fires the completion
// hook and logs the outcome.
func (r *Runner) observe(ctx context.Context, op string, opts *Options) func(error) {
	r.applyLogger(opts)
	start := time.Now()
	hooks := observability.Scheme()
	hooks.OnOperationStart(ctx, op, opts.Scheme)
	return func(err error) {
		d := time.Since(start)
		hooks.OnOperationComplete(ctx, op, opts.Scheme, d, err)
		if err != nil {
			opts.Logger.Debug(op+" failed", "scheme", opts.Scheme, "k", opts.K, "code", perrors.GetCode(err), "duration", d)
			return
		}
		opts.Logger.Debug(op, "scheme", opts.Scheme, "alphabet", opts.Alphabet, "k", opts.K, "duration", d)
	}
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

func (r *Runner) cacheGet(ctx context.Context, keyType, key string, refresh bool) ([]byte, bool) {
	if refresh {
		return nil, false
	}
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "type", keyType, "err", err)
		hit = false
	}
	if hit {
		observability.Cache().OnCacheHit(ctx, keyType)
		return data, true
	}
	observability.Cache().OnCacheMiss(ctx, keyType)
	return nil, false
}

func (r *Runner) cacheSet(ctx context.Context, keyType, key string, data []byte, ttl time.Duration) {
	if r.TTL > 0 {
		ttl = r.TTL
	}
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Warn("cache write failed", "type", keyType, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}
