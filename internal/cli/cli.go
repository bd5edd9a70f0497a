package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/permrank/pkg/cache"
	"github.com/matzehuels/permrank/pkg/config"
	"github.com/matzehuels/permrank/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "permrank"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Config is replaced by the file named with --config before any command
	// runs.
	Config *config.Config

	configPath string
	verbose    bool
}

// New creates a new CLI instance with a default logger and configuration.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	ch, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	runner := pipeline.NewRunner(ch, cache.NewScopedKeyer(nil, c.Config.Cache.Scope), c.Logger)
	runner.TTL = c.Config.CacheTTL(0)
	return runner, nil
}

// newCache opens the backend selected by the configuration. A file cache
// that cannot locate its directory degrades to no caching.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	cfg := c.Config.Cache
	if noCache {
		return cache.NewNullCache(), nil
	}

	switch cfg.Backend {
	case config.BackendNone:
		return cache.NewNullCache(), nil
	case config.BackendRedis:
		c.Logger.Debug("using redis cache", "addr", cfg.RedisAddr, "db", cfg.RedisDB)
		return cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			Prefix:   cfg.RedisPrefix,
		})
	}

	dir, err := c.cacheDir()
	if err != nil {
		c.Logger.Warn("cache disabled", "err", err)
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the configured cache directory, falling back to the XDG
// default.
func (c *CLI) cacheDir() (string, error) {
	if c.Config.Cache.Dir != "" {
		return c.Config.Cache.Dir, nil
	}
	return cacheDir()
}

// cacheDir returns the cache directory using XDG standard (~/.cache/permrank/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Request Flags
// =============================================================================

// requestFlags are the flags every ranking command shares.
type requestFlags struct {
	scheme   string
	alphabet string
	k        int
	noCache  bool
	refresh  bool
	json     bool
}

func (f *requestFlags) bind(cmd *cobra.Command) {
	f.bindAlphabet(cmd)
	cmd.Flags().StringVarP(&f.scheme, "scheme", "s", "", "ranking scheme (see `permrank schemes`)")
	cmd.Flags().IntVarP(&f.k, "length", "k", 0, "permutation length, or maximum word length for bijective (default: alphabet size)")
	cmd.Flags().BoolVar(&f.json, "json", false, "print JSON")
}

func (f *requestFlags) bindAlphabet(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.alphabet, "alphabet", "a", "", `symbols, e.g. "abcd" or "red,green,blue"`)
}

func (f *requestFlags) bindCache(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "recompute and overwrite cached results")
}

// options merges flags over the configured defaults.
func (f *requestFlags) options(cfg *config.Config) pipeline.Options {
	opts := pipeline.Options{
		Scheme:   f.scheme,
		Alphabet: f.alphabet,
		K:        f.k,
		Refresh:  f.refresh,
	}
	d := cfg.Defaults
	if opts.Scheme == "" {
		opts.Scheme = d.Scheme
	}
	if opts.Alphabet == "" {
		opts.Alphabet = d.Alphabet
		if opts.K == 0 {
			opts.K = d.K
		}
	}
	return opts
}
