// Package observability provides hooks for metrics and tracing.
//
// Libraries emit events through the registered hooks; main decides what
// receives them. The defaults are no-ops, so nothing is recorded unless a
// backend is installed at startup:
//
//	hooks := observability.NewPrometheusHooks(prometheus.DefaultRegisterer)
//	observability.SetSchemeHooks(hooks)
//	observability.SetCacheHooks(hooks)
//	observability.SetHTTPHooks(hooks)
//
// Emitting an event:
//
//	observability.Scheme().OnOperationStart(ctx, "rank", "lexicographic")
//	// ... rank ...
//	observability.Scheme().OnOperationComplete(ctx, "rank", "lexicographic", time.Since(start), err)
//
// The ranking algorithms themselves never call hooks; the pipeline and the
// HTTP server do.
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Scheme Hooks
// =============================================================================

// SchemeHooks receives events from rank, unrank, count, enumerate and render
// operations.
type SchemeHooks interface {
	OnOperationStart(ctx context.Context, op, scheme string)
	OnOperationComplete(ctx context.Context, op, scheme string, duration time.Duration, err error)

	// OnEnumerated records how many permutations an enumeration produced.
	OnEnumerated(ctx context.Context, order string, count int)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache lookups. keyType is "result" or
// "artifact".
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from the HTTP API. route is the chi route
// pattern, not the raw path.
type HTTPHooks interface {
	OnRequest(ctx context.Context, method, route string)
	OnResponse(ctx context.Context, method, route string, statusCode int, duration time.Duration)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopSchemeHooks is a no-op implementation of SchemeHooks.
type NoopSchemeHooks struct{}

func (NoopSchemeHooks) OnOperationStart(context.Context, string, string) {}
func (NoopSchemeHooks) OnOperationComplete(context.Context, string, string, time.Duration, error) {
}
func (NoopSchemeHooks) OnEnumerated(context.Context, string, int) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	schemeHooks SchemeHooks = NoopSchemeHooks{}
	cacheHooks  CacheHooks  = NoopCacheHooks{}
	httpHooks   HTTPHooks   = NoopHTTPHooks{}
	hooksMu     sync.RWMutex
)

// SetSchemeHooks registers scheme hooks. nil is ignored.
func SetSchemeHooks(h SchemeHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		schemeHooks = h
	}
}

// SetCacheHooks registers cache hooks. nil is ignored.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetHTTPHooks registers HTTP hooks. nil is ignored.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Scheme returns the registered scheme hooks.
func Scheme() SchemeHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return schemeHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores all hooks to their no-op defaults.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	schemeHooks = NoopSchemeHooks{}
	cacheHooks = NoopCacheHooks{}
	httpHooks = NoopHTTPHooks{}
}
