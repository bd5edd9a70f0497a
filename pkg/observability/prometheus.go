package observability

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	perrors "github.com/matzehuels/permrank/pkg/errors"
)

const namespace = "permrank"

// PrometheusHooks records every hook event as a Prometheus metric. One value
// implements SchemeHooks, CacheHooks and HTTPHooks.
type PrometheusHooks struct {
	operations   *prometheus.CounterVec
	opDuration   *prometheus.HistogramVec
	inflight     *prometheus.GaugeVec
	enumerated   *prometheus.CounterVec
	cacheLookups *prometheus.CounterVec
	cacheBytes   *prometheus.CounterVec
	requests     *prometheus.CounterVec
	reqDuration  *prometheus.HistogramVec
}

// NewPrometheusHooks registers the permrank metrics with reg. Pass
// prometheus.DefaultRegisterer to expose them through promhttp.Handler.
func NewPrometheusHooks(reg prometheus.Registerer) *PrometheusHooks {
	f := promauto.With(reg)
	return &PrometheusHooks{
		operations: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "scheme",
			Name:      "operations_total",
			Help:      "Rank, unrank, count, enumerate and render operations by outcome",
		}, []string{"op", "scheme", "code"}),
		opDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "scheme",
			Name:      "operation_duration_seconds",
			Help:      "Operation latency in seconds",
			Buckets:   []float64{0.00001, 0.0001, 0.001, 0.01, 0.1, 0.5, 1, 5},
		}, []string{"op", "scheme"}),
		inflight: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "scheme",
			Name:      "operations_in_flight",
			Help:      "Operations currently running",
		}, []string{"op"}),
		enumerated: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "scheme",
			Name:      "enumerated_permutations_total",
			Help:      "Permutations produced by enumerations",
		}, []string{"order"}),
		cacheLookups: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "lookups_total",
			Help:      "Cache lookups by key type and result",
		}, []string{"key_type", "result"}),
		cacheBytes: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "written_bytes_total",
			Help:      "Bytes written to the cache",
		}, []string{"key_type"}),
		requests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by route and status",
		}, []string{"method", "route", "status"}),
		reqDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
}

func (h *PrometheusHooks) OnOperationStart(_ context.Context, op, _ string) {
	h.inflight.WithLabelValues(op).Inc()
}

func (h *PrometheusHooks) OnOperationComplete(_ context.Context, op, scheme string, d time.Duration, err error) {
	h.inflight.WithLabelValues(op).Dec()
	code := "OK"
	if err != nil {
		code = string(perrors.GetCode(err))
		if code == "" {
			code = string(perrors.ErrCodeInternal)
		}
	}
	h.operations.WithLabelValues(op, scheme, code).Inc()
	h.opDuration.WithLabelValues(op, scheme).Observe(d.Seconds())
}

func (h *PrometheusHooks) OnEnumerated(_ context.Context, order string, count int) {
	h.enumerated.WithLabelValues(order).Add(float64(count))
}

func (h *PrometheusHooks) OnCacheHit(_ context.Context, keyType string) {
	h.cacheLookups.WithLabelValues(keyType, "hit").Inc()
}

func (h *PrometheusHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.cacheLookups.WithLabelValues(keyType, "miss").Inc()
}

func (h *PrometheusHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.cacheBytes.WithLabelValues(keyType).Add(float64(size))
}

func (h *PrometheusHooks) OnRequest(context.Context, string, string) {}

func (h *PrometheusHooks) OnResponse(_ context.Context, method, route string, status int, d time.Duration) {
	h.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	h.reqDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

var (
	_ SchemeHooks = (*PrometheusHooks)(nil)
	_ CacheHooks  = (*PrometheusHooks)(nil)
	_ HTTPHooks   = (*PrometheusHooks)(nil)
)
