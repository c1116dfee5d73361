package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Chat metrics
	ChatRequestsTotal   *prometheus.CounterVec
	ChatDurationSeconds *prometheus.HistogramVec
	IntentTotal         *prometheus.CounterVec

	// Retrieval metrics
	RetrievalHitsTotal      *prometheus.CounterVec
	RetrievalDurationSecond *prometheus.HistogramVec

	// LLM metrics
	LLMRequestsTotal  *prometheus.CounterVec
	LLMDurationSecond *prometheus.HistogramVec
	LLMFallbacksTotal *prometheus.CounterVec

	// Web search metrics
	SearchRequestsTotal *prometheus.CounterVec
	SearchCacheTotal    *prometheus.CounterVec

	// HTTP metrics
	HTTPErrorsTotal *prometheus.CounterVec

	// Rate limiter metrics
	RateLimiterDropped *prometheus.CounterVec
}

// Package-level metric handles for call sites without access to the
// Metrics instance (provider fallback, search cache). Nil until
// InitGlobal runs; the Record helpers are nil-safe so tests that skip
// InitGlobal stay quiet.
var (
	llmTotal         *prometheus.CounterVec
	llmDuration      *prometheus.HistogramVec
	llmFallbackTotal *prometheus.CounterVec
	searchCacheTotal *prometheus.CounterVec
)

// New creates a new Metrics instance with all metrics registered
func New(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		// Chat metrics
		ChatRequestsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "counselor_chat_requests_total",
				Help: "Total number of chat requests by intent and status",
			},
			[]string{"intent", "status"}, // status: success, error, rate_limited
		),

		ChatDurationSeconds: promauto.With(registry).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "counselor_chat_duration_seconds",
				Help:    "Chat request duration in seconds by intent",
				Buckets: []float64{0.05, 0.1, 0.5, 1, 2, 5, 10, 30, 45}, // Matches 45s request timeout
			},
			[]string{"intent"},
		),

		IntentTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "counselor_intent_total",
				Help: "Total number of detected intents",
			},
			[]string{"intent"},
		),

		// Retrieval metrics
		RetrievalHitsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "counselor_retrieval_hits_total",
				Help: "Total number of retrieval hits by source stage",
			},
			[]string{"stage"}, // stage: deadline, professor, ranking, semantic, keyword, major, web
		),

		RetrievalDurationSecond: promauto.With(registry).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "counselor_retrieval_duration_seconds",
				Help:    "Retrieval pipeline duration in seconds by stage",
				Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 15}, // Embedding adds network time
			},
			[]string{"stage"},
		),

		// LLM metrics
		LLMRequestsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "counselor_llm_requests_total",
				Help: "Total number of LLM requests by provider, operation, and status",
			},
			[]string{"provider", "operation", "status"}, // operation: embedding, completion
		),

		LLMDurationSecond: promauto.With(registry).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "counselor_llm_duration_seconds",
				Help:    "LLM request duration in seconds by provider and operation",
				Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 15, 30}, // Matches completion timeout
			},
			[]string{"provider", "operation"},
		),

		LLMFallbacksTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "counselor_llm_fallbacks_total",
				Help: "Total number of provider fallbacks by from/to provider and operation",
			},
			[]string{"from", "to", "operation"},
		),

		// Web search metrics
		SearchRequestsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "counselor_search_requests_total",
				Help: "Total number of web search requests by status",
			},
			[]string{"status"}, // status: success, error, timeout
		),

		SearchCacheTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "counselor_search_cache_total",
				Help: "Total number of search cache lookups by result",
			},
			[]string{"result"}, // result: hit, miss, expired
		),

		// HTTP metrics
		HTTPErrorsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "counselor_http_errors_total",
				Help: "Total HTTP errors by type",
			},
			[]string{"error_type"}, // error_type: timeout, rate_limit, bad_request, internal
		),

		// Rate limiter metrics
		RateLimiterDropped: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "counselor_rate_limiter_dropped_total",
				Help: "Total number of requests dropped by rate limiter",
			},
			[]string{"limiter_type"}, // limiter_type: conversation, llm_daily
		),
	}

	return m
}

// InitGlobal publishes the instance metrics through the package-level
// handles. Call once at startup, after New.
func InitGlobal(m *Metrics) {
	llmTotal = m.LLMRequestsTotal
	llmDuration = m.LLMDurationSecond
	llmFallbackTotal = m.LLMFallbacksTotal
	searchCacheTotal = m.SearchCacheTotal
}

// RecordLLMCall records an LLM request outcome. No-op before InitGlobal.
func RecordLLMCall(provider, operation, status string, duration time.Duration) {
	if llmTotal == nil || llmDuration == nil {
		return
	}
	llmTotal.WithLabelValues(provider, operation, status).Inc()
	llmDuration.WithLabelValues(provider, operation).Observe(duration.Seconds())
}

// RecordLLMFallback records a provider fallback. No-op before InitGlobal.
func RecordLLMFallback(from, to, operation string) {
	if llmFallbackTotal == nil {
		return
	}
	llmFallbackTotal.WithLabelValues(from, to, operation).Inc()
}

// RecordSearchCache records a search cache lookup result. No-op before
// InitGlobal.
func RecordSearchCache(result string) {
	if searchCacheTotal == nil {
		return
	}
	searchCacheTotal.WithLabelValues(result).Inc()
}

// RecordChat records a chat request with its detected intent
func (m *Metrics) RecordChat(intent, status string, duration float64) {
	m.ChatRequestsTotal.WithLabelValues(intent, status).Inc()
	m.ChatDurationSeconds.WithLabelValues(intent).Observe(duration)
}

// RecordIntent records a detected intent
func (m *Metrics) RecordIntent(intent string) {
	m.IntentTotal.WithLabelValues(intent).Inc()
}

// RecordRetrievalHits records hits produced by a retrieval stage
func (m *Metrics) RecordRetrievalHits(stage string, count int) {
	m.RetrievalHitsTotal.WithLabelValues(stage).Add(float64(count))
}

// RecordRetrievalDuration records how long a retrieval stage took
func (m *Metrics) RecordRetrievalDuration(stage string, duration float64) {
	m.RetrievalDurationSecond.WithLabelValues(stage).Observe(duration)
}

// RecordSearchRequest records a web search request outcome
func (m *Metrics) RecordSearchRequest(status string) {
	m.SearchRequestsTotal.WithLabelValues(status).Inc()
}

// RecordHTTPError records HTTP error metrics
func (m *Metrics) RecordHTTPError(errorType string) {
	m.HTTPErrorsTotal.WithLabelValues(errorType).Inc()
}

// RecordRateLimiterDrop records a request dropped by rate limiter
func (m *Metrics) RecordRateLimiterDrop(limiterType string) {
	m.RateLimiterDropped.WithLabelValues(limiterType).Inc()
}
