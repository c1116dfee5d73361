// Package config provides centralized timeout constants for the application.
//
// These values are tuned for a chat pipeline whose worst case issues an
// embedding call, several web-search requests, and one completion call in a
// single request, with retries on transient collaborator errors.
package config

import "time"

// Chat request timeouts
const (
	// ChatRequest is the timeout for processing a single chat request.
	// This includes retrieval (embedding + web search) and the completion
	// call. A cold query that falls through every retrieval stage needs
	// the most time.
	ChatRequest = 45 * time.Second

	// ChatHTTPRead is the HTTP server read timeout for chat requests.
	// Payloads are small JSON bodies.
	ChatHTTPRead = 10 * time.Second

	// ChatHTTPWrite is the HTTP server write timeout.
	// Should accommodate ChatRequest + response serialization.
	ChatHTTPWrite = 50 * time.Second

	// ChatHTTPIdle is the HTTP server idle timeout for keep-alive connections.
	ChatHTTPIdle = 120 * time.Second
)

// Collaborator timeouts
const (
	// EmbeddingTimeout bounds a single embedding call including retries.
	// Embedding APIs typically respond in 1-5s.
	EmbeddingTimeout = 15 * time.Second

	// CompletionTimeout bounds a single completion call including retries.
	CompletionTimeout = 30 * time.Second

	// WebSearchTimeout bounds one search-engine API request.
	WebSearchTimeout = 8 * time.Second
)

// Database timeouts
const (
	// DatabaseBusyTimeout is SQLite busy_timeout pragma value.
	DatabaseBusyTimeout = 10 * time.Second

	// DatabaseConnMaxLifetime is the maximum lifetime of database connections.
	DatabaseConnMaxLifetime = time.Hour
)

// Background job intervals
const (
	// CacheCleanupInterval is how often expired search-cache entries are deleted.
	CacheCleanupInterval = 6 * time.Hour

	// CacheCleanupInitialDelay is the delay before first cache cleanup.
	// Allows server to stabilize before running cleanup.
	CacheCleanupInitialDelay = 5 * time.Minute

	// RateLimiterCleanupInterval is how often idle conversation limiters are cleaned.
	RateLimiterCleanupInterval = 5 * time.Minute

	// SessionSweepInterval is how often idle conversation sessions are swept.
	SessionSweepInterval = 10 * time.Minute

	// SessionMaxIdle is how long a conversation may sit idle before its
	// session state (course cursor, last professor) is dropped.
	SessionMaxIdle = time.Hour
)

// Index build
const (
	// IndexBuildTimeout bounds the startup embedding-index build.
	// Each KB record needs one embedding call unless vectors are already
	// persisted on disk.
	IndexBuildTimeout = 10 * time.Minute
)
