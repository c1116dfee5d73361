// Package main provides the campus counselor chat server entry point.
package main

import (
	"context"
	"time"

	"github.com/Vrindavan30/college-counselor-go/internal/config"
	"github.com/Vrindavan30/college-counselor-go/internal/logger"
	"github.com/Vrindavan30/college-counselor-go/internal/session"
	"github.com/Vrindavan30/college-counselor-go/internal/storage"
)

// cleanupExpiredCache periodically removes expired web-search responses
// from the cache database.
func cleanupExpiredCache(ctx context.Context, db *storage.DB, log *logger.Logger) {
	// Run initial cleanup after configured delay to let server stabilize
	select {
	case <-ctx.Done():
		return
	case <-time.After(config.CacheCleanupInitialDelay):
		performCacheCleanup(ctx, db, log)
	}

	ticker := time.NewTicker(config.CacheCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			performCacheCleanup(ctx, db, log)
		}
	}
}

func performCacheCleanup(ctx context.Context, db *storage.DB, log *logger.Logger) {
	deleted, err := db.CleanupExpired(ctx)
	if err != nil {
		log.WithError(err).Error("Failed to cleanup expired search cache")
		return
	}
	remaining, _ := db.Count(ctx)
	log.WithFields(map[string]any{
		"deleted":   deleted,
		"remaining": remaining,
	}).Debug("Search cache cleanup complete")
}

// sweepSessions periodically drops idle conversation sessions so
// abandoned conversations do not hold handoff state forever.
func sweepSessions(ctx context.Context, sessions *session.Store, log *logger.Logger) {
	ticker := time.NewTicker(config.SessionSweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := sessions.Sweep(config.SessionMaxIdle); removed > 0 {
				log.WithField("removed", removed).Debug("Idle sessions swept")
			}
		}
	}
}
