package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	apperrors "github.com/Vrindavan30/college-counselor-go/internal/errors"
	"github.com/Vrindavan30/college-counselor-go/internal/metrics"
)

// GetSearchResponse returns the cached payload for a query key. Returns
// ErrCacheExpired for entries past the TTL (the row is left for the
// cleanup sweep) and ErrNotFound when the key was never cached.
func (db *DB) GetSearchResponse(ctx context.Context, queryKey string) ([]byte, error) {
	var payload []byte
	var cachedAt int64

	row := db.conn.QueryRowContext(ctx,
		`SELECT payload, cached_at FROM search_responses WHERE query_key = ?`, queryKey)
	if err := row.Scan(&payload, &cachedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			metrics.RecordSearchCache("miss")
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to read search cache: %w", err)
	}

	if cachedAt <= db.ttlCutoff() {
		metrics.RecordSearchCache("expired")
		return nil, apperrors.ErrCacheExpired
	}

	metrics.RecordSearchCache("hit")
	return payload, nil
}

// PutSearchResponse stores a payload for a query key, replacing any
// previous entry.
func (db *DB) PutSearchResponse(ctx context.Context, queryKey string, payload []byte) error {
	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO search_responses (query_key, payload, cached_at)
		 VALUES (?, ?, ?)
		 ON CONFLICT(query_key) DO UPDATE SET payload = excluded.payload, cached_at = excluded.cached_at`,
		queryKey, payload, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("failed to write search cache: %w", err)
	}
	return nil
}

// CleanupExpired deletes entries past the TTL and returns how many rows
// were removed.
func (db *DB) CleanupExpired(ctx context.Context) (int64, error) {
	res, err := db.conn.ExecContext(ctx,
		`DELETE FROM search_responses WHERE cached_at <= ?`, db.ttlCutoff())
	if err != nil {
		return 0, fmt.Errorf("failed to clean up search cache: %w", err)
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return 0, nil
	}
	return removed, nil
}

// Count returns the number of cached responses, expired or not.
func (db *DB) Count(ctx context.Context) (int, error) {
	var count int
	err := db.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM search_responses`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count search cache: %w", err)
	}
	return count, nil
}
