// Package errors provides domain-specific error types and sentinel errors
// for improved error handling across the application.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common scenarios.
// Use errors.Is() to check these errors in your code.
var (
	// ErrNotFound indicates a requested resource was not found.
	ErrNotFound = errors.New("resource not found")

	// ErrKnowledgeBaseMissing indicates the knowledge base document could not be read.
	ErrKnowledgeBaseMissing = errors.New("knowledge base missing")

	// ErrRateLimitExceeded indicates rate limit has been exceeded.
	ErrRateLimitExceeded = errors.New("rate limit exceeded")

	// ErrInvalidInput indicates user provided invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrTimeout indicates an operation timed out.
	ErrTimeout = errors.New("operation timed out")

	// ErrCacheExpired indicates cached data has exceeded TTL.
	ErrCacheExpired = errors.New("cache expired")

	// ErrEmbeddingDisabled indicates no embedding provider is configured.
	ErrEmbeddingDisabled = errors.New("embedding provider not configured")

	// ErrSearchDisabled indicates the web-search collaborator is not configured.
	ErrSearchDisabled = errors.New("web search not configured")
)

// ValidationError represents input validation failures.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

// NewValidationError creates a new validation error.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// SearchError represents web-search collaborator failures with context.
type SearchError struct {
	Query      string
	StatusCode int
	Err        error
}

func (e *SearchError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("search error (query=%q, status=%d): %v", e.Query, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("search error (query=%q): %v", e.Query, e.Err)
}

func (e *SearchError) Unwrap() error {
	return e.Err
}

// NewSearchError creates a new search error.
func NewSearchError(query string, statusCode int, err error) *SearchError {
	return &SearchError{
		Query:      query,
		StatusCode: statusCode,
		Err:        err,
	}
}
