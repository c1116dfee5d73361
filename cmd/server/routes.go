// Package main provides the campus counselor chat server entry point.
package main

import (
	"context"
	"net/http"
	"strings"

	"github.com/Vrindavan30/college-counselor-go/internal/chat"
	"github.com/Vrindavan30/college-counselor-go/internal/config"
	"github.com/Vrindavan30/college-counselor-go/internal/logger"
	"github.com/Vrindavan30/college-counselor-go/internal/metrics"
	"github.com/Vrindavan30/college-counselor-go/internal/rag"
	"github.com/Vrindavan30/college-counselor-go/internal/ratelimit"
	"github.com/Vrindavan30/college-counselor-go/internal/storage"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// routeDeps bundles the dependencies the HTTP routes need.
type routeDeps struct {
	cfg         *config.Config
	service     *chat.Service
	cache       *storage.DB
	semantic    rag.Searcher
	registry    *prometheus.Registry
	metrics     *metrics.Metrics
	convLimiter *ratelimit.KeyedLimiter
	llmLimiter  *ratelimit.LLMLimiter
	log         *logger.Logger
}

// chatRequest is the inbound chat payload.
type chatRequest struct {
	Message        string `json:"message"`
	ConversationID string `json:"conversation_id"`
}

// chatResponse is the outbound chat payload.
type chatResponse struct {
	Reply          string `json:"reply"`
	ConversationID string `json:"conversation_id,omitempty"`
}

// setupRoutes configures all HTTP routes
func setupRoutes(router *gin.Engine, deps *routeDeps) {
	rootHandler := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service": "college-counselor",
			"school":  deps.cfg.SchoolName,
		})
	}
	router.GET("/", rootHandler)
	router.HEAD("/", rootHandler)

	// Liveness Probe - checks if the application is alive (minimal check)
	// This should NEVER check dependencies - only that the process is running
	healthHandler := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
	router.GET("/healthz", healthHandler)
	router.HEAD("/healthz", healthHandler)

	// Readiness Probe - reports dependency state alongside readiness
	readyHandler := func(c *gin.Context) {
		searchCache := gin.H{"enabled": false}
		if deps.cache != nil {
			count, err := deps.cache.Count(c.Request.Context())
			if err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{
					"status": "not ready",
					"reason": err.Error(),
				})
				return
			}
			searchCache = gin.H{"enabled": true, "entries": count}
		}

		semantic := gin.H{"enabled": false}
		if deps.semantic != nil && deps.semantic.IsEnabled() {
			semantic = gin.H{"enabled": true}
		}

		c.JSON(http.StatusOK, gin.H{
			"status":       "ready",
			"search_cache": searchCache,
			"semantic":     semantic,
		})
	}
	router.GET("/ready", readyHandler)
	router.HEAD("/ready", readyHandler)

	// Chat endpoint
	router.POST("/api/chat", chatHandler(deps))

	// Prometheus metrics endpoint (Basic Auth when a password is configured)
	metricsHandler := gin.WrapH(promhttp.HandlerFor(deps.registry, promhttp.HandlerOpts{}))
	if deps.cfg.MetricsPassword != "" {
		router.GET("/metrics", metricsAuthMiddleware(deps.cfg.MetricsUsername, deps.cfg.MetricsPassword), metricsHandler)
	} else {
		router.GET("/metrics", metricsHandler)
	}
}

// chatHandler validates the request, applies rate limits, and runs one
// chat turn under the configured timeout.
func chatHandler(deps *routeDeps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req chatRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			deps.metrics.RecordHTTPError("bad_request")
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		req.Message = strings.TrimSpace(req.Message)
		if req.Message == "" {
			deps.metrics.RecordHTTPError("empty_message")
			c.JSON(http.StatusBadRequest, gin.H{"error": "message is required"})
			return
		}
		if len(req.Message) > deps.cfg.Chat.MaxMessageLength {
			deps.metrics.RecordHTTPError("message_too_long")
			c.JSON(http.StatusBadRequest, gin.H{"error": "message is too long"})
			return
		}

		conversationID := strings.TrimSpace(req.ConversationID)
		if !deps.convLimiter.Allow(limiterKey(conversationID, c.ClientIP())) {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many requests, slow down"})
			return
		}
		if !deps.llmLimiter.Allow() {
			deps.metrics.RecordRateLimiterDrop("llm")
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "the assistant is busy, please try again shortly"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), deps.cfg.Chat.RequestTimeout)
		defer cancel()

		reply := deps.service.Handle(ctx, conversationID, req.Message)
		c.JSON(http.StatusOK, chatResponse{
			Reply:          reply,
			ConversationID: conversationID,
		})
	}
}

// limiterKey buckets anonymous requests by client IP so a missing
// conversation id does not bypass rate limiting.
func limiterKey(conversationID, clientIP string) string {
	if conversationID != "" {
		return conversationID
	}
	return "ip:" + clientIP
}
