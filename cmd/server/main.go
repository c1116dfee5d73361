// Package main provides the campus counselor chat server entry point.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/Vrindavan30/college-counselor-go/internal/chat"
	"github.com/Vrindavan30/college-counselor-go/internal/config"
	"github.com/Vrindavan30/college-counselor-go/internal/genai"
	"github.com/Vrindavan30/college-counselor-go/internal/kb"
	"github.com/Vrindavan30/college-counselor-go/internal/logger"
	"github.com/Vrindavan30/college-counselor-go/internal/metrics"
	"github.com/Vrindavan30/college-counselor-go/internal/rag"
	"github.com/Vrindavan30/college-counselor-go/internal/ratelimit"
	"github.com/Vrindavan30/college-counselor-go/internal/retrieval"
	"github.com/Vrindavan30/college-counselor-go/internal/sentry"
	"github.com/Vrindavan30/college-counselor-go/internal/session"
	"github.com/Vrindavan30/college-counselor-go/internal/storage"
	"github.com/Vrindavan30/college-counselor-go/internal/websearch"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger (ships to Better Stack when a token is configured)
	log := logger.NewWithShipping(cfg.LogLevel, cfg.BetterStackToken)
	log.WithField("school", cfg.SchoolName).Info("Starting counselor server")

	// Initialize error tracking
	if err := sentry.Initialize(sentry.Config{
		Token:       cfg.SentryToken,
		Host:        cfg.SentryHost,
		Environment: getEnvName(),
		Release:     os.Getenv("RELEASE_VERSION"),
	}); err != nil {
		log.WithError(err).Warn("Failed to initialize error tracking")
	} else if sentry.IsEnabled() {
		log.Info("Error tracking initialized")
	}

	// Create Prometheus registry
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	registry.MustRegister(collectors.NewBuildInfoCollector())

	// Create metrics and expose them to packages that cannot carry a handle
	m := metrics.New(registry)
	metrics.InitGlobal(m)
	log.Info("Metrics initialized")

	// Load the knowledge base
	knowledge, err := kb.Load(cfg.KnowledgeBasePath, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to load knowledge base")
	}
	log.WithFields(map[string]any{
		"professors": len(knowledge.Professors),
		"courses":    len(knowledge.Courses),
		"faq":        len(knowledge.FAQ),
		"deadlines":  len(knowledge.Deadlines),
		"majors":     len(knowledge.Majors),
	}).Info("Knowledge base loaded")

	// Open the web-search response cache when search is configured
	var cache *storage.DB
	if cfg.HasWebSearch() {
		cache, err = storage.New(cfg.SearchCachePath(), cfg.SearchCacheTTL)
		if err != nil {
			log.WithError(err).Fatal("Failed to open search cache")
		}
		defer func() { _ = cache.Close() }()
		log.WithField("path", cfg.SearchCachePath()).
			WithField("cache_ttl", cfg.SearchCacheTTL).
			Info("Search cache connected")
	}

	// Build the LLM collaborator chains (OpenAI primary, Gemini fallback)
	llmCfg := genai.LLMConfig{
		OpenAI: genai.ProviderConfig{
			APIKey:         cfg.OpenAIAPIKey,
			ChatModel:      cfg.OpenAIChatModel,
			EmbeddingModel: cfg.OpenAIEmbeddingModel,
		},
		Gemini: genai.ProviderConfig{
			APIKey:         cfg.GeminiAPIKey,
			ChatModel:      cfg.GeminiChatModel,
			EmbeddingModel: cfg.GeminiEmbeddingModel,
		},
		RetryConfig: genai.DefaultRetryConfig(),
	}

	embedder, err := genai.NewEmbedder(context.Background(), llmCfg)
	if err != nil {
		log.WithError(err).Warn("Failed to build embedding chain, semantic retrieval disabled")
		embedder = nil
	}
	completer, err := genai.NewCompleter(context.Background(), llmCfg)
	if err != nil {
		log.WithError(err).Warn("Failed to build completion chain, replies degraded")
		completer = nil
	}

	// Semantic retrieval: embedding index when an embedder exists, keyword
	// index otherwise. The keyword fallback keeps stage ordering intact
	// with degraded confidence scores.
	var semantic rag.Searcher
	var vectorIndex *rag.Index
	items := rag.ItemsFromKB(knowledge)
	if embedder != nil {
		vectorIndex, err = rag.NewIndex(cfg.VectorStorePath(), embedder, log)
		if err != nil {
			log.WithError(err).Warn("Failed to open vector store, falling back to keyword index")
		}
	}
	if vectorIndex != nil {
		semantic = vectorIndex
		// Index build can embed every KB record on first run; do it off
		// the request path so the server accepts traffic immediately.
		go func() {
			defer func() {
				if r := recover(); r != nil {
					log.WithField("panic", r).Error("Panic in index build goroutine")
				}
			}()
			buildCtx, cancel := context.WithTimeout(context.Background(), config.IndexBuildTimeout)
			defer cancel()
			if err := vectorIndex.Rebuild(buildCtx, items); err != nil {
				log.WithError(err).Warn("Failed to build embedding index")
				return
			}
			log.WithField("doc_count", vectorIndex.Count()).Info("Embedding index ready")
		}()
	} else {
		keyword := rag.NewKeywordIndex(log)
		if err := keyword.Rebuild(items); err != nil {
			log.WithError(err).Warn("Failed to build keyword index, semantic stage disabled")
		} else {
			semantic = keyword
			log.WithField("doc_count", keyword.Count()).Info("Keyword index ready")
		}
	}

	// Web-search collaborator (nil when credentials are missing)
	searchClient := websearch.NewClient(cfg.SearchAPIKey, cfg.SearchEngineID, cache, log)
	if searchClient.IsEnabled() {
		log.Info("Web search enabled")
	} else {
		log.Info("Web search not configured, ranking fallback disabled")
	}

	// Retrieval engine and chat pipeline
	engine := retrieval.New(knowledge, semantic, searchClient, cfg.SchoolName, cfg.SchoolDomain, m, log)
	sessions := session.NewStore()
	service := chat.NewService(
		knowledge,
		engine,
		sessions,
		chat.NewAssembler(cfg.Chat),
		chat.NewHandoff(knowledge),
		chat.NewResponder(completer, cfg.SchoolName, log),
		m,
		log,
	)

	// Rate limiters: per-conversation buckets plus a shared LLM budget
	convLimiter := ratelimit.NewKeyedLimiter(ratelimit.KeyedConfig{
		Name:          "conversation",
		Burst:         cfg.Chat.ConversationBurst,
		RefillRate:    cfg.Chat.ConversationRefillPerSec,
		CleanupPeriod: config.RateLimiterCleanupInterval,
		OnDrop:        m.RecordRateLimiterDrop,
	})
	defer convLimiter.Stop()
	llmLimiter := ratelimit.NewLLMLimiter(cfg.Chat.LLMBurstTokens, cfg.Chat.LLMRefillPerHour, cfg.Chat.LLMDailyLimit)

	// Set Gin mode based on log level
	if cfg.LogLevel == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	if sentry.IsEnabled() {
		router.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	router.Use(securityHeadersMiddleware())
	router.Use(requestIDMiddleware())
	router.Use(loggingMiddleware(log))

	setupRoutes(router, &routeDeps{
		cfg:         cfg,
		service:     service,
		cache:       cache,
		semantic:    semantic,
		registry:    registry,
		metrics:     m,
		convLimiter: convLimiter,
		llmLimiter:  llmLimiter,
		log:         log,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  config.ChatHTTPRead,
		WriteTimeout: config.ChatHTTPWrite,
		IdleTimeout:  config.ChatHTTPIdle,
	}

	// Background goroutines
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var wg sync.WaitGroup

	if cache != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					log.WithField("panic", r).Error("Panic in cache cleanup goroutine")
				}
			}()
			cleanupExpiredCache(ctx, cache, log)
		}()
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		defer func() {
			if r := recover(); r != nil {
				log.WithField("panic", r).Error("Panic in session sweep goroutine")
			}
		}()
		sweepSessions(ctx, sessions, log)
	}()

	// Start server
	go func() {
		log.WithField("port", cfg.Port).Info("Server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")
	cancel()

	goDone := make(chan struct{})
	go func() {
		wg.Wait()
		close(goDone)
	}()
	select {
	case <-goDone:
		log.Info("All background goroutines stopped")
	case <-time.After(5 * time.Second):
		log.Warn("Timeout waiting for goroutines to stop")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Server forced to shutdown")
	}

	if completer != nil {
		if err := completer.Close(); err != nil {
			log.WithError(err).Error("Failed to close completion chain")
		}
	}
	if embedder != nil {
		if err := embedder.Close(); err != nil {
			log.WithError(err).Error("Failed to close embedding chain")
		}
	}
	if vectorIndex != nil {
		if err := vectorIndex.Close(); err != nil {
			log.WithError(err).Error("Failed to close vector store")
		}
	}

	sentry.Flush(2 * time.Second)
	log.Info("Server stopped")
}

func getEnvName() string {
	if env := os.Getenv("ENVIRONMENT"); env != "" {
		return env
	}
	return "production"
}
