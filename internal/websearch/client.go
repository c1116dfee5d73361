// Package websearch provides the Google Programmable Search collaborator
// and the professor-candidate extraction heuristics built on top of it.
package websearch

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/corpix/uarand"

	"github.com/Vrindavan30/college-counselor-go/internal/config"
	"github.com/Vrindavan30/college-counselor-go/internal/logger"
	"github.com/Vrindavan30/college-counselor-go/internal/storage"
)

const (
	searchEndpoint = "https://www.googleapis.com/customsearch/v1"

	// RatingsSiteDomain is the professor ratings site used by the ranking
	// fallback searches.
	RatingsSiteDomain = "ratemyprofessors.com"

	// MaxResultsPerQuery caps the num parameter; the API rejects more.
	MaxResultsPerQuery = 10
)

// Result is one web search result.
type Result struct {
	Title       string `json:"title"`
	Link        string `json:"link"`
	Snippet     string `json:"snippet"`
	DisplayLink string `json:"display_link"`
}

// Client calls the Google Programmable Search JSON API. A nil client or
// missing credentials disable the feature: every search returns an empty
// list. Responses are cached in SQLite to protect the daily quota.
type Client struct {
	httpClient *http.Client
	apiKey     string
	engineID   string
	cache      *storage.DB
	logger     *logger.Logger
}

// NewClient creates a search client. Returns nil when credentials are
// missing (feature disabled, not fatal). cache may be nil.
func NewClient(apiKey, engineID string, cache *storage.DB, log *logger.Logger) *Client {
	if apiKey == "" || engineID == "" {
		log.Info("Web search credentials not configured, search fallback disabled")
		return nil
	}
	return &Client{
		httpClient: &http.Client{Timeout: config.WebSearchTimeout},
		apiKey:     apiKey,
		engineID:   engineID,
		cache:      cache,
		logger:     log,
	}
}

// IsEnabled returns true if the client is configured.
func (c *Client) IsEnabled() bool {
	return c != nil
}

// Search runs one query with an optional site restriction and returns up
// to count results. Callers treat any error as an empty result list.
func (c *Client) Search(ctx context.Context, query, site string, count int) ([]Result, error) {
	if c == nil {
		return nil, nil
	}
	if strings.TrimSpace(query) == "" {
		return nil, nil
	}
	if count <= 0 || count > MaxResultsPerQuery {
		count = MaxResultsPerQuery
	}

	cacheKey := searchCacheKey(query, site, count)
	if cached, ok := c.fromCache(ctx, cacheKey); ok {
		return cached, nil
	}

	results, err := c.fetch(ctx, query, site, count)
	if err != nil {
		return nil, err
	}

	c.toCache(ctx, cacheKey, results)
	return results, nil
}

// searchResponse mirrors the fields we use from the API response.
type searchResponse struct {
	Items []struct {
		Title       string `json:"title"`
		Link        string `json:"link"`
		Snippet     string `json:"snippet"`
		DisplayLink string `json:"displayLink"`
	} `json:"items"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (c *Client) fetch(ctx context.Context, query, site string, count int) ([]Result, error) {
	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("cx", c.engineID)
	params.Set("q", query)
	params.Set("num", strconv.Itoa(count))
	if site != "" {
		params.Set("siteSearch", site)
		params.Set("siteSearchFilter", "i")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchEndpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create search request: %w", err)
	}
	req.Header.Set("User-Agent", uarand.GetRandom())
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	var decoded searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		msg := resp.Status
		if decoded.Error != nil {
			msg = decoded.Error.Message
		}
		return nil, fmt.Errorf("search returned status %d: %s", resp.StatusCode, msg)
	}

	results := make([]Result, 0, len(decoded.Items))
	for _, item := range decoded.Items {
		results = append(results, Result{
			Title:       StripHTML(item.Title),
			Link:        item.Link,
			Snippet:     StripHTML(item.Snippet),
			DisplayLink: item.DisplayLink,
		})
	}
	return results, nil
}

func (c *Client) fromCache(ctx context.Context, key string) ([]Result, bool) {
	if c.cache == nil {
		return nil, false
	}
	payload, err := c.cache.GetSearchResponse(ctx, key)
	if err != nil {
		return nil, false
	}
	var results []Result
	if err := json.Unmarshal(payload, &results); err != nil {
		c.logger.WithError(err).Warn("Dropping corrupt search cache entry")
		return nil, false
	}
	return results, true
}

func (c *Client) toCache(ctx context.Context, key string, results []Result) {
	if c.cache == nil {
		return
	}
	payload, err := json.Marshal(results)
	if err != nil {
		return
	}
	if err := c.cache.PutSearchResponse(ctx, key, payload); err != nil {
		c.logger.WithError(err).Warn("Failed to cache search response")
	}
}

// searchCacheKey derives a stable cache key from the query parameters.
func searchCacheKey(query, site string, count int) string {
	h := sha256.Sum256([]byte(strings.ToLower(query) + "|" + site + "|" + strconv.Itoa(count)))
	return hex.EncodeToString(h[:16])
}

// StripHTML removes markup from API text fields. Titles and snippets come
// back with <b> highlights and entities.
func StripHTML(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return strings.TrimSpace(s)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(strings.Join(strings.Fields(doc.Text()), " "))
}
