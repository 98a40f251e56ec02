package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/hyperjump/kondate/internal/config"
	"github.com/hyperjump/kondate/internal/models"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// HTTPClient calls the recipe search API over HTTP. Requests pass through a
// rate limiter and successful responses are cached by request tuple.
type HTTPClient struct {
	baseURL      string
	searchPath   string
	aiSearchPath string
	apiKey       string
	pageSize     int
	client       *http.Client
	limiter      *rate.Limiter
	cache        *resultCache
	logger       *zap.Logger
}

// NewHTTPClient creates a client from cfg. pageSize is the number of results
// requested per page. A nil logger disables logging.
func NewHTTPClient(cfg *config.ProviderConfig, pageSize int, logger *zap.Logger) *HTTPClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	if pageSize <= 0 {
		pageSize = 12
	}
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	rps := cfg.RequestsPerSec
	if rps <= 0 {
		rps = 2
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}
	return &HTTPClient{
		baseURL:      cfg.BaseURL,
		searchPath:   cfg.SearchPath,
		aiSearchPath: cfg.AISearchPath,
		apiKey:       cfg.APIKey,
		pageSize:     pageSize,
		client:       &http.Client{Timeout: timeout},
		limiter:      rate.NewLimiter(rate.Limit(rps), burst),
		cache:        newResultCache(cfg.CacheSize),
		logger:       logger,
	}
}

// Name returns the provider host for logs and status output.
func (c *HTTPClient) Name() string {
	if u, err := url.Parse(c.baseURL); err == nil && u.Host != "" {
		return u.Host
	}
	return c.baseURL
}

// Search runs a paged keyword search. The page is translated to the
// provider's offset/number form.
func (c *HTTPClient) Search(ctx context.Context, query string, page int, filters url.Values) (*Result, error) {
	if page < 1 {
		page = 1
	}
	params := url.Values{}
	for k, vs := range filters {
		for _, v := range vs {
			params.Add(k, v)
		}
	}
	params.Set("query", query)
	params.Set("number", strconv.Itoa(c.pageSize))
	params.Set("offset", strconv.Itoa((page-1)*c.pageSize))
	return c.get(ctx, c.searchPath, params, false)
}

// AISearch runs a natural-language search with the raw query only.
func (c *HTTPClient) AISearch(ctx context.Context, query string) (*Result, error) {
	params := url.Values{}
	params.Set("query", query)
	return c.get(ctx, c.aiSearchPath, params, true)
}

func (c *HTTPClient) get(ctx context.Context, path string, params url.Values, ai bool) (*Result, error) {
	cacheKey := path + "?" + params.Encode()
	if cached, ok := c.cache.Get(cacheKey); ok {
		c.logger.Debug("provider cache hit", zap.String("path", path))
		return cached, nil
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	reqURL := c.baseURL + path + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if c.apiKey != "" {
		req.Header.Set("x-api-key", c.apiKey)
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	c.logger.Debug("provider response",
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("took", time.Since(start)),
	)

	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: errorMessage(body)}
	}

	var wire wireResponse
	if err := json.Unmarshal(body, &wire); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	result := wire.toResult(ai)
	c.cache.Set(cacheKey, result)
	return result, nil
}

// wireRecipe is a recipe as the provider serializes it.
type wireRecipe struct {
	ID             int64    `json:"id"`
	Title          string   `json:"title"`
	Image          string   `json:"image"`
	ReadyInMinutes int      `json:"readyInMinutes"`
	Servings       int      `json:"servings"`
	SourceURL      string   `json:"sourceUrl"`
	Summary        string   `json:"summary"`
	Cuisines       []string `json:"cuisines"`
	Diets          []string `json:"diets"`
}

// wireResponse is the provider's response envelope for both endpoints.
type wireResponse struct {
	Results         []wireRecipe `json:"results"`
	TotalResults    int          `json:"totalResults"`
	AIOptimized     bool         `json:"aiOptimized"`
	APILimitReached bool         `json:"apiLimitReached"`
	Message         string       `json:"message"`
}

func (w *wireResponse) toResult(ai bool) *Result {
	recipes := make([]models.Recipe, 0, len(w.Results))
	for _, r := range w.Results {
		recipes = append(recipes, models.Recipe{
			ID:             strconv.FormatInt(r.ID, 10),
			Title:          r.Title,
			Image:          r.Image,
			ReadyInMinutes: r.ReadyInMinutes,
			Servings:       r.Servings,
			SourceURL:      r.SourceURL,
			Summary:        r.Summary,
			Cuisines:       r.Cuisines,
			Diets:          r.Diets,
		})
	}
	total := w.TotalResults
	if ai || total < len(recipes) {
		// The AI endpoint reports no total; the list is the whole answer.
		total = len(recipes)
	}
	return &Result{
		Results:         recipes,
		TotalResults:    total,
		AIOptimized:     ai || w.AIOptimized,
		APILimitReached: w.APILimitReached,
		Message:         w.Message,
	}
}

// errorMessage extracts a human-readable message from an error response body.
func errorMessage(body []byte) string {
	var wire struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &wire); err == nil && wire.Message != "" {
		return wire.Message
	}
	msg := string(body)
	if len(msg) > 200 {
		msg = msg[:200]
	}
	return msg
}
