package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"

	"go.uber.org/zap"

	"github.com/hyperjump/kondate/internal/config"
)

func testProviderConfig(baseURL string, cacheSize int) *config.ProviderConfig {
	return &config.ProviderConfig{
		BaseURL:        baseURL,
		SearchPath:     "/recipes/complexSearch",
		AISearchPath:   "/recipes/aiSearch",
		APIKey:         "test-key",
		TimeoutSeconds: 5,
		RequestsPerSec: 1000,
		Burst:          100,
		CacheSize:      cacheSize,
	}
}

func TestHTTPClient_Search(t *testing.T) {
	var gotPath string
	var gotParams url.Values
	var gotAPIKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotParams = r.URL.Query()
		gotAPIKey = r.Header.Get("x-api-key")
		fmt.Fprint(w, `{
			"results": [
				{"id": 101, "title": "Carbonara", "readyInMinutes": 25, "servings": 4,
				 "sourceUrl": "https://example.com/101", "cuisines": ["Italian"], "diets": []},
				{"id": 102, "title": "Cacio e Pepe"}
			],
			"totalResults": 120
		}`)
	}))
	defer srv.Close()

	c := NewHTTPClient(testProviderConfig(srv.URL, 0), 5, zap.NewNop())
	result, err := c.Search(context.Background(), "pasta", 3, nil)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	if gotPath != "/recipes/complexSearch" {
		t.Errorf("path = %q", gotPath)
	}
	if gotAPIKey != "test-key" {
		t.Errorf("x-api-key = %q", gotAPIKey)
	}
	if got := gotParams.Get("query"); got != "pasta" {
		t.Errorf("query param = %q", got)
	}
	if got := gotParams.Get("number"); got != "5" {
		t.Errorf("number param = %q, want page size", got)
	}
	if got := gotParams.Get("offset"); got != "10" {
		t.Errorf("offset param = %q, want 10 for page 3 of 5", got)
	}

	if len(result.Results) != 2 {
		t.Fatalf("len(Results) = %d, want 2", len(result.Results))
	}
	first := result.Results[0]
	if first.ID != "101" || first.Title != "Carbonara" || first.ReadyInMinutes != 25 {
		t.Errorf("first result = %+v", first)
	}
	if len(first.Cuisines) != 1 || first.Cuisines[0] != "Italian" {
		t.Errorf("Cuisines = %v", first.Cuisines)
	}
	if result.TotalResults != 120 {
		t.Errorf("TotalResults = %d, want 120", result.TotalResults)
	}
	if result.AIOptimized {
		t.Error("AIOptimized = true for keyword search")
	}
}

func TestHTTPClient_SearchFiltersForwarded(t *testing.T) {
	var gotParams url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotParams = r.URL.Query()
		fmt.Fprint(w, `{"results": [], "totalResults": 0}`)
	}))
	defer srv.Close()

	c := NewHTTPClient(testProviderConfig(srv.URL, 0), 12, zap.NewNop())
	filters := url.Values{}
	filters.Set("cuisine", "italian")
	filters.Set("maxReadyTime", "30")
	if _, err := c.Search(context.Background(), "pasta", 1, filters); err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	if got := gotParams.Get("cuisine"); got != "italian" {
		t.Errorf("cuisine param = %q", got)
	}
	if got := gotParams.Get("maxReadyTime"); got != "30" {
		t.Errorf("maxReadyTime param = %q", got)
	}
	if got := gotParams.Get("offset"); got != "0" {
		t.Errorf("offset param = %q, want 0 for page 1", got)
	}
}

func TestHTTPClient_AISearch(t *testing.T) {
	var gotPath string
	var gotParams url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotParams = r.URL.Query()
		fmt.Fprint(w, `{
			"results": [{"id": 7, "title": "Cozy Stew"}, {"id": 8, "title": "Ramen"}],
			"totalResults": 9000
		}`)
	}))
	defer srv.Close()

	c := NewHTTPClient(testProviderConfig(srv.URL, 0), 12, zap.NewNop())
	result, err := c.AISearch(context.Background(), "something warm for dinner")
	if err != nil {
		t.Fatalf("AISearch() error = %v", err)
	}

	if gotPath != "/recipes/aiSearch" {
		t.Errorf("path = %q", gotPath)
	}
	if got := gotParams.Get("query"); got != "something warm for dinner" {
		t.Errorf("query param = %q", got)
	}
	if gotParams.Has("number") || gotParams.Has("offset") {
		t.Errorf("AI search should not paginate, got params %v", gotParams)
	}

	if !result.AIOptimized {
		t.Error("AIOptimized = false, want true for the AI endpoint")
	}
	// The AI endpoint's total is the list itself regardless of what the
	// provider claims.
	if result.TotalResults != 2 {
		t.Errorf("TotalResults = %d, want 2", result.TotalResults)
	}
}

func TestHTTPClient_QuotaError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		fmt.Fprint(w, `{"message": "Your daily points limit has been reached."}`)
	}))
	defer srv.Close()

	c := NewHTTPClient(testProviderConfig(srv.URL, 0), 12, zap.NewNop())
	_, err := c.Search(context.Background(), "pasta", 1, nil)
	if err == nil {
		t.Fatal("Search() error = nil, want APIError")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error %T is not *APIError", err)
	}
	if apiErr.StatusCode != 402 {
		t.Errorf("StatusCode = %d, want 402", apiErr.StatusCode)
	}
	if apiErr.Message != "Your daily points limit has been reached." {
		t.Errorf("Message = %q", apiErr.Message)
	}
}

func TestHTTPClient_ErrorBodyWithoutJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, "upstream exploded")
	}))
	defer srv.Close()

	c := NewHTTPClient(testProviderConfig(srv.URL, 0), 12, zap.NewNop())
	_, err := c.Search(context.Background(), "pasta", 1, nil)

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error %T is not *APIError", err)
	}
	if apiErr.StatusCode != 500 || apiErr.Message != "upstream exploded" {
		t.Errorf("APIError = %+v", apiErr)
	}
}

func TestHTTPClient_CachesIdenticalRequests(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		fmt.Fprint(w, `{"results": [{"id": 1, "title": "One"}], "totalResults": 1}`)
	}))
	defer srv.Close()

	c := NewHTTPClient(testProviderConfig(srv.URL, 8), 12, zap.NewNop())
	ctx := context.Background()

	if _, err := c.Search(ctx, "pasta", 1, nil); err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if _, err := c.Search(ctx, "pasta", 1, nil); err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if got := hits.Load(); got != 1 {
		t.Errorf("hits = %d, want second search served from cache", got)
	}

	if _, err := c.Search(ctx, "pasta", 2, nil); err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if got := hits.Load(); got != 2 {
		t.Errorf("hits = %d, want a different page to miss", got)
	}
}

func TestHTTPClient_ErrorsNotCached(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		fmt.Fprint(w, `{"results": [], "totalResults": 0}`)
	}))
	defer srv.Close()

	c := NewHTTPClient(testProviderConfig(srv.URL, 8), 12, zap.NewNop())
	ctx := context.Background()

	if _, err := c.Search(ctx, "pasta", 1, nil); err == nil {
		t.Fatal("first search should fail")
	}
	if _, err := c.Search(ctx, "pasta", 1, nil); err != nil {
		t.Fatalf("retry after failure error = %v", err)
	}
	if got := hits.Load(); got != 2 {
		t.Errorf("hits = %d, want failures to reach the provider again", got)
	}
}

func TestHTTPClient_Name(t *testing.T) {
	tests := []struct {
		baseURL string
		want    string
	}{
		{"https://api.spoonacular.com", "api.spoonacular.com"},
		{"http://localhost:9090", "localhost:9090"},
		{"", ""},
	}
	for _, tt := range tests {
		c := NewHTTPClient(testProviderConfig(tt.baseURL, 0), 12, nil)
		if got := c.Name(); got != tt.want {
			t.Errorf("Name() with base %q = %q, want %q", tt.baseURL, got, tt.want)
		}
	}
}

func TestAPIError_Error(t *testing.T) {
	e := &APIError{StatusCode: 402, Message: "limit reached"}
	if got := e.Error(); got != "provider returned status 402: limit reached" {
		t.Errorf("Error() = %q", got)
	}
	e = &APIError{StatusCode: 500}
	if got := e.Error(); got != "provider returned status 500" {
		t.Errorf("Error() = %q", got)
	}
}
