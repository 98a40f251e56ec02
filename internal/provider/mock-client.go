package provider

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/hyperjump/kondate/internal/models"
)

// MockClient is a deterministic provider for tests. The same query and page
// always produce the same recipes, so merge behavior can be asserted without
// a network. Error fields and hooks make failure paths reproducible.
type MockClient struct {
	// PageSize is the number of results per keyword page.
	PageSize int
	// Total is the reported total for keyword searches.
	Total int
	// SearchErr, when set, fails every keyword search.
	SearchErr error
	// AISearchErr, when set, fails every AI search.
	AISearchErr error
	// APILimited marks successful responses with the provider quota flag.
	APILimited bool
	// OnSearch, when set, runs at the start of every keyword search. Tests
	// use it to block or interleave calls.
	OnSearch func(query string, page int)

	mu          sync.Mutex
	searchCalls int
	aiCalls     int
}

// NewMockClient returns a mock with 2 results per page and a total of 30.
func NewMockClient() *MockClient {
	return &MockClient{PageSize: 2, Total: 30}
}

// Search returns deterministic recipes derived from query and page.
func (m *MockClient) Search(ctx context.Context, query string, page int, filters url.Values) (*Result, error) {
	m.mu.Lock()
	m.searchCalls++
	hook := m.OnSearch
	m.mu.Unlock()
	if hook != nil {
		hook(query, page)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m.SearchErr != nil {
		return nil, m.SearchErr
	}
	if page < 1 {
		page = 1
	}
	recipes := make([]models.Recipe, 0, m.PageSize)
	start := (page - 1) * m.PageSize
	for i := 0; i < m.PageSize; i++ {
		n := start + i + 1
		recipes = append(recipes, models.Recipe{
			ID:    fmt.Sprintf("%s-%d", slug(query), n),
			Title: fmt.Sprintf("%s recipe %d", query, n),
		})
	}
	return &Result{
		Results:         recipes,
		TotalResults:    m.Total,
		APILimitReached: m.APILimited,
	}, nil
}

// AISearch returns deterministic AI-optimized recipes derived from query.
func (m *MockClient) AISearch(ctx context.Context, query string) (*Result, error) {
	m.mu.Lock()
	m.aiCalls++
	m.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m.AISearchErr != nil {
		return nil, m.AISearchErr
	}
	recipes := make([]models.Recipe, 0, m.PageSize)
	for i := 0; i < m.PageSize; i++ {
		recipes = append(recipes, models.Recipe{
			ID:    fmt.Sprintf("ai-%s-%d", slug(query), i+1),
			Title: fmt.Sprintf("%s suggestion %d", query, i+1),
		})
	}
	return &Result{
		Results:         recipes,
		TotalResults:    len(recipes),
		AIOptimized:     true,
		APILimitReached: m.APILimited,
	}, nil
}

// Name identifies the mock in logs.
func (m *MockClient) Name() string {
	return "mock"
}

// SearchCalls returns how many keyword searches were issued.
func (m *MockClient) SearchCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.searchCalls
}

// AICalls returns how many AI searches were issued.
func (m *MockClient) AICalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.aiCalls
}

func slug(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return "empty"
	}
	return strings.ReplaceAll(s, " ", "-")
}
