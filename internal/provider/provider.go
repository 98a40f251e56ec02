// Package provider defines the remote search collaborators: the paged
// keyword recipe API and the natural-language AI search endpoint.
package provider

import (
	"context"
	"fmt"
	"net/url"

	"github.com/hyperjump/kondate/internal/models"
)

// Result is the outcome of one provider call. Both providers are idempotent
// per request tuple, so results may be cached and shared between callers.
type Result struct {
	Results      []models.Recipe `json:"results"`
	TotalResults int             `json:"total_results"`
	// AIOptimized marks results from the AI endpoint; they replace
	// accumulated results instead of appending to them.
	AIOptimized bool `json:"ai_optimized,omitempty"`
	// APILimitReached is set when the provider reports the daily quota spent
	// alongside an otherwise successful response.
	APILimitReached bool   `json:"api_limit_reached,omitempty"`
	Message         string `json:"message,omitempty"`
}

// Client is the remote search API used by the engine.
type Client interface {
	// Search runs a paged keyword search. Filters arrive in wire form.
	Search(ctx context.Context, query string, page int, filters url.Values) (*Result, error)
	// AISearch runs a natural-language search. It takes no page and no
	// filters; successful results always carry AIOptimized=true.
	AISearch(ctx context.Context, query string) (*Result, error)
	// Name identifies the provider in logs and status output.
	Name() string
}

// APIError is a non-2xx response from the provider.
type APIError struct {
	StatusCode int
	Message    string
}

// Error returns a string representation of the error.
func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("provider returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("provider returned status %d: %s", e.StatusCode, e.Message)
}
