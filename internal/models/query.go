package models

import (
	"fmt"
	"strings"
)

// MaxQueryLength bounds the query string accepted from clients.
const MaxQueryLength = 500

// SearchQuery represents a search request with optional filters.
// An empty query with active filters is valid: the engine substitutes a
// placeholder query for the provider call.
type SearchQuery struct {
	Query     string                 `json:"query"`
	Page      int                    `json:"page,omitempty"`
	Filters   map[string]interface{} `json:"filters,omitempty"`
	SessionID string                 `json:"session_id,omitempty"`
}

// Validate normalizes the query in place and returns an error for requests
// that can never be served. The query is trimmed and the page clamped to 1.
func (q *SearchQuery) Validate() error {
	q.Query = strings.TrimSpace(q.Query)
	if len(q.Query) > MaxQueryLength {
		return fmt.Errorf("query exceeds %d characters", MaxQueryLength)
	}
	if q.Page < 1 {
		q.Page = 1
	}
	return nil
}
