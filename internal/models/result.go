// Package models defines core data structures for recipes, queries, and search responses.
package models

// SearchResponse is a snapshot of the accumulated results for one session.
// Results preserve provider order: pages are appended in the order they were
// accepted and never re-ranked.
type SearchResponse struct {
	Query        string   `json:"query"`
	Mode         string   `json:"mode"`
	Results      []Recipe `json:"results"`
	TotalResults int      `json:"total_results"`
	LastPage     int      `json:"last_page"`
	HasMore      bool     `json:"has_more"`
	// APILimited is set once a provider reports its daily quota reached and
	// stays set until the next search epoch.
	APILimited bool `json:"api_limited,omitempty"`
	// Notice carries a user-facing message for degraded outcomes, e.g. when
	// an AI search failed and keyword results are shown instead.
	Notice    string `json:"notice,omitempty"`
	SessionID string `json:"session_id,omitempty"`
}
