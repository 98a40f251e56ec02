package engine

import (
	"errors"
	"net/http"
	"strings"

	"github.com/hyperjump/kondate/internal/classify"
	"github.com/hyperjump/kondate/internal/provider"
)

// Kind classifies a provider failure. The taxonomy is closed: every failure
// maps to exactly one kind and is recovered at the engine boundary.
type Kind int

const (
	// KindSearchFailed is any failure without a more specific kind. Never retried.
	KindSearchFailed Kind = iota
	// KindQuotaExceeded is the provider's daily quota. Never retried.
	KindQuotaExceeded
	// KindAIUnavailable is a failed AI search. Retried once in keyword mode.
	KindAIUnavailable
)

// String returns a string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindSearchFailed:
		return "search_failed"
	case KindQuotaExceeded:
		return "quota_exceeded"
	case KindAIUnavailable:
		return "ai_unavailable"
	default:
		return "unknown"
	}
}

// SearchError is a classified provider failure. Message is user-facing;
// the wrapped error keeps the provider detail for logs.
type SearchError struct {
	Kind    Kind
	Message string
	Err     error
}

// Error returns a string representation of the error.
func (e *SearchError) Error() string {
	if e.Err != nil {
		return e.Kind.String() + ": " + e.Err.Error()
	}
	return e.Kind.String() + ": " + e.Message
}

// Unwrap returns the underlying provider error.
func (e *SearchError) Unwrap() error {
	return e.Err
}

// quotaSignatures are message fragments the provider uses when the daily
// request quota is spent.
var quotaSignatures = []string{"points limit", "daily quota"}

// classifyFailure maps a raw provider error onto the closed taxonomy.
// Quota errors are recognized by HTTP 402 or by message content; any other
// failure of the AI endpoint is an AI outage.
func classifyFailure(mode classify.Mode, err error) *SearchError {
	var apiErr *provider.APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusPaymentRequired {
		return &SearchError{
			Kind:    KindQuotaExceeded,
			Message: "Daily search quota reached. Try again tomorrow.",
			Err:     err,
		}
	}
	msg := strings.ToLower(err.Error())
	for _, sig := range quotaSignatures {
		if strings.Contains(msg, sig) {
			return &SearchError{
				Kind:    KindQuotaExceeded,
				Message: "Daily search quota reached. Try again tomorrow.",
				Err:     err,
			}
		}
	}
	if mode == classify.ModeNatural {
		return &SearchError{
			Kind:    KindAIUnavailable,
			Message: "AI search is unavailable right now.",
			Err:     err,
		}
	}
	return &SearchError{
		Kind:    KindSearchFailed,
		Message: "Search failed. Please try again.",
		Err:     err,
	}
}
