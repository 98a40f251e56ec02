package engine

import (
	"errors"
	"fmt"
	"testing"

	"github.com/hyperjump/kondate/internal/classify"
	"github.com/hyperjump/kondate/internal/provider"
)

func TestClassifyFailure(t *testing.T) {
	tests := []struct {
		name string
		mode classify.Mode
		err  error
		want Kind
	}{
		{
			name: "payment required is quota",
			mode: classify.ModeKeyword,
			err:  &provider.APIError{StatusCode: 402, Message: "upgrade your plan"},
			want: KindQuotaExceeded,
		},
		{
			name: "wrapped payment required is quota",
			mode: classify.ModeNatural,
			err:  fmt.Errorf("ai search: %w", &provider.APIError{StatusCode: 402, Message: "limit"}),
			want: KindQuotaExceeded,
		},
		{
			name: "points limit message is quota",
			mode: classify.ModeKeyword,
			err:  errors.New("your points limit has been reached"),
			want: KindQuotaExceeded,
		},
		{
			name: "daily quota message is quota",
			mode: classify.ModeNatural,
			err:  errors.New("Daily Quota exhausted"),
			want: KindQuotaExceeded,
		},
		{
			name: "natural mode failure is ai outage",
			mode: classify.ModeNatural,
			err:  &provider.APIError{StatusCode: 503, Message: "service unavailable"},
			want: KindAIUnavailable,
		},
		{
			name: "natural mode network error is ai outage",
			mode: classify.ModeNatural,
			err:  errors.New("connection refused"),
			want: KindAIUnavailable,
		},
		{
			name: "keyword mode failure is generic",
			mode: classify.ModeKeyword,
			err:  &provider.APIError{StatusCode: 500, Message: "internal error"},
			want: KindSearchFailed,
		},
		{
			name: "keyword mode network error is generic",
			mode: classify.ModeKeyword,
			err:  errors.New("connection refused"),
			want: KindSearchFailed,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			serr := classifyFailure(tt.mode, tt.err)
			if serr.Kind != tt.want {
				t.Errorf("classifyFailure() kind = %v, want %v", serr.Kind, tt.want)
			}
			if serr.Message == "" {
				t.Error("classifyFailure() should set a user-facing message")
			}
			if !errors.Is(serr, tt.err) {
				t.Error("classifyFailure() should keep the provider error")
			}
		})
	}
}

func TestSearchError_Error(t *testing.T) {
	e := &SearchError{Kind: KindQuotaExceeded, Message: "Daily search quota reached. Try again tomorrow.", Err: errors.New("402 from provider")}
	if got := e.Error(); got != "quota_exceeded: 402 from provider" {
		t.Errorf("Error() = %q", got)
	}
	bare := &SearchError{Kind: KindSearchFailed, Message: "Search failed. Please try again."}
	if got := bare.Error(); got != "search_failed: Search failed. Please try again." {
		t.Errorf("Error() = %q", got)
	}
}

func TestSearchError_Unwrap(t *testing.T) {
	inner := &provider.APIError{StatusCode: 402, Message: "limit"}
	e := classifyFailure(classify.ModeKeyword, inner)
	var apiErr *provider.APIError
	if !errors.As(e, &apiErr) {
		t.Fatal("errors.As should reach the wrapped provider error")
	}
	if apiErr.StatusCode != 402 {
		t.Errorf("StatusCode = %d, want 402", apiErr.StatusCode)
	}
}

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindSearchFailed, "search_failed"},
		{KindQuotaExceeded, "quota_exceeded"},
		{KindAIUnavailable, "ai_unavailable"},
		{Kind(99), "unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.want {
				t.Errorf("Kind.String() = %v, want %v", got, tt.want)
			}
		})
	}
}
