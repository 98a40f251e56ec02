package engine

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/hyperjump/kondate/internal/classify"
	"github.com/hyperjump/kondate/internal/filter"
	"github.com/hyperjump/kondate/internal/models"
)

const epochPrefix = "epoch:"

// EpochKey returns a stable key for a query and filter combination. A new
// key means a new search epoch: accumulated results from the old epoch are
// discarded rather than mixed in.
func EpochKey(query string, filters *filter.Set) string {
	canonical := ""
	if filters != nil {
		canonical = filters.Canonical()
	}
	hash := sha256.Sum256([]byte(query + "\x00" + canonical))
	return epochPrefix + hex.EncodeToString(hash[:])
}

// Outcome is one provider response tied to the request state it was issued
// with. Callers fill Query and Filters from the values captured at request
// time, never from live state, so late responses merge against the epoch
// they belong to.
type Outcome struct {
	Query   string
	Filters *filter.Set
	Page    int
	Mode    classify.Mode
	Results []models.Recipe
	Total   int
	// AIOptimized results replace the accumulated list wholesale.
	AIOptimized bool
	APILimited  bool
	// Notice is a user-facing message attached by the coordinator, e.g.
	// after a degraded AI-to-keyword fallback.
	Notice string
	// Err marks a failure outcome. Failure during a reset clears the list;
	// failure during an append preserves what was accumulated.
	Err *SearchError
}

// EpochKey returns the epoch key of the request this outcome answers.
func (o *Outcome) EpochKey() string {
	return EpochKey(o.Query, o.Filters)
}

// Accumulator collects paged results for the current search epoch. It is not
// safe for concurrent use; the engine serializes access.
//
// Merge rules: an outcome whose epoch key differs from the stored key, or
// whose page is 1, resets the list. AI-optimized outcomes replace the list.
// A page beyond the last accepted page appends in order; a page at or below
// it is a duplicate delivery and is dropped.
type Accumulator struct {
	key        string
	items      []models.Recipe
	lastPage   int
	total      int
	apiLimited bool
}

// NewAccumulator returns an empty accumulator with no epoch.
func NewAccumulator() *Accumulator {
	return &Accumulator{}
}

// Apply merges one outcome. Applying the same page-1 outcome twice yields
// identical state.
func (a *Accumulator) Apply(o *Outcome) {
	key := o.EpochKey()
	reset := key != a.key || o.Page <= 1

	if o.Err != nil {
		if reset {
			a.key = key
			a.items = nil
			a.lastPage = 0
			a.total = 0
			a.apiLimited = false
		}
		if o.Err.Kind == KindQuotaExceeded || o.APILimited {
			a.apiLimited = true
		}
		return
	}

	if o.AIOptimized {
		a.key = key
		a.items = append([]models.Recipe(nil), o.Results...)
		a.lastPage = 1
		a.total = len(o.Results)
		a.apiLimited = o.APILimited
		return
	}

	if reset {
		page := o.Page
		if page < 1 {
			page = 1
		}
		a.key = key
		a.items = append([]models.Recipe(nil), o.Results...)
		a.lastPage = page
		a.total = o.Total
		a.apiLimited = o.APILimited
		return
	}

	if o.Page <= a.lastPage {
		return
	}
	a.items = append(a.items, o.Results...)
	a.lastPage = o.Page
	a.total = o.Total
	if o.APILimited {
		a.apiLimited = true
	}
}

// Items returns a copy of the accumulated results in accepted order.
func (a *Accumulator) Items() []models.Recipe {
	return append([]models.Recipe(nil), a.items...)
}

// Len returns the number of accumulated results.
func (a *Accumulator) Len() int {
	return len(a.items)
}

// LastPage returns the highest accepted page, 0 when empty.
func (a *Accumulator) LastPage() int {
	return a.lastPage
}

// Total returns the provider-reported total for the current epoch.
func (a *Accumulator) Total() int {
	return a.total
}

// HasMore reports whether the provider holds more pages for this epoch.
func (a *Accumulator) HasMore() bool {
	return len(a.items) < a.total
}

// APILimited reports whether the provider quota flag was seen this epoch.
func (a *Accumulator) APILimited() bool {
	return a.apiLimited
}

// Key returns the current epoch key, empty before the first merge.
func (a *Accumulator) Key() string {
	return a.key
}
