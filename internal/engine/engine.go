// Package engine coordinates recipe searches: it classifies queries, routes
// them to the right provider, deduplicates in-flight requests, accumulates
// paged results per search epoch, and annotates favorites at read time.
package engine

import (
	"context"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/hyperjump/kondate/internal/classify"
	"github.com/hyperjump/kondate/internal/config"
	"github.com/hyperjump/kondate/internal/favorites"
	"github.com/hyperjump/kondate/internal/filter"
	"github.com/hyperjump/kondate/internal/models"
	"github.com/hyperjump/kondate/internal/provider"
)

// Engine is the per-session search coordinator. All provider failures are
// recovered here: they surface as notices on the response, never as errors.
// Safe for concurrent use; out-of-order completions are handled by the
// epoch-key guard at merge time, not by cancellation.
type Engine struct {
	client     provider.Client
	favorites  favorites.Store
	classifier *classify.Classifier
	cfg        *config.SearchConfig
	logger     *zap.Logger

	group singleflight.Group

	mu       sync.Mutex
	acc      *Accumulator
	filters  *filter.Set
	query    string
	epoch    string
	lastMode classify.Mode
}

// NewEngine creates an engine. favs may be nil when favorite annotation is
// not needed; a nil logger disables logging.
func NewEngine(client provider.Client, favs favorites.Store, classifier *classify.Classifier, cfg *config.SearchConfig, logger *zap.Logger) *Engine {
	if classifier == nil {
		classifier = classify.NewClassifier(nil)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		client:     client,
		favorites:  favs,
		classifier: classifier,
		cfg:        cfg,
		logger:     logger,
		acc:        NewAccumulator(),
		filters:    filter.New(),
	}
}

// Search runs a search for query at page and returns the accumulated
// snapshot after the outcome is merged. A search is only issued when the
// query is non-empty or filters are active; otherwise the current snapshot
// is returned unchanged. The returned error is non-nil only when ctx is
// already done.
func (e *Engine) Search(ctx context.Context, query string, page int) (*models.SearchResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	query = strings.TrimSpace(query)
	if page < 1 {
		page = 1
	}

	e.mu.Lock()
	fs := e.filters.Clone()
	if query == "" && !fs.Active() {
		e.mu.Unlock()
		return e.Results(ctx), nil
	}
	mode := e.classifier.Classify(query)
	e.query = query
	e.epoch = EpochKey(query, fs)
	e.lastMode = mode
	e.mu.Unlock()

	e.logger.Debug("search issued",
		zap.String("query", query),
		zap.Int("page", page),
		zap.String("mode", mode.String()),
		zap.Int("filters", fs.Len()),
	)

	outcome := e.execute(ctx, mode, query, page, fs, true)
	return e.merge(ctx, outcome), nil
}

// LoadMore fetches the next page of the current epoch through the keyword
// provider. The query is not re-classified: paging continues the list that
// is already loaded, and AI result sets never report more pages. It is a
// no-op when nothing is loaded or the provider has no more pages.
func (e *Engine) LoadMore(ctx context.Context) (*models.SearchResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	e.mu.Lock()
	query := e.query
	fs := e.filters.Clone()
	page := e.acc.LastPage() + 1
	if !e.acc.HasMore() {
		e.mu.Unlock()
		return e.Results(ctx), nil
	}
	e.epoch = EpochKey(query, fs)
	e.mu.Unlock()

	e.logger.Debug("loading next page", zap.String("query", query), zap.Int("page", page))

	outcome := e.execute(ctx, classify.ModeKeyword, query, page, fs, false)
	return e.merge(ctx, outcome), nil
}

// SetFilter updates a single filter. Empty, zero, false, and sentinel
// values remove the filter. The next search starts a new epoch.
func (e *Engine) SetFilter(key string, value interface{}) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.filters.Set(key, value)
}

// ApplyFilters updates several filters at once with SetFilter semantics.
func (e *Engine) ApplyFilters(m map[string]interface{}) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for k, v := range m {
		e.filters.Set(k, v)
	}
}

// ClearFilters removes all filters.
func (e *Engine) ClearFilters() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.filters.Clear()
}

// Filters returns a copy of the active filters.
func (e *Engine) Filters() map[string]interface{} {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.filters.Map()
}

// HasActiveFilters reports whether any filter is set.
func (e *Engine) HasActiveFilters() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.filters.Active()
}

// Results returns the current snapshot with fresh favorite annotations.
func (e *Engine) Results(ctx context.Context) *models.SearchResponse {
	favs := e.listFavorites(ctx)
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.annotateLocked(favs, "")
}

// execute runs one provider call and wraps the result in an outcome that
// carries the request state it was issued with. When an AI search fails with
// an outage, it falls back to exactly one keyword search of the same query.
func (e *Engine) execute(ctx context.Context, mode classify.Mode, query string, page int, fs *filter.Set, allowFallback bool) *Outcome {
	out := &Outcome{Query: query, Filters: fs, Page: page, Mode: mode}

	if mode == classify.ModeNatural {
		res, err := e.doAISearch(ctx, query)
		if err != nil {
			serr := classifyFailure(mode, err)
			if serr.Kind == KindAIUnavailable && allowFallback {
				e.logger.Warn("ai search unavailable, falling back to keyword mode",
					zap.String("query", query), zap.Error(err))
				fallback := e.execute(ctx, classify.ModeKeyword, query, 1, fs, false)
				if fallback.Err == nil {
					fallback.Notice = "AI search is unavailable; showing keyword results instead."
				}
				return fallback
			}
			e.logger.Warn("ai search failed", zap.String("query", query),
				zap.String("kind", serr.Kind.String()), zap.Error(err))
			out.Err = serr
			return out
		}
		out.Results = res.Results
		out.Total = res.TotalResults
		out.AIOptimized = true
		out.APILimited = res.APILimitReached
		return out
	}

	providerQuery := query
	if providerQuery == "" {
		providerQuery = e.placeholderQuery()
	}
	res, err := e.doSearch(ctx, providerQuery, page, fs)
	if err != nil {
		serr := classifyFailure(mode, err)
		e.logger.Warn("keyword search failed", zap.String("query", query),
			zap.Int("page", page), zap.String("kind", serr.Kind.String()), zap.Error(err))
		out.Err = serr
		return out
	}
	out.Results = res.Results
	out.Total = res.TotalResults
	out.APILimited = res.APILimitReached
	return out
}

// doSearch issues a keyword search through the in-flight group: concurrent
// identical requests share one provider call instead of reissuing it.
func (e *Engine) doSearch(ctx context.Context, query string, page int, fs *filter.Set) (*provider.Result, error) {
	key := requestKey(classify.ModeKeyword, query, page, fs)
	v, err, shared := e.group.Do(key, func() (interface{}, error) {
		return e.client.Search(ctx, query, page, fs.Params())
	})
	if shared {
		e.logger.Debug("request shared with in-flight call", zap.String("key", key))
	}
	if err != nil {
		return nil, err
	}
	return v.(*provider.Result), nil
}

// doAISearch issues an AI search through the in-flight group. The provider
// receives the raw query only; page and filters never reach it.
func (e *Engine) doAISearch(ctx context.Context, query string) (*provider.Result, error) {
	key := requestKey(classify.ModeNatural, query, 1, nil)
	v, err, shared := e.group.Do(key, func() (interface{}, error) {
		return e.client.AISearch(ctx, query)
	})
	if shared {
		e.logger.Debug("request shared with in-flight call", zap.String("key", key))
	}
	if err != nil {
		return nil, err
	}
	return v.(*provider.Result), nil
}

// merge applies an outcome under the epoch guard and returns the resulting
// snapshot. Outcomes from a superseded epoch are discarded.
func (e *Engine) merge(ctx context.Context, o *Outcome) *models.SearchResponse {
	favs := e.listFavorites(ctx)

	e.mu.Lock()
	defer e.mu.Unlock()

	if o.EpochKey() != e.epoch {
		e.logger.Debug("stale outcome discarded",
			zap.String("query", o.Query), zap.Int("page", o.Page))
		return e.annotateLocked(favs, "")
	}

	e.acc.Apply(o)
	e.lastMode = o.Mode
	notice := o.Notice
	if o.Err != nil {
		notice = o.Err.Message
	}
	return e.annotateLocked(favs, notice)
}

// annotateLocked builds a response from current state with favs applied.
func (e *Engine) annotateLocked(favs []models.Recipe, notice string) *models.SearchResponse {
	return &models.SearchResponse{
		Query:        e.query,
		Mode:         e.lastMode.String(),
		Results:      Annotate(e.acc.Items(), favs),
		TotalResults: e.acc.Total(),
		LastPage:     e.acc.LastPage(),
		HasMore:      e.acc.HasMore(),
		APILimited:   e.acc.APILimited(),
		Notice:       notice,
	}
}

func (e *Engine) listFavorites(ctx context.Context) []models.Recipe {
	if e.favorites == nil {
		return nil
	}
	favs, err := e.favorites.List(ctx)
	if err != nil {
		e.logger.Warn("favorites list failed", zap.Error(err))
		return nil
	}
	return favs
}

func (e *Engine) placeholderQuery() string {
	if e.cfg != nil && e.cfg.PlaceholderQuery != "" {
		return e.cfg.PlaceholderQuery
	}
	return "popular"
}

// requestKey identifies one provider request for in-flight deduplication.
func requestKey(mode classify.Mode, query string, page int, fs *filter.Set) string {
	canonical := ""
	if fs != nil {
		canonical = fs.Canonical()
	}
	return strings.Join([]string{mode.String(), query, strconv.Itoa(page), canonical}, "\x1f")
}
