package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/hyperjump/kondate/internal/favorites"
	"github.com/hyperjump/kondate/internal/models"
)

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var query models.SearchQuery
	if err := json.NewDecoder(r.Body).Decode(&query); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := query.Validate(); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.logger.Debug("search request", zap.String("query", query.Query), zap.Int("page", query.Page), zap.String("session_id", query.SessionID))
	id, eng := s.sessions.GetOrCreate(query.SessionID)
	if len(query.Filters) > 0 {
		eng.ApplyFilters(query.Filters)
	}
	response, err := eng.Search(r.Context(), query.Query, query.Page)
	if err != nil {
		s.logger.Error("search failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	response.SessionID = id
	s.respondJSON(w, http.StatusOK, response)
}

func (s *Server) handleSessionResults(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	eng, ok := s.sessions.Get(id)
	if !ok {
		s.respondError(w, http.StatusNotFound, "session not found")
		return
	}
	response := eng.Results(r.Context())
	response.SessionID = id
	s.respondJSON(w, http.StatusOK, response)
}

func (s *Server) handleSessionMore(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	eng, ok := s.sessions.Get(id)
	if !ok {
		s.respondError(w, http.StatusNotFound, "session not found")
		return
	}
	s.logger.Debug("load more request", zap.String("session_id", id))
	response, err := eng.LoadMore(r.Context())
	if err != nil {
		s.logger.Error("load more failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	response.SessionID = id
	s.respondJSON(w, http.StatusOK, response)
}

func (s *Server) handleFiltersUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	eng, ok := s.sessions.Get(id)
	if !ok {
		s.respondError(w, http.StatusNotFound, "session not found")
		return
	}
	var filters map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&filters); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	eng.ApplyFilters(filters)
	s.respondJSON(w, http.StatusOK, map[string]interface{}{"session_id": id, "filters": eng.Filters()})
}

func (s *Server) handleFiltersClear(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	eng, ok := s.sessions.Get(id)
	if !ok {
		s.respondError(w, http.StatusNotFound, "session not found")
		return
	}
	eng.ClearFilters()
	s.respondJSON(w, http.StatusOK, map[string]string{"session_id": id, "status": "cleared"})
}

func (s *Server) handleSessionRemove(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.sessions.Remove(id)
	s.respondJSON(w, http.StatusOK, map[string]string{"session_id": id, "status": "removed"})
}

func (s *Server) handleFavoritesList(w http.ResponseWriter, r *http.Request) {
	favs, err := s.favorites.List(r.Context())
	if err != nil {
		s.logger.Error("favorites list failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{"favorites": favs, "count": len(favs)})
}

func (s *Server) handleFavoritesAdd(w http.ResponseWriter, r *http.Request) {
	var recipe models.Recipe
	if err := json.NewDecoder(r.Body).Decode(&recipe); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(recipe.Title) == "" {
		s.respondError(w, http.StatusBadRequest, "title is required")
		return
	}
	s.logger.Debug("add favorite request", zap.String("id", recipe.ID), zap.String("title", recipe.Title))
	if err := s.favorites.Add(r.Context(), &recipe); err != nil {
		s.logger.Error("add favorite failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusCreated, map[string]string{"id": recipe.ID, "status": "added"})
}

func (s *Server) handleFavoriteGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	recipe, err := s.favorites.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, favorites.ErrNotFound) {
			s.respondError(w, http.StatusNotFound, "favorite not found")
			return
		}
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, recipe)
}

func (s *Server) handleFavoriteRemove(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.logger.Debug("remove favorite request", zap.String("id", id))
	if err := s.favorites.Remove(r.Context(), id); err != nil {
		if errors.Is(err, favorites.ErrNotFound) {
			s.respondError(w, http.StatusNotFound, "favorite not found")
			return
		}
		s.logger.Error("remove favorite failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"id": id, "status": "removed"})
}

func (s *Server) handleFavoritesSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		s.respondError(w, http.StatusBadRequest, "q is required")
		return
	}
	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			s.respondError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}
	results, err := s.favorites.Search(r.Context(), q, limit)
	if err != nil {
		s.logger.Error("favorites search failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{"query": q, "results": results, "count": len(results)})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	favCount, err := s.favorites.Count(ctx)
	if err != nil {
		s.logger.Error("status: count favorites failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	resp := map[string]interface{}{
		"favorites":       favCount,
		"favorites_index": s.favorites.IndexCount(),
		"sessions":        s.sessions.Len(),
		"provider":        s.client.Name(),
		"uptime_seconds":  int64(time.Since(s.startedAt).Seconds()),
	}

	configInfo := map[string]interface{}{
		"page_size":        s.config.Search.PageSize,
		"length_threshold": s.config.Classifier.LengthThreshold,
		"min_query_length": s.config.Classifier.MinQueryLength,
		"database_path":    s.config.Favorites.DatabasePath,
		"index_path":       s.config.Favorites.IndexPath,
	}
	diskBytes, err := favorites.DiskUsageBytes(
		s.config.Favorites.DatabasePath,
		s.config.Favorites.IndexPath,
	)
	if err == nil {
		resp["disk_usage_bytes"] = diskBytes
	}
	resp["config"] = configInfo
	s.respondJSON(w, http.StatusOK, resp)
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
