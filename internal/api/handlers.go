// internal/api/handlers.go
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/jodahe1/AcademicHelper/internal/embedder"
	"github.com/jodahe1/AcademicHelper/internal/service"
	"github.com/jodahe1/AcademicHelper/internal/types"
)

// Handlers holds HTTP handler dependencies
type Handlers struct {
	svc         *service.Service
	healthCheck func() error
}

// NewHandlers creates new API handlers
func NewHandlers(svc *service.Service) *Handlers {
	return &Handlers{svc: svc}
}

// SetHealthCheck installs a connectivity check run by the health endpoint
func (h *Handlers) SetHealthCheck(check func() error) {
	h.healthCheck = check
}

func (h *Handlers) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (h *Handlers) respondError(w http.ResponseWriter, status int, msg string) {
	h.respondJSON(w, status, ErrorResponse{Error: msg})
}

// Health handles GET /health
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	if h.healthCheck != nil {
		if err := h.healthCheck(); err != nil {
			h.respondError(w, http.StatusServiceUnavailable, err.Error())
			return
		}
	}
	h.respondJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

// AddSource handles POST /v1/sources
func (h *Handlers) AddSource(w http.ResponseWriter, r *http.Request) {
	var req AddSourceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Title == "" || req.Authors == "" {
		h.respondError(w, http.StatusBadRequest, "title and authors are required")
		return
	}

	src, err := h.svc.AddSource(r.Context(), types.Source{
		Title:           req.Title,
		Authors:         req.Authors,
		PublicationYear: req.PublicationYear,
		Abstract:        req.Abstract,
		FullText:        req.FullText,
		SourceType:      types.SourceType(req.SourceType),
	})
	if err != nil {
		if !types.SourceType(req.SourceType).Valid() {
			h.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.respondJSON(w, http.StatusCreated, AddSourceResponse{Source: src})
}

// List handles GET /v1/sources
func (h *Handlers) List(w http.ResponseWriter, r *http.Request) {
	limit := 10
	if l := r.URL.Query().Get("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	sources, err := h.svc.List(r.Context(), limit)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if sources == nil {
		sources = []types.Source{}
	}

	h.respondJSON(w, http.StatusOK, ListResponse{Sources: sources})
}

// Ingest handles POST /v1/ingest
func (h *Handlers) Ingest(w http.ResponseWriter, r *http.Request) {
	n, err := h.svc.IngestMissing(r.Context())
	if err != nil {
		// Provider problems are upstream failures; anything else is ours.
		var respErr *embedder.ResponseError
		if errors.Is(err, embedder.ErrNoProvider) || errors.As(err, &respErr) {
			h.respondError(w, http.StatusBadGateway, err.Error())
			return
		}
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, IngestResponse{Embedded: n})
}

// Search handles GET /v1/search
func (h *Handlers) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		h.respondError(w, http.StatusBadRequest, "q is required")
		return
	}

	limit := 0
	if l := r.URL.Query().Get("limit"); l != "" {
		parsed, err := strconv.Atoi(l)
		if err != nil || parsed <= 0 {
			h.respondError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	sources, err := h.svc.Search(r.Context(), query, limit)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	results := make([]types.SourceSummary, len(sources))
	for i := range sources {
		results[i] = sources[i].Summary()
	}

	h.respondJSON(w, http.StatusOK, SearchResponse{Results: results})
}
