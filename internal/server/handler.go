package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"audimatch/internal/agent"
	"audimatch/internal/domain"
	"audimatch/internal/logger"
)

// CacheClearer is the slice of the store the handler needs.
type CacheClearer interface {
	ClearCache() error
}

type Handler struct {
	agent  *agent.Agent
	cache  CacheClearer
	logger *logger.Logger
}

func NewHandler(a *agent.Agent, cache CacheClearer, log *logger.Logger) *Handler {
	return &Handler{
		agent:  a,
		cache:  cache,
		logger: log.WithComponent("handler"),
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/health", h.Health)
	r.Get("/search", h.SearchBooks)
	r.Get("/search/author", h.SearchAuthor)
	r.Post("/update", h.UpdateBook)
	r.Post("/update/author", h.UpdateAuthor)
	r.Delete("/cache", h.ClearCache)
}

type searchResult struct {
	ID    string `json:"id"`
	Score int    `json:"score"`
	Name  string `json:"name"`
	Year  int    `json:"year,omitempty"`
}

type updateRequest struct {
	ID    string `json:"id"`
	Force bool   `json:"force"`

	// Existing metadata the caller wants respected by the
	// empty-or-force policy. Optional.
	Existing *metadataPayload `json:"existing,omitempty"`
}

type metadataPayload struct {
	ID          string   `json:"id"`
	Title       string   `json:"title,omitempty"`
	SortTitle   string   `json:"sort_title,omitempty"`
	Studio      string   `json:"studio,omitempty"`
	Summary     string   `json:"summary,omitempty"`
	ReleaseDate string   `json:"release_date,omitempty"`
	Rating      float64  `json:"rating,omitempty"`
	Genres      []string `json:"genres,omitempty"`
	Styles      []string `json:"styles,omitempty"`
	Moods       []string `json:"moods,omitempty"`
	CoverURL    string   `json:"cover_url,omitempty"`
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) SearchBooks(w http.ResponseWriter, r *http.Request) {
	query := queryFromRequest(r)
	results := h.agent.Search(r.Context(), query)
	writeJSON(w, http.StatusOK, toSearchResults(results))
}

func (h *Handler) SearchAuthor(w http.ResponseWriter, r *http.Request) {
	query := queryFromRequest(r)
	results := h.agent.SearchAuthor(r.Context(), query)
	writeJSON(w, http.StatusOK, toSearchResults(results))
}

func (h *Handler) UpdateBook(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, h.agent.Update)
}

func (h *Handler) UpdateAuthor(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, h.agent.UpdateAuthor)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request, apply func(ctx context.Context, storedID string, sink *domain.Metadata, force bool) error) {
	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.ID == "" {
		http.Error(w, "id is required", http.StatusBadRequest)
		return
	}

	sink := sinkFromPayload(req.Existing)
	if err := apply(r.Context(), req.ID, sink, req.Force); err != nil {
		h.logger.Error("Update failed", "error", err, "id", req.ID)
		http.Error(w, "update failed", http.StatusBadGateway)
		return
	}
	writeJSON(w, http.StatusOK, toPayload(sink))
}

func (h *Handler) ClearCache(w http.ResponseWriter, r *http.Request) {
	if err := h.cache.ClearCache(); err != nil {
		h.logger.Error("Cache clear failed", "error", err)
		http.Error(w, "cache clear failed", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}

func queryFromRequest(r *http.Request) domain.LocalMediaQuery {
	q := r.URL.Query()
	return domain.LocalMediaQuery{
		Title:    q.Get("title"),
		Album:    q.Get("album"),
		Artist:   q.Get("artist"),
		Filename: q.Get("filename"),
		Manual:   q.Get("manual") == "true",
		Language: q.Get("lang"),
	}
}

func toSearchResults(results []domain.ScoredResult) []searchResult {
	out := make([]searchResult, 0, len(results))
	for _, r := range results {
		out = append(out, searchResult{
			ID:    r.ID.StoredID(),
			Score: r.Score,
			Name:  r.Name,
			Year:  r.Year,
		})
	}
	return out
}

func sinkFromPayload(p *metadataPayload) *domain.Metadata {
	if p == nil {
		return &domain.Metadata{}
	}
	sink := &domain.Metadata{
		Title:     p.Title,
		SortTitle: p.SortTitle,
		Studio:    p.Studio,
		Summary:   p.Summary,
		Rating:    p.Rating,
		Genres:    p.Genres,
		Styles:    p.Styles,
		Moods:     p.Moods,
		CoverURL:  p.CoverURL,
	}
	if p.ReleaseDate != "" {
		if t, err := time.Parse("2006-01-02", p.ReleaseDate); err == nil {
			sink.ReleaseDate = &t
		}
	}
	return sink
}

func toPayload(m *domain.Metadata) metadataPayload {
	p := metadataPayload{
		ID:        m.ID,
		Title:     m.Title,
		SortTitle: m.SortTitle,
		Studio:    m.Studio,
		Summary:   m.Summary,
		Rating:    m.Rating,
		Genres:    m.Genres,
		Styles:    m.Styles,
		Moods:     m.Moods,
		CoverURL:  m.CoverURL,
	}
	if m.ReleaseDate != nil {
		p.ReleaseDate = m.ReleaseDate.Format("2006-01-02")
	}
	return p
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
