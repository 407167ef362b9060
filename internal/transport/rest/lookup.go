package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/heartmarshall/wordjournal/internal/domain"
)

const (
	defaultSuggestLimit = 10
	maxSuggestLimit     = 50
)

type lookupService interface {
	Lookup(ctx context.Context, query string) (domain.LookupResult, error)
	Purge(ctx context.Context, query string) (bool, error)
}

type suggester interface {
	Suggest(prefix string, limit int) []string
}

// LookupHandler serves definition lookups, completions and cache purges.
type LookupHandler struct {
	svc     lookupService
	suggest suggester
	log     *slog.Logger
}

// NewLookupHandler creates a LookupHandler.
func NewLookupHandler(svc lookupService, suggest suggester, logger *slog.Logger) *LookupHandler {
	return &LookupHandler{svc: svc, suggest: suggest, log: logger.With("handler", "lookup")}
}

// wordsResponse wraps a word list.
type wordsResponse struct {
	Words []string `json:"words"`
}

// Lookup handles GET /lookup?q=.
func (h *LookupHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.Lookup(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// Suggest handles GET /suggest?prefix=&limit=.
func (h *LookupHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	limit := defaultSuggestLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > maxSuggestLimit {
			writeError(w, http.StatusBadRequest, "limit must be between 1 and "+strconv.Itoa(maxSuggestLimit))
			return
		}
		limit = n
	}

	prefix := domain.NormalizeText(r.URL.Query().Get("prefix"))
	if prefix == "" {
		writeJSON(w, http.StatusOK, wordsResponse{Words: []string{}})
		return
	}
	writeJSON(w, http.StatusOK, wordsResponse{Words: orEmpty(h.suggest.Suggest(prefix, limit))})
}

// Purge handles DELETE /cache/{word}.
func (h *LookupHandler) Purge(w http.ResponseWriter, r *http.Request) {
	removed, err := h.svc.Purge(r.Context(), mux.Vars(r)["word"])
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	if !removed {
		writeError(w, http.StatusNotFound, "not cached")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
