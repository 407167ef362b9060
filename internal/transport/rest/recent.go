package rest

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/heartmarshall/wordjournal/pkg/ctxutil"
)

type recentList interface {
	List() []string
	Remove(word string) bool
	Subscribe() (<-chan []string, func())
}

// RecentHandler serves the recent-lookups list.
type RecentHandler struct {
	recents recentList
	log     *slog.Logger
}

// NewRecentHandler creates a RecentHandler.
func NewRecentHandler(recents recentList, logger *slog.Logger) *RecentHandler {
	return &RecentHandler{recents: recents, log: logger.With("handler", "recent")}
}

// List handles GET /recent.
func (h *RecentHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, wordsResponse{Words: orEmpty(h.recents.List())})
}

// Remove handles DELETE /recent/{word}.
func (h *RecentHandler) Remove(w http.ResponseWriter, r *http.Request) {
	if !h.recents.Remove(mux.Vars(r)["word"]) {
		writeError(w, http.StatusNotFound, "not in recent lookups")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Stream handles GET /recent/stream: a server-sent event with the full list
// is emitted now and after every change, until the client disconnects.
func (h *RecentHandler) Stream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	updates, cancel := h.recents.Subscribe()
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case words, ok := <-updates:
			if !ok {
				return
			}
			blob, err := json.Marshal(wordsResponse{Words: orEmpty(words)})
			if err == nil {
				_, err = fmt.Fprintf(w, "event: recent\ndata: %s\n\n", blob)
			}
			if err != nil {
				ctxutil.LoggerFromCtx(r.Context(), h.log).DebugContext(r.Context(), "recent stream closed", slog.String("error", err.Error()))
				return
			}
			flusher.Flush()
		}
	}
}

// orEmpty keeps empty lists encoded as [] rather than null.
func orEmpty(words []string) []string {
	if words == nil {
		return []string{}
	}
	return words
}
