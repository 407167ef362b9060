package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/wordjournal/internal/domain"
	"github.com/heartmarshall/wordjournal/pkg/ctxutil"
)

// errorResponse is the JSON body of every non-2xx response.
type errorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// handleError maps lookup errors to HTTP statuses. A not-found response
// carries the last source's error as detail.
func handleError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	var chainErr *domain.ChainError
	switch {
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &chainErr):
		resp := errorResponse{Error: "not found"}
		if last := chainErr.Last(); last != nil {
			resp.Detail = last.Error()
		}
		writeJSON(w, http.StatusNotFound, resp)
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, context.DeadlineExceeded):
		writeError(w, http.StatusGatewayTimeout, "lookup timed out")
	case errors.Is(err, context.Canceled):
		writeError(w, http.StatusServiceUnavailable, "lookup canceled")
	default:
		ctxutil.LoggerFromCtx(r.Context(), log).ErrorContext(r.Context(), "internal error", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
