package rest

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/heartmarshall/wordjournal/internal/transport/middleware"
)

// APIPrefix is the path prefix of the versioned lookup API.
const APIPrefix = "/api/v1"

// NewRouter wires every handler. apiMiddleware wraps the /api/v1 routes only,
// so health checks are never rate limited.
func NewRouter(
	lookup *LookupHandler,
	recent *RecentHandler,
	health *HealthHandler,
	apiMiddleware ...middleware.Middleware,
) *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/live", health.Live).Methods(http.MethodGet)
	router.HandleFunc("/ready", health.Ready).Methods(http.MethodGet)
	router.HandleFunc("/health", health.Health).Methods(http.MethodGet)

	api := router.PathPrefix(APIPrefix).Subrouter()
	for _, mw := range apiMiddleware {
		api.Use(mux.MiddlewareFunc(mw))
	}
	api.HandleFunc("/lookup", lookup.Lookup).Methods(http.MethodGet)
	api.HandleFunc("/suggest", lookup.Suggest).Methods(http.MethodGet)
	api.HandleFunc("/cache/{word}", lookup.Purge).Methods(http.MethodDelete)
	api.HandleFunc("/recent", recent.List).Methods(http.MethodGet)
	api.HandleFunc("/recent/stream", recent.Stream).Methods(http.MethodGet)
	api.HandleFunc("/recent/{word}", recent.Remove).Methods(http.MethodDelete)

	notFound := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "no such endpoint")
	})
	notAllowed := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})
	// mux subrouters answer unmatched requests themselves.
	for _, r := range []*mux.Router{router, api} {
		r.NotFoundHandler = notFound
		r.MethodNotAllowedHandler = notAllowed
	}
	return router
}
