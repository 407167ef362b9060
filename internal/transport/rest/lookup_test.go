package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/wordjournal/internal/domain"
	"github.com/heartmarshall/wordjournal/internal/recent"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func dogResult() domain.LookupResult {
	return domain.LookupResult{
		Word: "dog",
		Meanings: []domain.Meaning{{
			PartOfSpeech: "noun",
			Definitions:  []domain.Definition{{Text: "a domesticated carnivorous mammal"}},
		}},
		SourceURLs: []string{"https://en.wiktionary.org/wiki/dog"},
	}
}

func newTestRouter(svc *lookupServiceMock, sug *suggesterMock, tracker *recent.Tracker) http.Handler {
	if sug == nil {
		sug = &suggesterMock{SuggestFunc: func(string, int) []string { return []string{} }}
	}
	if tracker == nil {
		tracker = recent.NewTracker(recent.DefaultCapacity)
	}
	log := discardLogger()
	return NewRouter(
		NewLookupHandler(svc, sug, log),
		NewRecentHandler(tracker, log),
		NewHealthHandler(nil, nil, "test"),
	)
}

func serve(t *testing.T, h http.Handler, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func TestLookup_Success(t *testing.T) {
	t.Parallel()

	svc := &lookupServiceMock{
		LookupFunc: func(_ context.Context, q string) (domain.LookupResult, error) {
			return dogResult(), nil
		},
	}
	rec := serve(t, newTestRouter(svc, nil, nil), http.MethodGet, "/api/v1/lookup?q=Dog")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var got domain.LookupResult
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, dogResult(), got)
	assert.Equal(t, []string{"Dog"}, svc.LookupCalls(), "normalization belongs to the service")
}

func TestLookup_ErrorMapping(t *testing.T) {
	t.Parallel()

	chainErr := &domain.ChainError{
		Query: "qwzx",
		Attempts: []domain.SourceError{
			{Source: "freedict", Word: "qwzx", Err: domain.ErrNotFound},
			{Source: "wiktionary", Word: "qwzx", Err: &domain.NetworkError{Source: "wiktionary", StatusCode: 503}},
		},
	}

	tests := []struct {
		name       string
		err        error
		wantCode   int
		wantError  string
		wantDetail string
	}{
		{name: "invalid input", err: fmt.Errorf("%w: empty query", domain.ErrInvalidInput), wantCode: http.StatusBadRequest, wantError: "invalid input: empty query"},
		{name: "chain exhausted", err: chainErr, wantCode: http.StatusNotFound, wantError: "not found", wantDetail: "wiktionary: unexpected status 503"},
		{name: "plain not found", err: domain.ErrNotFound, wantCode: http.StatusNotFound, wantError: "not found"},
		{name: "deadline", err: fmt.Errorf("lookup: %w", context.DeadlineExceeded), wantCode: http.StatusGatewayTimeout, wantError: "lookup timed out"},
		{name: "internal", err: fmt.Errorf("boom"), wantCode: http.StatusInternalServerError, wantError: "internal server error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc := &lookupServiceMock{
				LookupFunc: func(context.Context, string) (domain.LookupResult, error) {
					return domain.LookupResult{}, tt.err
				},
			}
			rec := serve(t, newTestRouter(svc, nil, nil), http.MethodGet, "/api/v1/lookup?q=qwzx")

			require.Equal(t, tt.wantCode, rec.Code)
			var body errorResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.Equal(t, tt.wantError, body.Error)
			assert.Equal(t, tt.wantDetail, body.Detail)
		})
	}
}

func TestSuggest(t *testing.T) {
	t.Parallel()

	var gotPrefix string
	var gotLimit int
	sug := &suggesterMock{
		SuggestFunc: func(prefix string, limit int) []string {
			gotPrefix, gotLimit = prefix, limit
			return []string{"serendipity", "serene"}
		},
	}
	h := newTestRouter(&lookupServiceMock{}, sug, nil)

	rec := serve(t, h, http.MethodGet, "/api/v1/suggest?prefix=SER&limit=5")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"words":["serendipity","serene"]}`, rec.Body.String())
	assert.Equal(t, "ser", gotPrefix)
	assert.Equal(t, 5, gotLimit)

	rec = serve(t, h, http.MethodGet, "/api/v1/suggest?prefix=ser")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, defaultSuggestLimit, gotLimit)
}

func TestSuggest_EmptyPrefix(t *testing.T) {
	t.Parallel()

	sug := &suggesterMock{SuggestFunc: func(string, int) []string {
		t.Error("suggester must not be called for an empty prefix")
		return nil
	}}
	rec := serve(t, newTestRouter(&lookupServiceMock{}, sug, nil), http.MethodGet, "/api/v1/suggest?prefix=%20")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"words":[]}`, rec.Body.String())
}

func TestSuggest_InvalidLimit(t *testing.T) {
	t.Parallel()

	h := newTestRouter(&lookupServiceMock{}, nil, nil)
	for _, limit := range []string{"0", "-1", "abc", "51"} {
		rec := serve(t, h, http.MethodGet, "/api/v1/suggest?prefix=se&limit="+limit)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "limit %q", limit)
	}
}

func TestPurge(t *testing.T) {
	t.Parallel()

	var purged []string
	svc := &lookupServiceMock{
		PurgeFunc: func(_ context.Context, q string) (bool, error) {
			purged = append(purged, q)
			return q == "break a leg", nil
		},
	}
	h := newTestRouter(svc, nil, nil)

	rec := serve(t, h, http.MethodDelete, "/api/v1/cache/break%20a%20leg")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = serve(t, h, http.MethodDelete, "/api/v1/cache/unknown")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	assert.Equal(t, []string{"break a leg", "unknown"}, purged)
}

func TestRouter_UnknownRouteAndMethod(t *testing.T) {
	t.Parallel()

	h := newTestRouter(&lookupServiceMock{}, nil, nil)

	rec := serve(t, h, http.MethodGet, "/api/v1/nope")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"no such endpoint"}`, rec.Body.String())

	for _, tc := range []struct{ method, path string }{
		{http.MethodPost, "/api/v1/lookup?q=dog"},
		{http.MethodGet, "/api/v1/cache/dog"},
		{http.MethodPut, "/api/v1/recent"},
	} {
		rec = serve(t, h, tc.method, tc.path)
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code, "%s %s", tc.method, tc.path)
		assert.JSONEq(t, `{"error":"method not allowed"}`, rec.Body.String())
	}

	rec = serve(t, h, http.MethodPost, "/health")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestRouter_APIMiddlewareSkipsProbes(t *testing.T) {
	t.Parallel()

	var wrapped []string
	mw := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			wrapped = append(wrapped, r.URL.Path)
			next.ServeHTTP(w, r)
		})
	}
	log := discardLogger()
	svc := &lookupServiceMock{
		LookupFunc: func(context.Context, string) (domain.LookupResult, error) { return dogResult(), nil },
	}
	h := NewRouter(
		NewLookupHandler(svc, &suggesterMock{}, log),
		NewRecentHandler(recent.NewTracker(5), log),
		NewHealthHandler(nil, nil, "test"),
		mw,
	)

	serve(t, h, http.MethodGet, "/live")
	serve(t, h, http.MethodGet, "/api/v1/lookup?q=dog")
	assert.Equal(t, []string{"/api/v1/lookup"}, wrapped)
}
