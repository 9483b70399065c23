package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"inclusive_jobs/internal/session"
)

type recordedRequest struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header
	Body   []byte
}

// fakeBackend запоминает каждый запрос и отвечает через route.
type fakeBackend struct {
	mu       sync.Mutex
	requests []recordedRequest
	route    func(w http.ResponseWriter, r *http.Request, body []byte)
	server   *httptest.Server
}

func newFakeBackend(t *testing.T, route func(w http.ResponseWriter, r *http.Request, body []byte)) *fakeBackend {
	t.Helper()
	b := &fakeBackend{route: route}
	b.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		b.mu.Lock()
		b.requests = append(b.requests, recordedRequest{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.Query(),
			Header: r.Header.Clone(),
			Body:   body,
		})
		b.mu.Unlock()
		if b.route == nil {
			writeJSON(w, http.StatusOK, map[string]any{})
			return
		}
		b.route(w, r, body)
	}))
	t.Cleanup(b.server.Close)
	return b
}

func (b *fakeBackend) all() []recordedRequest {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]recordedRequest, len(b.requests))
	copy(out, b.requests)
	return out
}

func (b *fakeBackend) last(t *testing.T) recordedRequest {
	t.Helper()
	reqs := b.all()
	if len(reqs) == 0 {
		t.Fatalf("expected at least one request")
	}
	return reqs[len(reqs)-1]
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func page(content any, last bool) map[string]any {
	return map[string]any{"content": content, "last": last}
}

type staticTokens struct {
	token string
	err   error
}

func (s staticTokens) Token(context.Context) (string, error) {
	return s.token, s.err
}

func newTestClient(t *testing.T, backend *fakeBackend, manager *session.Manager, logs *bytes.Buffer) *Client {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if logs != nil {
		logger = slog.New(slog.NewTextHandler(logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	var tokens TokenSource
	if manager != nil {
		tokens = manager
	}
	return NewClient(backend.server.URL+"/", tokens, WithLogger(logger))
}
