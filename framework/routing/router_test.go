package routing_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/km-arc/go-container/framework/container"
	gohttp "github.com/km-arc/go-container/framework/http"
	"github.com/km-arc/go-container/framework/routing"
)

// ── helpers ──────────────────────────────────────────────────────────────────

func okHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func do(t *testing.T, router *routing.Router, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func newRouter() *routing.Router {
	return routing.New(container.New(), nil)
}

// ── HTTP verbs ────────────────────────────────────────────────────────────────

func TestRouter_Verbs(t *testing.T) {
	r := newRouter()
	r.Get("/hello", okHandler)
	r.Post("/users", okHandler)
	r.Put("/users/{id}", okHandler)
	r.Delete("/users/{id}", okHandler)

	tests := []struct{ method, path string }{
		{http.MethodGet, "/hello"},
		{http.MethodPost, "/users"},
		{http.MethodPut, "/users/1"},
		{http.MethodDelete, "/users/1"},
	}
	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			assert.Equal(t, http.StatusOK, do(t, r, tt.method, tt.path).Code)
		})
	}

	assert.Equal(t, http.StatusMethodNotAllowed, do(t, r, http.MethodPatch, "/hello").Code)
	assert.Equal(t, http.StatusNotFound, do(t, r, http.MethodGet, "/nope").Code)
}

// ── Groups & Prefixes ─────────────────────────────────────────────────────────

func TestRouter_Prefix(t *testing.T) {
	r := newRouter()
	r.Prefix("/api/v1", func(api *routing.Router) {
		api.Get("/users/{id}", func(w http.ResponseWriter, req *http.Request) {
			_, _ = w.Write([]byte(routing.Param(req, "id")))
		})
	})

	rr := do(t, r, http.MethodGet, "/api/v1/users/7")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "7", rr.Body.String())
}

func TestRouter_GroupMiddleware(t *testing.T) {
	r := newRouter()
	r.Get("/public", okHandler)
	r.Group(func(g *routing.Router) {
		g.Middleware(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
			})
		})
		g.Get("/private", okHandler)
	})

	assert.Equal(t, http.StatusOK, do(t, r, http.MethodGet, "/public").Code)
	assert.Equal(t, http.StatusUnauthorized, do(t, r, http.MethodGet, "/private").Code)
}

// ── Container integration ─────────────────────────────────────────────────────

func TestRouter_SetsRequestID(t *testing.T) {
	r := newRouter()
	r.Get("/hello", okHandler)

	first := do(t, r, http.MethodGet, "/hello").Header().Get(gohttp.RequestIDHeader)
	second := do(t, r, http.MethodGet, "/hello").Header().Get(gohttp.RequestIDHeader)

	assert.NotEmpty(t, first)
	assert.NotEqual(t, first, second)
	assert.Equal(t, r.Container().RequestID(), second)
}

func TestRouter_RecoversPanics(t *testing.T) {
	r := newRouter()
	r.Get("/panic", func(http.ResponseWriter, *http.Request) { panic("boom") })

	assert.Equal(t, http.StatusInternalServerError, do(t, r, http.MethodGet, "/panic").Code)
}
