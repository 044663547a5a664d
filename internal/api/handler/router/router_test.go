package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler(body string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(body))
	})
}

func TestRouter_Routes(t *testing.T) {
	rt := New(
		WithRoutes(Route{Path: "/health", Method: http.MethodGet, Handler: okHandler("health")}),
		WithRoutes(
			Route{Path: "/mcp", Method: http.MethodGet, Handler: okHandler("status")},
			Route{Path: "/mcp", Method: http.MethodPost, Handler: okHandler("rpc")},
		),
	)

	routes := rt.Routes()
	require.Len(t, routes, 3)
	assert.Equal(t, http.MethodGet, routes[0].Method)
	assert.Equal(t, "/health", routes[0].Path)
	assert.Equal(t, http.MethodPost, routes[2].Method)
	assert.Equal(t, "/mcp", routes[2].Path)

	routes[0].Path = "/changed"
	assert.Equal(t, "/health", rt.Routes()[0].Path)
}

func TestRouter_RouteMiddlewares(t *testing.T) {
	var order []string
	mark := func(name string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	rt := New(WithRoutes(Route{
		Path:        "/mcp",
		Method:      http.MethodPost,
		Handler:     okHandler("rpc"),
		Middlewares: []func(http.Handler) http.Handler{mark("first"), mark("second")},
	}))

	rec := httptest.NewRecorder()
	rt.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/mcp", nil))

	assert.Equal(t, "rpc", rec.Body.String())
	assert.Equal(t, []string{"first", "second"}, order)
}

func TestRouter_NotFoundAndMethodNotAllowed(t *testing.T) {
	rt := New(WithRoutes(Route{Path: "/mcp", Method: http.MethodPost, Handler: okHandler("rpc")}))

	rec := httptest.NewRecorder()
	rt.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"not found"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	rt.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/mcp", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
}
