package main

import (
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/waypoint"
	"github.com/xy-planning-network/waypoint/http/middleware"
	"github.com/xy-planning-network/waypoint/http/req"
	"github.com/xy-planning-network/waypoint/logger"
	"github.com/xy-planning-network/waypoint/server"
)

func newApp(t *testing.T) (*server.Server, *prometheus.Registry) {
	t.Helper()
	t.Setenv("REDIS_URL", "")
	t.Setenv("EXAMPLE_JWT_SECRET", "test-secret")

	reg := prometheus.NewRegistry()
	srv, err := app(reg,
		server.WithConfig(server.Config{Env: waypoint.Development}),
		server.WithLogger(logger.New(logger.WithLogger(log.New(io.Discard, "", 0)))),
	)
	require.NoError(t, err)

	return srv, reg
}

func token(t *testing.T, secret string) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "admin"}).SignedString([]byte(secret))
	require.NoError(t, err)

	return signed
}

func TestApp(t *testing.T) {
	// Arrange
	srv, reg := newApp(t)
	create := func(key, body string) *req.Request {
		return req.New(req.MethodPost, "/items",
			req.WithHeader(middleware.IdempotencyHeader, key),
			req.WithBody([]byte(body)),
		)
	}

	for _, tc := range []struct {
		name string
		r    *req.Request
		code int
		body string
	}{
		{"Empty-List", req.New(req.MethodGet, "/items"), http.StatusOK, `[]`},
		{"Create-Without-Key", req.New(req.MethodPost, "/items", req.WithBody([]byte(`{"name":"lamp"}`))), http.StatusBadRequest, ""},
		{"Create", create("1", `{"name":"lamp","price":30}`), http.StatusCreated, `{"id":1,"name":"lamp","price":30}`},
		{"Create-Replay", create("1", `{"name":"lamp","price":30}`), http.StatusCreated, `{"id":1,"name":"lamp","price":30}`},
		{"Create-Reused-Key", create("1", `{"name":"desk","price":90}`), http.StatusUnprocessableEntity, ""},
		{"Create-Invalid", create("2", `{"price":-1}`), http.StatusUnprocessableEntity, ""},
		{"Show", req.New(req.MethodGet, "/items/1"), http.StatusOK, `{"id":1,"name":"lamp","price":30}`},
		{"Show-Missing", req.New(req.MethodGet, "/items/42"), http.StatusNotFound, `{"error":"no such item"}`},
		{"List", req.New(req.MethodGet, "/items?max=5"), http.StatusOK, `[{"id":1,"name":"lamp","price":30}]`},
		{"List-Bad-Query", req.New(req.MethodGet, "/items?max=-5"), http.StatusBadRequest, ""},
		{"Delete-Unauthorized", req.New(req.MethodDelete, "/admin/items/1"), http.StatusUnauthorized, ""},
		{"Delete-Wrong-Secret", req.New(req.MethodDelete, "/admin/items/1", req.WithHeader("Authorization", "Bearer "+token(t, "nope"))), http.StatusUnauthorized, ""},
		{"Delete", req.New(req.MethodDelete, "/admin/items/1", req.WithHeader("Authorization", "Bearer "+token(t, "test-secret"))), http.StatusNoContent, ""},
		{"Show-Deleted", req.New(req.MethodGet, "/items/1"), http.StatusNotFound, `{"error":"no such item"}`},
		{"Not-Found", req.New(req.MethodGet, "/nowhere"), http.StatusNotFound, ""},
	} {
		t.Run(tc.name, func(t *testing.T) {
			// Act
			w := srv.Mock(tc.r)

			// Assert
			require.Equal(t, tc.code, w.StatusCode())
			require.NotEmpty(t, w.Header(middleware.RequestIDHeader))
			require.Equal(t, "SAMEORIGIN", w.Header("X-Frame-Options"))
			if tc.body != "" {
				require.JSONEq(t, tc.body, string(w.BodyBytes()))
			}
		})
	}

	count, err := testutil.GatherAndCount(reg, "waypoint_http_requests_total")
	require.NoError(t, err)
	require.NotZero(t, count)
}

func TestMetricsEndpoint(t *testing.T) {
	// Arrange
	srv, reg := newApp(t)
	h := middleware.Chain(srv, metricsEndpoint(reg))
	srv.Mock(req.New(req.MethodGet, "/items"))
	w := httptest.NewRecorder()

	// Act
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	// Assert
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "waypoint_http_requests_total")
}
