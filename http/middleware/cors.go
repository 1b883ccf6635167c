package middleware

import (
	"net/http"

	"github.com/gorilla/handlers"
)

// CORS sets "Access-Control-Allowed" style headers on a response.
//
// Preflight OPTIONS requests are answered by CORS itself
// since waypoint routers do not dispatch on http.MethodOptions.
//
// If base is empty, NoopAdapter returns.
func CORS(base string) Adapter {
	if base == "" {
		return NoopAdapter
	}

	return handlers.CORS(
		handlers.AllowedHeaders([]string{
			"Authorization",
			"Content-Type",
			IdempotencyHeader,
			RequestIDHeader,
		}),
		handlers.AllowedOrigins([]string{base}),
		handlers.AllowedMethods([]string{
			http.MethodDelete,
			http.MethodGet,
			http.MethodOptions,
			http.MethodPatch,
			http.MethodPost,
			http.MethodPut,
		}),
		handlers.ExposedHeaders([]string{RequestIDHeader}),
	)
}

// ProxyHeaders trusts the "X-Forwarded-For", "X-Forwarded-Proto" and "X-Forwarded-Host" headers
// set by a reverse proxy in front of the server.
func ProxyHeaders() Adapter { return handlers.ProxyHeaders }
