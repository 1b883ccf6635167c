package middleware_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/waypoint/http/middleware"
	"github.com/xy-planning-network/waypoint/http/req"
	"github.com/xy-planning-network/waypoint/http/resp"
)

func noopHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
}

func teapotHandler() middleware.Handler {
	return middleware.HandlerFunc(func(_ *req.Request, w *resp.Response) middleware.Result {
		w.Status(http.StatusTeapot).Text("short and stout")
		return middleware.Next
	})
}

// recordHandler appends name to calls when run and returns res.
func recordHandler(calls *[]string, name string, res middleware.Result) middleware.Handler {
	return middleware.HandlerFunc(func(_ *req.Request, _ *resp.Response) middleware.Result {
		*calls = append(*calls, name)
		return res
	})
}

func requireNoop(t *testing.T, h middleware.Handler) {
	t.Helper()
	require.Equal(t, fmt.Sprintf("%p", middleware.HandlerFunc(middleware.NoopHandler)), fmt.Sprintf("%p", h))
}

func TestResultString(t *testing.T) {
	require.Equal(t, "Next", middleware.Next.String())
	require.Equal(t, "End", middleware.End.String())
	require.Equal(t, "Unknown", middleware.Result(99).String())
}

func TestRun(t *testing.T) {
	for _, tc := range []struct {
		name     string
		results  []middleware.Result
		expected middleware.Result
		calls    []string
	}{
		{"Empty", nil, middleware.Next, nil},
		{"All-Next", []middleware.Result{middleware.Next, middleware.Next, middleware.Next}, middleware.Next, []string{"0", "1", "2"}},
		{"First-End", []middleware.Result{middleware.End, middleware.Next}, middleware.End, []string{"0"}},
		{"Middle-End", []middleware.Result{middleware.Next, middleware.End, middleware.Next}, middleware.End, []string{"0", "1"}},
		{"Last-End", []middleware.Result{middleware.Next, middleware.End}, middleware.End, []string{"0", "1"}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			var calls []string
			chain := make([]middleware.Handler, 0, len(tc.results))
			for i, res := range tc.results {
				chain = append(chain, recordHandler(&calls, fmt.Sprint(i), res))
			}

			// Act
			actual := middleware.Run(chain, req.New(req.MethodGet, "/"), resp.New())

			// Assert
			require.Equal(t, tc.expected, actual)
			require.Equal(t, tc.calls, calls)
		})
	}
}

func TestRunMutatesResponse(t *testing.T) {
	// Arrange
	w := resp.New()
	chain := []middleware.Handler{
		teapotHandler(),
		middleware.HandlerFunc(func(_ *req.Request, w *resp.Response) middleware.Result {
			w.SetHeader("X-Seen-Status", fmt.Sprint(w.StatusCode()))
			return middleware.Next
		}),
	}

	// Act
	middleware.Run(chain, req.New(req.MethodGet, "/"), w)

	// Assert
	require.Equal(t, http.StatusTeapot, w.StatusCode())
	require.Equal(t, "418", w.Header("X-Seen-Status"))
}

func TestChain(t *testing.T) {
	// Arrange
	var calls []string
	adapter := func(name string) middleware.Adapter {
		return func(h http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls = append(calls, name)
				h.ServeHTTP(w, r)
			})
		}
	}

	h := middleware.Chain(noopHandler(), adapter("first"), middleware.NoopAdapter, adapter("second"))

	// Act
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "https://example.com", nil))

	// Assert
	require.Equal(t, []string{"first", "second"}, calls)
}
