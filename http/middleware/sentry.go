package middleware

import (
	"net/http"

	sentryhttp "github.com/getsentry/sentry-go/http"
	"github.com/xy-planning-network/waypoint"
)

// ReportPanic recovers panics escaping the server and reports them to Sentry,
// answering with http.StatusInternalServerError.
//
// In development, panics are left alone.
func ReportPanic(env waypoint.Environment) Adapter {
	if env.IsDevelopment() {
		return NoopAdapter
	}

	sh := sentryhttp.New(sentryhttp.Options{
		Repanic:         false,
		WaitForDelivery: true,
	})

	return func(h http.Handler) http.Handler {
		return sh.Handle(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec := &statusRecorder{ResponseWriter: w}
			defer func() {
				if err := recover(); err != nil {
					if !rec.wrote {
						w.WriteHeader(http.StatusInternalServerError)
					}
					panic(err)
				}
			}()

			h.ServeHTTP(rec, r)
		}))
	}
}

// A statusRecorder notes whether a status code reached the client.
type statusRecorder struct {
	http.ResponseWriter
	wrote bool
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.wrote = true
	sr.ResponseWriter.WriteHeader(code)
}

func (sr *statusRecorder) Write(b []byte) (int, error) {
	sr.wrote = true
	return sr.ResponseWriter.Write(b)
}
