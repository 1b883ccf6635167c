package middleware

import (
	"net/http"
	"net/url"

	"github.com/xy-planning-network/waypoint"
	"github.com/xy-planning-network/waypoint/http/req"
	"github.com/xy-planning-network/waypoint/http/resp"
)

// ForceHTTPS redirects HTTP requests to HTTPS if the environment is not "development".
//
// The "X-Forwarded-Proto" header is used to check whether HTTP was requested due to a waypoint server
// running behind a proxy.
func ForceHTTPS(env waypoint.Environment) Handler {
	return HandlerFunc(func(r *req.Request, w *resp.Response) Result {
		if r.Header("X-Forwarded-Proto") == "https" || env.IsDevelopment() {
			return Next
		}

		u := &url.URL{
			Scheme:   "https",
			Host:     r.Header("Host"),
			Path:     r.Path(),
			RawQuery: r.Queries().Encode(),
		}

		w.Status(http.StatusPermanentRedirect).SetHeader("Location", u.String())
		return End
	})
}
