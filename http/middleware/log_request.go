package middleware

import (
	"fmt"
	"strings"

	"github.com/xy-planning-network/waypoint"
	"github.com/xy-planning-network/waypoint/http/req"
	"github.com/xy-planning-network/waypoint/http/resp"
	"github.com/xy-planning-network/waypoint/logger"
)

// LogRequest logs the request's method, requested URI, and originating IP address
// using the enclosed implementation of logger.Logger.
//
// LogRequest scrubs the values for the following keys:
// - password
//
// If logger.Logger is nil, LogRequest does nothing.
func LogRequest(ls logger.Logger) Handler {
	if ls == nil {
		return HandlerFunc(NoopHandler)
	}

	return HandlerFunc(func(r *req.Request, w *resp.Response) Result {
		uri := r.Path()
		q := r.Queries()
		waypoint.Mask(q, "password")
		if query := q.Encode(); query != "" {
			uri += "?" + query
		}

		strs := []string{ClientIP(r), r.Method().String(), uri}
		if id, ok := w.Local(waypoint.RequestIDKey.String()); ok {
			strs = append(strs, fmt.Sprint(id))
		}

		ls.Info(strings.Join(strs, " "), nil)
		return Next
	})
}
