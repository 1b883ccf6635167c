package middleware

import (
	"github.com/google/uuid"
	"github.com/xy-planning-network/waypoint"
	"github.com/xy-planning-network/waypoint/http/req"
	"github.com/xy-planning-network/waypoint/http/resp"
)

// RequestIDHeader carries the ID of a request back to the client.
const RequestIDHeader = "X-Request-ID"

// RequestID tags each request with a uuid,
// stashing it in the response's locals under waypoint.RequestIDKey and setting RequestIDHeader.
//
// A valid uuid sent by the client in RequestIDHeader is kept.
func RequestID() Handler {
	return HandlerFunc(func(r *req.Request, w *resp.Response) Result {
		id := r.Header(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}

		w.SetLocal(waypoint.RequestIDKey.String(), id)
		w.SetHeader(RequestIDHeader, id)
		return Next
	})
}
