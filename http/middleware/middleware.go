package middleware

import (
	"net/http"

	"github.com/xy-planning-network/waypoint/http/req"
	"github.com/xy-planning-network/waypoint/http/resp"
)

// A Result tells the chain running a Handler whether to keep going.
type Result int

const (
	// Next passes control to the following Handler.
	Next Result = iota

	// End stops the chain; the response is written as it stands.
	End
)

func (res Result) String() string {
	switch res {
	case Next:
		return "Next"
	case End:
		return "End"
	default:
		return "Unknown"
	}
}

// A Handler inspects a request and mutates its response.
//
// Routers and middlewares are both Handlers, so a server's global chain can hold either.
// Handlers are shared by every request in flight;
// any internal state must be safe for concurrent use.
type Handler interface {
	Handle(r *req.Request, w *resp.Response) Result
}

// The HandlerFunc type is an adapter allowing the use of ordinary functions as Handlers.
type HandlerFunc func(r *req.Request, w *resp.Response) Result

// Handle calls f(r, w).
func (f HandlerFunc) Handle(r *req.Request, w *resp.Response) Result { return f(r, w) }

// Run calls each Handler in chain in order, stopping at the first one returning End.
func Run(chain []Handler, r *req.Request, w *resp.Response) Result {
	for _, h := range chain {
		if h.Handle(r, w) == End {
			return End
		}
	}

	return Next
}

// NoopHandler does nothing.
func NoopHandler(_ *req.Request, _ *resp.Response) Result { return Next }

// An Adapter allows chaining net/http middlewares together around a server.
type Adapter func(http.Handler) http.Handler

// Chain glues the set of adapters to the handler.
func Chain(handler http.Handler, adapters ...Adapter) http.Handler {
	// NOTE: loop in reverse to preserve middleware order
	for i := len(adapters) - 1; i >= 0; i-- {
		handler = adapters[i](handler)
	}

	return handler
}

// NoopAdapter passes h through untouched.
func NoopAdapter(h http.Handler) http.Handler { return h }
