package router

import (
	"fmt"
	"net/http"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/xy-planning-network/waypoint"
	"github.com/xy-planning-network/waypoint/http/middleware"
	"github.com/xy-planning-network/waypoint/http/req"
	"github.com/xy-planning-network/waypoint/http/resp"
)

// A Controller produces the response for a request matching a route.
// Path parameters are bound on r; see [req.Request.Param].
type Controller func(r *req.Request, w *resp.Response)

// A Route maps a path and HTTP method to a [Controller].
// Additional [middleware.Handler] run before the Controller when a router
// handles a request matching the Route.
type Route struct {
	Path        string
	Method      req.Method
	Controller  Controller
	Middlewares []middleware.Handler
}

// A RouteInfo describes a registered route.
type RouteInfo struct {
	Method  req.Method
	Pattern string
}

func (ri RouteInfo) String() string { return ri.Method.String() + " " + ri.Pattern }

// A Router dispatches requests to Controllers by path and method.
//
// Routes are registered before serving. The first call to Handle freezes the Router,
// after which lookups run without locking and any further registration fails with ErrFrozen.
type Router struct {
	mu     sync.Mutex
	frozen atomic.Bool
	mws    []middleware.Handler
	t      tree
}

var _ middleware.Handler = (*Router)(nil)

// New constructs a *Router running mws on every request it handles,
// whether or not a route matches.
func New(mws ...middleware.Handler) *Router {
	return &Router{mws: compact(mws), t: newTree()}
}

// Register adds a route for the method and path pattern.
// Segments of path prefixed with ":" bind whatever appears in their position,
// e.g., "/users/:id".
//
// Register returns ErrInvalidSegment, ErrConflictingParam, or ErrDuplicateRoute
// for a route the Router cannot hold, and ErrFrozen once the Router is serving.
func (rt *Router) Register(m req.Method, path string, c Controller, mws ...middleware.Handler) error {
	if err := m.Valid(); err != nil {
		return fmt.Errorf("%w: %w %q", waypoint.ErrBadConfig, req.ErrUnsupportedMethod, m)
	}

	if c == nil {
		return fmt.Errorf("%w: nil controller for %s %s", waypoint.ErrBadConfig, m, path)
	}

	segs, err := ParsePath(path)
	if err != nil {
		return err
	}

	rt.mu.Lock()
	defer rt.mu.Unlock()

	if rt.frozen.Load() {
		return fmt.Errorf("%w: %s %s", ErrFrozen, m, path)
	}

	return rt.t.insert(segs, endpoint{method: m, controller: c, middlewares: compact(mws)})
}

// Get registers a GET route, panicking if it cannot.
func (rt *Router) Get(path string, c Controller, mws ...middleware.Handler) *Router {
	return rt.must(rt.Register(req.MethodGet, path, c, mws...))
}

// Post registers a POST route, panicking if it cannot.
func (rt *Router) Post(path string, c Controller, mws ...middleware.Handler) *Router {
	return rt.must(rt.Register(req.MethodPost, path, c, mws...))
}

// Put registers a PUT route, panicking if it cannot.
func (rt *Router) Put(path string, c Controller, mws ...middleware.Handler) *Router {
	return rt.must(rt.Register(req.MethodPut, path, c, mws...))
}

// Patch registers a PATCH route, panicking if it cannot.
func (rt *Router) Patch(path string, c Controller, mws ...middleware.Handler) *Router {
	return rt.must(rt.Register(req.MethodPatch, path, c, mws...))
}

// Delete registers a DELETE route, panicking if it cannot.
func (rt *Router) Delete(path string, c Controller, mws ...middleware.Handler) *Router {
	return rt.must(rt.Register(req.MethodDelete, path, c, mws...))
}

func (rt *Router) must(err error) *Router {
	if err != nil {
		panic(err)
	}

	return rt
}

// HandleRoutes registers the set of Routes on the Router
// and includes all the middlewares on each Route.
// Any [middleware.Handler] already assigned to a Route is appended to middlewares,
// so are called after the shared set.
//
// HandleRoutes stops at the first Route that cannot be registered.
func (rt *Router) HandleRoutes(routes []Route, mws ...middleware.Handler) error {
	for _, route := range routes {
		all := append(mws[:len(mws):len(mws)], route.Middlewares...)
		if err := rt.Register(route.Method, route.Path, route.Controller, all...); err != nil {
			return err
		}
	}

	return nil
}

// Use appends mws to the middlewares the Router runs on every request.
func (rt *Router) Use(mws ...middleware.Handler) error {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	if rt.frozen.Load() {
		return ErrFrozen
	}

	rt.mws = append(rt.mws, compact(mws)...)

	return nil
}

// Mount grafts every route of sub under prefix,
// e.g., mounting a sub holding "/users/:id" at "/api" serves "/api/users/:id".
// The middlewares sub runs on every request run first on each grafted route.
//
// Mount freezes sub. Mounting at "/" is refused with ErrInvalidSegment;
// register the routes directly instead.
// Mount stops at the first route that cannot be grafted.
func (rt *Router) Mount(prefix string, sub *Router) error {
	if sub == nil || sub == rt {
		return fmt.Errorf("%w: cannot mount router at %q", waypoint.ErrBadConfig, prefix)
	}

	pre, err := ParsePath(prefix)
	if err != nil {
		return err
	}

	if len(pre) == 0 {
		return fmt.Errorf("%w: cannot mount router at %q", ErrInvalidSegment, prefix)
	}

	sub.Freeze()

	type graft struct {
		segs []Segment
		ep   endpoint
	}

	var grafts []graft
	sub.t.walk(func(segs []Segment, ep *endpoint) {
		g := graft{segs: append(pre[:len(pre):len(pre)], segs...), ep: *ep}
		g.ep.middlewares = append(sub.mws[:len(sub.mws):len(sub.mws)], ep.middlewares...)
		grafts = append(grafts, g)
	})

	rt.mu.Lock()
	defer rt.mu.Unlock()

	if rt.frozen.Load() {
		return fmt.Errorf("%w: mount at %q", ErrFrozen, prefix)
	}

	for _, g := range grafts {
		if err := rt.t.insert(g.segs, g.ep); err != nil {
			return err
		}
	}

	return nil
}

// Freeze ends the registration phase.
// Handle calls Freeze on its first call.
func (rt *Router) Freeze() {
	rt.mu.Lock()
	rt.frozen.Store(true)
	rt.mu.Unlock()
}

// Frozen reports whether the Router still accepts routes.
func (rt *Router) Frozen() bool { return rt.frozen.Load() }

// Routes lists every registered route sorted by pattern, then method.
func (rt *Router) Routes() []RouteInfo {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	var routes []RouteInfo
	rt.t.walk(func(_ []Segment, ep *endpoint) {
		routes = append(routes, RouteInfo{Method: ep.method, Pattern: ep.pattern})
	})

	sort.Slice(routes, func(i, j int) bool {
		if routes[i].Pattern != routes[j].Pattern {
			return routes[i].Pattern < routes[j].Pattern
		}

		return routes[i].Method < routes[j].Method
	})

	return routes
}

// Match reports the route r resolves to and the path parameters it binds,
// without running anything.
func (rt *Router) Match(r *req.Request) (RouteInfo, req.Params, bool) {
	if !rt.frozen.Load() {
		rt.mu.Lock()
		defer rt.mu.Unlock()
	}

	ep, params, ok := rt.t.lookup(r.Segments(), r.Method())
	if !ok {
		return RouteInfo{}, nil, false
	}

	return RouteInfo{Method: ep.method, Pattern: ep.pattern}, params, true
}

// Handle runs the Router's middlewares and then, if r matches a route,
// the route's middlewares followed by its Controller.
//
// When nothing matches, Handle sets http.StatusNotFound and returns [middleware.Next]
// so later Handlers, e.g., [middleware.Static], still get a chance to answer.
//
// Path parameters are bound on a copy of r made just before the Controller runs;
// every middleware sees r unchanged.
func (rt *Router) Handle(r *req.Request, w *resp.Response) middleware.Result {
	if !rt.frozen.Load() {
		rt.Freeze()
	}

	if middleware.Run(rt.mws, r, w) == middleware.End {
		return middleware.End
	}

	ep, params, ok := rt.t.lookup(r.Segments(), r.Method())
	if !ok {
		w.Status(http.StatusNotFound)
		return middleware.Next
	}

	if middleware.Run(ep.middlewares, r, w) == middleware.End {
		return middleware.End
	}

	ep.controller(r.WithParams(params), w)

	return middleware.Next
}

// compact drops nil Handlers.
func compact(mws []middleware.Handler) []middleware.Handler {
	out := make([]middleware.Handler, 0, len(mws))
	for _, mw := range mws {
		if mw != nil {
			out = append(out, mw)
		}
	}

	return out
}
