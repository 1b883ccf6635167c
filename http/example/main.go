/*

Package main provides a toy example use of waypoint's http stack.

Run it and try:

	curl localhost:3000/items
	curl -X POST -H 'Idempotency-Key: 1' -d '{"name":"lamp","price":30}' localhost:3000/items
	curl localhost:3000/items/1
	curl localhost:3000/metrics

Deleting goes through /admin, which wants a JWT signed with EXAMPLE_JWT_SECRET.
Set REDIS_URL to share the rate limit between instances.

*/
package main

import (
	"fmt"
	"net/http"
	"os"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/xy-planning-network/waypoint"
	"github.com/xy-planning-network/waypoint/http/middleware"
	"github.com/xy-planning-network/waypoint/http/req"
	"github.com/xy-planning-network/waypoint/http/resp"
	"github.com/xy-planning-network/waypoint/http/router"
	"github.com/xy-planning-network/waypoint/logger"
	"github.com/xy-planning-network/waypoint/server"
)

type item struct {
	ID    int    `json:"id"`
	Name  string `json:"name" validate:"required"`
	Price int    `json:"price" validate:"gte=0"`
}

type listQuery struct {
	Max int `schema:"max" validate:"omitempty,gt=0"`
}

// inventory is the in-memory store the example's controllers share.
type inventory struct {
	mu     sync.Mutex
	items  map[int]item
	nextID int

	l logger.Logger
	p *req.Parser
}

func (inv *inventory) list(r *req.Request, w *resp.Response) {
	var q listQuery
	if err := inv.p.ParseQueryParams(r, &q); err != nil {
		inv.fail(w, http.StatusBadRequest, err)
		return
	}

	inv.mu.Lock()
	items := make([]item, 0, len(inv.items))
	for _, it := range inv.items {
		items = append(items, it)
	}
	inv.mu.Unlock()

	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	if q.Max > 0 && q.Max < len(items) {
		items = items[:q.Max]
	}

	inv.json(w, http.StatusOK, items)
}

func (inv *inventory) show(r *req.Request, w *resp.Response) {
	it, ok := inv.find(r)
	if !ok {
		inv.json(w, http.StatusNotFound, map[string]string{"error": "no such item"})
		return
	}

	inv.json(w, http.StatusOK, it)
}

func (inv *inventory) create(r *req.Request, w *resp.Response) {
	var it item
	if err := inv.p.ParseBody(r, &it); err != nil {
		inv.fail(w, http.StatusUnprocessableEntity, err)
		return
	}

	inv.mu.Lock()
	inv.nextID++
	it.ID = inv.nextID
	inv.items[it.ID] = it
	inv.mu.Unlock()

	inv.l.Info(fmt.Sprintf("created item %d", it.ID), &logger.LogContext{Request: r})
	inv.json(w, http.StatusCreated, it)
}

func (inv *inventory) remove(r *req.Request, w *resp.Response) {
	it, ok := inv.find(r)
	if !ok {
		inv.json(w, http.StatusNotFound, map[string]string{"error": "no such item"})
		return
	}

	inv.mu.Lock()
	delete(inv.items, it.ID)
	inv.mu.Unlock()

	w.Status(http.StatusNoContent)
}

func (inv *inventory) find(r *req.Request) (item, bool) {
	raw, _ := r.Param("id")
	id, err := strconv.Atoi(raw)
	if err != nil {
		return item{}, false
	}

	inv.mu.Lock()
	defer inv.mu.Unlock()

	it, ok := inv.items[id]
	return it, ok
}

func (inv *inventory) fail(w *resp.Response, code int, err error) {
	inv.l.Warn("bad request", &logger.LogContext{Error: err})
	inv.json(w, code, map[string]any{"error": err.Error()})
}

func (inv *inventory) json(w *resp.Response, code int, data any) {
	if err := w.Status(code).JSON(data); err != nil {
		inv.l.Error("could not encode response", &logger.LogContext{Error: err})
		w.Status(http.StatusInternalServerError)
	}
}

// metricsEndpoint serves the Prometheus registry at /metrics ahead of the waypoint chain.
func metricsEndpoint(g prometheus.Gatherer) middleware.Adapter {
	metrics := promhttp.HandlerFor(g, promhttp.HandlerOpts{})
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/metrics" {
				metrics.ServeHTTP(w, r)
				return
			}

			h.ServeHTTP(w, r)
		})
	}
}

// rateLimiter limits through redis when REDIS_URL is set and in memory otherwise.
func rateLimiter(l logger.Logger) middleware.Handler {
	u := os.Getenv("REDIS_URL")
	if u == "" {
		return middleware.RateLimit(middleware.NewVisitors())
	}

	opts, err := redis.ParseURL(u)
	if err != nil {
		l.Warn("bad REDIS_URL, limiting in memory", &logger.LogContext{Error: err})
		return middleware.RateLimit(middleware.NewVisitors())
	}

	return middleware.RedisRateLimit(redis.NewClient(opts), 100, time.Minute, l)
}

// app wires the example's routers and middlewares into a *server.Server.
func app(reg *prometheus.Registry, opts ...server.ServerOption) (*server.Server, error) {
	srv, err := server.New(opts...)
	if err != nil {
		return nil, err
	}

	l := srv.Logger()
	env := srv.Config().Env
	inv := &inventory{items: make(map[int]item), l: l, p: req.NewParser()}

	api := router.New(middleware.InjectIPAddress(), rateLimiter(l))
	if err := api.HandleRoutes([]router.Route{
		{Path: "/items", Method: req.MethodGet, Controller: inv.list},
		{Path: "/items", Method: req.MethodPost, Controller: inv.create},
		{Path: "/items/:id", Method: req.MethodGet, Controller: inv.show},
	}); err != nil {
		return nil, err
	}

	admin := router.New(middleware.RequireJWT([]byte(waypoint.EnvVarOrString("EXAMPLE_JWT_SECRET", "example-secret"))))
	admin.Delete("/items/:id", inv.remove)
	if err := api.Mount("/admin", admin); err != nil {
		return nil, err
	}

	rm, err := middleware.NewRequestMetrics(reg)
	if err != nil {
		return nil, err
	}

	if err := srv.Use(
		middleware.ForceHTTPS(env),
		middleware.RequestID(),
		middleware.LogRequest(l),
		middleware.Helmet(middleware.DefaultHelmetConfig()),
		middleware.Metrics(rm, middleware.Idempotent(middleware.NewIdemResMap(), api)),
		middleware.Static(os.DirFS("public")),
		middleware.Compress(middleware.DefaultCompressLevel),
	); err != nil {
		return nil, err
	}

	for _, ri := range api.Routes() {
		l.Debug("registered "+ri.String(), nil)
	}

	return srv, nil
}

func main() {
	reg := prometheus.NewRegistry()
	cfg, err := server.NewConfig()
	if err != nil {
		fmt.Println(err)
		return
	}

	srv, err := app(reg,
		server.WithConfig(cfg),
		server.WithAdapters(
			middleware.ReportPanic(cfg.Env),
			middleware.ProxyHeaders(),
			middleware.CORS(os.Getenv("BASE_URL")),
			metricsEndpoint(reg),
		),
	)
	if err != nil {
		fmt.Println(err)
		return
	}

	if err := srv.Guide(); err != nil {
		fmt.Println(err)
		return
	}
}
