/*
The middleware package defines what a middleware is in waypoint and a set of basic middlewares.

A middleware is a Handler returning Next to let the request continue or End to answer it right away.
The same Handler can run as a global handler on a server,
as router middleware or as endpoint middleware.

The available Handlers are:
- Compress
- ForceHTTPS
- Helmet
- Idempotent
- LogRequest
- Metrics
- RateLimit
- RedisRateLimit
- RequestID
- RequireJWT
- Static

Idempotent and Metrics wrap another Handler, usually a router,
since they need to see the response it produces.
Compress and Static belong after the routers in a server's global chain:
Compress rewrites whatever body was produced, and Static answers requests no router matched.

Around the server itself, net/http Adapters are available:
- CORS
- ProxyHeaders
- ReportPanic

Due to the amount of configuration required, middleware does not provide a default middleware chain.
Instead, the following can be copy-pasted:

	vs := middleware.NewVisitors()
	metrics, _ := middleware.NewRequestMetrics(prometheus.DefaultRegisterer)
	srv.Use(
		middleware.RequestID(),
		middleware.RateLimit(vs),
		middleware.ForceHTTPS(env),
		middleware.LogRequest(log),
		middleware.Helmet(middleware.DefaultHelmetConfig()),
		middleware.Metrics(metrics, api),
		middleware.Static(os.DirFS("public")),
		middleware.Compress(middleware.DefaultCompressLevel),
	)

*/
package middleware
