/*
Package server runs a waypoint app's web server with sane defaults.

# Server

The main entrypoint to package server is the [Server] type,
constructed with [New] and any [ServerOption].
A [Server] holds an ordered chain of [middleware.Handler]:
routers from package router and plain middlewares alike.
Every request runs through that chain until a Handler returns [middleware.End]
or the chain runs out; whatever response the chain built is then written.

	rt := router.New().Get("/items/:id", showItem)
	srv, err := server.New(
		server.WithHandlers(middleware.RequestID(), rt, middleware.Static(os.DirFS("public"))),
		server.WithAdapters(middleware.ReportPanic(env), middleware.CORS(baseURL)),
	)

[*Server.Guide] begins the web server.
By default, [*Server.Guide] listens on [DefaultPort] (:3000).
Upon calling [*Server.Guide], every router in the chain is frozen:
registering routes afterward fails.
Stop that web server with [*Server.Shutdown],
cancel the context given to [WithContext],
or send a signal [*Server.Guide] listens for.

[*Server.Mock] runs a request through the chain without any network I/O,
handy for testing a whole app.

# Configuration

A developer configures a waypoint app through environment variables,
optionally overridden by a YAML file; cf. [NewConfig].
Environment variables ought to be set in a file called ".env"
found at the same directory the application is executed from.
*/
package server
