/*

Package router dispatches requests to controllers through a trie of path segments.

A [Router] leverages a standardized data model - a [Route] -
when registering how requests should be routed.
A path pattern and an HTTP method comprise a [Route].
A [Controller] is the function called when a request matches a Route.
Before a request gets to a controller, though,
any middlewares added to the Route are called in the order they appear.

Patterns are split on "/" into segments.
A segment prefixed with ":" is a parameter binding whatever the request holds in its position:

	r := router.New(middleware.RequestID())
	r.Get("/users/active", listActive)
	r.Get("/users/:id", showUser)

A literal segment always wins over a parameter at the same depth,
so "/users/active" reaches listActive while "/users/42" reaches showUser with id bound to "42".

Middlewares run in three tiers:
those of the server, those passed to [New] or [Router.Use], and those of the matched Route.
Any of them returning [middleware.End] stops everything that would have followed.
A Router itself is a [middleware.Handler],
so a server holds routers and plain middlewares in one ordered chain.
When no route matches, the Router marks the response http.StatusNotFound
and lets the chain continue.

Routes are registered once, before serving.
It is often the case that small errors lead to registering a route incorrectly,
so registration fails loudly: Register returns an error and the Get, Post, Put, Patch
and Delete shorthands panic.
The first request a Router handles freezes it; registering afterward fails with [ErrFrozen].

*/
package router
