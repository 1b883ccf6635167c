/*
Package req defines the request a waypoint server dispatches.

A [*Request] is an immutable snapshot of an inbound HTTP request:
its [Method], the path split into segments, headers, query parameters, body
and the peer address.
The only value that ever changes is the set of path parameters
bound by a router, and even that happens on a copy; see [*Request.WithParams].
Middlewares that inspected a request earlier in a chain never observe
the bound copy.

A [*Request] comes from one of two places:
[FromHTTP] converts an [*net/http.Request] accepted by a running server,
and [New] builds one directly, which is how tests exercise handlers.

Package req also provides a [Parser] for decoding JSON bodies
and query parameters into structs, validating them along the way.
Errors it returns are translated to waypoint sentinel errors.
*/
package req
