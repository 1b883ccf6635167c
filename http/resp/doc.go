/*

The resp package provides the mutable Response that middlewares and controllers
build up while a request moves through a waypoint server.

A Response accumulates a status code, headers, a body and request-scoped locals.
Nothing reaches the client until the server calls Write once the handler chain finishes,
so later middlewares can still inspect and rewrite what earlier ones produced.

A fresh Response reports http.StatusNotFound until something claims the request.

*/
package resp
