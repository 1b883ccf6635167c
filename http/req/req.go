package req

import (
	"net"
	"net/http"
	"net/url"
	"strings"
)

// Params maps the name of a path parameter to the path segment
// observed in its position for a single request.
type Params map[string]string

// A Request is an immutable HTTP request.
type Request struct {
	method     Method
	path       string
	segments   []string
	header     http.Header
	query      url.Values
	body       []byte
	remoteAddr string
	params     Params
}

// New constructs a *Request for the method and request target,
// e.g., "/items/abc?x=1".
// The query string of target, if any, populates the request's query parameters
// and stays attached to the final path segment.
//
// The path of target may be percent-encoded;
// Path reports it decoded while Segments keep the encoding,
// so an encoded "?" or "/" never splits a segment.
func New(method Method, target string, opts ...OptFn) *Request {
	path, rawQuery, _ := strings.Cut(target, "?")
	if path == "" {
		path = "/"
	}

	if decoded, err := url.PathUnescape(path); err == nil {
		path = decoded
	}

	query, _ := url.ParseQuery(rawQuery)

	r := &Request{
		method:   method,
		path:     path,
		segments: SplitPath(target),
		header:   make(http.Header),
		query:    query,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// SplitPath splits the request target into its non-empty path segments.
//
// The query string, if present, remains attached to the last segment:
//
//	"/"                          => []
//	"/hello/world"               => ["hello", "world"]
//	"/hello/world?city=istanbul" => ["hello", "world?city=istanbul"]
//
// A query string on a target without path segments is dropped.
func SplitPath(target string) []string {
	path, rawQuery, hasQuery := strings.Cut(target, "?")

	segments := make([]string, 0, strings.Count(path, "/")+1)
	for _, s := range strings.Split(path, "/") {
		if s != "" {
			segments = append(segments, s)
		}
	}

	if hasQuery && len(segments) > 0 {
		segments[len(segments)-1] += "?" + rawQuery
	}

	return segments
}

// Body returns the raw request body.
// The returned slice must not be modified.
func (r *Request) Body() []byte { return r.body }

// Header returns the first value of the header key.
func (r *Request) Header(key string) string { return r.header.Get(key) }

// Headers returns a copy of all request headers.
func (r *Request) Headers() http.Header { return r.header.Clone() }

// IP returns the host portion of the peer address.
func (r *Request) IP() string {
	host, _, err := net.SplitHostPort(r.remoteAddr)
	if err != nil {
		return r.remoteAddr
	}

	return host
}

// Method returns the request's HTTP method.
func (r *Request) Method() Method { return r.method }

// Param returns the value bound to the path parameter name
// and whether it was bound at all.
//
// Parameters are bound only on the *Request a router hands to a controller.
func (r *Request) Param(name string) (string, bool) {
	val, ok := r.params[name]
	return val, ok
}

// Params returns a copy of all bound path parameters.
func (r *Request) Params() Params {
	p := make(Params, len(r.params))
	for k, v := range r.params {
		p[k] = v
	}

	return p
}

// Path returns the request path without its query string.
func (r *Request) Path() string { return r.path }

// Query returns the first value of the query parameter key.
func (r *Request) Query(key string) string { return r.query.Get(key) }

// Queries returns a copy of all query parameters.
func (r *Request) Queries() url.Values {
	q := make(url.Values, len(r.query))
	for k, vs := range r.query {
		q[k] = append([]string(nil), vs...)
	}

	return q
}

// RemoteAddr returns the network address of the peer that sent the request.
func (r *Request) RemoteAddr() string { return r.remoteAddr }

// Segments returns a copy of the still percent-encoded request path split into segments;
// see SplitPath.
func (r *Request) Segments() []string {
	return append([]string(nil), r.segments...)
}

// WithParams returns a shallow copy of r with params merged over any parameters
// already bound to r.
// r itself is never modified.
func (r *Request) WithParams(params Params) *Request {
	cp := *r
	cp.params = make(Params, len(r.params)+len(params))
	for k, v := range r.params {
		cp.params[k] = v
	}

	for k, v := range params {
		cp.params[k] = v
	}

	return &cp
}
