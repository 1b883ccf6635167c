package resp

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"sync"

	"github.com/xy-planning-network/waypoint"
)

const (
	ContentTypeJSON = "application/json; charset=UTF-8"
	ContentTypeText = "text/plain; charset=UTF-8"
)

var pool = sync.Pool{New: func() any { return new(bytes.Buffer) }}

// A Response is the outgoing half of a request passing through the handler chain.
//
// A Response is owned by the goroutine serving its request and is not safe for concurrent use.
type Response struct {
	code   int
	header http.Header
	body   []byte
	locals map[string]any
}

// New constructs a *Response with status http.StatusNotFound.
func New() *Response {
	return &Response{
		code:   http.StatusNotFound,
		header: make(http.Header),
		locals: make(map[string]any),
	}
}

// Status sets the status code.
func (r *Response) Status(code int) *Response {
	r.code = code
	return r
}

// StatusCode reports the status code.
func (r *Response) StatusCode() int { return r.code }

// IsError reports whether the status code is a 4xx or 5xx.
func (r *Response) IsError() bool { return r.code >= http.StatusBadRequest }

// SetHeader replaces any values for key with val.
func (r *Response) SetHeader(key, val string) *Response {
	r.header.Set(key, val)
	return r
}

// Header gets the first value set for key.
func (r *Response) Header(key string) string { return r.header.Get(key) }

// Headers returns a copy of all headers set.
func (r *Response) Headers() http.Header { return r.header.Clone() }

// DelHeader removes key.
func (r *Response) DelHeader(key string) *Response {
	r.header.Del(key)
	return r
}

// Body sets b as the body and contentType as its Content-Type.
// An empty contentType defaults to ContentTypeText.
func (r *Response) Body(b []byte, contentType string) *Response {
	if contentType == "" {
		contentType = ContentTypeText
	}

	r.header.Set("Content-Type", contentType)
	r.body = b
	return r
}

// Text sets s as a plain text body.
func (r *Response) Text(s string) *Response {
	return r.Body([]byte(s), ContentTypeText)
}

// JSON encodes data as the body.
func (r *Response) JSON(data any) error {
	b := pool.Get().(*bytes.Buffer)
	b.Reset()
	defer pool.Put(b)

	if err := json.NewEncoder(b).Encode(data); err != nil {
		return fmt.Errorf("%w: failed encoding %T: %s", waypoint.ErrBadFormat, data, err)
	}

	out := append([]byte(nil), bytes.TrimSuffix(b.Bytes(), []byte("\n"))...)
	r.Body(out, ContentTypeJSON)
	return nil
}

// UpdateBody replaces an existing body, keeping its Content-Type.
//
// UpdateBody returns ErrNoBody if no body has been set yet.
func (r *Response) UpdateBody(b []byte) error {
	if len(r.body) == 0 {
		return ErrNoBody
	}

	r.body = b
	return nil
}

// BodyBytes returns the body.
func (r *Response) BodyBytes() []byte { return r.body }

// SetLocal stores val under key for later handlers of the same request.
func (r *Response) SetLocal(key string, val any) { r.locals[key] = val }

// Local gets the value stored under key.
func (r *Response) Local(key string) (any, bool) {
	val, ok := r.locals[key]
	return val, ok
}

// Write sends the status, headers and body to w.
func (r *Response) Write(w http.ResponseWriter) error {
	h := w.Header()
	for key, vals := range r.header {
		h[key] = append([]string(nil), vals...)
	}

	if !bodyAllowed(r.code) {
		w.WriteHeader(r.code)
		return nil
	}

	h.Set("Content-Length", strconv.Itoa(len(r.body)))
	w.WriteHeader(r.code)

	if len(r.body) == 0 {
		return nil
	}

	if _, err := w.Write(r.body); err != nil {
		return fmt.Errorf("waypoint/http/resp: failed writing body: %w", err)
	}

	return nil
}

// bodyAllowed mirrors the statuses net/http refuses to write a body for.
func bodyAllowed(code int) bool {
	switch {
	case code >= 100 && code <= 199:
		return false
	case code == http.StatusNoContent, code == http.StatusNotModified:
		return false
	}

	return true
}
