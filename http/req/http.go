package req

import (
	"fmt"
	"io"
	"net/http"
)

// DefaultMaxBodyBytes caps how much of a request body FromHTTP reads.
const DefaultMaxBodyBytes int64 = 1 << 20

// FromHTTP converts r into a *Request, reading at most maxBody bytes of its body.
// A maxBody of zero or less uses DefaultMaxBodyBytes.
//
// The Host of r is carried over as the Host header.
// The path keeps its percent-encoding in the Request's segments.
//
// FromHTTP returns ErrUnsupportedMethod if r.Method is not a Method
// and ErrBodyTooLarge if the body exceeds maxBody.
func FromHTTP(r *http.Request, maxBody int64) (*Request, error) {
	m, err := ParseMethod(r.Method)
	if err != nil {
		return nil, err
	}

	if maxBody <= 0 {
		maxBody = DefaultMaxBodyBytes
	}

	var body []byte
	if r.Body != nil {
		body, err = io.ReadAll(io.LimitReader(r.Body, maxBody+1))
		if err != nil {
			return nil, fmt.Errorf("failed reading request body: %w", err)
		}

		if int64(len(body)) > maxBody {
			return nil, fmt.Errorf("%w: more than %d bytes", ErrBodyTooLarge, maxBody)
		}
	}

	target := r.URL.EscapedPath()
	if r.URL.RawQuery != "" {
		target += "?" + r.URL.RawQuery
	}

	out := New(m, target, WithBody(body), WithRemoteAddr(r.RemoteAddr))
	out.header = r.Header.Clone()
	if out.header == nil {
		out.header = make(http.Header)
	}

	if r.Host != "" && out.header.Get("Host") == "" {
		out.header.Set("Host", r.Host)
	}

	return out, nil
}
