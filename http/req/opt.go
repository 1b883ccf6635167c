package req

// An OptFn is a functional option configuring a *Request when constructing a new one.
type OptFn func(*Request)

// WithBody sets the raw request body.
func WithBody(b []byte) OptFn {
	return func(r *Request) {
		r.body = b
	}
}

// WithHeader adds the value to the header key.
func WithHeader(key, val string) OptFn {
	return func(r *Request) {
		r.header.Add(key, val)
	}
}

// WithRemoteAddr sets the peer address, e.g., "203.0.113.7:52100".
func WithRemoteAddr(addr string) OptFn {
	return func(r *Request) {
		r.remoteAddr = addr
	}
}
