package waypoint

// A Key names a value a middleware stashes in a response's locals
// for handlers later in the chain.
type Key string

const (
	// ClaimsKey stashes the verified JWT claims of an HTTP request.
	ClaimsKey Key = "ClaimsKey"

	// IdempotencyKey stashes the idempotency key of an HTTP request.
	IdempotencyKey Key = "IdempotencyKey"

	// IPAddrKey stashes the IP address of an HTTP request being handled by waypoint.
	IPAddrKey Key = "IPAddrKey"

	// RequestIDKey stashes a unique UUID for each HTTP request.
	RequestIDKey Key = "RequestIDKey"
)

// String returns the key as stored in a response's locals.
func (k Key) String() string { return "waypoint." + string(k) }
