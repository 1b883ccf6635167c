package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/xy-planning-network/waypoint/http/req"
	"github.com/xy-planning-network/waypoint/http/resp"
	"golang.org/x/time/rate"
)

const (
	defaultVisitorBurst = 20
	defaultVisitorRate  = 5
	visitorTTL          = 60 * time.Minute
)

// A Visitor tracks a rate limiter and last seen time.
type Visitor struct {
	LastSeen time.Time
	Limiter  *rate.Limiter
}

// A Visitors maps a Visitor to an IP address.
type Visitors struct {
	val   map[string]Visitor
	limit rate.Limit
	burst int
	sync.Mutex
}

// NewVisitors constructs a *Visitors whose newly created visitors are limited
// to 5 requests every second with bursts of up to 20.
func NewVisitors() *Visitors {
	return &Visitors{
		val:   make(map[string]Visitor),
		limit: defaultVisitorRate,
		burst: defaultVisitorBurst,
	}
}

// NewVisitorsBudget constructs a *Visitors granting each visitor tokens requests,
// refilled evenly over refill.
//
// A visitor may spend its whole budget at once.
func NewVisitorsBudget(tokens int, refill time.Duration) *Visitors {
	vs := NewVisitors()
	if tokens < 1 || refill <= 0 {
		return vs
	}

	vs.limit = rate.Every(refill / time.Duration(tokens))
	vs.burst = tokens
	return vs
}

// Fetch retrieves the Visitor for the given ip creating a new Visitor if not seen.
func (vs *Visitors) Fetch(ip string) Visitor {
	vs.Lock()
	defer vs.Unlock()

	v, ok := vs.val[ip]
	if !ok {
		v = Visitor{Limiter: rate.NewLimiter(vs.limit, vs.burst)}
	}

	v.LastSeen = time.Now().UTC()
	vs.val[ip] = v
	return v
}

// Len reports the number of visitors tracked.
func (vs *Visitors) Len() int {
	vs.Lock()
	defer vs.Unlock()

	return len(vs.val)
}

// cleanup deletes a Visitor from Visitors if they have not been seen in over an hour.
func (vs *Visitors) cleanup() {
	vs.Lock()
	defer vs.Unlock()
	for ip, v := range vs.val {
		if time.Since(v.LastSeen) > visitorTTL {
			delete(vs.val, ip)
		}
	}
}

// RateLimit limits each client, identified by ClientIP, to the budget of visitors.
// A client over budget gets http.StatusTooManyRequests and the chain ends.
//
// NOTE: implementation found here:
// https://www.alexedwards.net/blog/how-to-rate-limit-http-requests
//
// If visitors is nil, RateLimit does nothing.
func RateLimit(visitors *Visitors) Handler {
	if visitors == nil {
		return HandlerFunc(NoopHandler)
	}

	return HandlerFunc(func(r *req.Request, w *resp.Response) Result {
		if !visitors.Fetch(ClientIP(r)).Limiter.Allow() {
			w.Status(http.StatusTooManyRequests).Text(http.StatusText(http.StatusTooManyRequests))
			return End
		}

		visitors.cleanup()
		return Next
	})
}
