package middleware

import (
	"errors"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/xy-planning-network/waypoint/http/req"
	"github.com/xy-planning-network/waypoint/http/resp"
)

// RequestMetrics holds the collectors Metrics records into.
type RequestMetrics struct {
	// Requests counts requests by method and status code.
	Requests *prometheus.CounterVec

	// Duration observes the seconds spent in the wrapped Handler by method.
	Duration *prometheus.HistogramVec
}

// NewRequestMetrics constructs the collectors for Metrics and registers them with reg.
//
// Collectors already registered with reg are reused,
// so several Metrics middlewares can share one registry.
func NewRequestMetrics(reg prometheus.Registerer) (*RequestMetrics, error) {
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "waypoint",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Count of HTTP requests dispatched, by method and status code.",
	}, []string{"method", "code"})

	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "waypoint",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "Time spent dispatching HTTP requests, by method.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method"})

	if err := reg.Register(requests); err != nil {
		var are prometheus.AlreadyRegisteredError
		if !errors.As(err, &are) {
			return nil, err
		}
		requests = are.ExistingCollector.(*prometheus.CounterVec)
	}

	if err := reg.Register(duration); err != nil {
		var are prometheus.AlreadyRegisteredError
		if !errors.As(err, &are) {
			return nil, err
		}
		duration = are.ExistingCollector.(*prometheus.HistogramVec)
	}

	return &RequestMetrics{Requests: requests, Duration: duration}, nil
}

// Metrics runs next and records the outcome in m.
//
// If m is nil, next returns unwrapped.
func Metrics(m *RequestMetrics, next Handler) Handler {
	if m == nil {
		return next
	}

	return HandlerFunc(func(r *req.Request, w *resp.Response) Result {
		start := time.Now()
		res := next.Handle(r, w)

		method := r.Method().String()
		m.Duration.WithLabelValues(method).Observe(time.Since(start).Seconds())
		m.Requests.WithLabelValues(method, strconv.Itoa(w.StatusCode())).Inc()

		return res
	})
}
