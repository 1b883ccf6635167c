package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/xy-planning-network/waypoint/http/req"
	"github.com/xy-planning-network/waypoint/http/resp"
	"github.com/xy-planning-network/waypoint/logger"
)

const redisRateLimitPrefix = "waypoint:ratelimit:"

// redisRateLimitScript counts a hit and opens the window in one step.
// A counter found without a TTL gets one, so no client is limited forever.
var redisRateLimitScript = redis.NewScript(`
local n = redis.call("INCR", KEYS[1])
if n == 1 or redis.call("PTTL", KEYS[1]) < 0 then
	redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return n
`)

// RedisRateLimit limits each client, identified by ClientIP, to limit requests per window.
// Counts are kept in Redis, so every server sharing client enforces the same budget.
//
// A client over budget gets http.StatusTooManyRequests, a Retry-After header and the chain ends.
// If Redis cannot be reached, requests are let through and the failure is logged to log, if not nil.
//
// If client is nil or limit is not positive, RedisRateLimit does nothing.
func RedisRateLimit(client redis.Cmdable, limit int64, window time.Duration, log logger.Logger) Handler {
	if client == nil || limit < 1 || window <= 0 {
		return HandlerFunc(NoopHandler)
	}

	return HandlerFunc(func(r *req.Request, w *resp.Response) Result {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()

		key := redisRateLimitPrefix + ClientIP(r)
		count, err := redisRateLimitScript.Run(ctx, client, []string{key}, window.Milliseconds()).Int64()
		if err != nil {
			if log != nil {
				log.Warn("rate limit unavailable", &logger.LogContext{Error: err, Request: r})
			}
			return Next
		}

		if count <= limit {
			return Next
		}

		retry := window
		if ttl, err := client.PTTL(ctx, key).Result(); err == nil && ttl > 0 {
			retry = ttl
		}

		w.Status(http.StatusTooManyRequests).
			SetHeader("Retry-After", strconv.Itoa(int((retry+time.Second-1)/time.Second))).
			Text(http.StatusText(http.StatusTooManyRequests))
		return End
	})
}
