package middleware_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/alicebob/miniredis"
	"github.com/go-redis/redis/v8"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/waypoint/http/middleware"
	"github.com/xy-planning-network/waypoint/http/req"
	"github.com/xy-planning-network/waypoint/http/resp"
	"github.com/xy-planning-network/waypoint/logger"
)

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	s, err := miniredis.Run()
	require.Nil(t, err)

	client := redis.NewClient(&redis.Options{Addr: s.Addr()})
	t.Cleanup(func() {
		client.Close()
		s.Close()
	})

	return s, client
}

func TestRedisRateLimit(t *testing.T) {
	// Arrange + Act
	actual := middleware.RedisRateLimit(nil, 1, time.Second, nil)

	// Assert
	requireNoop(t, actual)

	// Arrange
	s, client := newRedis(t)
	h := middleware.RedisRateLimit(client, 2, time.Minute, nil)
	r := req.New(req.MethodGet, "/", req.WithRemoteAddr("203.0.113.7:1000"))

	for i := 0; i < 2; i++ {
		// Act
		res := h.Handle(r, resp.New())

		// Assert
		require.Equal(t, middleware.Next, res)
	}

	require.True(t, s.TTL("waypoint:ratelimit:203.0.113.7") > 0)

	// Arrange
	w := resp.New()

	// Act
	res := h.Handle(r, w)

	// Assert
	require.Equal(t, middleware.End, res)
	require.Equal(t, http.StatusTooManyRequests, w.StatusCode())
	require.NotEmpty(t, w.Header("Retry-After"))

	// Arrange
	s.Del("waypoint:ratelimit:203.0.113.7")

	// Act
	res = h.Handle(r, resp.New())

	// Assert
	require.Equal(t, middleware.Next, res)
}

func TestRedisRateLimitRepairsWindow(t *testing.T) {
	// Arrange
	s, client := newRedis(t)
	key := "waypoint:ratelimit:203.0.113.8"
	require.Nil(t, s.Set(key, "5"))
	h := middleware.RedisRateLimit(client, 2, time.Minute, nil)
	r := req.New(req.MethodGet, "/", req.WithRemoteAddr("203.0.113.8:1000"))

	// Act
	res := h.Handle(r, resp.New())

	// Assert
	require.Equal(t, middleware.End, res)
	require.True(t, s.TTL(key) > 0)

	// Arrange
	s.FastForward(time.Minute)

	// Act
	res = h.Handle(r, resp.New())

	// Assert
	require.Equal(t, middleware.Next, res)
}

func TestRedisRateLimitUnavailable(t *testing.T) {
	// Arrange
	ctrl := gomock.NewController(t)
	log := logger.NewMockLogger(ctrl)
	log.EXPECT().Warn("rate limit unavailable", gomock.Any()).Times(1)

	s, err := miniredis.Run()
	require.Nil(t, err)

	client := redis.NewClient(&redis.Options{Addr: s.Addr(), MaxRetries: -1})
	defer client.Close()

	h := middleware.RedisRateLimit(client, 1, time.Minute, log)
	s.Close()

	// Act
	res := h.Handle(req.New(req.MethodGet, "/"), resp.New())

	// Assert
	require.Equal(t, middleware.Next, res)
}
