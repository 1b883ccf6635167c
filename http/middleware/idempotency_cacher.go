package middleware

import (
	"bytes"
	"context"
	"encoding/gob"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	idempotencyPrefix = "waypoint:idempotency:"
	idempotencyTTL    = 24 * time.Hour
)

var (
	_ IdempotencyCacher = NewIdemResMap()
	_ IdempotencyCacher = IdemResRedis{}
)

// An IdempotencyCacher can store responses paired to idempotency keys.
type IdempotencyCacher interface {
	Get(ctx context.Context, key string) (IdemRes, bool)
	Set(ctx context.Context, key string, idemRes IdemRes)
}

// An IdemResMap stores idempotency key, IdemRes value pairs in a map.
//
// Server restarts reset this map.
// IdemResMap ought not be used for production environments running more than one server.
type IdemResMap struct {
	mu  sync.Mutex
	val map[string]IdemResMapVal
}

// NewIdemResMap constructs an *IdemResMap
// for use in an Idempotent middleware as a cache.
func NewIdemResMap() *IdemResMap { return &IdemResMap{val: make(map[string]IdemResMapVal)} }

// An IdemResMapVal is stored in an IdemResMap,
// wrapping an IdemRes.
type IdemResMapVal struct {
	IdemRes

	at time.Time
}

// Get retrieves the result of the request matching the idempotency key
// much like a regular map.
func (i *IdemResMap) Get(ctx context.Context, key string) (IdemRes, bool) {
	if key == "" {
		return IdemRes{}, false
	}

	select {
	case <-ctx.Done():
		return IdemRes{}, false

	default:
		i.mu.Lock()
		defer i.mu.Unlock()

		v, ok := i.val[key]
		return v.IdemRes, ok
	}
}

// Set overwrites the value paired to key in the map.
//
// For each call to Set, keys older than 24 hours are evicted.
func (i *IdemResMap) Set(ctx context.Context, key string, idemRes IdemRes) {
	select {
	case <-ctx.Done():
		return
	default:
		i.mu.Lock()
		defer i.mu.Unlock()

		yesterday := time.Now().Add(-idempotencyTTL)
		for k, v := range i.val {
			if v.at.Before(yesterday) {
				delete(i.val, k)
			}
		}

		i.val[key] = IdemResMapVal{IdemRes: idemRes, at: time.Now()}
	}
}

// An IdemResRedis connects to a Redis backend
// for the purposes of caching idempotent responses
// across every server sharing it.
type IdemResRedis struct {
	client redis.Cmdable
}

// NewRedisCache constructs an IdemResRedis storing responses through client.
func NewRedisCache(client redis.Cmdable) IdemResRedis {
	return IdemResRedis{client: client}
}

// Get retrieves the IdemRes paired to key from the connected Redis backend.
func (i IdemResRedis) Get(ctx context.Context, key string) (IdemRes, bool) {
	b, err := i.client.Get(ctx, idempotencyPrefix+key).Bytes()
	if err != nil {
		return IdemRes{}, false
	}

	var ir IdemRes
	if err := gob.NewDecoder(bytes.NewReader(b)).Decode(&ir); err != nil {
		return IdemRes{}, false
	}

	return ir, true
}

// Set saves the IdemRes by pairing it to the key in the Redis backend for 24 hours.
func (i IdemResRedis) Set(ctx context.Context, key string, idemRes IdemRes) {
	buf := new(bytes.Buffer)
	if err := gob.NewEncoder(buf).Encode(idemRes); err != nil {
		return
	}

	i.client.Set(ctx, idempotencyPrefix+key, buf.Bytes(), idempotencyTTL)
}
