package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"net/http"

	"github.com/xy-planning-network/waypoint"
	"github.com/xy-planning-network/waypoint/http/req"
	"github.com/xy-planning-network/waypoint/http/resp"
)

const (
	IdempotencyHeader = "Idempotency-Key"
)

// Idempotent enables features of idempotency on the POST endpoints dispatched by next.
// GET, DELETE, PUT, & PATCH are idempotent by definition and pass straight through to next.
//
// Idempotent pulls a key (a UUID v4 string) from request headers
// to base the uniqueness of a POST request around.
// A POST without a key gets http.StatusBadRequest.
//
// If a previous request has not used that key,
// Idempotent pairs all of the following values to the key:
// - the hash of the body of the request
// - the body of the resulting response
// - the status code of the resulting response
//
// If that key has been used before (and has not expired),
// Idempotent falls into one of these scenarios:
//
//   - if a status code has not been set for that key,
//     Idempotent responds with 409 since the idempotent request is still processing
//
//   - if the newly requested resource (the URI) does not match the original,
//     Idempotent responds with 422
//
//   - if the new request's body does not match the body of the original request's,
//     Idempotent responds with 422
//
//   - otherwise, Idempotent replays the status code and body set for the key
//
// If cache is nil, an in-memory IdemResMap is used.
//
// Idempotent implements the draft Idempotent HTTP Header Field specification:
// https://tools.ietf.org/id/draft-idempotency-header-01.html
func Idempotent(cache IdempotencyCacher, next Handler) Handler {
	if cache == nil {
		cache = NewIdemResMap()
	}

	return HandlerFunc(func(r *req.Request, w *resp.Response) Result {
		if r.Method() != req.MethodPost {
			return next.Handle(r, w)
		}

		key := r.Header(IdempotencyHeader)
		if key == "" {
			w.Status(http.StatusBadRequest).Text("missing " + IdempotencyHeader + " header")
			return End
		}

		ctx := context.Background()
		sum := sha256.Sum256(r.Body())
		uri := requestURI(r)

		ir, ok := cache.Get(ctx, key)
		if ok {
			switch {
			case ir.Status == 0:
				w.Status(http.StatusConflict)
			case ir.URI != uri || !bytes.Equal(ir.Req, sum[:]):
				w.Status(http.StatusUnprocessableEntity)
			default:
				w.Status(ir.Status)
				if len(ir.Body) > 0 {
					w.Body(ir.Body, ir.ContentType)
				}
			}

			return End
		}

		w.SetLocal(waypoint.IdempotencyKey.String(), key)
		cache.Set(ctx, key, NewIdemRes(uri, sum[:]))

		res := next.Handle(r, w)

		ir = NewIdemRes(uri, sum[:])
		ir.Status = w.StatusCode()
		ir.Body = append([]byte(nil), w.BodyBytes()...)
		ir.ContentType = w.Header("Content-Type")
		cache.Set(ctx, key, ir)

		return res
	})
}

// An IdemRes is data from an HTTP response
// that can be reused when another request
// matches the same idempotency key.
type IdemRes struct {
	Body        []byte
	ContentType string
	Req         []byte
	Status      int
	URI         string
}

// NewIdemRes constructs a new IdemRes.
func NewIdemRes(uri string, hashedBody []byte) IdemRes {
	return IdemRes{URI: uri, Req: hashedBody}
}

func requestURI(r *req.Request) string {
	uri := r.Path()
	if q := r.Queries().Encode(); q != "" {
		uri += "?" + q
	}

	return uri
}
