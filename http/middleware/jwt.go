package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v4"
	"github.com/xy-planning-network/waypoint"
	"github.com/xy-planning-network/waypoint/http/req"
	"github.com/xy-planning-network/waypoint/http/resp"
)

// RequireJWT lets through requests bearing a JWT signed with secret using an HMAC method.
// The token is read from the "Authorization: Bearer" header or, failing that, the "jwt" query parameter.
//
// The verified jwt.MapClaims are stashed in the response's locals under waypoint.ClaimsKey.
// Requests without a valid token get http.StatusUnauthorized and the chain ends.
func RequireJWT(secret []byte) Handler {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{
		jwt.SigningMethodHS256.Alg(),
		jwt.SigningMethodHS384.Alg(),
		jwt.SigningMethodHS512.Alg(),
	}))

	keyFn := func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("%w: unexpected signing method %v", waypoint.ErrNotValid, token.Header["alg"])
		}

		return secret, nil
	}

	return HandlerFunc(func(r *req.Request, w *resp.Response) Result {
		raw := bearerToken(r)
		if raw == "" {
			return unauthorized(w, "missing token")
		}

		claims := make(jwt.MapClaims)
		token, err := parser.ParseWithClaims(raw, claims, keyFn)
		if err != nil || !token.Valid {
			return unauthorized(w, "invalid token")
		}

		w.SetLocal(waypoint.ClaimsKey.String(), claims)
		return Next
	})
}

func bearerToken(r *req.Request) string {
	if scheme, token, ok := strings.Cut(r.Header("Authorization"), " "); ok && strings.EqualFold(scheme, "Bearer") {
		return strings.TrimSpace(token)
	}

	return r.Query("jwt")
}

func unauthorized(w *resp.Response, msg string) Result {
	w.Status(http.StatusUnauthorized).
		SetHeader("WWW-Authenticate", `Bearer realm="waypoint"`).
		Text(msg)
	return End
}
