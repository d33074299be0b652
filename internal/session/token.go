package session

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrTokenExpired means the bearer token's exp claim has passed.
var ErrTokenExpired = errors.New("token expired")

// TokenExpiry reads the exp claim of a JWT without verifying its signature;
// the API owns the signing key. ok is false for opaque or exp-less tokens.
func TokenExpiry(token string) (exp time.Time, ok bool) {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return time.Time{}, false
	}
	nd, err := parsed.Claims.GetExpirationTime()
	if err != nil || nd == nil {
		return time.Time{}, false
	}
	return nd.Time, true
}

// TTLFor returns how long to keep a token: until its exp claim when it has one,
// capped by fallback. Expired tokens yield ErrTokenExpired.
func TTLFor(token string, fallback time.Duration, now time.Time) (time.Duration, error) {
	exp, ok := TokenExpiry(token)
	if !ok {
		return fallback, nil
	}
	ttl := exp.Sub(now)
	if ttl <= 0 {
		return 0, ErrTokenExpired
	}
	if fallback > 0 && ttl > fallback {
		return fallback, nil
	}
	return ttl, nil
}
