package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	SessionCookie = "session_id"
	SessionHeader = "X-Session-ID"

	sessionIDKey = "session_id"
	tokenKey     = "bearer_token"
)

// TokenResolver maps a session id to the bearer token it holds.
type TokenResolver interface {
	Token(ctx context.Context, sessionID string) (string, error)
}

// Session attaches the caller's bearer token, if any, to the gin context. A raw
// "Authorization: Bearer" header wins over a session id. Unresolvable sessions are
// treated as anonymous; handlers that need a token decide how to respond.
func Session(resolver TokenResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		if auth := c.GetHeader("Authorization"); strings.HasPrefix(auth, "Bearer ") {
			if tok := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer ")); tok != "" {
				c.Set(tokenKey, tok)
				c.Next()
				return
			}
		}

		sid := strings.TrimSpace(c.GetHeader(SessionHeader))
		if sid == "" {
			sid, _ = c.Cookie(SessionCookie)
		}
		if sid != "" {
			c.Set(sessionIDKey, sid)
			if tok, err := resolver.Token(c.Request.Context(), sid); err == nil {
				c.Set(tokenKey, tok)
			}
		}
		c.Next()
	}
}

// GetToken returns the bearer token resolved for this request, or "".
func GetToken(c *gin.Context) string {
	return c.GetString(tokenKey)
}

// GetSessionID returns the session id presented by the caller, or "".
func GetSessionID(c *gin.Context) string {
	return c.GetString(sessionIDKey)
}
