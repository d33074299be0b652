package handlers

import (
	"net/http"
	"time"

	"busbooking/internal/domain"
	"busbooking/internal/http/middleware"
	"busbooking/internal/services"
	"busbooking/internal/utils"

	"github.com/gin-gonic/gin"
)

// Handler carries the services behind the HTTP endpoints.
type Handler struct {
	Routes   services.RouteService
	Bookings services.BookingService
	Docs     services.DocsService
	Auth     services.AuthService

	SessionTTL   time.Duration
	SecureCookie bool
}

// fail answers with the mapped domain error. An upstream rejection of the caller's
// token ends the session so the client is asked to log in again.
func (h Handler) fail(c *gin.Context, module string, err error) {
	if domain.IsUnauthorized(err) {
		h.endSession(c)
	}
	if !domain.IsValidation(err) && !domain.IsNotFound(err) {
		utils.LogWarn(middleware.GetRequestID(c), module, c.Request.Method+" "+c.FullPath(), err)
	}
	RespondDomainError(c, err)
}

// requireToken stops the request with 401 when no session token was resolved.
func (h Handler) requireToken(c *gin.Context) (string, bool) {
	tok := middleware.GetToken(c)
	if tok == "" {
		respondError(c, http.StatusUnauthorized, "unauthorized", "please login first", nil)
		return "", false
	}
	return tok, true
}

func (h Handler) endSession(c *gin.Context) {
	if sid := middleware.GetSessionID(c); sid != "" {
		_ = h.Auth.Logout(c.Request.Context(), sid)
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", h.SecureCookie, true)
}
