package handlers

import (
	"net/http"

	"busbooking/internal/domain"
	"busbooking/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

type signupRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

type loginRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /api/auth/signup
func (h Handler) Signup(c *gin.Context) {
	var req signupRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	err := h.Auth.Signup(c.Request.Context(), domain.SignupRequest{
		Name:            req.Name,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		h.fail(c, "auth", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Signup successful! Please login."})
}

// POST /api/auth/login
func (h Handler) Login(c *gin.Context) {
	var req loginRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	username := req.Username
	if username == "" {
		username = req.Email
	}

	sid, err := h.Auth.Login(c.Request.Context(), username, req.Password)
	if err != nil {
		h.fail(c, "auth", err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, sid, int(h.SessionTTL.Seconds()), "/", "", h.SecureCookie, true)
	c.JSON(http.StatusOK, gin.H{"message": "Login successful!", "session_id": sid})
}

// POST /api/auth/logout
func (h Handler) Logout(c *gin.Context) {
	h.endSession(c)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}
