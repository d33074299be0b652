package api

import (
	"log/slog"
	stdhttp "net/http"

	intconfig "busbooking/internal/config"
	h "busbooking/internal/http/handlers"
	"busbooking/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

func NewRouter(env intconfig.Env, hd h.Handler) *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logger(),
		gin.Recovery(),
		middleware.CORS(env.CORSAllowedOrigins),
		middleware.Session(hd.Auth),
	)

	if err := r.SetTrustedProxies(nil); err != nil {
		slog.Warn("failed to set trusted proxies", slog.Any("error", err))
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/endpoints", h.Endpoints)

		// Routes and seat maps
		routes := api.Group("/routes")
		routes.GET("", hd.ListRoutes)
		routes.GET("/search", hd.SearchRoutes)
		routes.GET("/:id/seats", hd.SeatMap)

		// Bookings
		bookings := api.Group("/bookings")
		bookings.POST("", hd.CreateBooking)
		bookings.GET("", hd.ListBookings)
		bookings.GET("/:id/e-ticket", hd.ETicket)

		// Auth
		auth := api.Group("/auth")
		auth.POST("/signup", hd.Signup)
		auth.POST("/login", hd.Login)
		auth.POST("/logout", hd.Logout)
	}

	h.SetRouter(r)
	return r
}
