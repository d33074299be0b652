package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"busbooking/internal/apiclient"
	"busbooking/internal/availability"
	intconfig "busbooking/internal/config"
	router "busbooking/internal/http"
	"busbooking/internal/http/handlers"
	"busbooking/internal/services"
	"busbooking/internal/session"
	"busbooking/internal/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	env := intconfig.LoadEnv()
	utils.InitLogger(env.LogLevel, env.LogFormat, os.Stdout)
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openSessionStore(ctx, env)
	if err != nil {
		slog.Error("session store unavailable", slog.String("backend", env.SessionBackend), slog.Any("error", err))
		os.Exit(1)
	}
	defer closeStore()

	client := apiclient.New(env.APIBaseURL, env.APITimeout)
	engine := availability.Engine{DefaultSeats: env.DefaultTotalSeats}
	bookings := services.BookingService{API: client, Engine: engine}
	hd := handlers.Handler{
		Routes:       services.RouteService{API: client, Engine: engine},
		Bookings:     bookings,
		Docs:         services.DocsService{Bookings: bookings},
		Auth:         services.AuthService{API: client, Store: store, TTL: env.SessionTTL},
		SessionTTL:   env.SessionTTL,
		SecureCookie: env.GinMode == gin.ReleaseMode,
	}

	r := router.NewRouter(env, hd)

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      2*env.APITimeout + 10*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		slog.Info("server listening",
			slog.String("addr", env.AppAddr),
			slog.String("api_base_url", env.APIBaseURL),
			slog.String("session_backend", env.SessionBackend))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown failed", slog.Any("error", err))
		return
	}
	slog.Info("server stopped cleanly")
}

// openSessionStore builds the configured session backend and returns its cleanup.
func openSessionStore(ctx context.Context, env intconfig.Env) (session.Store, func(), error) {
	switch env.SessionBackend {
	case "", "memory":
		return session.NewMemoryStore(), func() {}, nil

	case "redis":
		rs, err := session.NewRedisStore(ctx, session.RedisConfig{
			Addr:     env.RedisAddr,
			Password: env.RedisPassword,
			DB:       env.RedisDB,
		})
		if err != nil {
			return nil, nil, err
		}
		return rs, closer("redis", rs), nil

	case "mysql":
		db, err := intconfig.OpenSessionDB(ctx, env.MySQLDSN)
		if err != nil {
			return nil, nil, err
		}
		st := session.NewSQLStore(db)
		if err := st.EnsureSchema(ctx); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		go purgeExpiredSessions(ctx, st, env.SessionTTL)
		return st, closer("mysql", db), nil

	default:
		return nil, nil, fmt.Errorf("unknown SESSION_BACKEND %q (want memory, redis or mysql)", env.SessionBackend)
	}
}

func closer(name string, c io.Closer) func() {
	return func() {
		if err := c.Close(); err != nil {
			slog.Warn("close failed", slog.String("resource", name), slog.Any("error", err))
		}
	}
}

// purgeExpiredSessions sweeps the sessions table until ctx ends. Redis and memory
// stores expire entries on their own.
func purgeExpiredSessions(ctx context.Context, st *session.SQLStore, ttl time.Duration) {
	every := ttl / 4
	if every < time.Minute {
		every = time.Minute
	}
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			n, err := st.PurgeExpired(ctx)
			if err != nil {
				slog.Warn("purge expired sessions", slog.Any("error", err))
				continue
			}
			if n > 0 {
				slog.Info("purged expired sessions", slog.Int64("count", n))
			}
		}
	}
}
