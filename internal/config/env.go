package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Env struct {
	AppAddr string
	GinMode string

	APIBaseURL        string
	APITimeout        time.Duration
	DefaultTotalSeats int

	SessionBackend string
	SessionTTL     time.Duration
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	MySQLDSN       string

	CORSAllowedOrigins []string

	LogLevel  string
	LogFormat string
}

var defaultOrigins = []string{
	"http://localhost:3000",
	"http://127.0.0.1:3000",
	"http://localhost:5173",
	"http://127.0.0.1:5173",
}

// LoadEnv reads configuration from the process environment, after merging a .env file
// when one is present.
func LoadEnv() Env {
	_ = godotenv.Load()
	return FromLookup(os.Getenv)
}

// FromLookup builds an Env from any key lookup.
func FromLookup(get func(string) string) Env {
	str := func(key, def string) string {
		if v := strings.TrimSpace(get(key)); v != "" {
			return v
		}
		return def
	}
	num := func(key string, def int) int {
		if n, err := strconv.Atoi(strings.TrimSpace(get(key))); err == nil {
			return n
		}
		return def
	}
	dur := func(key string, def time.Duration) time.Duration {
		if d, err := time.ParseDuration(strings.TrimSpace(get(key))); err == nil && d > 0 {
			return d
		}
		return def
	}

	origins := defaultOrigins
	if raw := strings.TrimSpace(get("CORS_ALLOWED_ORIGINS")); raw != "" {
		origins = nil
		for _, o := range strings.Split(raw, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
	}

	seats := num("DEFAULT_TOTAL_SEATS", 50)
	if seats <= 0 {
		seats = 50
	}

	return Env{
		AppAddr:            str("APP_ADDR", ":8080"),
		GinMode:            str("GIN_MODE", ""),
		APIBaseURL:         strings.TrimRight(str("API_BASE_URL", "http://127.0.0.1:8000/api"), "/"),
		APITimeout:         dur("API_TIMEOUT", 10*time.Second),
		DefaultTotalSeats:  seats,
		SessionBackend:     strings.ToLower(str("SESSION_BACKEND", "memory")),
		SessionTTL:         dur("SESSION_TTL", 24*time.Hour),
		RedisAddr:          str("REDIS_ADDR", "127.0.0.1:6379"),
		RedisPassword:      get("REDIS_PASSWORD"),
		RedisDB:            num("REDIS_DB", 0),
		MySQLDSN:           str("MYSQL_DSN", ""),
		CORSAllowedOrigins: origins,
		LogLevel:           str("LOG_LEVEL", "info"),
		LogFormat:          str("LOG_FORMAT", "text"),
	}
}
