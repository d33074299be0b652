package config

import (
	"testing"
	"time"
)

func lookup(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestFromLookupDefaults(t *testing.T) {
	env := FromLookup(lookup(nil))
	if env.AppAddr != ":8080" {
		t.Fatalf("AppAddr = %q", env.AppAddr)
	}
	if env.APIBaseURL != "http://127.0.0.1:8000/api" {
		t.Fatalf("APIBaseURL = %q", env.APIBaseURL)
	}
	if env.DefaultTotalSeats != 50 || env.SessionBackend != "memory" || env.SessionTTL != 24*time.Hour {
		t.Fatalf("unexpected defaults: %+v", env)
	}
	if len(env.CORSAllowedOrigins) != len(defaultOrigins) {
		t.Fatalf("default origins not applied")
	}
}

func TestFromLookupOverrides(t *testing.T) {
	env := FromLookup(lookup(map[string]string{
		"API_BASE_URL":         "https://buses.example.com/api/",
		"API_TIMEOUT":          "3s",
		"DEFAULT_TOTAL_SEATS":  "40",
		"SESSION_BACKEND":      "Redis",
		"REDIS_DB":             "2",
		"CORS_ALLOWED_ORIGINS": "https://a.example, ,https://b.example",
	}))
	if env.APIBaseURL != "https://buses.example.com/api" {
		t.Fatalf("trailing slash not trimmed: %q", env.APIBaseURL)
	}
	if env.APITimeout != 3*time.Second || env.DefaultTotalSeats != 40 || env.RedisDB != 2 {
		t.Fatalf("unexpected overrides: %+v", env)
	}
	if env.SessionBackend != "redis" {
		t.Fatalf("backend not lowercased: %q", env.SessionBackend)
	}
	if len(env.CORSAllowedOrigins) != 2 || env.CORSAllowedOrigins[1] != "https://b.example" {
		t.Fatalf("origins: %v", env.CORSAllowedOrigins)
	}
}

func TestFromLookupRejectsNonPositiveSeats(t *testing.T) {
	env := FromLookup(lookup(map[string]string{"DEFAULT_TOTAL_SEATS": "0"}))
	if env.DefaultTotalSeats != 50 {
		t.Fatalf("got %d", env.DefaultTotalSeats)
	}
}
