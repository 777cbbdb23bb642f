package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ListenAddr string
	APIBaseURL string

	SessionDBPath string

	LogLevel string

	SearchDebounce time.Duration

	// When set, the blog detail view bumps the displayed like count
	// immediately and rolls back if the server rejects the like.
	OptimisticLikes bool
}

func Load() *Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Notice: .env file not found: %v. Using system environment variables", err)
	}

	cfg := &Config{
		ListenAddr:      EnvDefault("LISTEN_ADDR", ":8080"),
		APIBaseURL:      must(os.Getenv("BLOG_API_URL"), "BLOG_API_URL"),
		SessionDBPath:   EnvDefault("SESSION_DB_PATH", "blogfront.db"),
		LogLevel:        EnvDefault("LOG_LEVEL", "info"),
		SearchDebounce:  time.Duration(EnvIntDefault("SEARCH_DEBOUNCE_MS", 500)) * time.Millisecond,
		OptimisticLikes: EnvBoolDefault("OPTIMISTIC_LIKES", false),
	}
	return cfg
}

func must(v string, name string) string {
	if v == "" {
		log.Fatalf("missing required env %s", name)
	}
	return v
}

func EnvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func EnvIntDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func EnvBoolDefault(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}
