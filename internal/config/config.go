// Package config loads the site configuration from the environment.
//
// A .env file in the working directory is read first when it exists, so a
// developer can keep local settings out of the shell. Real environment
// variables always win over the file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything main needs to build the server.
type Config struct {
	AppEnv string
	Port   int

	APIBaseURL   string
	APILoginPath string
	APITimeout   time.Duration // zero means no client-side timeout

	DBPath string

	CookieSecret string
	CookieSecure bool

	DefaultTheme   string
	LogLevel       string
	ScreenStateTTL time.Duration
}

// Load reads the configuration. Missing keys fall back to development
// defaults; malformed values are errors.
func Load() (*Config, error) {
	// Don't fail if .env doesn't exist (might be prod env vars)
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:       getEnv("APP_ENV", "development"),
		APIBaseURL:   strings.TrimRight(getEnv("API_BASE_URL", "http://localhost:3000/api"), "/"),
		APILoginPath: getEnv("API_LOGIN_PATH", "/auth/login"),
		DBPath:       getEnv("DB_PATH", "data/portfolio.db"),
		CookieSecret: os.Getenv("COOKIE_SECRET"),
		DefaultTheme: strings.ToLower(getEnv("DEFAULT_THEME", "light")),
		LogLevel:     strings.ToLower(getEnv("LOG_LEVEL", "info")),
	}

	var err error
	cfg.Port, err = strconv.Atoi(getEnv("PORT", "8080"))
	if err != nil || cfg.Port <= 0 {
		return nil, fmt.Errorf("invalid PORT: %q", getEnv("PORT", ""))
	}

	cfg.APITimeout, err = time.ParseDuration(getEnv("API_TIMEOUT", "0s"))
	if err != nil {
		return nil, fmt.Errorf("invalid API_TIMEOUT: %w", err)
	}

	cfg.ScreenStateTTL, err = time.ParseDuration(getEnv("SCREEN_STATE_TTL", "30m"))
	if err != nil {
		return nil, fmt.Errorf("invalid SCREEN_STATE_TTL: %w", err)
	}

	cfg.CookieSecure, err = strconv.ParseBool(getEnv("COOKIE_SECURE", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid COOKIE_SECURE: %w", err)
	}

	if cfg.DefaultTheme != "light" && cfg.DefaultTheme != "dark" {
		return nil, fmt.Errorf("invalid DEFAULT_THEME: %q (want light or dark)", cfg.DefaultTheme)
	}

	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("invalid LOG_LEVEL: %q", cfg.LogLevel)
	}

	if !strings.HasPrefix(cfg.APILoginPath, "/") {
		cfg.APILoginPath = "/" + cfg.APILoginPath
	}

	return cfg, nil
}

// IsProduction reports whether APP_ENV is "production".
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
