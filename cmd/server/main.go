// Package main is the entry point for the portfolio site server.
//
// MAIN PACKAGE IN GO:
// The main package should be kept minimal. Its job is to:
//  1. Read configuration (internal/config reads .env and the environment)
//  2. Create process-wide dependencies (the logger)
//  3. Start the application
//
// All actual logic lives in imported packages (internal/server,
// internal/handler, ...), which keeps them testable.
package main

import (
	"crypto/rand"
	"encoding/hex"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/sakif/portfolio-site/internal/config"
	"github.com/sakif/portfolio-site/internal/server"
)

func main() {
	// === 1. READ CONFIGURATION ===
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// === 2. SET UP LOGGING ===
	// Text logs for a developer's terminal, JSON in production where a log
	// collector parses them.
	opts := &slog.HandlerOptions{Level: logLevel(cfg.LogLevel)}
	var handler slog.Handler = slog.NewTextHandler(os.Stdout, opts)
	if cfg.IsProduction() {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)

	// === 3. COOKIE SECRET ===
	// COOKIE_SECRET signs the "client" cookie. Generate one with:
	//   COOKIE_SECRET=$(openssl rand -hex 32)
	// Without it a random secret is used, so every restart forgets which
	// browser is which and admins have to sign in again.
	if cfg.CookieSecret == "" {
		secret, err := randomSecret()
		if err != nil {
			logger.Error("generating cookie secret", slog.String("error", err.Error()))
			os.Exit(1)
		}
		cfg.CookieSecret = secret
		logger.Warn("COOKIE_SECRET not set, using a random secret for this run")
	}

	// === 4. DATABASE DIRECTORY ===
	// os.MkdirAll is `mkdir -p`; it is a no-op when the directory exists.
	dbDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		logger.Error("failed to create database directory",
			slog.String("dir", dbDir),
			slog.String("error", err.Error()),
		)
		os.Exit(1)
	}

	// === 5. CREATE AND START THE SERVER ===
	srv, err := server.New(cfg, logger)
	if err != nil {
		logger.Error("failed to create server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Start() blocks until the server is shut down (via Ctrl+C or SIGTERM)
	if err := srv.Start(); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func logLevel(name string) slog.Level {
	switch name {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func randomSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
