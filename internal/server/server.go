// Package server sets up the HTTP server, router, and all route definitions.
//
// SERVER ARCHITECTURE:
// This package is the "wiring" layer. It connects the API client, the
// per-browser stores, the services and the handlers, and decides which URL
// maps to which handler and which middleware guards it.
//
// DEPENDENCY INJECTION FLOW:
//
//	main.go: config.Load() → server.New(cfg, logger)
//	New():   sqlite.DB ──┬─ session.AuthContext ─┬─ AuthService ─ AuthHandler
//	                     └─ theme.Controller     │
//	         apiclient.Client ─┬─ ContentService ─┴─ AdminHandler
//	                           └─ HomeService ────── HomeHandler
//
// This is the "composition root": every dependency is built here and
// nowhere else.
package server

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/sakif/portfolio-site/internal/apiclient"
	"github.com/sakif/portfolio-site/internal/auth"
	"github.com/sakif/portfolio-site/internal/config"
	"github.com/sakif/portfolio-site/internal/handler"
	"github.com/sakif/portfolio-site/internal/middleware"
	sqliteRepo "github.com/sakif/portfolio-site/internal/repository/sqlite"
	"github.com/sakif/portfolio-site/internal/screen"
	"github.com/sakif/portfolio-site/internal/service"
	"github.com/sakif/portfolio-site/internal/session"
	"github.com/sakif/portfolio-site/internal/theme"
	"github.com/sakif/portfolio-site/web"
)

// Server represents the HTTP server and all its dependencies.
//
// The Server owns the database connection and closes it on shutdown, after
// in-flight requests have finished.
type Server struct {
	router *chi.Mux
	config *config.Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New creates a Server from the loaded configuration.
//
// IMPORT ALIAS:
// repository/sqlite is imported as sqliteRepo so it doesn't read like the
// driver package.
func New(cfg *config.Config, logger *slog.Logger) (*Server, error) {
	db, err := sqliteRepo.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		db:     db,
	}

	if err := s.setupRoutes(); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	return s, nil
}

// Handler exposes the router, so tests can drive the whole site through
// httptest without opening a port.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Close releases the database. Start does this itself on shutdown.
func (s *Server) Close() error {
	return s.db.Close()
}

// setupRoutes configures all middleware and route handlers.
//
// ROUTE STRUCTURE:
//
//	GET  /static/*                      → embedded CSS and icons
//	GET  /healthz                       → JSON health probe
//	GET  /                              → public portfolio page
//	POST /theme                         → toggle light/dark
//	GET  /login, POST /login            → admin sign-in
//	POST /logout                        → sign out
//	     /admin/...                     → admin screens (session required)
//
// MIDDLEWARE ORDER MATTERS:
// RequestID must run before Logger so the log line carries the id, and
// Identify must run before RequireSession so the session lookup has a
// client id to work with.
func (s *Server) setupRoutes() error {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	// === Static Files ===
	// The files are compiled into the binary, so the server runs from any
	// working directory. fs.Sub strips the leading "static/" from the paths.
	static, err := fs.Sub(web.Static, "static")
	if err != nil {
		return fmt.Errorf("opening static files: %w", err)
	}
	s.router.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(static))))

	// === Collaborators ===
	tokens, err := auth.NewTokenService(s.config.CookieSecret)
	if err != nil {
		return fmt.Errorf("creating token service: %w", err)
	}

	fallback, ok := theme.Parse(s.config.DefaultTheme)
	if !ok {
		fallback = theme.Light
	}
	themes := theme.NewController(s.db, fallback, s.logger)
	authCtx := session.NewAuthContext(session.NewStore(), s.db, s.logger)

	backend := apiclient.New(apiclient.Config{
		BaseURL:   s.config.APIBaseURL,
		LoginPath: s.config.APILoginPath,
		Timeout:   s.config.APITimeout,
	}, s.logger)

	contentService := service.NewContentService(backend, s.logger)
	authService := service.NewAuthService(backend, authCtx, s.logger)
	homeService := service.NewHomeService(backend, s.logger)

	renderer, err := handler.NewRenderer(web.Templates)
	if err != nil {
		return fmt.Errorf("parsing templates: %w", err)
	}
	pages := handler.NewPages(renderer, themes, s.logger)

	homeHandler := handler.NewHomeHandler(pages, homeService, themes, s.db, s.logger)
	authHandler := handler.NewAuthHandler(pages, authService, authCtx, s.logger)
	adminHandler := handler.NewAdminHandler(pages, contentService, screen.NewCache(s.config.ScreenStateTTL), s.logger)

	// === Routes ===
	s.router.Get("/healthz", homeHandler.HandleHealth)

	identify := auth.Identify(tokens, auth.CookieConfig{Secure: s.config.CookieSecure}, s.logger)

	s.router.Group(func(r chi.Router) {
		r.Use(identify)

		r.Get("/", homeHandler.HandleHome)
		r.Post("/theme", homeHandler.HandleToggleTheme)

		r.Get("/login", authHandler.HandleLoginPage)
		r.Post("/login", authHandler.HandleLogin)
		r.Post("/logout", authHandler.HandleLogout)

		r.Route("/admin", func(r chi.Router) {
			r.Use(auth.RequireSession(authCtx))

			r.Get("/", func(w http.ResponseWriter, r *http.Request) {
				http.Redirect(w, r, "/admin/dashboard", http.StatusSeeOther)
			})
			r.Get("/dashboard", adminHandler.HandleDashboard)

			r.Get("/profile", adminHandler.HandleProfile)
			r.Post("/profile", adminHandler.HandleUpdateProfile)

			r.Route("/techs", func(r chi.Router) {
				r.Get("/", adminHandler.HandleTechs)
				r.Post("/", adminHandler.HandleSaveTech)
				r.Get("/{id}/delete", adminHandler.HandleConfirmDeleteTech)
				r.Post("/{id}/delete", adminHandler.HandleDeleteTech)
			})

			r.Route("/experiences", func(r chi.Router) {
				r.Get("/", adminHandler.HandleExperiences)
				r.Post("/", adminHandler.HandleCreateExperience)
				r.Get("/new", adminHandler.HandleNewExperience)
				r.Get("/{id}/edit", adminHandler.HandleEditExperience)
				r.Post("/{id}", adminHandler.HandleUpdateExperience)
				r.Get("/{id}/delete", adminHandler.HandleConfirmDeleteExperience)
				r.Post("/{id}/delete", adminHandler.HandleDeleteExperience)
			})

			r.Route("/projects", func(r chi.Router) {
				r.Get("/", adminHandler.HandleProjects)
				r.Post("/", adminHandler.HandleCreateProject)
				r.Get("/new", adminHandler.HandleNewProject)
				r.Get("/{id}/edit", adminHandler.HandleEditProject)
				r.Post("/{id}", adminHandler.HandleUpdateProject)
				r.Get("/{id}/delete", adminHandler.HandleConfirmDeleteProject)
				r.Post("/{id}/delete", adminHandler.HandleDeleteProject)
			})
		})
	})

	// The 404 page follows the visitor's theme, so it needs a client id too.
	s.router.NotFound(identify(http.HandlerFunc(pages.NotFound)).ServeHTTP)

	return nil
}

// Start starts the HTTP server and handles graceful shutdown.
//
// GRACEFUL SHUTDOWN:
//  1. Stop accepting new HTTP connections
//  2. Wait for in-flight requests to finish (30s timeout)
//  3. Close the database connection (flushes WAL, releases file lock)
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", s.config.Port),
		Handler: s.router,
		// Uploads can be several megabytes, so reads get more room than the
		// page renders do.
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("url", fmt.Sprintf("http://localhost:%d", s.config.Port)),
			slog.String("api", s.config.APIBaseURL),
			slog.String("database", s.config.DBPath),
			slog.String("env", s.config.AppEnv),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
