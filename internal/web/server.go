// Package web serves the dashboard and its JSON API over HTTP.
package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/naka-gawa/github-profile-analyzer/internal/domain"
	"github.com/naka-gawa/github-profile-analyzer/internal/session"
)

//go:embed templates/*.html
var templateFS embed.FS

// Analyzer is the use case the dashboard depends on.
type Analyzer interface {
	Lookup(ctx context.Context, username string) (*domain.ProfileReport, error)
	Account(ctx context.Context, username string) (*domain.Account, error)
	Repositories(ctx context.Context, username string) ([]domain.RepositorySummary, error)
	Activity(ctx context.Context, username string, limit int) (*domain.ActivityReport, error)
}

// Config holds server configuration.
type Config struct {
	Addr           string
	AllowedOrigins []string
}

// Server is the HTTP dashboard.
type Server struct {
	router    *chi.Mux
	config    Config
	analyzer  Analyzer
	session   *session.Session
	templates *template.Template
	logger    *log.Logger
}

// New creates a Server with all routes registered.
func New(cfg Config, analyzer Analyzer, sess *session.Session, logger *log.Logger) (*Server, error) {
	tmpl, err := template.New("").Funcs(templateFuncs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}

	s := &Server{
		router:    chi.NewRouter(),
		config:    cfg,
		analyzer:  analyzer,
		session:   sess,
		templates: tmpl,
		logger:    logger,
	}
	s.setupRoutes()
	return s, nil
}

func (s *Server) setupRoutes() {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.RequestLogger(&chimiddleware.DefaultLogFormatter{Logger: s.logger, NoColor: true}))
	s.router.Use(chimiddleware.Recoverer)

	s.router.Get("/", s.handleDashboard)
	s.router.Post("/search", s.handleSearch)
	s.router.Post("/theme", s.handleTheme)
	s.router.Get("/chart", s.handleSessionChart)
	s.router.Get("/healthz", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: s.config.AllowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			MaxAge:         300,
		}))
		r.Get("/users/{username}", s.handleAccount)
		r.Get("/users/{username}/repos", s.handleRepositories)
		r.Get("/users/{username}/activity", s.handleActivity)
		r.Get("/users/{username}/activity/chart", s.handleActivityChart)
	})
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.config.Addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 2 * time.Minute, // a lookup runs several upstream calls in sequence
		IdleTimeout:  60 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Printf("Serving dashboard on %s\n", s.config.Addr)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
		s.logger.Println("Shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Println("Server stopped gracefully")
		return nil
	}
}
