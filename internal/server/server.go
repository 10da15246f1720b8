// Package server wires the HTTP server: router, middleware, routes, and
// the dependency graph from database to handlers. main.go stays minimal;
// this is the composition root.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/bfarias-dev/movienotes/internal/auth"
	"github.com/bfarias-dev/movienotes/internal/handler"
	"github.com/bfarias-dev/movienotes/internal/middleware"
	sqliteRepo "github.com/bfarias-dev/movienotes/internal/repository/sqlite"
	"github.com/bfarias-dev/movienotes/internal/service"
)

// Config holds server configuration.
type Config struct {
	Port   int
	DBPath string // path to the SQLite database file
}

// Server owns the router and the database connection. The connection is
// closed during graceful shutdown, after in-flight requests have drained.
type Server struct {
	router *chi.Mux
	config Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New creates a Server and assembles the whole dependency chain:
// sqlite.DB → services → handlers → routes. Each layer receives only what
// it needs — services get repository interfaces, handlers get services.
func New(cfg Config, logger *slog.Logger) (*Server, error) {
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

	s.setupRoutes()

	return s, nil
}

// setupRoutes configures middleware and the route table.
//
// ROUTES:
//
//	GET    /users                    → list accounts (name, email)
//	GET    /users/{user_id}          → one account
//	POST   /users                    → register
//	PUT    /users/{user_id}          → update account
//	GET    /movies?user_id&title&tags → list movie notes
//	GET    /movies/{id}/{user_id}    → one movie note
//	POST   /movies/{user_id}         → create movie note
//	PUT    /movies/{id}/{user_id}    → update movie note
//	DELETE /movies/{id}/{user_id}    → delete movie note (and its tags)
func (s *Server) setupRoutes() {
	// Middleware order matters: request id and real ip first, panic
	// recovery before anything that can fail, then request logging.
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
	s.router.Use(middleware.Logger(s.logger))

	passwords := auth.NewPasswordService()
	userService := service.NewUserService(s.db, passwords, s.logger)
	movieService := service.NewMovieService(s.db, s.db, s.logger)

	userHandler := handler.NewUserHandler(userService, s.logger)
	movieHandler := handler.NewMovieHandler(movieService, s.logger)

	s.router.Route("/users", func(r chi.Router) {
		r.Get("/", userHandler.HandleList)
		r.Post("/", userHandler.HandleCreate)
		r.Get("/{user_id}", userHandler.HandleGet)
		r.Put("/{user_id}", userHandler.HandleUpdate)
	})

	s.router.Route("/movies", func(r chi.Router) {
		r.Get("/", movieHandler.HandleList)
		r.Post("/{user_id}", movieHandler.HandleCreate)
		r.Get("/{id}/{user_id}", movieHandler.HandleGet)
		r.Put("/{id}/{user_id}", movieHandler.HandleUpdate)
		r.Delete("/{id}/{user_id}", movieHandler.HandleDelete)
	})
}

// Start runs the HTTP server until SIGINT/SIGTERM, then shuts down
// gracefully: stop accepting connections, give in-flight requests 30s to
// finish, close the database (flushes the WAL, releases the file lock).
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("database", s.config.DBPath),
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
