// Package server wires the dependency graph and owns the HTTP lifecycle:
// routes, middleware, startup, and graceful shutdown.
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

	"github.com/jsundman/bloglist/internal/auth"
	"github.com/jsundman/bloglist/internal/handler"
	"github.com/jsundman/bloglist/internal/middleware"
	sqliteRepo "github.com/jsundman/bloglist/internal/repository/sqlite"
	"github.com/jsundman/bloglist/internal/service"
)

// Config holds everything the server needs from the environment.
type Config struct {
	Port      int
	DBPath    string
	JWTSecret string
	TokenTTL  time.Duration // zero means the token service default
}

// Server owns the router and the database connection; the connection is
// closed during shutdown.
type Server struct {
	router *chi.Mux
	config Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New assembles the full dependency chain: database, token and password
// services, the service layer, handlers, and routes. Each layer receives
// only the interfaces it consumes.
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

	if err := s.setupRoutes(); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	return s, nil
}

// setupRoutes configures middleware and the API surface:
//
//	POST   /api/users            register
//	GET    /api/users            list users (blogs projected)
//	GET    /api/users/{id}       single user
//	POST   /api/login            exchange credentials for a token
//	GET    /api/blogs            list blogs (owners projected)
//	GET    /api/blogs/stats      aggregate statistics
//	GET    /api/blogs/{id}       single blog
//	POST   /api/blogs            create (auth required)
//	PUT    /api/blogs/{id}       update
//	DELETE /api/blogs/{id}       delete (auth required, owner only)
func (s *Server) setupRoutes() error {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	tokens, err := auth.NewTokenServiceWithTTL(s.config.JWTSecret, s.tokenTTL())
	if err != nil {
		return fmt.Errorf("creating token service: %w", err)
	}
	passwords := auth.NewPasswordService()

	userService := service.NewUserService(s.db, tokens, passwords, s.logger)
	blogService := service.NewBlogService(s.db, s.logger)

	userHandler := handler.NewUserHandler(userService, s.logger)
	loginHandler := handler.NewLoginHandler(userService, s.logger)
	blogHandler := handler.NewBlogHandler(blogService, s.logger)

	s.router.Route("/api", func(r chi.Router) {
		r.Post("/login", loginHandler.HandleLogin)

		r.Post("/users", userHandler.HandleRegister)
		r.Get("/users", userHandler.HandleList)
		r.Get("/users/{id}", userHandler.HandleGetByID)

		r.Get("/blogs", blogHandler.HandleList)
		r.Get("/blogs/stats", blogHandler.HandleStats)
		r.Get("/blogs/{id}", blogHandler.HandleGetByID)
		r.Put("/blogs/{id}", blogHandler.HandleUpdate)

		// Mutations that need an owner run behind the token check.
		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAuth(tokens))
			r.Post("/blogs", blogHandler.HandleCreate)
			r.Delete("/blogs/{id}", blogHandler.HandleDelete)
		})
	})

	return nil
}

func (s *Server) tokenTTL() time.Duration {
	if s.config.TokenTTL > 0 {
		return s.config.TokenTTL
	}
	return time.Hour
}

// Start runs the HTTP server until SIGINT/SIGTERM, then shuts down
// gracefully: stop accepting connections, drain in-flight requests for up
// to 30 seconds, close the database.
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
