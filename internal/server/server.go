// Package server wires the application together: database, services,
// handlers, middleware, and routes. It is the composition root: every
// dependency is assembled here, then the layers only talk through the
// interfaces they were handed.
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

	"github.com/Priyanshu055/intern-match-backend/internal/auth"
	"github.com/Priyanshu055/intern-match-backend/internal/handler"
	"github.com/Priyanshu055/intern-match-backend/internal/middleware"
	sqliteRepo "github.com/Priyanshu055/intern-match-backend/internal/repository/sqlite"
	"github.com/Priyanshu055/intern-match-backend/internal/service"
	"github.com/Priyanshu055/intern-match-backend/internal/storage"
)

// Config holds everything the server needs to start.
type Config struct {
	Port      int
	DBPath    string
	JWTSecret string
	UploadDir string
}

// Server owns the router and the resources that must be released on
// shutdown (the database connection).
type Server struct {
	router *chi.Mux
	config Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New assembles the full dependency chain:
//
//	sqlite.DB → services → handlers → routes
//
// Each layer receives only the interfaces it needs; the handlers never
// see the database and the services never see HTTP.
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

func (s *Server) setupRoutes() error {
	// Global middleware, in execution order.
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	// The browser frontend is served from a different origin; tokens
	// travel in the Authorization header, so no credentialed CORS needed.
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))
	s.router.Use(middleware.Logger(s.logger))

	tokens, err := auth.NewTokenService(s.config.JWTSecret)
	if err != nil {
		return fmt.Errorf("creating token service: %w", err)
	}
	passwords := auth.NewPasswordService()

	blobs, err := storage.NewLocalStore(s.config.UploadDir)
	if err != nil {
		return fmt.Errorf("creating upload store: %w", err)
	}

	authService := service.NewAuthService(s.db, tokens, passwords, s.logger)
	internshipService := service.NewInternshipService(s.db, s.db, s.db, s.logger)
	applicationService := service.NewApplicationService(s.db, s.db, s.logger)
	profileService := service.NewProfileService(s.db, s.db, s.db, blobs, s.logger)
	messageService := service.NewMessageService(s.db, s.db, s.db, s.db, s.db, s.logger)

	authHandler := handler.NewAuthHandler(authService, s.logger)
	internshipHandler := handler.NewInternshipHandler(internshipService, s.logger)
	applicationHandler := handler.NewApplicationHandler(applicationService, blobs, s.logger)
	profileHandler := handler.NewProfileHandler(profileService, s.logger)
	messageHandler := handler.NewMessageHandler(messageService, s.logger)

	// Uploaded files are served straight off disk. The store generates
	// opaque names, so the URL leaks nothing about the uploader.
	fileServer := http.FileServer(http.Dir(blobs.Dir()))
	s.router.Handle("/uploads/*", http.StripPrefix("/uploads/", fileServer))

	requireAuth := auth.RequireAuth(tokens)

	s.router.Route("/api", func(api chi.Router) {
		// Public routes.
		api.Post("/auth/register", authHandler.HandleRegister)
		api.Post("/auth/login", authHandler.HandleLogin)
		api.Get("/internships", internshipHandler.HandleList)
		api.Get("/internships/{id}", internshipHandler.HandleGet)

		// Everything else needs a valid token. Static segments like
		// /internships/recommended win over /internships/{id} in chi's
		// routing tree, so the public {id} route can't shadow them.
		api.Group(func(priv chi.Router) {
			priv.Use(requireAuth)

			priv.Get("/auth/me", authHandler.HandleMe)

			priv.Get("/internships/recommended", internshipHandler.HandleRecommended)
			priv.Get("/internships/employer", internshipHandler.HandleListByEmployer)
			priv.Get("/internships/saved", internshipHandler.HandleListSaved)
			priv.Post("/internships/save", internshipHandler.HandleSave)
			priv.Delete("/internships/saved/{internshipId}", internshipHandler.HandleUnsave)
			priv.Post("/internships", internshipHandler.HandleCreate)
			priv.Put("/internships/{id}", internshipHandler.HandleUpdate)
			priv.Delete("/internships/{id}", internshipHandler.HandleDelete)

			priv.Post("/applications", applicationHandler.HandleApply)
			priv.Get("/applications/candidate", applicationHandler.HandleListCandidate)
			priv.Get("/applications/employer", applicationHandler.HandleListEmployer)
			priv.Put("/applications/{id}", applicationHandler.HandleUpdateStatus)

			priv.Get("/profiles", profileHandler.HandleGet)
			priv.Post("/profiles", profileHandler.HandleUpsert)
			priv.Post("/profiles/upload-resume", profileHandler.HandleUploadResume)
			priv.Post("/profiles/upload-profile-image", profileHandler.HandleUploadProfileImage)

			priv.Post("/messages", messageHandler.HandleSend)
			priv.Get("/messages/candidate", messageHandler.HandleListCandidate)
			priv.Get("/messages/employer", messageHandler.HandleListEmployer)
			priv.Get("/messages/candidate-profile/{applicationId}", messageHandler.HandleCandidateProfile)
			priv.Put("/messages/{id}/read", messageHandler.HandleMarkRead)
		})
	})

	return nil
}

// Start runs the server until a shutdown signal arrives, then drains
// in-flight requests and closes the database. The deferred Close runs
// last so the WAL is flushed after the final request completes.
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
			slog.String("uploads", s.config.UploadDir),
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
