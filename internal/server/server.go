package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/fridge-chef/backend/config"
	"github.com/pageza/fridge-chef/backend/internal/api"
	"github.com/pageza/fridge-chef/backend/internal/middleware"
)

const (
	readHeaderTimeout = 10 * time.Second
	// Generation calls can take a while, so the write timeout is generous.
	writeTimeout = 2 * time.Minute
	idleTimeout  = 2 * time.Minute
)

// Server represents the HTTP server
type Server struct {
	router *gin.Engine
	http   *http.Server
	logger *zap.Logger
}

// New creates a new server instance with all routes registered
func New(cfg *config.Config, recipeHandler *api.RecipeHandler, logger *zap.Logger) *Server {
	if cfg.Environment.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.CORS(cfg.AllowedOrigins))

	api.RegisterRoutes(router, recipeHandler)

	return &Server{
		router: router,
		http: &http.Server{
			Addr:              cfg.Addr(),
			Handler:           router,
			ReadHeaderTimeout: readHeaderTimeout,
			WriteTimeout:      writeTimeout,
			IdleTimeout:       idleTimeout,
		},
		logger: logger.Named("server"),
	}
}

// Handler returns the router serving all requests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start listens until the server is shut down. A graceful shutdown is not an error.
func (s *Server) Start() error {
	s.logger.Info("starting server", zap.String("addr", s.http.Addr))
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
