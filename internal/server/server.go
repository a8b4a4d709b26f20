package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/recipe-service/backend/config"
	"github.com/pageza/recipe-service/backend/internal/api"
	"github.com/pageza/recipe-service/backend/internal/router"
	"github.com/pageza/recipe-service/backend/internal/service"
	"github.com/pageza/recipe-service/backend/internal/store"
)

// Server represents the HTTP server
type Server struct {
	router *gin.Engine
	http   *http.Server
	store  store.RecipeStore
	logger *zap.Logger
}

// New creates a new server instance serving recipes from the given store
func New(cfg *config.Config, recipes store.RecipeStore, logger *zap.Logger) *Server {
	if cfg.Environment.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	recipeService := service.NewRecipeService(recipes, cfg.RequestTimeout, logger)
	recipeHandler := api.NewRecipeHandler(recipeService, logger)
	engine := router.SetupRouter(recipeHandler, recipes, cfg.AllowedOrigins, logger)

	return &Server{
		router: engine,
		http: &http.Server{
			Addr:              cfg.Addr(),
			Handler:           engine,
			ReadHeaderTimeout: cfg.RequestTimeout,
		},
		store:  recipes,
		logger: logger,
	}
}

// Handler exposes the routed engine
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start listens until Shutdown is called
func (s *Server) Start() error {
	s.logger.Info("starting server", zap.String("addr", s.http.Addr))
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server and then closes the store
func (s *Server) Shutdown(ctx context.Context) error {
	httpErr := s.http.Shutdown(ctx)
	storeErr := s.store.Close(ctx)
	return errors.Join(httpErr, storeErr)
}
