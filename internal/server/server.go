package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	_ "github.com/joho/godotenv/autoload"
	"go.uber.org/zap"

	"explainstudio/internal/catalog"
	"explainstudio/internal/config"
	"explainstudio/internal/handlers"
	"explainstudio/internal/middlewares"
	"explainstudio/internal/repositories"
	"explainstudio/internal/routes"
	"explainstudio/internal/services"
)

// NewServer wires the repositories, services and handlers together and
// returns the configured HTTP server. All state lives in the in-memory
// repositories and is gone when the process exits.
func NewServer(cfg config.Config, logger *zap.Logger) (*http.Server, error) {
	gin.SetMode(cfg.GinMode)

	cat, err := catalog.Load()
	if err != nil {
		return nil, fmt.Errorf("load explainer catalog: %w", err)
	}

	// Dependency injection
	datasetRepo := repositories.NewDatasetRepository()
	modelRepo := repositories.NewModelRepository()
	runRepo := repositories.NewRunRepository()
	manifestRepo := repositories.NewManifestRepository()

	datasetService := services.NewDatasetService(datasetRepo, cfg.MaxUploadBytes)
	modelService := services.NewModelService(datasetRepo, modelRepo)
	explainerService := services.NewExplainerService(modelRepo, cat)
	runService := services.NewRunService(datasetRepo, modelRepo, runRepo, cat)
	phase2Service := services.NewPhase2Service(datasetRepo, modelRepo, manifestRepo)

	datasetHandler := handlers.NewDatasetHandler(datasetService)
	modelHandler := handlers.NewModelHandler(modelService)
	explainerHandler := handlers.NewExplainerHandler(explainerService)
	runHandler := handlers.NewRunHandler(runService)
	phase2Handler := handlers.NewPhase2Handler(phase2Service)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middlewares.RequestID)
	router.Use(middlewares.RequestLogger(logger))
	router.Use(cors.New(cors.Config{
		AllowOrigins:  cfg.CORSAllowedOrigins,
		AllowMethods:  []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", middlewares.RequestIDHeader},
		ExposeHeaders: []string{middlewares.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}))

	routes.RegisterRoutes(router, datasetHandler, modelHandler, explainerHandler, runHandler, phase2Handler)

	// Create and configure the HTTP server
	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	return server, nil
}
