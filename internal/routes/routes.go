package routes

import (
	"explainstudio/internal/handlers"
	"net/http"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(router *gin.Engine, datasetHandler *handlers.DatasetHandler, modelHandler *handlers.ModelHandler, explainerHandler *handlers.ExplainerHandler, runHandler *handlers.RunHandler, phase2Handler *handlers.Phase2Handler) {
	root := router.Group("")

	datasetRoutes := NewDatasetRoutes(datasetHandler)
	datasetRoutes.RegisterRoutes(root)

	modelRoutes := NewModelRoutes(modelHandler)
	modelRoutes.RegisterRoutes(root)

	explainerRoutes := NewExplainerRoutes(explainerHandler)
	explainerRoutes.RegisterRoutes(root)

	runRoutes := NewRunRoutes(runHandler)
	runRoutes.RegisterRoutes(root)

	phase2Routes := NewPhase2Routes(phase2Handler)
	phase2Routes.RegisterRoutes(root)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})
}
