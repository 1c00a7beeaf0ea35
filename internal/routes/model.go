package routes

import (
	"explainstudio/internal/handlers"

	"github.com/gin-gonic/gin"
)

type ModelRoutes struct {
	handler *handlers.ModelHandler
}

func NewModelRoutes(handler *handlers.ModelHandler) *ModelRoutes {
	return &ModelRoutes{handler: handler}
}

func (r *ModelRoutes) RegisterRoutes(router *gin.RouterGroup) {
	models := router.Group("/models")
	{
		models.POST("/train", r.handler.TrainModel)
		models.POST("/upload", r.handler.UploadModel)
		models.POST("/validate-artifact", r.handler.ValidateArtifact)
		models.GET("", r.handler.ListModels)
	}
}
