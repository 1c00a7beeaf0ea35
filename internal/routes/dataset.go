package routes

import (
	"explainstudio/internal/handlers"

	"github.com/gin-gonic/gin"
)

type DatasetRoutes struct {
	handler *handlers.DatasetHandler
}

func NewDatasetRoutes(handler *handlers.DatasetHandler) *DatasetRoutes {
	return &DatasetRoutes{handler: handler}
}

func (r *DatasetRoutes) RegisterRoutes(router *gin.RouterGroup) {
	datasets := router.Group("/datasets")
	{
		datasets.POST("", r.handler.UploadDataset)
		datasets.GET("", r.handler.ListDatasets)
		datasets.GET("/:id", r.handler.GetDataset)
	}
}
