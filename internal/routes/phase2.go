package routes

import (
	"explainstudio/internal/handlers"

	"github.com/gin-gonic/gin"
)

type Phase2Routes struct {
	handler *handlers.Phase2Handler
}

func NewPhase2Routes(handler *handlers.Phase2Handler) *Phase2Routes {
	return &Phase2Routes{handler: handler}
}

func (r *Phase2Routes) RegisterRoutes(router *gin.RouterGroup) {
	phase2 := router.Group("/phase2")
	{
		phase2.POST("/image-manifests", r.handler.RegisterImageManifest)
		phase2.GET("/image-manifests", r.handler.ListImageManifests)
		phase2.POST("/saliency-preview", r.handler.SaliencyPreview)
	}
}
