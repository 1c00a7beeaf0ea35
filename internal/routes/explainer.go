package routes

import (
	"explainstudio/internal/handlers"

	"github.com/gin-gonic/gin"
)

type ExplainerRoutes struct {
	handler *handlers.ExplainerHandler
}

func NewExplainerRoutes(handler *handlers.ExplainerHandler) *ExplainerRoutes {
	return &ExplainerRoutes{handler: handler}
}

func (r *ExplainerRoutes) RegisterRoutes(router *gin.RouterGroup) {
	explainers := router.Group("/explainers")
	{
		explainers.GET("", r.handler.ListExplainers)
		explainers.GET("/compatible", r.handler.GetCompatible)
	}
}
