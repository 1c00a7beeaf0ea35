package routes

import (
	"explainstudio/internal/handlers"

	"github.com/gin-gonic/gin"
)

type RunRoutes struct {
	handler *handlers.RunHandler
}

func NewRunRoutes(handler *handlers.RunHandler) *RunRoutes {
	return &RunRoutes{handler: handler}
}

func (r *RunRoutes) RegisterRoutes(router *gin.RouterGroup) {
	runs := router.Group("/runs")
	{
		runs.POST("", r.handler.CreateRun)
		runs.GET("", r.handler.ListRuns)
		runs.DELETE("", r.handler.ClearRuns)
		runs.GET("/summary", r.handler.GetSummary)
		runs.GET("/leaderboard", r.handler.GetLeaderboard)
		runs.GET("/report", r.handler.GetReport)
	}
}
