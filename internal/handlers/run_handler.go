package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"explainstudio/internal/responses"
	"explainstudio/internal/services"
)

type RunHandler struct {
	runService *services.RunService
}

func NewRunHandler(runService *services.RunService) *RunHandler {
	return &RunHandler{
		runService: runService,
	}
}

// CreateRun handles POST /runs
func (h *RunHandler) CreateRun(c *gin.Context) {
	var req services.CreateRunRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid request body")
		return
	}

	result, err := h.runService.Create(req)
	if err != nil {
		responses.Fail(c, statusFor(err), err, "Failed to execute run")
		return
	}

	responses.Success(c, http.StatusCreated, result, "Run completed successfully")
}

// ListRuns handles GET /runs
func (h *RunHandler) ListRuns(c *gin.Context) {
	runs := h.runService.List()

	responses.Success(c, http.StatusOK, gin.H{"runs": runs}, "Runs retrieved successfully")
}

// ClearRuns handles DELETE /runs
func (h *RunHandler) ClearRuns(c *gin.Context) {
	cleared := h.runService.Clear()

	responses.Success(c, http.StatusOK, gin.H{"cleared": cleared}, "Run history cleared successfully")
}

// GetSummary handles GET /runs/summary
func (h *RunHandler) GetSummary(c *gin.Context) {
	summary := h.runService.Summary()

	responses.Success(c, http.StatusOK, summary, "Run summary retrieved successfully")
}

// GetLeaderboard handles GET /runs/leaderboard
func (h *RunHandler) GetLeaderboard(c *gin.Context) {
	rows := h.runService.Leaderboard()

	responses.Success(c, http.StatusOK, gin.H{"rows": rows}, "Leaderboard retrieved successfully")
}

// GetReport handles GET /runs/report
func (h *RunHandler) GetReport(c *gin.Context) {
	report := h.runService.Report()

	responses.Success(c, http.StatusOK, report, "Run report generated successfully")
}
