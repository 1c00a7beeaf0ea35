package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"explainstudio/internal/responses"
	"explainstudio/internal/services"
)

type ExplainerHandler struct {
	explainerService *services.ExplainerService
}

func NewExplainerHandler(explainerService *services.ExplainerService) *ExplainerHandler {
	return &ExplainerHandler{
		explainerService: explainerService,
	}
}

// ListExplainers handles GET /explainers
func (h *ExplainerHandler) ListExplainers(c *gin.Context) {
	catalog := h.explainerService.Catalog()

	responses.Success(c, http.StatusOK, catalog, "Explainer catalog retrieved successfully")
}

// GetCompatible handles GET /explainers/compatible
func (h *ExplainerHandler) GetCompatible(c *gin.Context) {
	modelID := c.Query("model_id")
	if modelID == "" {
		responses.Fail(c, http.StatusBadRequest, nil, "Query parameter 'model_id' is required")
		return
	}

	compatible, err := h.explainerService.Compatible(modelID)
	if err != nil {
		responses.Fail(c, statusFor(err), err, "Failed to resolve compatible entries")
		return
	}

	responses.Success(c, http.StatusOK, compatible, "Compatible entries retrieved successfully")
}
