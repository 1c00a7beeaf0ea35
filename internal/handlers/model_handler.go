package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"explainstudio/internal/responses"
	"explainstudio/internal/services"
)

type ModelHandler struct {
	modelService *services.ModelService
}

func NewModelHandler(modelService *services.ModelService) *ModelHandler {
	return &ModelHandler{
		modelService: modelService,
	}
}

// TrainModel handles POST /models/train
func (h *ModelHandler) TrainModel(c *gin.Context) {
	var req services.TrainRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid request body")
		return
	}

	result, err := h.modelService.Train(req)
	if err != nil {
		responses.Fail(c, statusFor(err), err, "Failed to train model")
		return
	}

	responses.Success(c, http.StatusCreated, result, "Model trained successfully")
}

// ListModels handles GET /models
func (h *ModelHandler) ListModels(c *gin.Context) {
	models := h.modelService.ListModels()

	responses.Success(c, http.StatusOK, gin.H{"models": models}, "Models retrieved successfully")
}

// UploadModel handles POST /models/upload
func (h *ModelHandler) UploadModel(c *gin.Context) {
	var req services.UploadModelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid request body")
		return
	}

	result, err := h.modelService.UploadModel(req)
	if err != nil {
		responses.Fail(c, statusFor(err), err, "Failed to register model artifact")
		return
	}

	responses.Success(c, http.StatusCreated, result, "Model artifact registered successfully")
}

// ValidateArtifact handles POST /models/validate-artifact
func (h *ModelHandler) ValidateArtifact(c *gin.Context) {
	var req services.ValidateArtifactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid request body")
		return
	}

	validation, err := h.modelService.ValidateArtifact(req.ModelID)
	if err != nil {
		responses.Fail(c, statusFor(err), err, "Failed to validate model artifact")
		return
	}

	responses.Success(c, http.StatusOK, validation, "Model artifact validated successfully")
}
