package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"explainstudio/internal/responses"
	"explainstudio/internal/services"
)

type Phase2Handler struct {
	phase2Service *services.Phase2Service
}

func NewPhase2Handler(phase2Service *services.Phase2Service) *Phase2Handler {
	return &Phase2Handler{
		phase2Service: phase2Service,
	}
}

// RegisterImageManifest handles POST /phase2/image-manifests
func (h *Phase2Handler) RegisterImageManifest(c *gin.Context) {
	var req services.RegisterManifestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid request body")
		return
	}

	manifest, err := h.phase2Service.RegisterManifest(req)
	if err != nil {
		responses.Fail(c, statusFor(err), err, "Failed to register image manifest")
		return
	}

	responses.Success(c, http.StatusCreated, gin.H{
		"manifest_id":  manifest.ID,
		"dataset_id":   manifest.DatasetID,
		"sample_count": len(manifest.Samples),
		"phase":        manifest.Phase,
	}, "Image manifest registered successfully")
}

// ListImageManifests handles GET /phase2/image-manifests
func (h *Phase2Handler) ListImageManifests(c *gin.Context) {
	manifests := h.phase2Service.ListManifests()

	responses.Success(c, http.StatusOK, gin.H{"manifests": manifests}, "Image manifests retrieved successfully")
}

// SaliencyPreview handles POST /phase2/saliency-preview
func (h *Phase2Handler) SaliencyPreview(c *gin.Context) {
	var req services.SaliencyPreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid request body")
		return
	}

	preview, err := h.phase2Service.SaliencyPreview(req)
	if err != nil {
		responses.Fail(c, statusFor(err), err, "Failed to queue saliency preview")
		return
	}

	responses.Success(c, http.StatusOK, preview, "Saliency preview queued")
}
