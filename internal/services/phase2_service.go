package services

import (
	"fmt"
	"strings"
	"time"

	"explainstudio/internal/models"
	"explainstudio/internal/repositories"
)

// Phase2Service backs the thin-slice Phase 2 endpoints: image manifest
// registration and the saliency preview stub. No batch engine runs behind
// them; the contracts exist so the UI can wire against stable shapes.
type Phase2Service struct {
	datasetRepo  *repositories.DatasetRepository
	modelRepo    *repositories.ModelRepository
	manifestRepo *repositories.ManifestRepository
}

func NewPhase2Service(
	datasetRepo *repositories.DatasetRepository,
	modelRepo *repositories.ModelRepository,
	manifestRepo *repositories.ManifestRepository,
) *Phase2Service {
	return &Phase2Service{
		datasetRepo:  datasetRepo,
		modelRepo:    modelRepo,
		manifestRepo: manifestRepo,
	}
}

type RegisterManifestRequest struct {
	DatasetID string   `json:"dataset_id" binding:"required"`
	Samples   []string `json:"samples" binding:"required"`
}

// RegisterManifest records the image-sample refs a saliency preview may
// name. Samples are opaque; nothing is fetched.
func (s *Phase2Service) RegisterManifest(req RegisterManifestRequest) (models.ImageManifest, error) {
	if _, err := s.datasetRepo.GetByID(req.DatasetID); err != nil {
		return models.ImageManifest{}, fmt.Errorf("dataset %s: %w", req.DatasetID, err)
	}
	if len(req.Samples) == 0 {
		return models.ImageManifest{}, fmt.Errorf("%w: samples must not be empty", ErrInvalidInput)
	}

	return s.manifestRepo.Create(models.ImageManifest{
		DatasetID: req.DatasetID,
		Samples:   req.Samples,
		Phase:     "phase2_prep",
		CreatedAt: time.Now().UTC(),
	}), nil
}

// ListManifests returns the registered manifests in creation order.
func (s *Phase2Service) ListManifests() []models.ImageManifest {
	return s.manifestRepo.List()
}

type SaliencyPreviewRequest struct {
	ModelID    string `json:"model_id" binding:"required"`
	ManifestID string `json:"manifest_id" binding:"required"`
	SampleRef  string `json:"sample_ref" binding:"required"`
	Method     string `json:"method"` // defaults to 'saliency'
}

type HeatmapStats struct {
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Mean float64 `json:"mean"`
}

type SaliencyArtifact struct {
	ArtifactKey  string       `json:"artifact_key"`
	OverlayURI   string       `json:"overlay_uri"`
	HeatmapStats HeatmapStats `json:"heatmap_stats"`
}

type SaliencyPreview struct {
	Status      string           `json:"status"` // always 'queued_stub'
	Phase       string           `json:"phase"`
	ModelID     string           `json:"model_id"`
	ManifestID  string           `json:"manifest_id"`
	SampleRef   string           `json:"sample_ref"`
	Method      string           `json:"method"`
	GeneratedAt time.Time        `json:"generated_at"`
	Artifact    SaliencyArtifact `json:"artifact"`
}

// SaliencyPreview validates the references and returns the queued-stub
// payload with the artifact key the eventual batch engine would write.
func (s *Phase2Service) SaliencyPreview(req SaliencyPreviewRequest) (SaliencyPreview, error) {
	if req.Method == "" {
		req.Method = "saliency"
	}

	model, err := s.modelRepo.GetByID(req.ModelID)
	if err != nil {
		return SaliencyPreview{}, fmt.Errorf("model %s: %w", req.ModelID, err)
	}
	if _, err := s.manifestRepo.GetByID(req.ManifestID); err != nil {
		return SaliencyPreview{}, fmt.Errorf("image manifest %s: %w", req.ManifestID, err)
	}
	if model.Framework != models.FrameworkPyTorch {
		return SaliencyPreview{}, fmt.Errorf("%w: saliency preview currently supports framework=pytorch models", ErrInvalidInput)
	}

	artifactKey := fmt.Sprintf("saliency/%s/%s.json", req.ModelID, strings.ReplaceAll(req.SampleRef, "/", "_"))

	return SaliencyPreview{
		Status:      "queued_stub",
		Phase:       "phase2",
		ModelID:     req.ModelID,
		ManifestID:  req.ManifestID,
		SampleRef:   req.SampleRef,
		Method:      req.Method,
		GeneratedAt: time.Now().UTC(),
		Artifact: SaliencyArtifact{
			ArtifactKey: artifactKey,
			OverlayURI:  "memory://" + artifactKey,
			HeatmapStats: HeatmapStats{
				Min:  0,
				Max:  1,
				Mean: 0.42,
			},
		},
	}, nil
}
