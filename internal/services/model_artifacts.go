package services

import (
	"fmt"
	"strings"
	"time"

	"explainstudio/internal/models"
)

// Phase 2 artifact registration: externally trained models enter the store
// with an artifact URI instead of a fitted estimator.

type UploadModelRequest struct {
	DatasetID    string   `json:"dataset_id" binding:"required"`
	TargetColumn string   `json:"target_column" binding:"required"`
	ModelType    string   `json:"model_type"` // defaults to 'pytorch_classifier'
	Framework    string   `json:"framework"`  // defaults to 'pytorch'
	ArtifactURI  string   `json:"artifact_uri" binding:"required"`
	InputShape   []int    `json:"input_shape,omitempty"`
	ClassLabels  []string `json:"class_labels,omitempty"`
}

type UploadModelResult struct {
	ModelID     string          `json:"model_id"`
	DatasetID   string          `json:"dataset_id"`
	Status      string          `json:"status"`
	ModelType   string          `json:"model_type"`
	TaskType    models.TaskType `json:"task_type"`
	Framework   string          `json:"framework"`
	ArtifactURI string          `json:"artifact_uri"`
	Phase       string          `json:"phase"`
}

// UploadModel registers an external model artifact against a dataset. No
// estimator is fitted, so registered models cannot back runs.
func (s *ModelService) UploadModel(req UploadModelRequest) (UploadModelResult, error) {
	if req.ModelType == "" {
		req.ModelType = "pytorch_classifier"
	}
	if req.Framework == "" {
		req.Framework = models.FrameworkPyTorch
	}

	dataset, err := s.datasetRepo.GetByID(req.DatasetID)
	if err != nil {
		return UploadModelResult{}, fmt.Errorf("dataset %s: %w", req.DatasetID, err)
	}
	if !dataset.Frame.HasColumn(req.TargetColumn) {
		return UploadModelResult{}, fmt.Errorf("%w: target column %q not in dataset columns", ErrInvalidInput, req.TargetColumn)
	}
	if strings.TrimSpace(req.ArtifactURI) == "" {
		return UploadModelResult{}, fmt.Errorf("%w: artifact_uri is required", ErrInvalidInput)
	}

	record := s.modelRepo.Create(models.ModelRecord{
		DatasetID:    req.DatasetID,
		TargetColumn: req.TargetColumn,
		ModelType:    req.ModelType,
		TaskType:     models.TaskClassification,
		Framework:    req.Framework,
		Status:       "registered",
		Phase:        "phase2_prep",
		ArtifactURI:  req.ArtifactURI,
		InputShape:   req.InputShape,
		ClassLabels:  req.ClassLabels,
		CreatedAt:    time.Now().UTC(),
	})

	return UploadModelResult{
		ModelID:     record.ID,
		DatasetID:   record.DatasetID,
		Status:      record.Status,
		ModelType:   record.ModelType,
		TaskType:    record.TaskType,
		Framework:   record.Framework,
		ArtifactURI: record.ArtifactURI,
		Phase:       record.Phase,
	}, nil
}

type ValidateArtifactRequest struct {
	ModelID string `json:"model_id" binding:"required"`
}

type ArtifactChecks struct {
	URISchemeValid    bool     `json:"uri_scheme_valid"`
	ExtensionExpected []string `json:"extension_expected"`
	ExtensionOK       bool     `json:"extension_ok"`
}

type ArtifactValidation struct {
	ModelID     string         `json:"model_id"`
	Framework   string         `json:"framework"`
	ArtifactURI string         `json:"artifact_uri"`
	Checks      ArtifactChecks `json:"checks"`
	Status      string         `json:"status"` // 'valid' or 'warning'
	Phase       string         `json:"phase"`
}

// expectedExtensions maps a framework to the artifact file extensions it
// should ship. Frameworks not listed carry no expectation.
var expectedExtensions = map[string][]string{
	models.FrameworkPyTorch: {".pt", ".pth", ".ckpt"},
	models.FrameworkONNX:    {".onnx"},
}

// ValidateArtifact runs the static checks on a registered model's artifact
// URI: scheme must be a known remote or local form, and the extension should
// match the framework. A bad extension downgrades the status to 'warning'
// rather than failing.
func (s *ModelService) ValidateArtifact(modelID string) (ArtifactValidation, error) {
	model, err := s.modelRepo.GetByID(modelID)
	if err != nil {
		return ArtifactValidation{}, fmt.Errorf("model %s: %w", modelID, err)
	}
	if model.ArtifactURI == "" {
		return ArtifactValidation{}, fmt.Errorf("%w: model %s has no artifact_uri", ErrInvalidInput, modelID)
	}

	uri := strings.TrimSpace(model.ArtifactURI)
	if !isRemoteURI(uri) && !isLocalURI(uri) {
		return ArtifactValidation{}, fmt.Errorf("%w: artifact_uri must be a remote URI or local file path", ErrInvalidInput)
	}

	expected := expectedExtensions[model.Framework]
	extensionOK := len(expected) == 0
	for _, ext := range expected {
		if strings.HasSuffix(strings.ToLower(uri), ext) {
			extensionOK = true
			break
		}
	}

	status := "valid"
	if !extensionOK {
		status = "warning"
	}

	return ArtifactValidation{
		ModelID:     model.ID,
		Framework:   model.Framework,
		ArtifactURI: uri,
		Checks: ArtifactChecks{
			URISchemeValid:    true,
			ExtensionExpected: append([]string{}, expected...),
			ExtensionOK:       extensionOK,
		},
		Status: status,
		Phase:  "phase2_prep",
	}, nil
}

func isRemoteURI(uri string) bool {
	for _, scheme := range []string{"s3://", "gs://", "http://", "https://"} {
		if strings.HasPrefix(uri, scheme) {
			return true
		}
	}
	return false
}

func isLocalURI(uri string) bool {
	return strings.HasPrefix(uri, "file://") || strings.HasPrefix(uri, "/")
}
