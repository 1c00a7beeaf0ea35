package models

import (
	"time"

	"explainstudio/internal/ml"
)

// TaskType is the inferred learning task of a model's target column.
type TaskType string

const (
	TaskClassification TaskType = "classification"
	TaskRegression     TaskType = "regression"
)

// Known model_type values for in-process training. Anything else falls back
// to the random-forest default for the inferred task.
const (
	ModelRandomForest       = "random_forest"
	ModelLogisticRegression = "logistic_regression"
	ModelLinearRegression   = "linear_regression"
)

const (
	FrameworkNative  = "native" // trained in-process
	FrameworkPyTorch = "pytorch"
	FrameworkONNX    = "onnx"
)

// ModelRecord is one entry in the model store: either a model trained
// in-process (Estimator set) or an externally registered artifact
// (ArtifactURI set, no estimator). Immutable after creation.
type ModelRecord struct {
	ID           string    `json:"model_id"`
	DatasetID    string    `json:"dataset_id"`
	TargetColumn string    `json:"target_column"`
	ModelType    string    `json:"model_type"`
	TaskType     TaskType  `json:"task_type"`
	Framework    string    `json:"framework"`
	Status       string    `json:"status"`          // 'trained' or 'registered'
	Phase        string    `json:"phase,omitempty"` // 'phase2_prep' for registered artifacts
	ArtifactURI  string    `json:"artifact_uri,omitempty"`
	InputShape   []int     `json:"input_shape,omitempty"`
	ClassLabels  []string  `json:"class_labels,omitempty"`
	CreatedAt    time.Time `json:"created_at"`

	FeatureColumns []string     `json:"-"`
	Estimator      ml.Estimator `json:"-"`
}
