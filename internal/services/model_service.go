package services

import (
	"fmt"
	"strings"
	"time"

	"explainstudio/internal/ml"
	"explainstudio/internal/models"
	"explainstudio/internal/repositories"
	"explainstudio/internal/tabular"
)

const (
	forestTrees = 100
	forestSeed  = 42

	// Integer targets with at most this many distinct values train as
	// classification.
	classificationMaxDistinct = 20
)

// ModelService trains baseline models against stored datasets and registers
// external Phase 2 artifacts.
type ModelService struct {
	datasetRepo *repositories.DatasetRepository
	modelRepo   *repositories.ModelRepository
}

func NewModelService(datasetRepo *repositories.DatasetRepository, modelRepo *repositories.ModelRepository) *ModelService {
	return &ModelService{
		datasetRepo: datasetRepo,
		modelRepo:   modelRepo,
	}
}

type TrainRequest struct {
	DatasetID    string `json:"dataset_id" binding:"required"`
	TargetColumn string `json:"target_column" binding:"required"`
	ModelType    string `json:"model_type"` // defaults to 'random_forest'
}

type TrainResult struct {
	ModelID      string          `json:"model_id"`
	DatasetID    string          `json:"dataset_id"`
	Status       string          `json:"status"`
	ModelType    string          `json:"model_type"`
	TaskType     models.TaskType `json:"task_type"`
	FeatureCount int             `json:"feature_count"`
}

// Train fits a baseline estimator on a stored dataset: the target column is
// validated, the remaining numeric columns become the median-imputed feature
// matrix, and the task type picks the estimator family.
func (s *ModelService) Train(req TrainRequest) (TrainResult, error) {
	if req.ModelType == "" {
		req.ModelType = models.ModelRandomForest
	}

	dataset, err := s.datasetRepo.GetByID(req.DatasetID)
	if err != nil {
		return TrainResult{}, fmt.Errorf("dataset %s: %w", req.DatasetID, err)
	}
	frame := dataset.Frame

	if !frame.HasColumn(req.TargetColumn) {
		return TrainResult{}, fmt.Errorf("%w: target column %q not in dataset columns", ErrInvalidInput, req.TargetColumn)
	}
	if frame.MissingCount(req.TargetColumn) > 0 {
		return TrainResult{}, fmt.Errorf("%w: target column %q contains missing values", ErrInvalidInput, req.TargetColumn)
	}
	if len(frame.Columns()) < 2 {
		return TrainResult{}, fmt.Errorf("%w: dataset needs at least one feature column", ErrInvalidInput)
	}

	features := frame.NumericColumns(req.TargetColumn)
	if len(features) == 0 {
		return TrainResult{}, fmt.Errorf("%w: no numeric feature columns available for training", ErrInvalidInput)
	}
	X, err := frame.NumericMatrix(features)
	if err != nil {
		return TrainResult{}, fmt.Errorf("building feature matrix: %w", err)
	}

	task := inferTask(frame, req.TargetColumn)
	estimator, err := s.fit(frame, req.TargetColumn, task, req.ModelType, X)
	if err != nil {
		return TrainResult{}, err
	}

	record := s.modelRepo.Create(models.ModelRecord{
		DatasetID:      req.DatasetID,
		TargetColumn:   req.TargetColumn,
		ModelType:      req.ModelType,
		TaskType:       task,
		Framework:      models.FrameworkNative,
		Status:         "trained",
		CreatedAt:      time.Now().UTC(),
		FeatureColumns: features,
		Estimator:      estimator,
	})

	return TrainResult{
		ModelID:      record.ID,
		DatasetID:    record.DatasetID,
		Status:       record.Status,
		ModelType:    record.ModelType,
		TaskType:     record.TaskType,
		FeatureCount: len(features),
	}, nil
}

// fit trains the estimator the task type and requested model type select.
// Unknown model types fall back to the random forest for the task.
func (s *ModelService) fit(frame *tabular.Frame, target string, task models.TaskType, modelType string, X [][]float64) (ml.Estimator, error) {
	if task == models.TaskClassification {
		_, y := classTargets(frame.RawColumn(target))
		if strings.ToLower(modelType) == models.ModelLogisticRegression {
			m := ml.NewLogisticRegression()
			if err := m.Fit(X, y); err != nil {
				return nil, fmt.Errorf("%w: training logistic regression: %v", ErrInvalidInput, err)
			}
			return m, nil
		}
		m := ml.NewForestClassifier(forestTrees, forestSeed)
		if err := m.Fit(X, y); err != nil {
			return nil, fmt.Errorf("%w: training random forest: %v", ErrInvalidInput, err)
		}
		return m, nil
	}

	y, err := frame.FloatColumn(target)
	if err != nil {
		return nil, fmt.Errorf("reading target column: %w", err)
	}
	if strings.ToLower(modelType) == models.ModelLinearRegression {
		m := ml.NewLinearRegression()
		if err := m.Fit(X, y); err != nil {
			return nil, fmt.Errorf("%w: training linear regression: %v", ErrInvalidInput, err)
		}
		return m, nil
	}
	m := ml.NewForestRegressor(forestTrees, forestSeed)
	if err := m.Fit(X, y); err != nil {
		return nil, fmt.Errorf("%w: training random forest: %v", ErrInvalidInput, err)
	}
	return m, nil
}

// ListModels returns every stored model record.
func (s *ModelService) ListModels() []models.ModelRecord {
	return s.modelRepo.List()
}

// inferTask classifies when the target is textual or boolean, or an integer
// column with few distinct values; everything else is regression.
func inferTask(frame *tabular.Frame, target string) models.TaskType {
	switch frame.TypeOf(target) {
	case tabular.ColumnString, tabular.ColumnBoolean:
		return models.TaskClassification
	case tabular.ColumnInteger:
		if frame.DistinctNonMissing(target) <= classificationMaxDistinct {
			return models.TaskClassification
		}
	}
	return models.TaskRegression
}

// classTargets maps raw target cells to dense class indices, labels ordered
// by first appearance.
func classTargets(raw []string) ([]string, []int) {
	index := make(map[string]int)
	var labels []string
	y := make([]int, len(raw))
	for i, cell := range raw {
		label := strings.TrimSpace(cell)
		idx, ok := index[label]
		if !ok {
			idx = len(labels)
			index[label] = idx
			labels = append(labels, label)
		}
		y[i] = idx
	}
	return labels, y
}
