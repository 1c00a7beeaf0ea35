package services

import (
	"fmt"

	"explainstudio/internal/catalog"
	"explainstudio/internal/models"
	"explainstudio/internal/repositories"
)

// ExplainerService answers catalog lookups. The catalog itself is static;
// the only stored state consulted is the model's task type.
type ExplainerService struct {
	modelRepo *repositories.ModelRepository
	catalog   *catalog.Catalog
}

func NewExplainerService(modelRepo *repositories.ModelRepository, cat *catalog.Catalog) *ExplainerService {
	return &ExplainerService{
		modelRepo: modelRepo,
		catalog:   cat,
	}
}

// CompatibleEntries lists the explainers and metrics applicable to one
// model's task type.
type CompatibleEntries struct {
	ModelID    string          `json:"model_id"`
	TaskType   models.TaskType `json:"task_type"`
	Explainers []catalog.Entry `json:"explainers"`
	Metrics    []catalog.Entry `json:"metrics"`
}

// Catalog returns the full static table.
func (s *ExplainerService) Catalog() *catalog.Catalog {
	return s.catalog
}

// Compatible resolves the model's task type and filters the catalog by it.
func (s *ExplainerService) Compatible(modelID string) (CompatibleEntries, error) {
	model, err := s.modelRepo.GetByID(modelID)
	if err != nil {
		return CompatibleEntries{}, fmt.Errorf("model %s: %w", modelID, err)
	}

	return CompatibleEntries{
		ModelID:    model.ID,
		TaskType:   model.TaskType,
		Explainers: s.catalog.ExplainersFor(model.TaskType),
		Metrics:    s.catalog.MetricsFor(model.TaskType),
	}, nil
}
