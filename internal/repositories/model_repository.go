package repositories

import (
	"fmt"
	"sync"

	"explainstudio/internal/models"
)

// ModelRepository stores trained and registered models keyed by id
// (model_001, model_002, ...), preserving insertion order.
type ModelRepository struct {
	mu      sync.RWMutex
	records map[string]models.ModelRecord
	order   []string
}

func NewModelRepository() *ModelRepository {
	return &ModelRepository{records: make(map[string]models.ModelRecord)}
}

func (r *ModelRepository) Create(record models.ModelRecord) models.ModelRecord {
	r.mu.Lock()
	defer r.mu.Unlock()

	record.ID = fmt.Sprintf("model_%03d", len(r.records)+1)
	r.records[record.ID] = record
	r.order = append(r.order, record.ID)
	return record
}

func (r *ModelRepository) GetByID(id string) (models.ModelRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.records[id]
	if !ok {
		return models.ModelRecord{}, ErrNotFound
	}
	return record, nil
}

func (r *ModelRepository) List() []models.ModelRecord {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.ModelRecord, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.records[id])
	}
	return out
}
