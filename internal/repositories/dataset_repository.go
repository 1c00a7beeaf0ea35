package repositories

import (
	"fmt"
	"sync"

	"explainstudio/internal/models"
)

// DatasetRepository stores uploaded dataset profiles keyed by id, preserving
// insertion order for listings. Ids are ds_001, ds_002, ...; datasets are
// never deleted, so store size + 1 is always fresh.
type DatasetRepository struct {
	mu      sync.RWMutex
	records map[string]models.DatasetRecord
	order   []string
}

func NewDatasetRepository() *DatasetRepository {
	return &DatasetRepository{records: make(map[string]models.DatasetRecord)}
}

// Create assigns the next id, stores the record and returns it.
func (r *DatasetRepository) Create(record models.DatasetRecord) models.DatasetRecord {
	r.mu.Lock()
	defer r.mu.Unlock()

	record.ID = fmt.Sprintf("ds_%03d", len(r.records)+1)
	r.records[record.ID] = record
	r.order = append(r.order, record.ID)
	return record
}

func (r *DatasetRepository) GetByID(id string) (models.DatasetRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.records[id]
	if !ok {
		return models.DatasetRecord{}, ErrNotFound
	}
	return record, nil
}

// List returns the records in upload order.
func (r *DatasetRepository) List() []models.DatasetRecord {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.DatasetRecord, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.records[id])
	}
	return out
}
