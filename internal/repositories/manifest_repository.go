package repositories

import (
	"fmt"
	"sync"

	"explainstudio/internal/models"
)

// ManifestRepository stores registered image-sample manifests
// (manifest_001, manifest_002, ...) for the Phase 2 preview endpoints.
type ManifestRepository struct {
	mu      sync.RWMutex
	records map[string]models.ImageManifest
	order   []string
}

func NewManifestRepository() *ManifestRepository {
	return &ManifestRepository{records: make(map[string]models.ImageManifest)}
}

func (r *ManifestRepository) Create(record models.ImageManifest) models.ImageManifest {
	r.mu.Lock()
	defer r.mu.Unlock()

	record.ID = fmt.Sprintf("manifest_%03d", len(r.records)+1)
	r.records[record.ID] = record
	r.order = append(r.order, record.ID)
	return record
}

func (r *ManifestRepository) GetByID(id string) (models.ImageManifest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.records[id]
	if !ok {
		return models.ImageManifest{}, ErrNotFound
	}
	return record, nil
}

func (r *ManifestRepository) List() []models.ImageManifest {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.ImageManifest, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.records[id])
	}
	return out
}
