package repositories

import (
	"fmt"
	"sync"

	"explainstudio/internal/models"
)

// RunRepository is the append-only run list. Runs are never edited; the
// only mutation besides append is the bulk clear, after which ids restart
// at run_001.
type RunRepository struct {
	mu   sync.RWMutex
	runs []models.RunRecord
}

func NewRunRepository() *RunRepository {
	return &RunRepository{}
}

// Append assigns the next id, appends the record and returns it.
func (r *RunRepository) Append(record models.RunRecord) models.RunRecord {
	r.mu.Lock()
	defer r.mu.Unlock()

	record.ID = fmt.Sprintf("run_%03d", len(r.runs)+1)
	r.runs = append(r.runs, record)
	return record
}

// List returns the runs in creation order.
func (r *RunRepository) List() []models.RunRecord {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.RunRecord, len(r.runs))
	copy(out, r.runs)
	return out
}

// Clear empties the run list and reports how many records it held.
func (r *RunRepository) Clear() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cleared := len(r.runs)
	r.runs = nil
	return cleared
}
