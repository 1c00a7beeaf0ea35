package models

import (
	"time"

	"explainstudio/internal/tabular"
)

// DatasetRecord is the stored profile of one uploaded CSV. Records are
// immutable after creation and live for the process lifetime only.
type DatasetRecord struct {
	ID            string            `json:"dataset_id"`
	Filename      string            `json:"filename"`
	Rows          int               `json:"rows"`
	Columns       []string          `json:"columns"`
	DTypes        map[string]string `json:"dtypes"`
	MissingCounts map[string]int    `json:"missing_counts"`
	Preview       []map[string]any  `json:"preview,omitempty"` // first rows, raw cells, null for missing
	CreatedAt     time.Time         `json:"created_at"`

	Frame *tabular.Frame `json:"-"`
}

// WithoutPreview returns a copy suitable for list responses.
func (d DatasetRecord) WithoutPreview() DatasetRecord {
	d.Preview = nil
	return d
}
