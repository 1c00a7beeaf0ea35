package services

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"explainstudio/internal/models"
	"explainstudio/internal/repositories"
	"explainstudio/internal/tabular"
)

const previewRows = 5

// DatasetService parses uploaded CSVs into profiled, immutable dataset
// records.
type DatasetService struct {
	datasetRepo    *repositories.DatasetRepository
	maxUploadBytes int64
}

func NewDatasetService(datasetRepo *repositories.DatasetRepository, maxUploadBytes int64) *DatasetService {
	return &DatasetService{
		datasetRepo:    datasetRepo,
		maxUploadBytes: maxUploadBytes,
	}
}

// Upload validates, parses and profiles one CSV file and stores the result.
func (s *DatasetService) Upload(filename string, size int64, file io.Reader) (models.DatasetRecord, error) {
	if !strings.EqualFold(filepath.Ext(filename), ".csv") {
		return models.DatasetRecord{}, fmt.Errorf("%w: only .csv uploads are supported, got %q", ErrInvalidInput, filename)
	}
	if s.maxUploadBytes > 0 && size > s.maxUploadBytes {
		return models.DatasetRecord{}, fmt.Errorf("%w: file exceeds the %d byte upload limit", ErrInvalidInput, s.maxUploadBytes)
	}

	frame, err := tabular.ParseCSV(file)
	if err != nil {
		return models.DatasetRecord{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	dtypes := make(map[string]string, len(frame.Columns()))
	for name, t := range frame.ColumnTypes() {
		dtypes[name] = string(t)
	}

	record := models.DatasetRecord{
		Filename:      filename,
		Rows:          frame.NumRows(),
		Columns:       frame.Columns(),
		DTypes:        dtypes,
		MissingCounts: frame.MissingCounts(),
		Preview:       frame.Preview(previewRows),
		CreatedAt:     time.Now().UTC(),
		Frame:         frame,
	}
	return s.datasetRepo.Create(record), nil
}

// Get returns one dataset record including its preview rows.
func (s *DatasetService) Get(id string) (models.DatasetRecord, error) {
	record, err := s.datasetRepo.GetByID(id)
	if err != nil {
		return models.DatasetRecord{}, fmt.Errorf("dataset %s: %w", id, err)
	}
	return record, nil
}

// List returns every dataset record without preview rows.
func (s *DatasetService) List() []models.DatasetRecord {
	records := s.datasetRepo.List()
	out := make([]models.DatasetRecord, 0, len(records))
	for _, record := range records {
		out = append(out, record.WithoutPreview())
	}
	return out
}
