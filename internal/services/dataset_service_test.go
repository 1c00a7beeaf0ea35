package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"explainstudio/internal/repositories"
)

func TestDatasetService_Upload(t *testing.T) {
	f := newFixture(t)

	csv := `target,feature_a,label
1,2.5,yes
0,NA,no
1,4.0,
`
	record := f.upload(t, "demo.csv", csv)

	assert.Equal(t, "ds_001", record.ID)
	assert.Equal(t, "demo.csv", record.Filename)
	assert.Equal(t, 3, record.Rows)
	assert.Equal(t, []string{"target", "feature_a", "label"}, record.Columns)
	assert.Equal(t, map[string]string{
		"target":    "integer",
		"feature_a": "float",
		"label":     "string",
	}, record.DTypes)
	assert.Equal(t, map[string]int{
		"target":    0,
		"feature_a": 1,
		"label":     1,
	}, record.MissingCounts)
	assert.False(t, record.CreatedAt.IsZero())
	require.NotNil(t, record.Frame)

	require.Len(t, record.Preview, 3)
	assert.Equal(t, int64(1), record.Preview[0]["target"])
	assert.Equal(t, 2.5, record.Preview[0]["feature_a"])
	assert.Nil(t, record.Preview[1]["feature_a"], "missing cells preview as null")
	assert.Nil(t, record.Preview[2]["label"])
}

func TestDatasetService_UploadRejections(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name     string
		filename string
		size     int64
		body     string
	}{
		{name: "not a csv", filename: "data.parquet", size: 10, body: "x"},
		{name: "over the size limit", filename: "big.csv", size: testMaxUploadBytes + 1, body: "a,b\n1,2\n"},
		{name: "header only", filename: "empty.csv", size: 4, body: "a,b\n"},
		{name: "ragged row", filename: "ragged.csv", size: 16, body: "a,b\n1,2\n3\n"},
		{name: "duplicate column", filename: "dup.csv", size: 16, body: "a,a\n1,2\n"},
		{name: "blank column name", filename: "blank.csv", size: 16, body: "a,\n1,2\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.datasets.Upload(tt.filename, tt.size, strings.NewReader(tt.body))
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestDatasetService_GetAndList(t *testing.T) {
	f := newFixture(t)
	f.upload(t, "one.csv", classificationCSV)
	f.upload(t, "two.csv", regressionCSV)

	got, err := f.datasets.Get("ds_002")
	require.NoError(t, err)
	assert.Equal(t, "two.csv", got.Filename)
	assert.NotEmpty(t, got.Preview, "single lookups include the preview")

	_, err = f.datasets.Get("ds_404")
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	list := f.datasets.List()
	require.Len(t, list, 2)
	assert.Equal(t, "ds_001", list[0].ID)
	for _, record := range list {
		assert.Nil(t, record.Preview, "listings omit preview rows")
	}
}
