package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"explainstudio/internal/models"
)

func TestUploadDataset(t *testing.T) {
	router := newTestRouter(t)

	env := uploadCSV(t, router, "loans.csv", classificationCSV)
	assert.Equal(t, "success", env.Status)
	assert.Equal(t, "Dataset uploaded successfully", env.Message)

	var record models.DatasetRecord
	decodeData(t, env, &record)
	assert.Equal(t, "ds_001", record.ID)
	assert.Equal(t, "loans.csv", record.Filename)
	assert.Equal(t, 4, record.Rows)
	assert.Equal(t, []string{"target", "feature_a", "feature_b"}, record.Columns)
	assert.Equal(t, "integer", record.DTypes["target"])
	assert.Equal(t, "float", record.DTypes["feature_a"])
	assert.Len(t, record.Preview, 4)
}

func TestUploadDataset_Rejections(t *testing.T) {
	router := newTestRouter(t)

	t.Run("missing file part", func(t *testing.T) {
		rec, env := doJSON(t, router, http.MethodPost, "/datasets", `{"not":"a form"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "error", env.Status)
	})

	t.Run("non csv filename", func(t *testing.T) {
		rec := postFile(t, router, "table.parquet", classificationCSV)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("malformed csv", func(t *testing.T) {
		rec := postFile(t, router, "ragged.csv", "a,b\n1,2,3\n")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestGetDataset(t *testing.T) {
	router := newTestRouter(t)
	id := datasetID(t, uploadCSV(t, router, "loans.csv", classificationCSV))

	t.Run("found", func(t *testing.T) {
		rec, env := doJSON(t, router, http.MethodGet, "/datasets/"+id, "")
		require.Equal(t, http.StatusOK, rec.Code)

		var record models.DatasetRecord
		decodeData(t, env, &record)
		assert.Equal(t, id, record.ID)
		assert.NotEmpty(t, record.Preview)
	})

	t.Run("unknown id", func(t *testing.T) {
		rec, env := doJSON(t, router, http.MethodGet, "/datasets/ds_999", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "error", env.Status)
		assert.Contains(t, env.Error, "ds_999")
	})
}

func TestListDatasets(t *testing.T) {
	router := newTestRouter(t)
	uploadCSV(t, router, "a.csv", classificationCSV)
	uploadCSV(t, router, "b.csv", regressionCSV)

	rec, env := doJSON(t, router, http.MethodGet, "/datasets", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var listing struct {
		Datasets []models.DatasetRecord `json:"datasets"`
	}
	decodeData(t, env, &listing)
	require.Len(t, listing.Datasets, 2)
	assert.Equal(t, "ds_001", listing.Datasets[0].ID)
	assert.Equal(t, "ds_002", listing.Datasets[1].ID)
	// Previews stay out of the listing.
	assert.Nil(t, listing.Datasets[0].Preview)
}
