package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"explainstudio/internal/models"
	"explainstudio/internal/services"
)

func TestRegisterImageManifest(t *testing.T) {
	router := newTestRouter(t)
	dsID := datasetID(t, uploadCSV(t, router, "images.csv", classificationCSV))

	rec, env := doJSON(t, router, http.MethodPost, "/phase2/image-manifests",
		`{"dataset_id":"`+dsID+`","samples":["val/cat_01.png","val/dog_02.png"]}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created struct {
		ManifestID  string `json:"manifest_id"`
		DatasetID   string `json:"dataset_id"`
		SampleCount int    `json:"sample_count"`
		Phase       string `json:"phase"`
	}
	decodeData(t, env, &created)
	assert.Equal(t, "manifest_001", created.ManifestID)
	assert.Equal(t, dsID, created.DatasetID)
	assert.Equal(t, 2, created.SampleCount)
	assert.Equal(t, "phase2_prep", created.Phase)

	t.Run("listing returns the stored manifest", func(t *testing.T) {
		rec, env := doJSON(t, router, http.MethodGet, "/phase2/image-manifests", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var listing struct {
			Manifests []models.ImageManifest `json:"manifests"`
		}
		decodeData(t, env, &listing)
		require.Len(t, listing.Manifests, 1)
		assert.Equal(t, []string{"val/cat_01.png", "val/dog_02.png"}, listing.Manifests[0].Samples)
	})

	t.Run("unknown dataset", func(t *testing.T) {
		rec, _ := doJSON(t, router, http.MethodPost, "/phase2/image-manifests",
			`{"dataset_id":"ds_404","samples":["a.png"]}`)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("empty samples", func(t *testing.T) {
		rec, _ := doJSON(t, router, http.MethodPost, "/phase2/image-manifests",
			`{"dataset_id":"`+dsID+`","samples":[]}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestSaliencyPreview(t *testing.T) {
	router := newTestRouter(t)
	dsID := datasetID(t, uploadCSV(t, router, "images.csv", classificationCSV))

	rec, env := doJSON(t, router, http.MethodPost, "/models/upload",
		`{"dataset_id":"`+dsID+`","target_column":"target","artifact_uri":"s3://bucket/resnet.pt"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var uploaded services.UploadModelResult
	decodeData(t, env, &uploaded)

	rec, env = doJSON(t, router, http.MethodPost, "/phase2/image-manifests",
		`{"dataset_id":"`+dsID+`","samples":["val/batch1/cat.png"]}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var manifest struct {
		ManifestID string `json:"manifest_id"`
	}
	decodeData(t, env, &manifest)

	rec, env = doJSON(t, router, http.MethodPost, "/phase2/saliency-preview",
		`{"model_id":"`+uploaded.ModelID+`","manifest_id":"`+manifest.ManifestID+`","sample_ref":"val/batch1/cat.png"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Saliency preview queued", env.Message)

	var preview services.SaliencyPreview
	decodeData(t, env, &preview)
	assert.Equal(t, "queued_stub", preview.Status)
	assert.Equal(t, "phase2", preview.Phase)
	assert.Equal(t, "saliency", preview.Method)
	assert.Equal(t, "saliency/"+uploaded.ModelID+"/val_batch1_cat.png.json", preview.Artifact.ArtifactKey)
	assert.Equal(t, "memory://"+preview.Artifact.ArtifactKey, preview.Artifact.OverlayURI)
	assert.Equal(t, services.HeatmapStats{Min: 0, Max: 1, Mean: 0.42}, preview.Artifact.HeatmapStats)

	t.Run("unknown model", func(t *testing.T) {
		rec, _ := doJSON(t, router, http.MethodPost, "/phase2/saliency-preview",
			`{"model_id":"model_404","manifest_id":"`+manifest.ManifestID+`","sample_ref":"x.png"}`)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("non-pytorch model", func(t *testing.T) {
		native := trainModel(t, router, dsID, "target")
		rec, _ := doJSON(t, router, http.MethodPost, "/phase2/saliency-preview",
			`{"model_id":"`+native+`","manifest_id":"`+manifest.ManifestID+`","sample_ref":"x.png"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
