package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"explainstudio/internal/catalog"
	"explainstudio/internal/handlers"
	"explainstudio/internal/middlewares"
	"explainstudio/internal/repositories"
	"explainstudio/internal/routes"
	"explainstudio/internal/services"
)

const (
	classificationCSV = "target,feature_a,feature_b\n" +
		"0,1.5,10\n" +
		"1,2.5,20\n" +
		"0,1.0,15\n" +
		"1,3.0,25\n"

	regressionCSV = "price,sqft,age\n" +
		"100.5,800,12\n" +
		"180.0,1200,5\n" +
		"240.25,1500,3\n" +
		"90.75,650,30\n"
)

// newTestRouter wires the full stack against fresh in-memory stores.
func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)

	cat, err := catalog.Load()
	require.NoError(t, err)

	datasetRepo := repositories.NewDatasetRepository()
	modelRepo := repositories.NewModelRepository()
	runRepo := repositories.NewRunRepository()
	manifestRepo := repositories.NewManifestRepository()

	datasetService := services.NewDatasetService(datasetRepo, 10<<20)
	modelService := services.NewModelService(datasetRepo, modelRepo)
	explainerService := services.NewExplainerService(modelRepo, cat)
	runService := services.NewRunService(datasetRepo, modelRepo, runRepo, cat)
	phase2Service := services.NewPhase2Service(datasetRepo, modelRepo, manifestRepo)

	router := gin.New()
	router.Use(middlewares.RequestID)
	router.Use(middlewares.RequestLogger(zap.NewNop()))

	routes.RegisterRoutes(router,
		handlers.NewDatasetHandler(datasetService),
		handlers.NewModelHandler(modelService),
		handlers.NewExplainerHandler(explainerService),
		handlers.NewRunHandler(runService),
		handlers.NewPhase2Handler(phase2Service),
	)

	return router
}

// envelope mirrors the response wrapper every endpoint answers with.
type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func doJSON(t *testing.T, router *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	}
	return rec, env
}

func decodeData(t *testing.T, env envelope, out any) {
	t.Helper()
	require.NotEmpty(t, env.Data)
	require.NoError(t, json.Unmarshal(env.Data, out))
}

// uploadCSV posts a multipart CSV upload and returns the created record's
// envelope after asserting the 201.
func uploadCSV(t *testing.T, router *gin.Engine, filename, contents string) envelope {
	t.Helper()

	rec := postFile(t, router, filename, contents)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func postFile(t *testing.T, router *gin.Engine, filename, contents string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(contents))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/datasets", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

// trainModel trains on an uploaded dataset and returns the model id.
func trainModel(t *testing.T, router *gin.Engine, datasetID, target string) string {
	t.Helper()

	body := `{"dataset_id":"` + datasetID + `","target_column":"` + target + `"}`
	rec, env := doJSON(t, router, http.MethodPost, "/models/train", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var result struct {
		ModelID string `json:"model_id"`
	}
	decodeData(t, env, &result)
	require.NotEmpty(t, result.ModelID)
	return result.ModelID
}

func datasetID(t *testing.T, env envelope) string {
	t.Helper()

	var record struct {
		DatasetID string `json:"dataset_id"`
	}
	decodeData(t, env, &record)
	require.NotEmpty(t, record.DatasetID)
	return record.DatasetID
}
