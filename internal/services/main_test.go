package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"explainstudio/internal/catalog"
	"explainstudio/internal/models"
	"explainstudio/internal/repositories"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const testMaxUploadBytes = 10 << 20

// classificationCSV matches the wizard's smallest useful upload: an integer
// target with two distinct values and two numeric features.
const classificationCSV = `target,feature_a,feature_b
0,1.5,10
1,2.5,20
0,3.5,30
1,4.5,40
`

const regressionCSV = `price,sqft,age
100.5,850,10
200.25,1200,5
150.75,1000,8
300.0,2000,2
`

type fixture struct {
	datasets   *DatasetService
	models     *ModelService
	runs       *RunService
	explainers *ExplainerService
	phase2     *Phase2Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	cat, err := catalog.Load()
	require.NoError(t, err)

	datasetRepo := repositories.NewDatasetRepository()
	modelRepo := repositories.NewModelRepository()
	runRepo := repositories.NewRunRepository()
	manifestRepo := repositories.NewManifestRepository()

	return &fixture{
		datasets:   NewDatasetService(datasetRepo, testMaxUploadBytes),
		models:     NewModelService(datasetRepo, modelRepo),
		runs:       NewRunService(datasetRepo, modelRepo, runRepo, cat),
		explainers: NewExplainerService(modelRepo, cat),
		phase2:     NewPhase2Service(datasetRepo, modelRepo, manifestRepo),
	}
}

func (f *fixture) upload(t *testing.T, filename, csv string) models.DatasetRecord {
	t.Helper()
	record, err := f.datasets.Upload(filename, int64(len(csv)), strings.NewReader(csv))
	require.NoError(t, err)
	return record
}

func (f *fixture) train(t *testing.T, datasetID, target, modelType string) TrainResult {
	t.Helper()
	result, err := f.models.Train(TrainRequest{
		DatasetID:    datasetID,
		TargetColumn: target,
		ModelType:    modelType,
	})
	require.NoError(t, err)
	return result
}
