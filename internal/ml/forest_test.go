package ml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForestClassifier_Fit(t *testing.T) {
	X := [][]float64{{0}, {1}, {2}, {3}, {4}, {20}, {21}, {22}, {23}, {24}}
	y := []int{0, 0, 0, 0, 0, 1, 1, 1, 1, 1}

	f := NewForestClassifier(30, 42)
	require.NoError(t, f.Fit(X, y))

	preds := f.Predict(X)
	for i, want := range y {
		assert.Equal(t, float64(want), preds[i], "row %d", i)
	}

	probs := f.PredictProba(X)
	for i, row := range probs {
		require.Len(t, row, 2)
		assert.InDelta(t, 1.0, row[0]+row[1], 1e-9, "row %d", i)
		assert.GreaterOrEqual(t, row[0], 0.0)
		assert.LessOrEqual(t, row[0], 1.0)
	}
}

func TestForestClassifier_ImportancesIgnoreConstantFeature(t *testing.T) {
	X := [][]float64{
		{0, 1}, {1, 1}, {2, 1}, {3, 1}, {4, 1},
		{20, 1}, {21, 1}, {22, 1}, {23, 1}, {24, 1},
	}
	y := []int{0, 0, 0, 0, 0, 1, 1, 1, 1, 1}

	f := NewForestClassifier(30, 42)
	require.NoError(t, f.Fit(X, y))

	imp := f.FeatureImportances()
	require.Len(t, imp, 2)
	assert.Zero(t, imp[1], "a constant column can never split")
	assert.InDelta(t, 1.0, imp[0], 1e-9)
}

func TestForestClassifier_Deterministic(t *testing.T) {
	X := [][]float64{{0}, {1}, {2}, {10}, {11}, {12}}
	y := []int{0, 0, 0, 1, 1, 1}

	a := NewForestClassifier(10, 7)
	b := NewForestClassifier(10, 7)
	require.NoError(t, a.Fit(X, y))
	require.NoError(t, b.Fit(X, y))

	assert.Equal(t, a.PredictProba(X), b.PredictProba(X),
		"same seed must reproduce the same ensemble")
}

func TestForestRegressor_Fit(t *testing.T) {
	X := [][]float64{{1}, {2}, {3}, {4}, {5}, {6}, {7}, {8}, {9}, {10}}
	y := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

	f := NewForestRegressor(30, 7)
	require.NoError(t, f.Fit(X, y))

	preds := f.Predict(X)
	for i, want := range y {
		assert.InDelta(t, want, preds[i], 1.5, "row %d", i)
	}
	assert.Less(t, preds[0], preds[len(preds)-1])

	imp := f.FeatureImportances()
	require.Len(t, imp, 1)
	assert.InDelta(t, 1.0, imp[0], 1e-9)
}

func TestForest_Errors(t *testing.T) {
	t.Run("classifier", func(t *testing.T) {
		assert.Error(t, NewForestClassifier(10, 1).Fit(nil, nil))
		assert.Error(t, NewForestClassifier(0, 1).Fit([][]float64{{1}}, []int{0}))
		assert.Error(t, NewForestClassifier(10, 1).Fit([][]float64{{1}}, []int{-1}))
		assert.Error(t, NewForestClassifier(10, 1).Fit([][]float64{{1}, {2, 3}}, []int{0, 1}))
	})
	t.Run("regressor", func(t *testing.T) {
		assert.Error(t, NewForestRegressor(10, 1).Fit(nil, nil))
		assert.Error(t, NewForestRegressor(10, 1).Fit([][]float64{{1}}, []float64{1, 2}))
	})
}
