package ml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogisticRegression_Binary(t *testing.T) {
	m := NewLogisticRegression()
	X := [][]float64{{0}, {1}, {2}, {10}, {11}, {12}}
	y := []int{0, 0, 0, 1, 1, 1}

	require.NoError(t, m.Fit(X, y))

	preds := m.Predict(X)
	for i, want := range y {
		assert.Equal(t, float64(want), preds[i], "row %d", i)
	}

	probs := m.PredictProba(X)
	for i, row := range probs {
		require.Len(t, row, 2)
		assert.InDelta(t, 1.0, row[0]+row[1], 1e-9, "row %d must sum to 1", i)
		assert.GreaterOrEqual(t, row[0], 0.0)
		assert.LessOrEqual(t, row[0], 1.0)
	}
	assert.Greater(t, probs[0][0], 0.5, "low values belong to class 0")
	assert.Greater(t, probs[5][1], 0.5, "high values belong to class 1")
}

func TestLogisticRegression_Multiclass(t *testing.T) {
	m := NewLogisticRegression()
	X := [][]float64{
		{0, 0}, {0.2, 0.1}, {0.1, 0.3},
		{5, 0}, {5.2, 0.2}, {4.9, 0.1},
		{0, 5}, {0.2, 5.1}, {0.1, 4.8},
	}
	y := []int{0, 0, 0, 1, 1, 1, 2, 2, 2}

	require.NoError(t, m.Fit(X, y))

	preds := m.Predict(X)
	for i, want := range y {
		assert.Equal(t, float64(want), preds[i], "row %d", i)
	}

	for _, row := range m.PredictProba(X) {
		require.Len(t, row, 3)
		sum := row[0] + row[1] + row[2]
		assert.InDelta(t, 1.0, sum, 1e-9)
	}

	imp := m.FeatureImportances()
	require.Len(t, imp, 2)
	total := 0.0
	for _, v := range imp {
		assert.GreaterOrEqual(t, v, 0.0)
		total += v
	}
	assert.InDelta(t, 1.0, total, 1e-9)
}

func TestLogisticRegression_Errors(t *testing.T) {
	tests := []struct {
		name string
		X    [][]float64
		y    []int
	}{
		{name: "empty X", X: nil, y: nil},
		{name: "length mismatch", X: [][]float64{{1}}, y: []int{0, 1}},
		{name: "single class", X: [][]float64{{1}, {2}}, y: []int{0, 0}},
		{name: "negative class", X: [][]float64{{1}, {2}}, y: []int{0, -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewLogisticRegression()
			assert.Error(t, m.Fit(tt.X, tt.y))
		})
	}

	t.Run("unfitted importances are nil", func(t *testing.T) {
		assert.Nil(t, NewLogisticRegression().FeatureImportances())
	})
}
