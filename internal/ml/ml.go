// Package ml implements the baseline estimators the model store can train:
// ordinary least squares, one-vs-rest logistic regression, and random
// forests. These are deliberately small in-process models. The run scorer
// needs deterministic predictions and a normalized feature-importance
// vector, not state-of-the-art accuracy.
package ml

import "math"

// Estimator is a fitted model as the run scorer consumes it: one float
// prediction per row (the class index for classifiers) plus a per-feature
// attribution source.
type Estimator interface {
	Predict(X [][]float64) []float64
	// FeatureImportances returns non-negative per-feature weights summing
	// to 1, or nil when the model is unfitted.
	FeatureImportances() []float64
}

// ProbaPredictor is implemented by classification estimators. The run
// scorer prefers the per-class probability signal when it is available.
type ProbaPredictor interface {
	PredictProba(X [][]float64) [][]float64
}

// normalize scales xs so the absolute values sum to 1. A zero or empty
// vector comes back uniform.
func normalize(xs []float64) []float64 {
	out := make([]float64, len(xs))
	total := 0.0
	for i, v := range xs {
		out[i] = math.Abs(v)
		total += out[i]
	}
	if total == 0 {
		for i := range out {
			out[i] = 1 / float64(len(out))
		}
		return out
	}
	for i := range out {
		out[i] /= total
	}
	return out
}

func argmax(xs []float64) int {
	best := 0
	for i := 1; i < len(xs); i++ {
		if xs[i] > xs[best] {
			best = i
		}
	}
	return best
}
