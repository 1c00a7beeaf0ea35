// Package evaluation scores one (explainer, metric) pair against a fitted
// model by perturbing the feature matrix. The scores are placeholder
// heuristics built from the model's own importances, not real explainability
// computations; the contract is determinism and the [0,1] range.
package evaluation

import (
	"math"
	"sort"

	"explainstudio/internal/ml"
	"explainstudio/internal/models"
)

// Score evaluates metric for explainer over the median-imputed feature
// matrix X. Deterministic for a fixed fitted estimator and X.
func Score(est ml.Estimator, task models.TaskType, X [][]float64, explainer, metric string) float64 {
	if len(X) == 0 || len(X[0]) == 0 {
		return 0
	}
	nFeat := len(X[0])

	attr := transformAttributions(attributions(est, nFeat), explainer)

	k := min(3, nFeat)
	top := topIndices(attr, k)
	means := columnMeans(X)
	base := signal(est, task, X)

	removed := signal(est, task, replaceColumns(X, top, means))
	kept := signal(est, task, replaceColumns(X, complement(top, nFeat), means))

	drop := 0.0
	retainGap := 0.0
	for i := range base {
		if d := base[i] - removed[i]; d > 0 {
			drop += d
		}
		retainGap += math.Abs(base[i] - kept[i])
	}
	drop /= float64(len(base))
	retainGap /= float64(len(base))

	var score float64
	switch metric {
	case "comprehensiveness":
		score = drop
	case "sufficiency":
		score = 1 - retainGap
	case "faithfulness_correlation":
		impacts := make([]float64, nFeat)
		for j := 0; j < nFeat; j++ {
			sig := signal(est, task, replaceColumns(X, []int{j}, means))
			total := 0.0
			for i := range base {
				total += math.Abs(base[i] - sig[i])
			}
			impacts[j] = total / float64(len(base))
		}
		if stddev(attr) == 0 || stddev(impacts) == 0 {
			score = 0
		} else {
			score = (pearson(attr, impacts) + 1) / 2
		}
	default:
		score = mean(attr)
	}

	return clamp01(score)
}

// attributions turns the estimator's importances into a non-negative vector
// summing to 1, uniform when the estimator offers nothing usable.
func attributions(est ml.Estimator, nFeat int) []float64 {
	imp := est.FeatureImportances()
	if len(imp) != nFeat {
		imp = make([]float64, nFeat)
	}
	out := make([]float64, nFeat)
	total := 0.0
	for j, v := range imp {
		out[j] = math.Abs(v)
		total += out[j]
	}
	if total == 0 {
		for j := range out {
			out[j] = 1 / float64(nFeat)
		}
		return out
	}
	for j := range out {
		out[j] /= total
	}
	return out
}

// transformAttributions applies the per-explainer reshaping: lime flattens
// the distribution (sqrt), treeshap sharpens it (power 1.25), shap keeps it.
// The result is renormalized to sum 1.
func transformAttributions(attr []float64, explainer string) []float64 {
	out := make([]float64, len(attr))
	total := 0.0
	for j, v := range attr {
		switch explainer {
		case "lime":
			out[j] = math.Sqrt(v)
		case "treeshap":
			out[j] = math.Pow(v, 1.25)
		default:
			out[j] = v
		}
		total += out[j]
	}
	if total > 0 {
		for j := range out {
			out[j] /= total
		}
	}
	return out
}

// signal is the scalar the perturbations compare: the max class probability
// for classifiers that expose probabilities, the raw prediction otherwise.
func signal(est ml.Estimator, task models.TaskType, X [][]float64) []float64 {
	if task == models.TaskClassification {
		if pp, ok := est.(ml.ProbaPredictor); ok {
			probs := pp.PredictProba(X)
			out := make([]float64, len(probs))
			for i, row := range probs {
				best := 0.0
				for _, p := range row {
					if p > best {
						best = p
					}
				}
				out[i] = best
			}
			return out
		}
	}
	return est.Predict(X)
}

// topIndices returns the indices of the k largest values, ties broken by
// the lower index.
func topIndices(attr []float64, k int) []int {
	idx := make([]int, len(attr))
	for j := range idx {
		idx[j] = j
	}
	sort.SliceStable(idx, func(a, b int) bool { return attr[idx[a]] > attr[idx[b]] })
	return idx[:k]
}

func complement(top []int, n int) []int {
	inTop := make(map[int]bool, len(top))
	for _, j := range top {
		inTop[j] = true
	}
	out := make([]int, 0, n-len(top))
	for j := 0; j < n; j++ {
		if !inTop[j] {
			out = append(out, j)
		}
	}
	return out
}

func columnMeans(X [][]float64) []float64 {
	means := make([]float64, len(X[0]))
	for _, row := range X {
		for j, v := range row {
			means[j] += v
		}
	}
	for j := range means {
		means[j] /= float64(len(X))
	}
	return means
}

// replaceColumns copies X with the given columns overwritten by their
// column means.
func replaceColumns(X [][]float64, cols []int, means []float64) [][]float64 {
	out := make([][]float64, len(X))
	for i, row := range X {
		nr := make([]float64, len(row))
		copy(nr, row)
		out[i] = nr
	}
	for _, j := range cols {
		for i := range out {
			out[i][j] = means[j]
		}
	}
	return out
}

func mean(xs []float64) float64 {
	total := 0.0
	for _, v := range xs {
		total += v
	}
	return total / float64(len(xs))
}

func stddev(xs []float64) float64 {
	m := mean(xs)
	total := 0.0
	for _, v := range xs {
		d := v - m
		total += d * d
	}
	return math.Sqrt(total / float64(len(xs)))
}

func pearson(a, b []float64) float64 {
	ma, mb := mean(a), mean(b)
	var cov, va, vb float64
	for i := range a {
		da, db := a[i]-ma, b[i]-mb
		cov += da * db
		va += da * da
		vb += db * db
	}
	return cov / math.Sqrt(va*vb)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
