package ml

import (
	"errors"
	"math"
)

// LogisticRegression is a one-vs-rest logistic classifier trained with
// full-batch gradient descent. Features are standardized internally so the
// fixed learning rate behaves across arbitrary upload scales; weights start
// at zero, which keeps training deterministic.
type LogisticRegression struct {
	LearningRate float64
	Epochs       int

	weights  [][]float64 // one vector per class; a single vector for binary
	biases   []float64
	means    []float64
	stds     []float64
	nClasses int
}

func NewLogisticRegression() *LogisticRegression {
	return &LogisticRegression{LearningRate: 0.5, Epochs: 300}
}

// Fit trains on class indices 0..k-1. Binary targets train one sigmoid
// head; k > 2 trains one head per class.
func (m *LogisticRegression) Fit(X [][]float64, y []int) error {
	n := len(X)
	if n == 0 {
		return errors.New("logistic: empty X")
	}
	if len(y) != n {
		return errors.New("logistic: X and y length mismatch")
	}
	p := len(X[0])
	if p == 0 {
		return errors.New("logistic: no features")
	}

	k := 0
	for _, label := range y {
		if label < 0 {
			return errors.New("logistic: negative class index")
		}
		if label+1 > k {
			k = label + 1
		}
	}
	if k < 2 {
		return errors.New("logistic: need at least two classes")
	}
	m.nClasses = k

	Xs := m.standardize(X, p)

	heads := k
	if k == 2 {
		heads = 1
	}
	m.weights = make([][]float64, heads)
	m.biases = make([]float64, heads)
	for h := 0; h < heads; h++ {
		positive := h
		if k == 2 {
			positive = 1
		}
		targets := make([]float64, n)
		for i, label := range y {
			if label == positive {
				targets[i] = 1
			}
		}
		m.weights[h], m.biases[h] = m.fitBinary(Xs, targets, p)
	}
	return nil
}

// fitBinary runs averaged-gradient descent on the binary cross-entropy
// loss: grad = (1/n) Σ (σ(wx+b) − y) x.
func (m *LogisticRegression) fitBinary(X [][]float64, targets []float64, p int) ([]float64, float64) {
	w := make([]float64, p)
	b := 0.0
	n := float64(len(X))

	for ep := 0; ep < m.Epochs; ep++ {
		gw := make([]float64, p)
		gb := 0.0
		for i, row := range X {
			z := b
			for j, v := range row {
				z += w[j] * v
			}
			d := sigmoid(z) - targets[i]
			for j, v := range row {
				gw[j] += d * v
			}
			gb += d
		}
		for j := range w {
			w[j] -= m.LearningRate * gw[j] / n
		}
		b -= m.LearningRate * gb / n
	}
	return w, b
}

// PredictProba returns one probability row per input with nClasses columns.
// Multiclass heads are independent sigmoids renormalized to sum 1.
func (m *LogisticRegression) PredictProba(X [][]float64) [][]float64 {
	Xs := m.applyStandardization(X)
	out := make([][]float64, len(Xs))
	for i, row := range Xs {
		probs := make([]float64, m.nClasses)
		if m.nClasses == 2 {
			p := m.headScore(0, row)
			probs[0] = 1 - p
			probs[1] = p
		} else {
			total := 0.0
			for h := range m.weights {
				probs[h] = m.headScore(h, row)
				total += probs[h]
			}
			if total > 0 {
				for h := range probs {
					probs[h] /= total
				}
			} else {
				for h := range probs {
					probs[h] = 1 / float64(m.nClasses)
				}
			}
		}
		out[i] = probs
	}
	return out
}

// Predict returns the highest-probability class index per row as float64.
func (m *LogisticRegression) Predict(X [][]float64) []float64 {
	probs := m.PredictProba(X)
	out := make([]float64, len(probs))
	for i, row := range probs {
		out[i] = float64(argmax(row))
	}
	return out
}

// FeatureImportances averages |weight| across heads, normalized.
func (m *LogisticRegression) FeatureImportances() []float64 {
	if len(m.weights) == 0 {
		return nil
	}
	p := len(m.weights[0])
	sums := make([]float64, p)
	for _, w := range m.weights {
		for j, v := range w {
			sums[j] += math.Abs(v)
		}
	}
	return normalize(sums)
}

func (m *LogisticRegression) headScore(h int, standardizedRow []float64) float64 {
	z := m.biases[h]
	for j, v := range standardizedRow {
		z += m.weights[h][j] * v
	}
	return sigmoid(z)
}

func (m *LogisticRegression) standardize(X [][]float64, p int) [][]float64 {
	n := float64(len(X))
	m.means = make([]float64, p)
	m.stds = make([]float64, p)
	for _, row := range X {
		for j, v := range row {
			m.means[j] += v
		}
	}
	for j := range m.means {
		m.means[j] /= n
	}
	for _, row := range X {
		for j, v := range row {
			d := v - m.means[j]
			m.stds[j] += d * d
		}
	}
	for j := range m.stds {
		m.stds[j] = math.Sqrt(m.stds[j] / n)
		if m.stds[j] == 0 {
			m.stds[j] = 1
		}
	}
	return m.applyStandardization(X)
}

func (m *LogisticRegression) applyStandardization(X [][]float64) [][]float64 {
	out := make([][]float64, len(X))
	for i, row := range X {
		sr := make([]float64, len(row))
		for j, v := range row {
			sr[j] = (v - m.means[j]) / m.stds[j]
		}
		out[i] = sr
	}
	return out
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}
