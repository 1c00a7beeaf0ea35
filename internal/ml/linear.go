package ml

import (
	"errors"
	"fmt"
	"math"
)

// LinearRegression fits ordinary least squares through the normal
// equations. Closed form beats gradient descent here: the training sets are
// small uploaded tables and the solution must be reproducible run to run.
type LinearRegression struct {
	Coef      []float64
	Intercept float64
}

func NewLinearRegression() *LinearRegression {
	return &LinearRegression{}
}

// Fit solves (AᵀA + εI) w = Aᵀy where A is X with an appended intercept
// column. The tiny ridge term keeps collinear uploads solvable.
func (m *LinearRegression) Fit(X [][]float64, y []float64) error {
	n := len(X)
	if n == 0 {
		return errors.New("linear: empty X")
	}
	if len(y) != n {
		return errors.New("linear: X and y length mismatch")
	}
	p := len(X[0])
	if p == 0 {
		return errors.New("linear: no features")
	}

	dim := p + 1 // last slot is the intercept
	ata := make([][]float64, dim)
	for i := range ata {
		ata[i] = make([]float64, dim)
	}
	aty := make([]float64, dim)

	at := func(row []float64, j int) float64 {
		if j < p {
			return row[j]
		}
		return 1.0
	}
	for r := 0; r < n; r++ {
		if len(X[r]) != p {
			return fmt.Errorf("linear: row %d has %d features, want %d", r, len(X[r]), p)
		}
		for i := 0; i < dim; i++ {
			ai := at(X[r], i)
			aty[i] += ai * y[r]
			for j := i; j < dim; j++ {
				ata[i][j] += ai * at(X[r], j)
			}
		}
	}
	for i := 0; i < dim; i++ {
		for j := 0; j < i; j++ {
			ata[i][j] = ata[j][i]
		}
		ata[i][i] += 1e-9
	}

	w, err := solveLinearSystem(ata, aty)
	if err != nil {
		return fmt.Errorf("linear: %w", err)
	}
	m.Coef = w[:p]
	m.Intercept = w[p]
	return nil
}

func (m *LinearRegression) Predict(X [][]float64) []float64 {
	out := make([]float64, len(X))
	for i, row := range X {
		sum := m.Intercept
		for j, v := range row {
			sum += m.Coef[j] * v
		}
		out[i] = sum
	}
	return out
}

// FeatureImportances is the normalized |coefficient| vector.
func (m *LinearRegression) FeatureImportances() []float64 {
	if m.Coef == nil {
		return nil
	}
	return normalize(m.Coef)
}

// solveLinearSystem runs Gaussian elimination with partial pivoting on a
// copy of a and b.
func solveLinearSystem(a [][]float64, b []float64) ([]float64, error) {
	dim := len(a)
	m := make([][]float64, dim)
	for i := range m {
		m[i] = make([]float64, dim+1)
		copy(m[i], a[i])
		m[i][dim] = b[i]
	}

	for col := 0; col < dim; col++ {
		pivot := col
		for r := col + 1; r < dim; r++ {
			if math.Abs(m[r][col]) > math.Abs(m[pivot][col]) {
				pivot = r
			}
		}
		if math.Abs(m[pivot][col]) < 1e-12 {
			return nil, errors.New("singular design matrix")
		}
		m[col], m[pivot] = m[pivot], m[col]

		for r := col + 1; r < dim; r++ {
			factor := m[r][col] / m[col][col]
			for c := col; c <= dim; c++ {
				m[r][c] -= factor * m[col][c]
			}
		}
	}

	x := make([]float64, dim)
	for i := dim - 1; i >= 0; i-- {
		sum := m[i][dim]
		for j := i + 1; j < dim; j++ {
			sum -= m[i][j] * x[j]
		}
		x[i] = sum / m[i][i]
	}
	return x, nil
}
