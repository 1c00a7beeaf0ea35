package ml

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// ForestClassifier is a bagged ensemble of CART trees with sqrt(p) feature
// subsampling at every node. Fitting is deterministic for a fixed Seed:
// tree i draws its bootstrap sample and feature subsets from a source
// seeded with Seed+i.
type ForestClassifier struct {
	NumTrees int
	MaxDepth int // 0 = unlimited
	MinLeaf  int
	Seed     int64

	trees     []*decisionTree
	nClasses  int
	nFeatures int
}

func NewForestClassifier(numTrees int, seed int64) *ForestClassifier {
	return &ForestClassifier{NumTrees: numTrees, MinLeaf: 1, Seed: seed}
}

// Fit trains the ensemble on X and class indices y (0..k-1). Trees are
// grown concurrently, at most GOMAXPROCS at a time.
func (f *ForestClassifier) Fit(X [][]float64, y []int) error {
	if err := validateMatrix(X, len(y)); err != nil {
		return err
	}
	if f.NumTrees <= 0 {
		return errors.New("ml: forest needs at least one tree")
	}
	f.nFeatures = len(X[0])
	f.nClasses = 0
	for _, c := range y {
		if c < 0 {
			return errors.New("ml: class indices must be non-negative")
		}
		if c+1 > f.nClasses {
			f.nClasses = c + 1
		}
	}

	maxFeatures := int(math.Round(math.Sqrt(float64(f.nFeatures))))
	if maxFeatures < 1 {
		maxFeatures = 1
	}

	f.trees = make([]*decisionTree, f.NumTrees)
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := 0; i < f.NumTrees; i++ {
		g.Go(func() error {
			rnd := rand.New(rand.NewSource(f.Seed + int64(i)))
			tree := &decisionTree{
				task:        treeClassify,
				maxDepth:    f.MaxDepth,
				minLeaf:     f.MinLeaf,
				maxFeatures: maxFeatures,
				nClasses:    f.nClasses,
			}
			tree.fit(X, y, nil, bootstrapIndices(len(X), rnd), rnd)
			f.trees[i] = tree
			return nil
		})
	}
	return g.Wait()
}

// PredictProba averages the leaf class distributions across trees.
func (f *ForestClassifier) PredictProba(X [][]float64) [][]float64 {
	out := make([][]float64, len(X))
	for r, row := range X {
		probs := make([]float64, f.nClasses)
		for _, tree := range f.trees {
			for c, p := range tree.leafFor(row).probs {
				probs[c] += p
			}
		}
		for c := range probs {
			probs[c] /= float64(len(f.trees))
		}
		out[r] = probs
	}
	return out
}

// Predict returns the majority class index for each row as a float64.
func (f *ForestClassifier) Predict(X [][]float64) []float64 {
	probs := f.PredictProba(X)
	out := make([]float64, len(X))
	for r, p := range probs {
		out[r] = float64(argmax(p))
	}
	return out
}

// FeatureImportances averages the impurity-decrease importances of the
// trees, normalized to sum to one.
func (f *ForestClassifier) FeatureImportances() []float64 {
	return forestImportances(f.trees, f.nFeatures)
}

// ForestRegressor is the variance-reduction counterpart of
// ForestClassifier. Every feature is a split candidate at every node.
type ForestRegressor struct {
	NumTrees int
	MaxDepth int
	MinLeaf  int
	Seed     int64

	trees     []*decisionTree
	nFeatures int
}

func NewForestRegressor(numTrees int, seed int64) *ForestRegressor {
	return &ForestRegressor{NumTrees: numTrees, MinLeaf: 1, Seed: seed}
}

func (f *ForestRegressor) Fit(X [][]float64, y []float64) error {
	if err := validateMatrix(X, len(y)); err != nil {
		return err
	}
	if f.NumTrees <= 0 {
		return errors.New("ml: forest needs at least one tree")
	}
	f.nFeatures = len(X[0])

	f.trees = make([]*decisionTree, f.NumTrees)
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := 0; i < f.NumTrees; i++ {
		g.Go(func() error {
			rnd := rand.New(rand.NewSource(f.Seed + int64(i)))
			tree := &decisionTree{
				task:     treeRegress,
				maxDepth: f.MaxDepth,
				minLeaf:  f.MinLeaf,
			}
			tree.fit(X, nil, y, bootstrapIndices(len(X), rnd), rnd)
			f.trees[i] = tree
			return nil
		})
	}
	return g.Wait()
}

// Predict averages the leaf means across trees.
func (f *ForestRegressor) Predict(X [][]float64) []float64 {
	out := make([]float64, len(X))
	for r, row := range X {
		sum := 0.0
		for _, tree := range f.trees {
			sum += tree.leafFor(row).value
		}
		out[r] = sum / float64(len(f.trees))
	}
	return out
}

func (f *ForestRegressor) FeatureImportances() []float64 {
	return forestImportances(f.trees, f.nFeatures)
}

// bootstrapIndices draws n samples with replacement.
func bootstrapIndices(n int, rnd *rand.Rand) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = rnd.Intn(n)
	}
	return idx
}

func forestImportances(trees []*decisionTree, nFeatures int) []float64 {
	if len(trees) == 0 {
		return nil
	}
	total := make([]float64, nFeatures)
	for _, tree := range trees {
		for j, imp := range tree.importances {
			total[j] += imp
		}
	}
	return normalize(total)
}

func validateMatrix(X [][]float64, nTargets int) error {
	if len(X) == 0 || len(X[0]) == 0 {
		return errors.New("ml: empty feature matrix")
	}
	if len(X) != nTargets {
		return fmt.Errorf("ml: %d rows but %d targets", len(X), nTargets)
	}
	width := len(X[0])
	for r, row := range X {
		if len(row) != width {
			return fmt.Errorf("ml: row %d has %d features, want %d", r, len(row), width)
		}
	}
	return nil
}
