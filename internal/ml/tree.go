package ml

import (
	"math"
	"math/rand"
	"sort"
)

// treeTask selects the split criterion: gini impurity for classification,
// variance for regression.
type treeTask int

const (
	treeClassify treeTask = iota
	treeRegress
)

type treeNode struct {
	leaf      bool
	feature   int
	threshold float64
	left      *treeNode
	right     *treeNode
	n         int

	probs []float64 // classification leaves: class distribution
	value float64   // regression leaves: mean target
}

// decisionTree is the CART builder both forests share. Feature matrices
// arrive median-imputed, so there is no missing-value handling here.
// Thresholds are midpoints between consecutive distinct sorted values; a
// split must leave minLeaf samples on each side and reduce impurity.
type decisionTree struct {
	task        treeTask
	maxDepth    int // 0 = unlimited
	minLeaf     int
	maxFeatures int // 0 = all features at every node
	nClasses    int

	root        *treeNode
	importances []float64
	totalN      int
}

type splitCandidate struct {
	feature   int
	threshold float64
	gain      float64
	leftIdx   []int
	rightIdx  []int
}

// fit grows the tree over the sample indices in idx. yc carries class
// indices for classification, yr targets for regression; the unused one is
// nil.
func (t *decisionTree) fit(X [][]float64, yc []int, yr []float64, idx []int, rnd *rand.Rand) {
	p := len(X[0])
	t.totalN = len(idx)
	t.importances = make([]float64, p)
	t.root = t.build(X, yc, yr, idx, 0, p, rnd)
}

func (t *decisionTree) build(X [][]float64, yc []int, yr []float64, idx []int, depth, p int, rnd *rand.Rand) *treeNode {
	node := &treeNode{n: len(idx)}
	parentImp := t.impurity(yc, yr, idx)

	if parentImp < 1e-12 || len(idx) < 2 || len(idx) < 2*t.minLeaf ||
		(t.maxDepth > 0 && depth >= t.maxDepth) {
		t.makeLeaf(node, yc, yr, idx)
		return node
	}

	features := t.candidateFeatures(p, rnd)
	best := splitCandidate{feature: -1}
	for _, f := range features {
		if cand := t.bestSplitForFeature(X, yc, yr, idx, f, parentImp); cand.feature >= 0 && cand.gain > best.gain {
			best = cand
		}
	}
	if best.feature < 0 || best.gain <= 1e-12 {
		t.makeLeaf(node, yc, yr, idx)
		return node
	}

	t.importances[best.feature] += float64(len(idx)) / float64(t.totalN) * best.gain

	node.feature = best.feature
	node.threshold = best.threshold
	node.left = t.build(X, yc, yr, best.leftIdx, depth+1, p, rnd)
	node.right = t.build(X, yc, yr, best.rightIdx, depth+1, p, rnd)
	return node
}

// candidateFeatures returns all feature indices, or a random subset of
// maxFeatures of them drawn with a partial Fisher-Yates shuffle.
func (t *decisionTree) candidateFeatures(p int, rnd *rand.Rand) []int {
	features := make([]int, p)
	for j := range features {
		features[j] = j
	}
	if t.maxFeatures <= 0 || t.maxFeatures >= p {
		return features
	}
	for i := 0; i < t.maxFeatures; i++ {
		j := i + rnd.Intn(p-i)
		features[i], features[j] = features[j], features[i]
	}
	return features[:t.maxFeatures]
}

// bestSplitForFeature sorts the node's samples by one feature and scans the
// boundaries between distinct values, maintaining running left-side stats.
func (t *decisionTree) bestSplitForFeature(X [][]float64, yc []int, yr []float64, idx []int, f int, parentImp float64) splitCandidate {
	best := splitCandidate{feature: -1}

	order := make([]int, len(idx))
	copy(order, idx)
	sort.Slice(order, func(a, b int) bool { return X[order[a]][f] < X[order[b]][f] })

	n := len(order)
	nf := float64(n)

	var leftCounts, rightCounts []int
	var leftSum, leftSumSq, rightSum, rightSumSq float64
	if t.task == treeClassify {
		leftCounts = make([]int, t.nClasses)
		rightCounts = make([]int, t.nClasses)
		for _, i := range order {
			rightCounts[yc[i]]++
		}
	} else {
		for _, i := range order {
			rightSum += yr[i]
			rightSumSq += yr[i] * yr[i]
		}
	}

	for s := 1; s < n; s++ {
		moved := order[s-1]
		if t.task == treeClassify {
			leftCounts[yc[moved]]++
			rightCounts[yc[moved]]--
		} else {
			leftSum += yr[moved]
			leftSumSq += yr[moved] * yr[moved]
			rightSum -= yr[moved]
			rightSumSq -= yr[moved] * yr[moved]
		}

		if X[order[s]][f] == X[order[s-1]][f] {
			continue
		}
		if s < t.minLeaf || n-s < t.minLeaf {
			continue
		}

		var impL, impR float64
		if t.task == treeClassify {
			impL = giniFromCounts(leftCounts, s)
			impR = giniFromCounts(rightCounts, n-s)
		} else {
			impL = varianceFromSums(leftSum, leftSumSq, s)
			impR = varianceFromSums(rightSum, rightSumSq, n-s)
		}
		weighted := float64(s)/nf*impL + float64(n-s)/nf*impR
		gain := parentImp - weighted
		if gain > best.gain {
			best = splitCandidate{
				feature:   f,
				threshold: (X[order[s-1]][f] + X[order[s]][f]) / 2,
				gain:      gain,
				leftIdx:   append([]int(nil), order[:s]...),
				rightIdx:  append([]int(nil), order[s:]...),
			}
		}
	}
	return best
}

func (t *decisionTree) impurity(yc []int, yr []float64, idx []int) float64 {
	if t.task == treeClassify {
		counts := make([]int, t.nClasses)
		for _, i := range idx {
			counts[yc[i]]++
		}
		return giniFromCounts(counts, len(idx))
	}
	var sum, sumSq float64
	for _, i := range idx {
		sum += yr[i]
		sumSq += yr[i] * yr[i]
	}
	return varianceFromSums(sum, sumSq, len(idx))
}

func (t *decisionTree) makeLeaf(node *treeNode, yc []int, yr []float64, idx []int) {
	node.leaf = true
	if t.task == treeClassify {
		counts := make([]int, t.nClasses)
		for _, i := range idx {
			counts[yc[i]]++
		}
		node.probs = make([]float64, t.nClasses)
		for c, cnt := range counts {
			node.probs[c] = float64(cnt) / float64(len(idx))
		}
		return
	}
	sum := 0.0
	for _, i := range idx {
		sum += yr[i]
	}
	node.value = sum / float64(len(idx))
}

func (t *decisionTree) leafFor(row []float64) *treeNode {
	node := t.root
	for !node.leaf {
		if row[node.feature] <= node.threshold {
			node = node.left
		} else {
			node = node.right
		}
	}
	return node
}

func giniFromCounts(counts []int, n int) float64 {
	if n == 0 {
		return 0
	}
	res := 0.0
	for _, c := range counts {
		p := float64(c) / float64(n)
		res += p * (1 - p)
	}
	return res
}

func varianceFromSums(sum, sumSq float64, n int) float64 {
	if n == 0 {
		return 0
	}
	nf := float64(n)
	mean := sum / nf
	v := sumSq/nf - mean*mean
	// Guard the tiny negatives floating-point cancellation produces.
	return math.Max(v, 0)
}
