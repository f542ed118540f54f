package forest

import (
	"encoding/json"
	"errors"
	"fmt"
)

const Type = "random_forest"

const leaf = -1

var (
	ErrNoTrees   = errors.New("forest has no trees")
	ErrMalformed = errors.New("malformed tree")
)

// Tree is a fitted binary decision tree in flat array form. Node 0 is the
// root; a node whose left child is -1 is a leaf. Samples with
// x[Feature[n]] <= Threshold[n] go left. Value[n] holds the class weights
// observed at node n.
type Tree struct {
	ChildrenLeft  []int       `json:"children_left"`
	ChildrenRight []int       `json:"children_right"`
	Feature       []int       `json:"feature"`
	Threshold     []float64   `json:"threshold"`
	Value         [][]float64 `json:"value"`
}

// Forest averages the leaf class distributions of its trees.
type Forest struct {
	NFeatures int    `json:"n_features"`
	Classes   []int  `json:"classes"`
	Trees     []Tree `json:"trees"`

	// normalised leaf distributions, per tree and node
	leaves [][][]float64
}

func Decode(data []byte) (*Forest, error) {
	var f Forest
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode forest: %w", err)
	}
	if err := f.init(); err != nil {
		return nil, err
	}
	return &f, nil
}

func (f *Forest) init() error {
	if f.NFeatures <= 0 {
		return fmt.Errorf("%w: n_features must be positive", ErrMalformed)
	}
	if len(f.Classes) != 2 || f.Classes[0] != 0 || f.Classes[1] != 1 {
		return fmt.Errorf("%w: classes must be [0 1], got %v", ErrMalformed, f.Classes)
	}
	if len(f.Trees) == 0 {
		return ErrNoTrees
	}
	f.leaves = make([][][]float64, len(f.Trees))
	for i := range f.Trees {
		leaves, err := f.Trees[i].check(f.NFeatures, len(f.Classes))
		if err != nil {
			return fmt.Errorf("tree %d: %w", i, err)
		}
		f.leaves[i] = leaves
	}
	return nil
}

func (t Tree) check(nFeatures, nClasses int) ([][]float64, error) {
	n := len(t.ChildrenLeft)
	if n == 0 {
		return nil, fmt.Errorf("%w: no nodes", ErrMalformed)
	}
	if len(t.ChildrenRight) != n || len(t.Feature) != n || len(t.Threshold) != n || len(t.Value) != n {
		return nil, fmt.Errorf("%w: node arrays differ in length", ErrMalformed)
	}
	leaves := make([][]float64, n)
	for node := 0; node < n; node++ {
		left, right := t.ChildrenLeft[node], t.ChildrenRight[node]
		if left == leaf {
			if right != leaf {
				return nil, fmt.Errorf("%w: node %d has a single child", ErrMalformed, node)
			}
			dist, err := normalise(t.Value[node], nClasses)
			if err != nil {
				return nil, fmt.Errorf("%w: node %d: %v", ErrMalformed, node, err)
			}
			leaves[node] = dist
			continue
		}
		// children always follow their parent, so every walk terminates
		if left <= node || right <= node || left >= n || right >= n {
			return nil, fmt.Errorf("%w: node %d has children %d,%d", ErrMalformed, node, left, right)
		}
		if t.Feature[node] < 0 || t.Feature[node] >= nFeatures {
			return nil, fmt.Errorf("%w: node %d splits on feature %d", ErrMalformed, node, t.Feature[node])
		}
	}
	return leaves, nil
}

func normalise(weights []float64, nClasses int) ([]float64, error) {
	if len(weights) != nClasses {
		return nil, fmt.Errorf("%d class weights, expected %d", len(weights), nClasses)
	}
	var sum float64
	for _, w := range weights {
		if w < 0 {
			return nil, fmt.Errorf("negative class weight %v", w)
		}
		sum += w
	}
	if sum == 0 {
		return nil, errors.New("leaf has no weight")
	}
	dist := make([]float64, nClasses)
	for i, w := range weights {
		dist[i] = w / sum
	}
	return dist, nil
}

func (f *Forest) NumFeatures() int {
	return f.NFeatures
}

func (f *Forest) PredictProba(x []float64) ([]float64, error) {
	if len(x) != f.NFeatures {
		return nil, fmt.Errorf("got %d features, expected %d", len(x), f.NFeatures)
	}
	proba := make([]float64, len(f.Classes))
	for i := range f.Trees {
		dist := f.leaves[i][f.Trees[i].apply(x)]
		for c := range proba {
			proba[c] += dist[c]
		}
	}
	for c := range proba {
		proba[c] /= float64(len(f.Trees))
	}
	return proba, nil
}

func (f *Forest) Predict(x []float64) (int, error) {
	proba, err := f.PredictProba(x)
	if err != nil {
		return 0, err
	}
	return f.Classes[argmax(proba)], nil
}

func (t Tree) apply(x []float64) int {
	node := 0
	for t.ChildrenLeft[node] != leaf {
		if x[t.Feature[node]] <= t.Threshold[node] {
			node = t.ChildrenLeft[node]
		} else {
			node = t.ChildrenRight[node]
		}
	}
	return node
}

func argmax(v []float64) int {
	best := 0
	for i := 1; i < len(v); i++ {
		if v[i] > v[best] {
			best = i
		}
	}
	return best
}
