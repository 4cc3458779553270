package model

import (
	"fmt"

	"github.com/disease-predictor/internal/domain"
)

type node struct {
	feature   int
	threshold float64
	left      int
	right     int
	label     domain.Label
}

// Tree is a binary decision tree stored as a flat node list
type Tree struct {
	nodes []node
	n     int
}

// NewTree checks node references and builds a tree over n features.
// Children must come after their parent, so traversal always terminates.
func NewTree(doc *TreeDoc, n int) (*Tree, error) {
	if len(doc.Nodes) == 0 {
		return nil, fmt.Errorf("tree has no nodes")
	}

	nodes := make([]node, len(doc.Nodes))
	for i, nd := range doc.Nodes {
		if nd.Left < 0 {
			label := domain.Label(nd.Label)
			if !label.Valid() {
				return nil, fmt.Errorf("leaf %d has label %d", i, nd.Label)
			}
			nodes[i] = node{left: -1, right: -1, label: label}
			continue
		}

		if nd.Feature < 0 || nd.Feature >= n {
			return nil, fmt.Errorf("node %d splits on feature %d, have %d features", i, nd.Feature, n)
		}
		if err := checkFinite(fmt.Sprintf("node %d threshold", i), nd.Threshold); err != nil {
			return nil, err
		}
		for _, child := range []int{nd.Left, nd.Right} {
			if child <= i || child >= len(doc.Nodes) {
				return nil, fmt.Errorf("node %d has invalid child %d", i, child)
			}
		}
		nodes[i] = node{
			feature:   nd.Feature,
			threshold: nd.Threshold,
			left:      nd.Left,
			right:     nd.Right,
		}
	}

	return &Tree{nodes: nodes, n: n}, nil
}

// Classify implements domain.Classifier
func (t *Tree) Classify(x domain.InputVector) (domain.Label, error) {
	if len(x) != t.n {
		return 0, &domain.DimensionMismatchError{Expected: t.n, Actual: len(x)}
	}
	return t.leaf(x), nil
}

func (t *Tree) leaf(x domain.InputVector) domain.Label {
	i := 0
	for t.nodes[i].left >= 0 {
		nd := t.nodes[i]
		if x[nd.feature] <= nd.threshold {
			i = nd.left
		} else {
			i = nd.right
		}
	}
	return t.nodes[i].label
}

// Dimension implements domain.Classifier
func (t *Tree) Dimension() int {
	return t.n
}

// Forest is a majority vote over trees. A tie votes negative.
type Forest struct {
	trees []*Tree
	n     int
}

// NewForest builds every tree of a random forest document
func NewForest(docs []TreeDoc, n int) (*Forest, error) {
	if len(docs) == 0 {
		return nil, fmt.Errorf("random_forest has no trees")
	}
	trees := make([]*Tree, len(docs))
	for i := range docs {
		t, err := NewTree(&docs[i], n)
		if err != nil {
			return nil, fmt.Errorf("tree %d: %w", i, err)
		}
		trees[i] = t
	}
	return &Forest{trees: trees, n: n}, nil
}

// Classify implements domain.Classifier
func (f *Forest) Classify(x domain.InputVector) (domain.Label, error) {
	if len(x) != f.n {
		return 0, &domain.DimensionMismatchError{Expected: f.n, Actual: len(x)}
	}
	votes := 0
	for _, t := range f.trees {
		if t.leaf(x) == domain.LabelPositive {
			votes++
		}
	}
	if 2*votes > len(f.trees) {
		return domain.LabelPositive, nil
	}
	return domain.LabelNegative, nil
}

// Dimension implements domain.Classifier
func (f *Forest) Dimension() int {
	return f.n
}
