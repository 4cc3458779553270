package model

import (
	"fmt"
	"math"

	"github.com/disease-predictor/internal/domain"
)

// Builder turns a validated document into a classifier
type Builder func(doc *Document) (domain.Classifier, error)

// Builders maps each family to its constructor
var Builders = map[Family]Builder{
	FamilyLogisticRegression: func(doc *Document) (domain.Classifier, error) {
		return NewLinear(doc)
	},
	FamilyLinearSVM: func(doc *Document) (domain.Classifier, error) {
		return NewLinear(doc)
	},
	FamilyRBFSVM: func(doc *Document) (domain.Classifier, error) {
		return NewRBF(doc)
	},
	FamilyDecisionTree: func(doc *Document) (domain.Classifier, error) {
		if doc.Tree == nil {
			return nil, fmt.Errorf("decision_tree has no tree")
		}
		return NewTree(doc.Tree, doc.NFeatures)
	},
	FamilyRandomForest: func(doc *Document) (domain.Classifier, error) {
		return NewForest(doc.Trees, doc.NFeatures)
	},
}

// Build constructs the classifier described by doc, wrapping it in a
// Pipeline when the document carries scaler parameters.
func Build(doc *Document) (domain.Classifier, error) {
	build, ok := Builders[doc.Family]
	if !ok {
		return nil, fmt.Errorf("unknown model family %q", doc.Family)
	}

	c, err := build(doc)
	if err != nil {
		return nil, err
	}
	if c.Dimension() != doc.NFeatures {
		return nil, fmt.Errorf("%s classifier takes %d features, declared %d", doc.Family, c.Dimension(), doc.NFeatures)
	}

	if doc.Scaler == nil {
		return c, nil
	}
	scaler, err := NewScaler(doc.Scaler, doc.NFeatures)
	if err != nil {
		return nil, err
	}
	return &Pipeline{Scaler: scaler, Classifier: c}, nil
}

func checkFinite(name string, values ...float64) error {
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			if len(values) == 1 {
				return fmt.Errorf("%s is not finite: %v", name, v)
			}
			return fmt.Errorf("%s[%d] is not finite: %v", name, i, v)
		}
	}
	return nil
}
