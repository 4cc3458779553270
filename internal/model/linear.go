package model

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/disease-predictor/internal/domain"
)

// Linear is a linear decision function w·x + b. Logistic regression and
// linear SVMs share it: both predict positive when the margin is above zero,
// which for logistic regression is a probability above 0.5.
type Linear struct {
	family       Family
	coefficients []float64
	intercept    float64
}

// NewLinear builds a linear classifier from its document
func NewLinear(doc *Document) (*Linear, error) {
	if len(doc.Coefficients) != doc.NFeatures {
		return nil, fmt.Errorf("%s has %d coefficients, declared %d features", doc.Family, len(doc.Coefficients), doc.NFeatures)
	}
	if err := checkFinite("coefficients", doc.Coefficients...); err != nil {
		return nil, err
	}
	if err := checkFinite("intercept", doc.Intercept); err != nil {
		return nil, err
	}
	return &Linear{
		family:       doc.Family,
		coefficients: append([]float64(nil), doc.Coefficients...),
		intercept:    doc.Intercept,
	}, nil
}

// Decision returns the signed margin of x
func (m *Linear) Decision(x domain.InputVector) float64 {
	return floats.Dot(m.coefficients, x) + m.intercept
}

// Classify implements domain.Classifier
func (m *Linear) Classify(x domain.InputVector) (domain.Label, error) {
	if len(x) != m.Dimension() {
		return 0, &domain.DimensionMismatchError{Expected: m.Dimension(), Actual: len(x)}
	}
	return labelFor(m.Decision(x)), nil
}

// Dimension implements domain.Classifier
func (m *Linear) Dimension() int {
	return len(m.coefficients)
}

func labelFor(decision float64) domain.Label {
	if decision > 0 {
		return domain.LabelPositive
	}
	return domain.LabelNegative
}
