package model

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/disease-predictor/internal/domain"
)

// RBF is a support vector classifier with a gaussian kernel:
// sum_i dual_i * exp(-gamma * |x - sv_i|^2) + b.
type RBF struct {
	supportVectors [][]float64
	dualCoef       []float64
	gamma          float64
	intercept      float64
	n              int
}

// NewRBF builds a kernel SVM from its document
func NewRBF(doc *Document) (*RBF, error) {
	if len(doc.SupportVectors) == 0 {
		return nil, fmt.Errorf("rbf_svm has no support vectors")
	}
	if len(doc.DualCoef) != len(doc.SupportVectors) {
		return nil, fmt.Errorf("rbf_svm has %d dual coefficients for %d support vectors", len(doc.DualCoef), len(doc.SupportVectors))
	}
	if !(doc.Gamma > 0) || math.IsInf(doc.Gamma, 0) {
		return nil, fmt.Errorf("rbf_svm gamma must be positive and finite, got %v", doc.Gamma)
	}
	if err := checkFinite("dual_coef", doc.DualCoef...); err != nil {
		return nil, err
	}
	if err := checkFinite("intercept", doc.Intercept); err != nil {
		return nil, err
	}

	svs := make([][]float64, len(doc.SupportVectors))
	for i, sv := range doc.SupportVectors {
		if len(sv) != doc.NFeatures {
			return nil, fmt.Errorf("support vector %d has %d features, declared %d", i, len(sv), doc.NFeatures)
		}
		if err := checkFinite(fmt.Sprintf("support_vectors[%d]", i), sv...); err != nil {
			return nil, err
		}
		svs[i] = append([]float64(nil), sv...)
	}

	return &RBF{
		supportVectors: svs,
		dualCoef:       append([]float64(nil), doc.DualCoef...),
		gamma:          doc.Gamma,
		intercept:      doc.Intercept,
		n:              doc.NFeatures,
	}, nil
}

// Decision returns the kernel expansion value of x
func (m *RBF) Decision(x domain.InputVector) float64 {
	sum := m.intercept
	for i, sv := range m.supportVectors {
		d := floats.Distance(x, sv, 2)
		sum += m.dualCoef[i] * math.Exp(-m.gamma*d*d)
	}
	return sum
}

// Classify implements domain.Classifier
func (m *RBF) Classify(x domain.InputVector) (domain.Label, error) {
	if len(x) != m.n {
		return 0, &domain.DimensionMismatchError{Expected: m.n, Actual: len(x)}
	}
	return labelFor(m.Decision(x)), nil
}

// Dimension implements domain.Classifier
func (m *RBF) Dimension() int {
	return m.n
}
