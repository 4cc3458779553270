package model

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/disease-predictor/internal/domain"
)

// Scaler standardizes features as (x - mean) / scale
type Scaler struct {
	mean  []float64
	scale []float64
}

// NewScaler checks that both parameter slices have n entries and that no
// scale is zero.
func NewScaler(doc *ScalerDoc, n int) (*Scaler, error) {
	if len(doc.Mean) != n || len(doc.Scale) != n {
		return nil, fmt.Errorf("scaler has %d means and %d scales, want %d", len(doc.Mean), len(doc.Scale), n)
	}
	if err := checkFinite("scaler.mean", doc.Mean...); err != nil {
		return nil, err
	}
	if err := checkFinite("scaler.scale", doc.Scale...); err != nil {
		return nil, err
	}
	for i, s := range doc.Scale {
		if s == 0 {
			return nil, fmt.Errorf("scaler.scale[%d] is zero", i)
		}
	}
	return &Scaler{
		mean:  append([]float64(nil), doc.Mean...),
		scale: append([]float64(nil), doc.Scale...),
	}, nil
}

// Transform returns a standardized copy of x
func (s *Scaler) Transform(x domain.InputVector) domain.InputVector {
	out := x.Clone()
	floats.Sub(out, s.mean)
	floats.Div(out, s.scale)
	return out
}

// Pipeline standardizes the input before handing it to the wrapped classifier
type Pipeline struct {
	Scaler     *Scaler
	Classifier domain.Classifier
}

// Classify implements domain.Classifier
func (p *Pipeline) Classify(x domain.InputVector) (domain.Label, error) {
	if len(x) != p.Dimension() {
		return 0, &domain.DimensionMismatchError{Expected: p.Dimension(), Actual: len(x)}
	}
	return p.Classifier.Classify(p.Scaler.Transform(x))
}

// Dimension implements domain.Classifier
func (p *Pipeline) Dimension() int {
	return p.Classifier.Dimension()
}
