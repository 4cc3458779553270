package domain

import (
	"fmt"
	"strconv"
)

// Domain identifies one disease prediction task
type Domain string

// Supported disease domains. The set is fixed at build time.
const (
	DomainDiabetes     Domain = "diabetes"
	DomainHeartDisease Domain = "heart_disease"
	DomainParkinsons   Domain = "parkinsons"
	DomainLungCancer   Domain = "lung_cancer"
	DomainThyroid      Domain = "thyroid"
)

// String returns the domain identifier
func (d Domain) String() string {
	return string(d)
}

// Label is the binary output of a classifier
type Label int

// Classifier labels
const (
	LabelNegative Label = 0
	LabelPositive Label = 1
)

// Valid reports whether the label is one of the two legal values
func (l Label) Valid() bool {
	return l == LabelNegative || l == LabelPositive
}

// String returns the numeric form of the label
func (l Label) String() string {
	return strconv.Itoa(int(l))
}

// Severity tags a prediction as a positive or negative finding
type Severity string

// Severity values
const (
	SeverityPositive Severity = "positive"
	SeverityNegative Severity = "negative"
)

// FieldSpec declares one input measurement of a domain
type FieldSpec struct {
	Name         string  `json:"name"`
	DisplayLabel string  `json:"display_label"`
	Help         string  `json:"help,omitempty"`
	Min          float64 `json:"min_value"`
	Max          float64 `json:"max_value"`
	Position     int     `json:"position"`
}

// Contains reports whether v lies within the inclusive bounds of the field
func (f FieldSpec) Contains(v float64) bool {
	return v >= f.Min && v <= f.Max
}

// String renders the field with its bounds
func (f FieldSpec) String() string {
	return fmt.Sprintf("%s[%d] in [%s, %s]", f.Name, f.Position, FormatNumber(f.Min), FormatNumber(f.Max))
}

// InputVector holds the ordered numeric values for one prediction call
type InputVector []float64

// Clone returns an independent copy of the vector
func (v InputVector) Clone() InputVector {
	out := make(InputVector, len(v))
	copy(out, v)
	return out
}

// PredictionResult is the interpreted outcome of a single prediction
type PredictionResult struct {
	Domain   Domain   `json:"domain"`
	Label    Label    `json:"label"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

// FormatNumber renders a float in its shortest exact form
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
