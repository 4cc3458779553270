// Package model decodes classifier artifacts and holds the loaded
// classifiers for every disease domain.
package model

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/disease-predictor/internal/artifact"
)

// Family names a classifier algorithm an artifact can carry
type Family string

// Supported families
const (
	FamilyLogisticRegression Family = "logistic_regression"
	FamilyLinearSVM          Family = "linear_svm"
	FamilyRBFSVM             Family = "rbf_svm"
	FamilyDecisionTree       Family = "decision_tree"
	FamilyRandomForest       Family = "random_forest"
)

// Document is the serialized form of a trained classifier
type Document struct {
	Domain    string     `json:"domain" yaml:"domain" validate:"required"`
	Family    Family     `json:"family" yaml:"family" validate:"required,oneof=logistic_regression linear_svm rbf_svm decision_tree random_forest"`
	Version   string     `json:"version,omitempty" yaml:"version,omitempty"`
	NFeatures int        `json:"n_features" yaml:"n_features" validate:"gt=0"`
	Scaler    *ScalerDoc `json:"scaler,omitempty" yaml:"scaler,omitempty"`

	Coefficients []float64 `json:"coefficients,omitempty" yaml:"coefficients,omitempty"`
	Intercept    float64   `json:"intercept,omitempty" yaml:"intercept,omitempty"`

	SupportVectors [][]float64 `json:"support_vectors,omitempty" yaml:"support_vectors,omitempty"`
	DualCoef       []float64   `json:"dual_coef,omitempty" yaml:"dual_coef,omitempty"`
	Gamma          float64     `json:"gamma,omitempty" yaml:"gamma,omitempty"`

	Tree  *TreeDoc  `json:"tree,omitempty" yaml:"tree,omitempty"`
	Trees []TreeDoc `json:"trees,omitempty" yaml:"trees,omitempty" validate:"omitempty,dive"`
}

// ScalerDoc holds standardization parameters applied before classification
type ScalerDoc struct {
	Mean  []float64 `json:"mean" yaml:"mean" validate:"required"`
	Scale []float64 `json:"scale" yaml:"scale" validate:"required"`
}

// TreeDoc is a flattened binary tree; node 0 is the root
type TreeDoc struct {
	Nodes []NodeDoc `json:"nodes" yaml:"nodes" validate:"required,min=1"`
}

// NodeDoc is one tree node. Left < 0 marks a leaf.
type NodeDoc struct {
	Feature   int     `json:"feature" yaml:"feature"`
	Threshold float64 `json:"threshold" yaml:"threshold"`
	Left      int     `json:"left" yaml:"left"`
	Right     int     `json:"right" yaml:"right"`
	Label     int     `json:"label" yaml:"label"`
}

var validate = validator.New()

// ParseDocument decodes and validates an artifact payload
func ParseDocument(payload []byte, format artifact.Format) (*Document, error) {
	var doc Document

	switch format {
	case artifact.FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(payload))
		if err := dec.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode JSON artifact: %w", err)
		}
	case artifact.FormatYAML:
		if err := yaml.Unmarshal(payload, &doc); err != nil {
			return nil, fmt.Errorf("failed to decode YAML artifact: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported artifact format %q", format)
	}

	if err := validate.Struct(&doc); err != nil {
		return nil, fmt.Errorf("invalid artifact document: %w", err)
	}
	return &doc, nil
}

// Marshal encodes a document in the given format
func (d *Document) Marshal(format artifact.Format) ([]byte, error) {
	switch format {
	case artifact.FormatJSON:
		return json.MarshalIndent(d, "", "  ")
	case artifact.FormatYAML:
		return yaml.Marshal(d)
	default:
		return nil, fmt.Errorf("unsupported artifact format %q", format)
	}
}
