package service

import (
	"fmt"

	"github.com/disease-predictor/internal/domain"
	"github.com/disease-predictor/internal/schema"
)

// Interpret turns a binary label into the diagnosis message for d. Labels
// other than 0 and 1 are rejected rather than read as negative.
func Interpret(d domain.Domain, label domain.Label) (*domain.PredictionResult, error) {
	s, err := schema.GetSchema(d)
	if err != nil {
		return nil, err
	}

	result := &domain.PredictionResult{
		Domain: d,
		Label:  label,
	}

	switch label {
	case domain.LabelPositive:
		result.Message = fmt.Sprintf("The patient is likely to have %s.", s.Disease())
		result.Severity = domain.SeverityPositive
	case domain.LabelNegative:
		result.Message = fmt.Sprintf("The patient is unlikely to have %s.", s.Disease())
		result.Severity = domain.SeverityNegative
	default:
		return nil, &domain.InvalidLabelError{Domain: d, Label: label}
	}

	return result, nil
}
