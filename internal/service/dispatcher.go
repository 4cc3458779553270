package service

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/disease-predictor/internal/domain"
	"github.com/disease-predictor/internal/schema"
	"github.com/disease-predictor/internal/validation"
)

// ModelClassifier runs the classifier registered for a domain
type ModelClassifier interface {
	Classify(d domain.Domain, vector domain.InputVector) (domain.Label, error)
}

type requestIDKey struct{}

// ContextWithRequestID attaches a request id that Predict logs with
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestID returns the request id carried by ctx, if any
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// Dispatcher is the single orchestration point of a prediction
type Dispatcher struct {
	models ModelClassifier
	logger *logrus.Logger
}

// NewDispatcher creates a dispatcher over a loaded model registry
func NewDispatcher(models ModelClassifier, logger *logrus.Logger) *Dispatcher {
	if logger == nil {
		logger = logrus.New()
	}
	return &Dispatcher{
		models: models,
		logger: logger,
	}
}

// Predict validates raw values for d, classifies them and interprets the
// label. The classifier is never invoked when validation fails.
func (p *Dispatcher) Predict(ctx context.Context, d domain.Domain, raw map[string]interface{}) (*domain.PredictionResult, error) {
	start := time.Now()

	requestID := RequestID(ctx)
	if requestID == "" {
		requestID = uuid.New().String()
	}
	log := p.logger.WithFields(logrus.Fields{
		"request_id": requestID,
		"domain":     d,
	})

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Step 1: validation gate
	vector, err := validation.Validate(d, raw)
	if err != nil {
		entry := log.WithError(err).WithField("code", domain.ErrorCode(err))
		if domain.IsValidationError(err) {
			entry.Info("Prediction rejected")
		} else {
			entry.Warn("Prediction rejected")
		}
		return nil, err
	}
	if ignored := unknownFields(d, raw); len(ignored) > 0 {
		log.WithField("ignored_fields", ignored).Debug("Ignoring values outside the domain schema")
	}

	// Step 2: classify
	label, err := p.models.Classify(d, vector)
	if err != nil {
		log.WithError(err).Error("Classification failed")
		return nil, err
	}

	// Step 3: interpret
	result, err := Interpret(d, label)
	if err != nil {
		log.WithError(err).Error("Classifier returned an unusable label")
		return nil, err
	}

	log.WithFields(logrus.Fields{
		"label":    result.Label,
		"severity": result.Severity,
		"duration": time.Since(start).String(),
	}).Info("Prediction completed")

	return result, nil
}

// unknownFields lists raw keys the domain schema doesn't declare, sorted
func unknownFields(d domain.Domain, raw map[string]interface{}) []string {
	s, err := schema.GetSchema(d)
	if err != nil {
		return nil
	}
	var ignored []string
	for name := range raw {
		if _, ok := s.FieldByName(name); !ok {
			ignored = append(ignored, name)
		}
	}
	sort.Strings(ignored)
	return ignored
}
