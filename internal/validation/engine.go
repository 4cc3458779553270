// Package validation checks raw form values against a domain's field schema
// and assembles the position-ordered input vector a classifier expects.
package validation

import (
	"encoding/json"
	"math"
	"reflect"
	"strings"

	"github.com/spf13/cast"

	"github.com/disease-predictor/internal/domain"
	"github.com/disease-predictor/internal/schema"
)

// Validate checks raw values for a domain and returns the ordered input vector.
// It stops at the first violation, walking fields in position order.
func Validate(d domain.Domain, raw map[string]interface{}) (domain.InputVector, error) {
	s, err := schema.GetSchema(d)
	if err != nil {
		return nil, err
	}

	vector := make(domain.InputVector, s.Dimension())
	for _, fs := range s.Fields() {
		v, err := checkField(d, fs, raw)
		if err != nil {
			return nil, err
		}
		vector[fs.Position] = v
	}
	return vector, nil
}

// ValidateAll behaves like Validate but reports every violating field.
// The vector is nil whenever at least one error is returned.
func ValidateAll(d domain.Domain, raw map[string]interface{}) (domain.InputVector, []error) {
	s, err := schema.GetSchema(d)
	if err != nil {
		return nil, []error{err}
	}

	var errs []error
	vector := make(domain.InputVector, s.Dimension())
	for _, fs := range s.Fields() {
		v, err := checkField(d, fs, raw)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		vector[fs.Position] = v
	}
	if len(errs) > 0 {
		return nil, errs
	}
	return vector, nil
}

// checkField looks up one field by name and range-checks its value
func checkField(d domain.Domain, fs domain.FieldSpec, raw map[string]interface{}) (float64, error) {
	value, ok := raw[fs.Name]
	if !ok || value == nil {
		return 0, &domain.MissingFieldError{Domain: d, Field: fs.Name}
	}

	v, ok := toFinite(value)
	if !ok {
		return 0, &domain.TypeMismatchError{Domain: d, Field: fs.Name, Value: value}
	}

	if fs.Contains(v) {
		return v, nil
	}
	if v < fs.Min {
		return 0, &domain.OutOfRangeError{Domain: d, Field: fs.Name, Value: v, Bound: fs.Min, Limit: domain.BoundMin}
	}
	return 0, &domain.OutOfRangeError{Domain: d, Field: fs.Name, Value: v, Bound: fs.Max, Limit: domain.BoundMax}
}

// toFinite interprets a form value as a finite float64. Booleans and blank
// strings are rejected even though cast would coerce them. Pointers are
// followed first so a *bool gets the same treatment as a bool.
func toFinite(value interface{}) (float64, bool) {
	for rv := reflect.ValueOf(value); rv.Kind() == reflect.Pointer; rv = rv.Elem() {
		if rv.IsNil() {
			return 0, false
		}
		value = rv.Elem().Interface()
	}

	switch x := value.(type) {
	case bool:
		return 0, false
	case string:
		x = strings.TrimSpace(x)
		if x == "" {
			return 0, false
		}
		value = x
	case json.Number:
		value = x.String()
	}

	v, err := cast.ToFloat64E(value)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
