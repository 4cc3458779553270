package model

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/disease-predictor/internal/artifact"
	"github.com/disease-predictor/internal/domain"
	"github.com/disease-predictor/internal/schema"
)

// Info describes a loaded classifier
type Info struct {
	Domain    domain.Domain `json:"domain"`
	Family    Family        `json:"family,omitempty"`
	Version   string        `json:"version,omitempty"`
	Location  string        `json:"location,omitempty"`
	Dimension int           `json:"dimension"`
}

type entry struct {
	classifier domain.Classifier
	info       Info
}

// Registry maps every domain to its classifier. It is immutable once built
// and safe for concurrent use.
type Registry struct {
	models map[domain.Domain]entry
}

type options struct {
	loader  *artifact.Loader
	logger  *logrus.Logger
	baseDir string
}

// Option configures LoadAll
type Option func(*options)

// WithLoader makes LoadAll fetch through l. The caller keeps ownership and
// closes it.
func WithLoader(l *artifact.Loader) Option {
	return func(o *options) { o.loader = l }
}

// WithLogger sets the logger used while loading
func WithLogger(logger *logrus.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithBaseDir sets the directory relative file locations resolve against
func WithBaseDir(dir string) Option {
	return func(o *options) { o.baseDir = dir }
}

// LoadAll loads one artifact per registered domain. Every domain must have a
// location and every location must name a registered domain. The first
// failure aborts the load with a *domain.ModelLoadError.
func LoadAll(ctx context.Context, locations map[domain.Domain]string, opts ...Option) (*Registry, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = logrus.New()
	}
	if o.loader == nil {
		o.loader = artifact.NewLoader(o.baseDir, o.logger)
		defer o.loader.Close()
	}

	if err := checkLocations(locations); err != nil {
		return nil, err
	}

	start := time.Now()
	r := &Registry{models: make(map[domain.Domain]entry, len(locations))}

	for _, d := range schema.Domains() {
		location := locations[d]
		e, err := load(ctx, o.loader, d, location)
		if err != nil {
			o.logger.WithError(err).WithField("domain", d).Error("Failed to load model")
			return nil, &domain.ModelLoadError{Domain: d, Location: location, Cause: err}
		}
		r.models[d] = *e

		o.logger.WithFields(logrus.Fields{
			"domain":  d,
			"family":  e.info.Family,
			"version": e.info.Version,
		}).Info("Loaded model")
	}

	o.logger.WithFields(logrus.Fields{
		"models":   len(r.models),
		"duration": time.Since(start).String(),
	}).Info("Model registry ready")

	return r, nil
}

func checkLocations(locations map[domain.Domain]string) error {
	keys := make([]string, 0, len(locations))
	for d := range locations {
		keys = append(keys, string(d))
	}
	sort.Strings(keys)

	for _, k := range keys {
		d := domain.Domain(k)
		if !schema.IsKnown(d) {
			return &domain.ModelLoadError{Domain: d, Location: locations[d], Cause: &domain.UnknownDomainError{Domain: k}}
		}
	}
	for _, d := range schema.Domains() {
		if locations[d] == "" {
			return &domain.ModelLoadError{Domain: d, Cause: errors.New("no artifact location configured")}
		}
	}
	return nil
}

func load(ctx context.Context, loader *artifact.Loader, d domain.Domain, location string) (*entry, error) {
	a, err := loader.Load(ctx, d, location)
	if err != nil {
		return nil, err
	}

	c, info, err := Prepare(d, a)
	if err != nil {
		return nil, err
	}
	return &entry{classifier: c, info: info}, nil
}

// Prepare decodes an artifact fetched for d and checks that it was built for
// d with the schema's dimension. Startup loading and artifact imports both go
// through it.
func Prepare(d domain.Domain, a *artifact.Artifact) (domain.Classifier, Info, error) {
	c, doc, err := Decode(a)
	if err != nil {
		return nil, Info{}, err
	}
	if domain.Domain(doc.Domain) != d {
		return nil, Info{}, fmt.Errorf("artifact is for domain %q", doc.Domain)
	}
	if err := checkDimension(d, c); err != nil {
		return nil, Info{}, err
	}

	return c, Info{
		Domain:    d,
		Family:    doc.Family,
		Version:   doc.Version,
		Location:  a.Location,
		Dimension: c.Dimension(),
	}, nil
}

// Decode parses an artifact and builds its classifier
func Decode(a *artifact.Artifact) (domain.Classifier, *Document, error) {
	doc, err := ParseDocument(a.Payload, a.Format)
	if err != nil {
		return nil, nil, err
	}
	c, err := Build(doc)
	if err != nil {
		return nil, nil, err
	}
	return c, doc, nil
}

func checkDimension(d domain.Domain, c domain.Classifier) error {
	s, err := schema.GetSchema(d)
	if err != nil {
		return err
	}
	if c.Dimension() != s.Dimension() {
		return &domain.DimensionMismatchError{Domain: d, Expected: s.Dimension(), Actual: c.Dimension()}
	}
	return nil
}

// NewRegistry builds a registry from in-process classifiers, applying the
// same completeness and dimension checks as LoadAll.
func NewRegistry(classifiers map[domain.Domain]domain.Classifier) (*Registry, error) {
	for d := range classifiers {
		if !schema.IsKnown(d) {
			return nil, &domain.ModelLoadError{Domain: d, Cause: &domain.UnknownDomainError{Domain: string(d)}}
		}
	}

	r := &Registry{models: make(map[domain.Domain]entry, len(classifiers))}
	for _, d := range schema.Domains() {
		c, ok := classifiers[d]
		if !ok || c == nil {
			return nil, &domain.ModelLoadError{Domain: d, Cause: errors.New("no classifier provided")}
		}
		if err := checkDimension(d, c); err != nil {
			return nil, &domain.ModelLoadError{Domain: d, Cause: err}
		}
		r.models[d] = entry{
			classifier: c,
			info:       Info{Domain: d, Dimension: c.Dimension()},
		}
	}
	return r, nil
}

// Classify runs the classifier of d on vector
func (r *Registry) Classify(d domain.Domain, vector domain.InputVector) (domain.Label, error) {
	e, ok := r.models[d]
	if !ok {
		return 0, &domain.UnknownDomainError{Domain: string(d)}
	}
	if len(vector) != e.info.Dimension {
		return 0, &domain.DimensionMismatchError{Domain: d, Expected: e.info.Dimension, Actual: len(vector)}
	}
	return e.classifier.Classify(vector)
}

// Info returns metadata about the classifier of d
func (r *Registry) Info(d domain.Domain) (Info, bool) {
	e, ok := r.models[d]
	return e.info, ok
}

// Domains lists the loaded domains in registry order
func (r *Registry) Domains() []domain.Domain {
	var out []domain.Domain
	for _, d := range schema.Domains() {
		if _, ok := r.models[d]; ok {
			out = append(out, d)
		}
	}
	return out
}
