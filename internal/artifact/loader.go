package artifact

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/disease-predictor/internal/domain"
)

// Loader resolves locations to sources and fetches artifacts. Database
// connections are shared between domains stored in the same database and
// stay open until Close.
type Loader struct {
	baseDir string
	logger  *logrus.Logger
	stores  map[string]*SQLStore
}

// NewLoader creates a loader resolving relative paths against baseDir
func NewLoader(baseDir string, logger *logrus.Logger) *Loader {
	if logger == nil {
		logger = logrus.New()
	}
	return &Loader{
		baseDir: baseDir,
		logger:  logger,
		stores:  make(map[string]*SQLStore),
	}
}

// Load fetches and verifies the artifact for d from location
func (l *Loader) Load(ctx context.Context, d domain.Domain, location string) (*Artifact, error) {
	if location == "" {
		return nil, fmt.Errorf("no artifact location configured")
	}

	source, err := l.source(ctx, location)
	if err != nil {
		return nil, err
	}

	a, err := source.Fetch(ctx, d)
	if err != nil {
		return nil, err
	}
	if err := a.Verify(); err != nil {
		return nil, err
	}

	l.logger.WithFields(logrus.Fields{
		"domain":   d,
		"location": a.Location,
		"format":   a.Format,
		"bytes":    len(a.Payload),
	}).Debug("Fetched model artifact")

	return a, nil
}

func (l *Loader) source(ctx context.Context, location string) (Source, error) {
	if !IsSQLLocation(location) {
		return NewFileSource(location, l.baseDir)
	}

	if store, ok := l.stores[location]; ok {
		return store, nil
	}
	store, err := OpenSQLStore(ctx, location, l.baseDir)
	if err != nil {
		return nil, err
	}
	l.stores[location] = store
	return store, nil
}

// Close releases every database connection opened by the loader
func (l *Loader) Close() error {
	var errs []error
	for location, store := range l.stores {
		if err := store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close %s: %w", location, err))
		}
		delete(l.stores, location)
	}
	return errors.Join(errs...)
}
