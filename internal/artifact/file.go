package artifact

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/disease-predictor/internal/domain"
)

// FileSource reads an artifact from a single JSON or YAML file
type FileSource struct {
	path   string
	format Format
}

// NewFileSource creates a file source; relative paths resolve against baseDir
func NewFileSource(location, baseDir string) (*FileSource, error) {
	path := strings.TrimPrefix(location, "file://")
	if path == "" {
		return nil, fmt.Errorf("empty artifact path")
	}
	if !filepath.IsAbs(path) && baseDir != "" {
		path = filepath.Join(baseDir, path)
	}

	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	return &FileSource{path: path, format: format}, nil
}

// Path returns the resolved file path
func (s *FileSource) Path() string {
	return s.path
}

// Fetch reads the file
func (s *FileSource) Fetch(ctx context.Context, d domain.Domain) (*Artifact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	payload, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read artifact: %w", err)
	}
	if len(payload) == 0 {
		return nil, fmt.Errorf("artifact file %s is empty", s.path)
	}

	return &Artifact{
		Domain:   d,
		Format:   s.format,
		Payload:  payload,
		Location: s.path,
	}, nil
}

// Close is a no-op for files
func (s *FileSource) Close() error {
	return nil
}
