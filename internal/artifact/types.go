// Package artifact fetches serialized classifier artifacts from the locations
// configured per domain. It knows nothing about model families; it only
// returns payload bytes and their encoding.
package artifact

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/disease-predictor/internal/domain"
)

// Format is the encoding of an artifact payload
type Format string

// Supported payload formats
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Artifact is one serialized classifier as fetched from a store
type Artifact struct {
	Domain   domain.Domain `json:"domain"`
	Format   Format        `json:"format"`
	Payload  []byte        `json:"-"`
	Checksum string        `json:"checksum,omitempty"`
	Location string        `json:"location"`
}

// Verify compares the payload against its recorded checksum, if any
func (a *Artifact) Verify() error {
	if a.Checksum == "" {
		return nil
	}
	if got := Checksum(a.Payload); !strings.EqualFold(got, a.Checksum) {
		return fmt.Errorf("checksum mismatch: recorded %s, computed %s", a.Checksum, got)
	}
	return nil
}

// Source fetches the artifact of one domain
type Source interface {
	Fetch(ctx context.Context, d domain.Domain) (*Artifact, error)
	Close() error
}

// Checksum returns the hex sha256 of a payload
func Checksum(payload []byte) string {
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:])
}

// FormatFromPath infers the payload format from a file extension
func FormatFromPath(path string) (Format, error) {
	return ParseFormat(strings.TrimPrefix(filepath.Ext(path), "."))
}

// ParseFormat validates a format name
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported artifact format %q", name)
	}
}
