// Package caching memoizes classifier outputs for repeated inputs.
package caching

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/disease-predictor/internal/domain"
)

// Classifier is the classification capability being cached
type Classifier interface {
	Classify(d domain.Domain, vector domain.InputVector) (domain.Label, error)
}

// CacheStats tracks cache performance metrics
type CacheStats struct {
	Hits    int64 `json:"hits"`
	Misses  int64 `json:"misses"`
	Entries int   `json:"entries"`
}

// PredictionCache is an LRU in front of a Classifier. Classification is
// deterministic for a loaded registry, so a cached label never goes stale.
// Errors are never cached.
type PredictionCache struct {
	next   Classifier
	cache  *lru.Cache[string, domain.Label]
	hits   atomic.Int64
	misses atomic.Int64
}

// NewPredictionCache wraps next with an LRU holding up to size labels
func NewPredictionCache(next Classifier, size int) (*PredictionCache, error) {
	cache, err := lru.New[string, domain.Label](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create prediction cache: %w", err)
	}
	return &PredictionCache{next: next, cache: cache}, nil
}

// GenerateKey creates a cache key for a domain and vector
func GenerateKey(d domain.Domain, vector domain.InputVector) string {
	var b strings.Builder
	b.WriteString(string(d))
	b.WriteString("::")
	for i, v := range vector {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
	}
	hash := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(hash[:])
}

// Classify returns the cached label or asks the wrapped classifier
func (c *PredictionCache) Classify(d domain.Domain, vector domain.InputVector) (domain.Label, error) {
	key := GenerateKey(d, vector)
	if label, ok := c.cache.Get(key); ok {
		c.hits.Add(1)
		return label, nil
	}
	c.misses.Add(1)

	label, err := c.next.Classify(d, vector)
	if err != nil {
		return label, err
	}
	c.cache.Add(key, label)
	return label, nil
}

// Stats returns current cache statistics
func (c *PredictionCache) Stats() CacheStats {
	return CacheStats{
		Hits:    c.hits.Load(),
		Misses:  c.misses.Load(),
		Entries: c.cache.Len(),
	}
}

// Purge drops every cached label
func (c *PredictionCache) Purge() {
	c.cache.Purge()
}
