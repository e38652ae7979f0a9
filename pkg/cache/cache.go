// Package cache provides the storage layer for generated artifacts.
//
// Generating a pattern is cheap; rendering it to PNG or PDF shells out to
// rsvg-convert and is not. The pipeline therefore caches rendered artifacts
// under a key derived from the canonical pattern inputs.
//
// # Backends
//
//   - [FileCache]: one JSON file per entry, used by the CLI
//   - [RedisCache]: shared cache for the HTTP service
//   - [NullCache]: never stores anything (--no-cache, tests)
//
// # Keys
//
// Keys are produced by a [Keyer] so that all backends agree on the key space.
// [ScopedKeyer] prefixes every key, which lets several services share one
// Redis database.
package cache

import (
	"context"
	"time"
)

// ArtifactTTL is how long a rendered file stays cached.
const ArtifactTTL = 7 * 24 * time.Hour

// Cache stores opaque byte values by key.
//
// Get reports a miss with (nil, false, nil); an error means the backend
// itself failed. Implementations must be safe for concurrent use.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// PatternKeyOpts identifies a pattern. Floats are keyed by value, so two
// requests that differ only in formatting (1.5 vs 1.50) share an entry.
type PatternKeyOpts struct {
	Width        float64 `json:"w"`
	Height       float64 `json:"h"`
	CutLength    float64 `json:"l"`
	Gap          float64 `json:"g"`
	Separation   float64 `json:"s"`
	CutWidth     float64 `json:"cw"`
	Variant      string  `json:"v"`
	IncludeFrame bool    `json:"f"`
	Epsilon      float64 `json:"eps"`
	SafeMargin   float64 `json:"margin"`
	MinPitch     float64 `json:"pitch"`
}

// ArtifactKeyOpts identifies a rendered file of a pattern.
type ArtifactKeyOpts struct {
	Format      string  `json:"format"`
	Layer       string  `json:"layer,omitempty"`
	Stroke      string  `json:"stroke,omitempty"`
	StrokeWidth float64 `json:"stroke_width,omitempty"`
	Background  string  `json:"background,omitempty"`
	Scale       float64 `json:"scale,omitempty"`
}

// Keyer builds cache keys.
type Keyer interface {
	// PatternKey returns the key of a generated pattern.
	PatternKey(opts PatternKeyOpts) string
	// ArtifactKey returns the key of one rendering of the pattern whose hash
	// is patternHash.
	ArtifactKey(patternHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes the key options with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// PatternKey implements Keyer.
func (k *DefaultKeyer) PatternKey(opts PatternKeyOpts) string {
	return hashKey("pattern", opts)
}

// ArtifactKey implements Keyer.
func (k *DefaultKeyer) ArtifactKey(patternHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", patternHash, opts)
}

var _ Keyer = (*DefaultKeyer)(nil)
