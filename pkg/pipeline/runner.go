package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/hingecut/pkg/cache"
	"github.com/matzehuels/hingecut/pkg/hinge"
	"github.com/matzehuels/hingecut/pkg/observability"
)

// artifactKeyType labels artifact entries in cache hooks.
const artifactKeyType = "artifact"

// Runner encapsulates pipeline execution with caching.
//
// The Runner holds no per-run state, so multiple goroutines can share one
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete generate → render pipeline with caching.
//
// Validation failures are returned unwrapped so callers can inspect the
// *errors.ValidationError directly.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{PatternHash: r.PatternHash(opts)}

	genStart := time.Now()
	p, err := r.Generate(ctx, opts)
	if err != nil {
		return nil, err
	}
	result.Pattern = p
	result.Stats.GenerateTime = time.Since(genStart)
	result.Stats.Segments = len(p.Segments)

	r.Logger.Info("generated pattern",
		"variant", opts.Params.Variant,
		"columns", p.Stats.Columns,
		"segments", p.Stats.Segments,
		"duration", result.Stats.GenerateTime)
	for _, w := range p.Warnings {
		r.Logger.Warn(w)
	}

	renderStart := time.Now()
	artifacts, hit, err := r.RenderWithCacheInfo(ctx, p, result.PatternHash, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = hit

	r.Logger.Info("rendered outputs",
		"formats", sortedFormats(artifacts),
		"cached", hit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// PatternHash returns the hash identifying the pattern inputs of opts.
func (r *Runner) PatternHash(opts Options) string {
	return cache.Hash([]byte(r.Keyer.PatternKey(opts.PatternKeyOpts())))
}

// Generate validates opts and computes the pattern, firing pipeline hooks.
func (r *Runner) Generate(ctx context.Context, opts Options) (*hinge.Pattern, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	variant := opts.Params.Variant.String()
	hooks := observability.Pipeline()
	hooks.OnGenerateStart(ctx, variant)

	start := time.Now()
	p, err := hinge.Generate(opts.Panel, opts.Params, opts.Config)
	segments := 0
	if p != nil {
		segments = len(p.Segments)
	}
	hooks.OnGenerateComplete(ctx, variant, segments, time.Since(start), err)
	return p, err
}

// RenderWithCacheInfo renders every requested format, serving them from the
// cache when all are present, and reports whether that happened.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, p *hinge.Pattern, patternHash string, opts Options) (map[string][]byte, bool, error) {
	opts.SetRenderDefaults()
	if err := ValidateFormats(opts.Formats); err != nil {
		return nil, false, err
	}
	cacheHooks := observability.Cache()

	artifacts := make(map[string][]byte, len(opts.Formats))
	var missing []string
	for _, format := range opts.Formats {
		if opts.Refresh {
			missing = append(missing, format)
			continue
		}
		key := r.Keyer.ArtifactKey(patternHash, opts.ArtifactKeyOpts(format))
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil {
			r.Logger.Warn("cache read failed", "format", format, "err", err)
		}
		if err == nil && hit {
			cacheHooks.OnCacheHit(ctx, artifactKeyType)
			artifacts[format] = data
			continue
		}
		cacheHooks.OnCacheMiss(ctx, artifactKeyType)
		missing = append(missing, format)
	}

	if len(missing) == 0 {
		return artifacts, true, nil
	}

	renderOpts := opts
	renderOpts.Formats = missing

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, missing)
	start := time.Now()
	rendered, err := Render(ctx, p, renderOpts)
	hooks.OnRenderComplete(ctx, missing, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		artifacts[format] = data
		key := r.Keyer.ArtifactKey(patternHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, cache.ArtifactTTL); err != nil {
			r.Logger.Warn("cache write failed", "format", format, "err", err)
			continue
		}
		cacheHooks.OnCacheSet(ctx, artifactKeyType, len(data))
	}

	return artifacts, false, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
