package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/drainplan/pkg/cache"
	"github.com/matzehuels/drainplan/pkg/layout"
	"github.com/matzehuels/drainplan/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
// The CLI, the batch command and the HTTP server all use it to avoid
// duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
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

// Execute runs the complete layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{}

	// Stage 1: Layout
	layoutStart := time.Now()
	l, layoutHit, err := r.LayoutWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Layout = l
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.Mullions = len(l.Mullions)
	result.Stats.Drainage = len(l.Drainage)
	result.Stats.Iterations = l.Iterations
	result.CacheInfo.LayoutHit = layoutHit

	if hash, err := layoutHash(l); err == nil {
		result.LayoutHash = hash
	}

	opts.Logger.Info("computed layout",
		"mullions", len(l.Mullions),
		"drainage", len(l.Drainage),
		"converged", l.Converged,
		"violations", len(l.Violations),
		"duration", result.Stats.LayoutTime)

	// Stage 2: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, l, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	opts.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// LayoutWithCacheInfo computes a layout with caching and returns cache hit info.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, opts Options) (layout.Layout, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForLayout(); err != nil {
		return layout.Layout{}, false, err
	}

	paramsHash, err := cache.HashJSON(opts.Params)
	if err != nil {
		return layout.Layout{}, false, err
	}
	cacheKey := r.Keyer.LayoutKey(paramsHash, opts.LayoutKeyOpts())

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var cached layout.Layout
			if err := json.Unmarshal(data, &cached); err == nil {
				observability.Cache().OnCacheHit(ctx, "layout")
				return cached, true, nil
			}
			// If deserialization fails, fall through to recompute
		} else if err != nil {
			opts.Logger.Warn("cache read failed", "key", cacheKey, "error", err)
		}
		observability.Cache().OnCacheMiss(ctx, "layout")
	}

	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, paramsHash)
	start := time.Now()

	l, err := ComputeLayout(opts)

	hooks.OnLayoutComplete(ctx, observability.LayoutEvent{
		Mullions:   len(l.Mullions),
		Drainage:   len(l.Drainage),
		Iterations: l.Iterations,
		Converged:  l.Converged,
		Violations: len(l.Violations),
	}, time.Since(start), err)
	if err != nil {
		return layout.Layout{}, false, err
	}

	if !l.Converged {
		opts.Logger.Warn("resolution did not converge", "iterations", l.Iterations)
	}

	if data, err := json.Marshal(l); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLLayout); err != nil {
			opts.Logger.Warn("cache write failed", "key", cacheKey, "error", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "layout", len(data))
		}
	}

	return l, false, nil
}

// Layout is a convenience wrapper that calls LayoutWithCacheInfo and discards the cache hit info.
func (r *Runner) Layout(ctx context.Context, opts Options) (layout.Layout, error) {
	l, _, err := r.LayoutWithCacheInfo(ctx, opts)
	return l, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, l layout.Layout, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	hash, err := layoutHash(l)
	if err != nil {
		return nil, false, fmt.Errorf("serialize layout for cache key: %w", err)
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	var missing []string
	for _, format := range opts.Formats {
		if _, seen := artifacts[format]; seen {
			continue
		}
		cacheKey := r.Keyer.ArtifactKey(hash, opts.ArtifactKeyOpts(format))
		if !opts.Refresh {
			if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
				observability.Cache().OnCacheHit(ctx, "artifact")
				artifacts[format] = data
				continue
			}
			observability.Cache().OnCacheMiss(ctx, "artifact")
		}
		missing = append(missing, format)
	}

	if len(missing) == 0 {
		return artifacts, true, nil
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, missing)
	start := time.Now()

	var renderErr error
	for _, format := range missing {
		data, err := RenderFormat(l, format, opts)
		if err != nil {
			renderErr = err
			break
		}
		artifacts[format] = data

		cacheKey := r.Keyer.ArtifactKey(hash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact); err != nil {
			opts.Logger.Warn("cache write failed", "key", cacheKey, "error", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}

	hooks.OnRenderComplete(ctx, missing, time.Since(start), renderErr)
	if renderErr != nil {
		return nil, false, renderErr
	}
	return artifacts, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, l layout.Layout, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, l, opts)
	return artifacts, err
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

func layoutHash(l layout.Layout) (string, error) {
	return cache.HashJSON(l)
}
