package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/zscene/pkg/cache"
	"github.com/matzehuels/zscene/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and server use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL overrides the cache lifetime of stored entries when positive.
	TTL time.Duration
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

// Render renders one preset frame with caching. When every requested
// format is cached (and Refresh is not set) nothing is rendered.
func (r *Runner) Render(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	if !opts.Refresh {
		if artifacts, ok := r.cachedFrame(ctx, opts); ok {
			r.Logger.Debug("artifacts from cache", "preset", opts.Preset, "formats", opts.Formats)
			return &Result{Artifacts: artifacts, CacheHit: true}, nil
		}
	}

	artifacts, stats, err := Render(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	r.storeFrame(ctx, opts, artifacts)

	r.Logger.Info("rendered preset",
		"preset", opts.Preset,
		"nodes", stats.NodeCount,
		"draw_calls", stats.DrawCalls,
		"formats", opts.Formats,
		"duration", stats.UpdateTime+stats.RenderTime)

	return &Result{Artifacts: artifacts, Stats: stats}, nil
}

// Animate renders every frame with caching and hands each one to fn in
// order. Frames are served from the cache only when all of them are
// cached; otherwise the whole animation is rendered and stored.
func (r *Runner) Animate(ctx context.Context, opts Options, fn func(frame int, artifacts map[string][]byte) error) error {
	opts.Frame = 0
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}

	if !opts.Refresh {
		if frames, ok := r.cachedAnimation(ctx, opts); ok {
			r.Logger.Debug("animation from cache", "preset", opts.Preset, "frames", opts.Frames)
			for i, artifacts := range frames {
				if err := fn(i, artifacts); err != nil {
					return fmt.Errorf("frame %d: %w", i, err)
				}
			}
			return nil
		}
	}

	start := time.Now()
	err := Animate(ctx, opts, func(frame int, artifacts map[string][]byte) error {
		frameOpts := opts
		frameOpts.Frame = frame
		r.storeFrame(ctx, frameOpts, artifacts)
		return fn(frame, artifacts)
	})
	if err != nil {
		return fmt.Errorf("animate: %w", err)
	}

	r.Logger.Info("rendered animation",
		"preset", opts.Preset,
		"frames", opts.Frames,
		"formats", opts.Formats,
		"duration", time.Since(start))
	return nil
}

// Graph renders a node-link diagram of a preset with caching. The second
// result reports a cache hit.
func (r *Runner) Graph(ctx context.Context, opts GraphOptions) ([]byte, bool, error) {
	if err := opts.Validate(); err != nil {
		return nil, false, fmt.Errorf("invalid options: %w", err)
	}

	key := r.Keyer.GraphKey(opts.Preset, opts.KeyOpts())
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, "graph")
			return data, true, nil
		}
		observability.Cache().OnCacheMiss(ctx, "graph")
	}

	data, err := Graph(ctx, opts)
	if err != nil {
		return nil, false, fmt.Errorf("graph: %w", err)
	}
	if err := r.Cache.Set(ctx, key, data, r.ttl(cache.TTLGraph)); err != nil {
		r.Logger.Warn("cache write failed", "key", key, "error", err)
	} else {
		observability.Cache().OnCacheSet(ctx, "graph", len(data))
	}
	return data, false, nil
}

func (r *Runner) cachedFrame(ctx context.Context, opts Options) (map[string][]byte, bool) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(opts.Preset, opts.ArtifactKeyOpts(format))
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil || !hit {
			observability.Cache().OnCacheMiss(ctx, "artifact")
			return nil, false
		}
		observability.Cache().OnCacheHit(ctx, "artifact")
		artifacts[format] = data
	}
	return artifacts, true
}

func (r *Runner) cachedAnimation(ctx context.Context, opts Options) ([]map[string][]byte, bool) {
	frames := make([]map[string][]byte, opts.Frames)
	for i := range frames {
		frameOpts := opts
		frameOpts.Frame = i
		artifacts, ok := r.cachedFrame(ctx, frameOpts)
		if !ok {
			return nil, false
		}
		frames[i] = artifacts
	}
	return frames, true
}

func (r *Runner) storeFrame(ctx context.Context, opts Options, artifacts map[string][]byte) {
	for format, data := range artifacts {
		key := r.Keyer.ArtifactKey(opts.Preset, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, r.ttl(cache.TTLArtifact)); err != nil {
			r.Logger.Warn("cache write failed", "key", key, "error", err)
			continue
		}
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}
}

func (r *Runner) ttl(def time.Duration) time.Duration {
	if r.TTL > 0 {
		return r.TTL
	}
	return def
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
