package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/bubblechart/pkg/cache"
	"github.com/matzehuels/bubblechart/pkg/errors"
	"github.com/matzehuels/bubblechart/pkg/host"
	"github.com/matzehuels/bubblechart/pkg/observability"
)

const keyTypeArtifact = "artifact"

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache, registry and logger - it
// doesn't store pipeline results. Multiple goroutines can safely use the same
// Runner with different requests.
type Runner struct {
	Cache    cache.Cache
	Keyer    cache.Keyer
	Registry *host.Registry
	Logger   *log.Logger

	// TTL is how long artifacts are cached. Zero uses cache.TTLArtifact.
	TTL time.Duration
}

// NewRunner creates a runner.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
// If registry is nil, the DefaultRegistry is used.
func NewRunner(c cache.Cache, keyer cache.Keyer, registry *host.Registry, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if registry == nil {
		registry = host.DefaultRegistry()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:    c,
		Keyer:    keyer,
		Registry: registry,
		Logger:   logger,
		TTL:      cache.TTLArtifact,
	}
}

// Execute runs the render → emit pipeline with caching.
func (r *Runner) Execute(ctx context.Context, req Request) (*Result, error) {
	if err := req.Options.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	opts := req.Options

	v, err := r.Registry.Get(opts.VizID)
	if err != nil {
		return nil, err
	}

	hash, err := req.Hash()
	if err != nil {
		return nil, err
	}
	keyer := cache.NewScopedKeyer(r.Keyer, "viz:"+opts.VizID+":")

	result := &Result{
		RequestHash: hash,
		Stats:       Stats{RowCount: len(req.Rows)},
		CacheInfo:   CacheInfo{Keys: make(map[string]string, len(opts.Formats))},
	}
	for _, format := range opts.Formats {
		result.CacheInfo.Keys[format] = keyer.ArtifactKey(hash, opts.ArtifactKeyOpts(format))
	}

	artifacts, ok, cacheErr := r.lookup(ctx, result.CacheInfo.Keys)
	result.CacheInfo.BackendErr = cacheErr
	if ok {
		result.Artifacts = artifacts
		result.CacheInfo.RenderHit = true
		r.Logger.Debug("artifacts from cache", "viz", opts.VizID, "formats", opts.Formats)
		return result, nil
	}

	// Stage 1: Render
	renderStart := time.Now()
	scene, renderErr := RenderScene(ctx, v, req)
	if renderErr != nil && !errors.Is(renderErr, errors.ErrCodeRenderFailure) {
		return nil, renderErr
	}
	result.Scene = scene
	result.Stats.RenderTime = time.Since(renderStart)
	result.Stats.BubbleCount = len(scene.Bubbles)

	if renderErr != nil {
		r.Logger.Warn("render failed, emitting inline error", "viz", opts.VizID, "error", renderErr)
	} else {
		r.Logger.Info("rendered scene",
			"rows", len(req.Rows),
			"bubbles", len(scene.Bubbles),
			"duration", result.Stats.RenderTime)
	}

	// Stage 2: Emit
	emitStart := time.Now()
	artifacts, err = Emit(ctx, scene, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.EmitTime = time.Since(emitStart)

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.EmitTime)

	// Inline error scenes are not cached so the next request retries.
	if renderErr == nil {
		if err := r.store(ctx, result.CacheInfo.Keys, artifacts); err != nil && result.CacheInfo.BackendErr == nil {
			result.CacheInfo.BackendErr = err
		}
	}

	return result, nil
}

// lookup returns every format in keys from the cache, or false if any is
// missing. A backend error counts as a miss and is returned coded
// ErrCodeCacheBackend.
func (r *Runner) lookup(ctx context.Context, keys map[string]string) (map[string][]byte, bool, error) {
	hooks := observability.Cache()
	artifacts := make(map[string][]byte, len(keys))

	for format, key := range keys {
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil {
			err = errors.Wrap(errors.ErrCodeCacheBackend, err, "cache get %s", format)
			r.Logger.Warn("cache get failed", "key", key, "error", err)
			hooks.OnCacheMiss(ctx, keyTypeArtifact)
			return nil, false, err
		}
		if !hit {
			hooks.OnCacheMiss(ctx, keyTypeArtifact)
			return nil, false, nil
		}
		hooks.OnCacheHit(ctx, keyTypeArtifact)
		artifacts[format] = data
	}
	return artifacts, true, nil
}

// store writes each artifact to the cache. Failures are logged and the first
// one is returned coded ErrCodeCacheBackend.
func (r *Runner) store(ctx context.Context, keys map[string]string, artifacts map[string][]byte) error {
	hooks := observability.Cache()
	ttl := r.TTL
	if ttl == 0 {
		ttl = cache.TTLArtifact
	}
	var first error
	for format, data := range artifacts {
		if err := r.Cache.Set(ctx, keys[format], data, ttl); err != nil {
			err = errors.Wrap(errors.ErrCodeCacheBackend, err, "cache set %s", format)
			r.Logger.Warn("cache set failed", "format", format, "error", err)
			if first == nil {
				first = err
			}
			continue
		}
		hooks.OnCacheSet(ctx, keyTypeArtifact, len(data))
	}
	return first
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
