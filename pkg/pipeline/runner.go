package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/certifyme/certrender/pkg/cache"
	"github.com/certifyme/certrender/pkg/certificate"
	"github.com/certifyme/certrender/pkg/core/asset"
	"github.com/certifyme/certrender/pkg/core/merge"
	"github.com/certifyme/certrender/pkg/core/render"
	"github.com/certifyme/certrender/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and server use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache, fetcher and logger - it
// doesn't store pipeline results. Multiple goroutines can safely use the
// same Runner with different options.
type Runner struct {
	Cache   cache.Cache
	Keyer   cache.Keyer
	Fetcher asset.Fetcher
	Logger  *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
// Assets are downloaded over HTTP and cached in the same cache.
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
	fetcher := asset.NewHTTPFetcher(asset.DefaultTimeout, c)
	fetcher.Keyer = keyer
	return &Runner{
		Cache:   c,
		Keyer:   keyer,
		Fetcher: fetcher,
		Logger:  logger,
	}
}

// Execute runs the complete merge → load → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (result *Result, err error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	kind, known := opts.Template.Kind()
	if !known {
		opts.Logger.Warn("unknown layout, rendering classic", "requested", opts.Template.RequestedKind())
	}

	start := time.Now()
	observability.Render().OnRenderStart(ctx, string(kind), opts.Formats)
	defer func() {
		observability.Render().OnRenderComplete(ctx, string(kind), opts.Formats, time.Since(start), err)
	}()

	result = &Result{
		Artifacts: make(map[string][]byte),
	}
	renderOpts := r.renderOptions(ctx, opts)

	// Stage 1: Merge
	mergeStart := time.Now()
	rec := render.Record(opts.Template, opts.Record, renderOpts)
	result.Record = rec
	result.Stats.MergeTime = time.Since(mergeStart)

	result.InputHash, err = InputHash(opts)
	if err != nil {
		return nil, err
	}

	// Cached artifacts skip the remaining stages.
	if !opts.Refresh {
		if artifacts, ok := r.cachedArtifacts(ctx, result.InputHash, opts); ok {
			result.Artifacts = artifacts
			result.CacheInfo.RenderHit = true
			opts.Logger.Info("served cached certificate", "layout", kind, "formats", opts.Formats)
			return result, nil
		}
	}

	// Stage 2: Load assets
	assetStart := time.Now()
	loader := asset.NewLoader(r.Fetcher)
	defer loader.Close()
	urls := render.AssetURLs(opts.Template, rec)
	if len(urls) > 0 {
		loader.Request(urls...)
		waitCtx, cancel := context.WithTimeout(ctx, opts.AssetTimeout)
		if werr := loader.Wait(waitCtx, urls...); werr != nil {
			opts.Logger.Warn("assets not ready, rendering without them", "error", werr)
		}
		cancel()
	}
	result.Stats.AssetCount = len(urls)
	for _, u := range urls {
		if loader.State(u) != asset.StateReady {
			result.Stats.AssetsFailed++
			opts.Logger.Debug("asset unavailable", "url", u, "error", loader.Err(u))
		}
	}
	result.Stats.AssetTime = time.Since(assetStart)

	// Stage 3: Render
	renderStart := time.Now()
	renderOpts.Images = loader
	tree := render.RenderRecord(opts.Template, rec, renderOpts)
	result.Tree = tree
	result.Stats.NodeCount = tree.Count()

	// Stage 4: Serialize
	artifacts, err := RenderArtifacts(ctx, tree, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)

	// A render missing images is not cached so the next run retries them.
	if result.Stats.AssetsFailed == 0 {
		for format, data := range artifacts {
			key := r.Keyer.ArtifactKey(result.InputHash, opts.ArtifactKeyOpts(format))
			if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err != nil {
				opts.Logger.Debug("cache write failed", "format", format, "error", err)
			}
		}
	}

	opts.Logger.Info("rendered certificate",
		"layout", kind,
		"nodes", result.Stats.NodeCount,
		"formats", opts.Formats,
		"duration", time.Since(start))

	return result, nil
}

// Record merges the options' inputs without rendering.
func (r *Runner) Record(ctx context.Context, opts Options) (merge.Record, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return merge.Record{}, fmt.Errorf("invalid options: %w", err)
	}
	return render.Record(opts.Template, opts.Record, r.renderOptions(ctx, opts)), nil
}

// cachedArtifacts returns every requested format from the cache, or false
// when any one is missing.
func (r *Runner) cachedArtifacts(ctx context.Context, hash string, opts Options) (map[string][]byte, bool) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(hash, opts.ArtifactKeyOpts(format))
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil {
			opts.Logger.Debug("cache read failed", "format", format, "error", err)
			return nil, false
		}
		if !hit {
			observability.Cache().OnCacheMiss(ctx, "artifact")
			return nil, false
		}
		observability.Cache().OnCacheHit(ctx, "artifact")
		artifacts[format] = data
	}
	return artifacts, true
}

func (r *Runner) renderOptions(ctx context.Context, opts Options) render.Options {
	return render.Options{
		Fullscreen: opts.Fullscreen,
		Origin:     opts.Origin,
		Resolver:   asset.NewResolver(opts.AssetBase),
		Today:      opts.Today,
		Context:    ctx,
	}
}

// inputKey is everything that determines the rendered tree.
type inputKey struct {
	Template  *certificate.Template      `json:"template"`
	Record    *certificate.DynamicRecord `json:"record"`
	Origin    string                     `json:"origin"`
	AssetBase string                     `json:"asset_base"`
	Today     string                     `json:"today"`
}

// InputHash hashes the render inputs. Only the date part of Today takes
// part, since the record never uses the time of day.
func InputHash(opts Options) (string, error) {
	data, err := json.Marshal(inputKey{
		Template:  opts.Template,
		Record:    opts.Record,
		Origin:    opts.Origin,
		AssetBase: opts.AssetBase,
		Today:     opts.Today.Format("2006-01-02"),
	})
	if err != nil {
		return "", fmt.Errorf("hash inputs: %w", err)
	}
	return cache.Hash(data), nil
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
