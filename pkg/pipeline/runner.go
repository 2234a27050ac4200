package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/censusplot/pkg/cache"
	"github.com/matzehuels/censusplot/pkg/census"
	"github.com/matzehuels/censusplot/pkg/chart"
	"github.com/matzehuels/censusplot/pkg/chart/sink"
	"github.com/matzehuels/censusplot/pkg/observability"
)

// Runner executes the pipeline with artifact caching.
//
// The Runner holds no results, so one Runner may serve concurrent runs with
// different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
	Loader *census.Loader
}

// NewRunner creates a runner with the given cache and keyer.
// A nil keyer becomes a DefaultKeyer and a nil cache a NullCache.
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
		Loader: census.NewLoader(nil),
	}
}

// Execute runs load, scene and render.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{}

	loadStart := time.Now()
	ds, err := r.Load(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.Dataset = ds
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.Records = ds.Len()

	r.Logger.Info("loaded dataset",
		"records", ds.Len(),
		"id", ds.ID,
		"duration", result.Stats.LoadTime)

	renderStart := time.Now()
	sc, artifacts, hit, err := r.RenderWithCacheInfo(ctx, ds, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Scene = sc
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = hit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", hit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Load reads and validates the dataset named by opts.Source.
func (r *Runner) Load(ctx context.Context, opts Options) (ds *census.Dataset, err error) {
	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, opts.Source)
	start := time.Now()
	defer func() {
		n := 0
		if ds != nil {
			n = ds.Len()
		}
		hooks.OnLoadComplete(ctx, opts.Source, n, time.Since(start), err)
	}()

	loader := *r.Loader
	loader.Refresh = opts.Refresh
	return loader.Load(ctx, opts.Source)
}

// Scene builds the settled scene for the options' field pair.
func (r *Runner) Scene(ctx context.Context, ds *census.Dataset, opts Options) (*chart.Controller, chart.Scene, error) {
	copts, err := opts.ControllerOptions()
	if err != nil {
		return nil, chart.Scene{}, err
	}
	c, err := chart.NewController(ds, copts...)
	if err != nil {
		return nil, chart.Scene{}, err
	}
	sel := c.Selection()
	observability.Pipeline().OnScene(ctx, string(sel.X), string(sel.Y))
	return c, c.Settle(), nil
}

// RenderWithCacheInfo renders every requested format, serving each from the
// artifact cache when possible. The returned bool reports whether every
// artifact was a cache hit.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, ds *census.Dataset, opts Options) (chart.Scene, map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return chart.Scene{}, nil, false, err
	}
	r.applyLogger(&opts)

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	sc, artifacts, hit, err := r.render(ctx, ds, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	return sc, artifacts, hit, err
}

// Render is RenderWithCacheInfo without the scene and cache information.
func (r *Runner) Render(ctx context.Context, ds *census.Dataset, opts Options) (map[string][]byte, error) {
	_, artifacts, _, err := r.RenderWithCacheInfo(ctx, ds, opts)
	return artifacts, err
}

func (r *Runner) render(ctx context.Context, ds *census.Dataset, opts Options) (chart.Scene, map[string][]byte, bool, error) {
	_, sc, err := r.Scene(ctx, ds, opts)
	if err != nil {
		return chart.Scene{}, nil, false, err
	}

	cacheHooks := observability.Cache()
	artifacts := make(map[string][]byte, len(opts.Formats))
	allCached := true

	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(ds.ID.String(), opts.ArtifactKeyOpts(format))
		if !opts.Refresh {
			if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
				cacheHooks.OnCacheHit(ctx, "artifact")
				artifacts[format] = data
				continue
			} else if err != nil {
				opts.Logger.Warn("artifact cache read failed", "format", format, "err", err)
			}
		}
		cacheHooks.OnCacheMiss(ctx, "artifact")
		allCached = false

		data, err := renderFormat(sc, format, opts)
		if err != nil {
			return chart.Scene{}, nil, false, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data

		if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err != nil {
			opts.Logger.Warn("artifact cache write failed", "format", format, "err", err)
		} else {
			cacheHooks.OnCacheSet(ctx, "artifact", len(data))
		}
	}

	return sc, artifacts, allCached, nil
}

// renderFormat writes sc in a single format.
func renderFormat(sc chart.Scene, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatSVG:
		svgOpts := []sink.SVGOption{sink.WithStyle(opts.Style)}
		if opts.Interactive {
			svgOpts = append(svgOpts, sink.WithInteraction())
		}
		if opts.Tooltips {
			svgOpts = append(svgOpts, sink.WithTooltips())
		}
		return sink.RenderSVG(sc, svgOpts...), nil
	case FormatPNG:
		return sink.RenderPNG(sc, sink.WithScale(opts.Scale), sink.WithRasterStyle(opts.Style))
	case FormatPDF:
		return sink.RenderPDF(sc, sink.WithRasterStyle(opts.Style))
	case FormatJSON:
		return sink.RenderJSON(sc)
	default:
		return nil, ValidateFormat(format)
	}
}

// Close releases the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil || opts.Logger == discard {
		opts.Logger = r.Logger
	}
}
