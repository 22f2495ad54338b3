package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/frame/pkg/cache"
	"github.com/matzehuels/frame/pkg/netlist"
	"github.com/matzehuels/frame/pkg/observability"
)

// Runner builds netlists and exports them through a cache. The CLI and the
// API share it. A Runner holds no per-run state and may be used from many
// goroutines at once.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner returns a runner backed by c. A nil cache disables caching, a
// nil keyer means cache.NewDefaultKeyer and a nil logger means log.Default.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	r := &Runner{Cache: c, Keyer: keyer, Logger: logger}
	if r.Cache == nil {
		r.Cache = cache.NewNullCache()
	}
	if r.Keyer == nil {
		r.Keyer = cache.NewDefaultKeyer()
	}
	if r.Logger == nil {
		r.Logger = log.Default()
	}
	return r
}

// Execute builds opts.Source and exports it in opts.Formats.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{SourceHash: cache.Hash(opts.Source)}

	buildStart := time.Now()
	observability.Pipeline().OnBuildStart(ctx, opts.Name, len(opts.Source))
	n, err := r.Build(ctx, opts)
	if err != nil {
		observability.Pipeline().OnBuildComplete(ctx, opts.Name, 0, time.Since(buildStart), err)
		return nil, fmt.Errorf("build: %w", err)
	}
	result.Netlist = n
	result.Stats = ComputeStats(n)
	result.Stats.BuildTime = time.Since(buildStart)
	observability.Pipeline().OnBuildComplete(ctx, opts.Name, result.Stats.Nodes, result.Stats.BuildTime, nil)

	r.Logger.Info("built netlist",
		"name", opts.Name,
		"modules", result.Stats.Modules,
		"nodes", result.Stats.Nodes,
		"hypernodes", result.Stats.Hypernodes,
		"duration", result.Stats.BuildTime)

	exportStart := time.Now()
	observability.Pipeline().OnExportStart(ctx, opts.Formats)
	artifacts, hit, err := r.ExportWithCacheInfo(ctx, n, result.SourceHash, opts)
	observability.Pipeline().OnExportComplete(ctx, opts.Formats, time.Since(exportStart), err)
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	result.Artifacts = artifacts
	result.CacheHit = hit
	result.Stats.ExportTime = time.Since(exportStart)

	r.Logger.Info("exported netlist",
		"formats", opts.Formats,
		"cached", hit,
		"duration", result.Stats.ExportTime)

	return result, nil
}

// Build parses the YAML source and derives the graph. With opts.Squares,
// modules without rectangles get a default square first.
func (r *Runner) Build(ctx context.Context, opts Options) (*netlist.Netlist, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)

	n, err := netlist.Parse(opts.Source)
	if err != nil {
		return nil, err
	}
	if opts.Squares {
		created, err := n.CreateSquares()
		if err != nil {
			return nil, err
		}
		opts.Logger.Debug("created squares", "modules", len(created))
	}
	return n, nil
}

// ExportWithCacheInfo exports n in every requested format, serving formats
// from the cache where possible. The boolean reports whether all of them were
// cached.
func (r *Runner) ExportWithCacheInfo(ctx context.Context, n *netlist.Netlist, sourceHash string, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	var missing []string
	for _, format := range opts.Formats {
		if !opts.Refresh {
			data, hit, err := r.Cache.Get(ctx, r.cacheKey(sourceHash, format, opts))
			if err != nil {
				r.Logger.Warn("cache read failed", "format", format, "err", err)
			}
			if hit {
				observability.Cache().OnCacheHit(ctx, keyType(format, opts))
				artifacts[format] = data
				continue
			}
			observability.Cache().OnCacheMiss(ctx, keyType(format, opts))
		}
		missing = append(missing, format)
	}
	if len(missing) == 0 {
		return artifacts, true, nil
	}

	exportOpts := opts
	exportOpts.Formats = missing
	rendered, err := Export(ctx, n, exportOpts)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		artifacts[format] = data
		if err := r.Cache.Set(ctx, r.cacheKey(sourceHash, format, opts), data, ttlFor(format, opts)); err != nil {
			r.Logger.Warn("cache write failed", "format", format, "err", err)
			continue
		}
		observability.Cache().OnCacheSet(ctx, keyType(format, opts), len(data))
	}
	return artifacts, false, nil
}

// cacheKey uses the graph key for the plain graph document, which depends
// on the source alone, and an artifact key for everything else.
func (r *Runner) cacheKey(sourceHash, format string, opts Options) string {
	if keyType(format, opts) == keyTypeGraph {
		return r.Keyer.GraphKey(sourceHash)
	}
	return r.Keyer.ArtifactKey(sourceHash, opts.ArtifactKeyOpts(format))
}

const (
	keyTypeGraph    = "graph"
	keyTypeArtifact = "artifact"
)

func keyType(format string, opts Options) string {
	if format == FormatJSON && !opts.Squares {
		return keyTypeGraph
	}
	return keyTypeArtifact
}

func ttlFor(format string, opts Options) time.Duration {
	if keyType(format, opts) == keyTypeGraph {
		return cache.GraphTTL
	}
	return cache.ArtifactTTL
}

// Close closes the cache.
func (r *Runner) Close() error {
	return r.Cache.Close()
}

func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
