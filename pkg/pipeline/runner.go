package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/ssnmovie/pkg/annotation"
	"github.com/matzehuels/ssnmovie/pkg/cache"
	"github.com/matzehuels/ssnmovie/pkg/coloring"
	"github.com/matzehuels/ssnmovie/pkg/errors"
	pkgio "github.com/matzehuels/ssnmovie/pkg/io"
	"github.com/matzehuels/ssnmovie/pkg/network"
	"github.com/matzehuels/ssnmovie/pkg/render/nodelink"
	"github.com/matzehuels/ssnmovie/pkg/render/summary"
	"github.com/matzehuels/ssnmovie/pkg/sweep"
)

// Runner executes pipeline runs with a shared layout cache.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can use the same Runner with different options.
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

// Result contains the outcome of a run.
type Result struct {
	RunID   string
	Graph   *network.Graph
	Sources []SourceResult
	Stats   Stats
}

// SourceResult is the outcome of one annotation source.
type SourceResult struct {
	Source   string // Directory name, e.g. "KOFAM"
	Dir      string // Directory holding the frames
	Manifest *Manifest
}

// Stats contains run statistics.
type Stats struct {
	NodeCount  int
	EdgeCount  int
	Thresholds int
	MinScore   float64
	MaxScore   float64
	ImportTime time.Duration
	SweepTime  time.Duration
}

// sourceData is an annotation table read ahead of rendering.
type sourceData struct {
	source  annotation.Source
	records []annotation.Record
}

// Execute runs import → annotate → sweep → report.
//
// Without annotation tables the run stops after import: the result carries
// the network statistics and no sources.
//
// Every annotation table is read before the first frame is rendered, so a
// malformed table fails the run without partial output.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	logger := opts.Logger
	result := &Result{RunID: uuid.NewString()}

	// Stage 1: Import
	importStart := time.Now()
	g, err := pkgio.Import(opts.Network)
	if err != nil {
		return nil, fmt.Errorf("import: %w", err)
	}
	result.Graph = g
	result.Stats.ImportTime = time.Since(importStart)
	result.Stats.NodeCount = g.NodeCount()
	result.Stats.EdgeCount = g.EdgeCount()
	result.Stats.Thresholds = len(g.Scores())

	logger.Info("loaded network",
		"file", opts.Network,
		"nodes", g.NodeCount(),
		"edges", g.EdgeCount(),
		"duration", result.Stats.ImportTime)
	if lo, hi, ok := g.ScoreRange(); ok {
		result.Stats.MinScore, result.Stats.MaxScore = lo, hi
		logger.Info("network range of alignment score", "min", lo, "max", hi, "thresholds", result.Stats.Thresholds)
	} else {
		logger.Warn("network has no scored edges")
	}

	// Stage 2: Annotate
	sources, err := readSources(opts.Sources(), logger)
	if err != nil {
		return nil, err
	}
	if len(sources) == 0 {
		logger.Warn("no annotation tables given, nothing to render")
		return result, nil
	}

	// Stage 3+4: Sweep and report
	renderer := opts.Renderer
	if renderer == nil {
		renderer = nodelink.New(nodelink.Options{
			Width:  opts.Width,
			Height: opts.Height,
			DPI:    opts.DPI,
			Cache:  r.Cache,
			Keyer:  r.Keyer,
			Logger: logger,
		})
	}
	engine := sweep.New(renderer, sweep.Options{Workers: opts.Workers, Logger: logger})

	sweepStart := time.Now()
	hits := g.HitIndex()
	stem := pkgio.Stem(opts.Network)
	for _, sd := range sources {
		sr, err := r.runSource(ctx, engine, g, hits, stem, sd, result.RunID, opts)
		if err != nil {
			return nil, err
		}
		result.Sources = append(result.Sources, *sr)
	}
	result.Stats.SweepTime = time.Since(sweepStart)

	logger.Info("run complete",
		"run", result.RunID,
		"sources", len(result.Sources),
		"duration", result.Stats.SweepTime)
	return result, nil
}

func readSources(srcs []annotation.Source, logger *log.Logger) ([]sourceData, error) {
	out := make([]sourceData, 0, len(srcs))
	for _, s := range srcs {
		recs, err := s.Read()
		if err != nil {
			return nil, fmt.Errorf("%s annotation: %w", s.Kind, err)
		}
		logger.Debug("read annotation", "source", s.Name(), "file", s.Path, "records", len(recs))
		out = append(out, sourceData{source: s, records: recs})
	}
	return out, nil
}

func (r *Runner) runSource(ctx context.Context, engine *sweep.Engine, g *network.Graph, hits network.HitIndex,
	stem string, sd sourceData, runID string, opts Options) (*SourceResult, error) {
	name := sd.source.Name()
	logger := opts.Logger

	a, err := coloring.Build(g.NodeIDs(), hits, sd.records, coloring.Options{Scheme: opts.Scheme})
	if err != nil {
		return nil, fmt.Errorf("%s colors: %w", name, err)
	}
	logger.Info("assigned colors",
		"source", name,
		"genes", len(a.Legend),
		"annotated", a.Annotated,
		"nodes", g.NodeCount())

	dir := filepath.Join(opts.Output, name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "create output directory %s", dir)
	}

	res, err := engine.Run(ctx, g, a, sweep.Job{
		Source:    name,
		OutputDir: dir,
		Stem:      stem,
		Algorithm: opts.Layout,
	})
	if err != nil {
		return nil, fmt.Errorf("sweep %s: %w", name, err)
	}

	m := newManifest(runID, opts, sd.source.Path)
	m.Source = name
	m.Nodes = g.NodeCount()
	m.Edges = g.EdgeCount()
	m.Annotated = a.Annotated
	m.Legend = a.Legend
	m.Frames = res.Frames
	m.Duration = res.Duration
	if err := WriteManifest(filepath.Join(dir, ManifestFile), m); err != nil {
		return nil, fmt.Errorf("%s manifest: %w", name, err)
	}

	if !opts.SkipSummary {
		err := summary.Write(filepath.Join(dir, summary.FileName), summary.Info{
			Network:   stem,
			Source:    name,
			Nodes:     g.NodeCount(),
			Annotated: a.Annotated,
			Genes:     len(a.Legend),
			Result:    res,
		})
		if err != nil {
			return nil, fmt.Errorf("%s summary: %w", name, err)
		}
	}

	logger.Info("sweep complete",
		"source", name,
		"frames", len(res.Frames),
		"dir", dir,
		"duration", res.Duration)
	return &SourceResult{Source: name, Dir: dir, Manifest: m}, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
