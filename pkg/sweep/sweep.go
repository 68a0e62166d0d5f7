// Package sweep drives the threshold sweep: one rendered frame per distinct
// alignment score of a similarity network.
//
// # Overview
//
// For every distinct score T, from the highest to the lowest, the engine
// clones the network, drops edges scoring below T, collapses reciprocal
// edges and hands the result to a [Renderer]. Because thresholds descend,
// every frame contains the edges of the previous one plus the edges that
// score exactly T.
//
// # Output Names
//
// Frame files are named <stem>.<label>.png where the label is the
// zero-padded integer part of T (see [Labels]), so a directory listing is
// already in threshold order.
//
// # Concurrency
//
// Frames are independent. With Workers > 1 the engine renders several
// thresholds at once, each on its own clone; the first failure cancels
// the frames not yet started. Progress events may then arrive out of
// threshold order.
package sweep

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/ssnmovie/pkg/coloring"
	"github.com/matzehuels/ssnmovie/pkg/errors"
	"github.com/matzehuels/ssnmovie/pkg/network"
	"github.com/matzehuels/ssnmovie/pkg/observability"
)

// Extension is the file extension of rendered frames.
const Extension = ".png"

// Job describes one sweep of one annotation source.
type Job struct {
	Source    string // Annotation source name, e.g. "KOFAM"
	OutputDir string // Directory receiving the frames (must exist)
	Stem      string // File name prefix, usually the network file name
	Algorithm string // Graphviz layout engine
}

// Frame is everything a Renderer needs to draw one threshold.
type Frame struct {
	Source     string
	Threshold  float64
	Label      string
	Index      int // Position in the sweep, 0 for the highest threshold
	Total      int
	Graph      *network.Graph // Pruned, undirected private copy
	Assignment *coloring.Assignment
	Algorithm  string
}

// Renderer draws a frame to path.
//
// Implementations must release every resource they acquire before
// returning and write path atomically.
type Renderer interface {
	Render(ctx context.Context, f Frame, path string) error
}

// RendererFunc adapts a function to the Renderer interface.
type RendererFunc func(ctx context.Context, f Frame, path string) error

// Render calls fn.
func (fn RendererFunc) Render(ctx context.Context, f Frame, path string) error {
	return fn(ctx, f, path)
}

// Options configures an Engine.
type Options struct {
	Workers   int         // Frames rendered concurrently (default 1)
	KeptColor string      // Color of kept edges (default network.KeptColor)
	Logger    *log.Logger // Default discards output
}

// FrameResult records one written frame.
type FrameResult struct {
	Threshold      float64       `json:"threshold"`
	Label          string        `json:"label"`
	File           string        `json:"file"`
	Edges          int           `json:"edges"`
	ConnectedNodes int           `json:"connected_nodes"`
	Duration       time.Duration `json:"duration_ns"`
}

// Result summarizes a finished sweep. Frames are ordered by descending
// threshold regardless of the order in which they were rendered.
type Result struct {
	Source   string        `json:"source"`
	Frames   []FrameResult `json:"frames"`
	Duration time.Duration `json:"duration_ns"`
}

// Engine runs threshold sweeps.
type Engine struct {
	renderer Renderer
	opts     Options
}

// New creates an Engine that draws frames with r.
func New(r Renderer, opts Options) *Engine {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	if opts.KeptColor == "" {
		opts.KeptColor = network.KeptColor
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	return &Engine{renderer: r, opts: opts}
}

// Run renders one frame per distinct score of g into job.OutputDir.
//
// g and a are only read. A graph without edges yields zero frames and no
// error. A frame that fails to render aborts the sweep with a
// [errors.ThresholdError]; frames already written stay valid. When ctx is
// cancelled no new frames start and ctx.Err() is returned.
func (e *Engine) Run(ctx context.Context, g *network.Graph, a *coloring.Assignment, job Job) (*Result, error) {
	start := time.Now()
	thresholds := g.Scores()
	labels := Labels(thresholds)
	total := len(thresholds)

	res := &Result{Source: job.Source, Frames: make([]FrameResult, total)}
	hooks := observability.Sweep()
	hooks.OnSweepStart(ctx, job.Source, total)

	if total == 0 {
		e.opts.Logger.Warn("network has no edges, nothing to render", "source", job.Source)
		hooks.OnSweepComplete(ctx, job.Source, 0, 0, nil)
		return res, nil
	}

	e.opts.Logger.Debug("sweep started",
		"source", job.Source,
		"thresholds", total,
		"workers", e.opts.Workers)

	var done atomic.Int64
	grp, gctx := errgroup.WithContext(ctx)
	grp.SetLimit(e.opts.Workers)

	for i, t := range thresholds {
		if gctx.Err() != nil {
			break
		}
		grp.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			fr, err := e.frame(gctx, g, a, job, Frame{
				Source:     job.Source,
				Threshold:  t,
				Label:      labels[i],
				Index:      i,
				Total:      total,
				Assignment: a,
				Algorithm:  job.Algorithm,
			})
			if err != nil {
				return err
			}
			res.Frames[i] = fr
			hooks.OnThresholdComplete(ctx, job.Source, t, int(done.Add(1)), total)
			return nil
		})
	}

	err := grp.Wait()
	if err == nil {
		err = ctx.Err()
	}
	res.Duration = time.Since(start)
	if err != nil {
		hooks.OnSweepComplete(ctx, job.Source, int(done.Load()), res.Duration, err)
		return nil, err
	}

	hooks.OnSweepComplete(ctx, job.Source, total, res.Duration, nil)
	e.opts.Logger.Debug("sweep finished", "source", job.Source, "frames", total, "duration", res.Duration)
	return res, nil
}

// frame prunes a private copy of g at f.Threshold and renders it.
func (e *Engine) frame(ctx context.Context, g *network.Graph, a *coloring.Assignment, job Job, f Frame) (FrameResult, error) {
	start := time.Now()
	work := g.Clone()
	work.Prune(f.Threshold, e.opts.KeptColor)
	work.Undirected()
	if a != nil {
		a.Apply(work)
	}
	f.Graph = work

	file := fmt.Sprintf("%s.%s%s", job.Stem, f.Label, Extension)
	path := filepath.Join(job.OutputDir, file)
	if err := e.renderer.Render(ctx, f, path); err != nil {
		if ctx.Err() != nil {
			return FrameResult{}, ctx.Err()
		}
		return FrameResult{}, &errors.ThresholdError{Source: job.Source, Threshold: f.Threshold, Err: err}
	}

	fr := FrameResult{
		Threshold:      f.Threshold,
		Label:          f.Label,
		File:           file,
		Edges:          work.EdgeCount(),
		ConnectedNodes: work.ConnectedNodeCount(),
		Duration:       time.Since(start),
	}
	e.opts.Logger.Debug("frame written",
		"source", job.Source,
		"threshold", f.Threshold,
		"edges", fr.Edges,
		"duration", fr.Duration)
	return fr, nil
}
