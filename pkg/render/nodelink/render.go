package nodelink

import (
	"context"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/ssnmovie/pkg/cache"
	"github.com/matzehuels/ssnmovie/pkg/coloring"
	"github.com/matzehuels/ssnmovie/pkg/errors"
	"github.com/matzehuels/ssnmovie/pkg/network"
	"github.com/matzehuels/ssnmovie/pkg/observability"
	"github.com/matzehuels/ssnmovie/pkg/render"
	"github.com/matzehuels/ssnmovie/pkg/sweep"
)

// =============================================================================
// Defaults
// =============================================================================

const (
	DefaultWidth     = 12.0 // inches
	DefaultHeight    = 10.0 // inches
	DefaultDPI       = 300.0
	DefaultAlgorithm = "neato"
)

// Marker geometry in points.
const (
	nodeRadius    = 3.54 // area of 50 pt²
	nodeOutline   = 1.0
	edgeWidth     = 1.0
	legendMarker  = 2.2
	legendSpacing = 1.7 // line height in multiples of the legend font size
)

// Fraction of the figure width used by the network; the legend takes the rest.
const plotFraction = 0.78

// =============================================================================
// Renderer
// =============================================================================

// Options configures a Renderer.
type Options struct {
	Width  float64 // Figure width in inches
	Height float64 // Figure height in inches
	DPI    float64

	// Engine computes layouts (default GraphvizEngine). When Cache is set
	// the engine is wrapped in a CachedEngine.
	Engine LayoutEngine
	Cache  cache.Cache
	Keyer  cache.Keyer

	Logger *log.Logger
}

// SetDefaults fills zero fields.
func (o *Options) SetDefaults() {
	if o.Width <= 0 {
		o.Width = DefaultWidth
	}
	if o.Height <= 0 {
		o.Height = DefaultHeight
	}
	if o.DPI <= 0 {
		o.DPI = DefaultDPI
	}
	if o.Engine == nil {
		o.Engine = GraphvizEngine{}
	}
	if o.Keyer == nil {
		o.Keyer = cache.NewDefaultKeyer()
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
}

// Renderer draws sweep frames as node-link PNG images. It is safe for
// concurrent use; every call owns its canvas.
type Renderer struct {
	opts   Options
	engine LayoutEngine
}

// New creates a Renderer.
func New(opts Options) *Renderer {
	opts.SetDefaults()
	engine := opts.Engine
	if opts.Cache != nil {
		engine = &CachedEngine{Engine: engine, Cache: opts.Cache, Keyer: opts.Keyer}
	}
	return &Renderer{opts: opts, engine: engine}
}

var _ sweep.Renderer = (*Renderer)(nil)

// Render lays out f.Graph and writes the frame to path as PNG.
func (r *Renderer) Render(ctx context.Context, f sweep.Frame, path string) error {
	start := time.Now()
	algorithm := f.Algorithm
	if algorithm == "" {
		algorithm = DefaultAlgorithm
	}

	dot, names := ToDOT(f.Graph)
	layout, err := r.engine.Layout(ctx, dot, algorithm)
	if _, ok := r.engine.(*CachedEngine); !ok {
		observability.Render().OnLayoutComplete(ctx, algorithm, f.Graph.NodeCount(), false, time.Since(start), err)
	}
	if err != nil {
		if errors.GetCode(err) != "" {
			return err
		}
		return errors.Wrap(errors.ErrCodeRender, err, "layout")
	}

	cv, err := newCanvas(r.opts.Width, r.opts.Height, r.opts.DPI)
	if err != nil {
		return errors.Wrap(errors.ErrCodeRender, err, "create canvas")
	}
	defer cv.Close()

	draw(cv, f, layout, names)

	var size int64
	err = render.WriteFileAtomic(path, func(w io.Writer) error {
		cw := &countingWriter{w: w}
		err := cv.encode(cw)
		size = cw.n
		return err
	})
	if err != nil {
		return errors.Wrap(errors.ErrCodeRender, err, "write %s", path)
	}

	dur := time.Since(start)
	observability.Render().OnFrameWritten(ctx, path, size, dur)
	r.opts.Logger.Debug("frame rendered", "path", path, "bytes", size, "duration", dur)
	return nil
}

// Title returns the heading drawn above a frame.
func Title(threshold float64) string {
	return fmt.Sprintf("SSN organisation %g", threshold)
}

// =============================================================================
// Drawing
// =============================================================================

// transform maps layout inches to canvas pixels, keeping the aspect ratio
// and flipping the y axis.
type transform struct {
	scale, dx, dy, h float64
}

func fit(l *Layout, x0, y0, w, h float64) transform {
	lw, lh := math.Max(l.Width, 1e-9), math.Max(l.Height, 1e-9)
	s := math.Min(w/lw, h/lh)
	return transform{
		scale: s,
		dx:    x0 + (w-l.Width*s)/2,
		dy:    y0 + (h-l.Height*s)/2,
		h:     l.Height,
	}
}

func (t transform) apply(p Point) (float64, float64) {
	return t.dx + p.X*t.scale, t.dy + (t.h-p.Y)*t.scale
}

func draw(cv *canvas, f sweep.Frame, l *Layout, names map[string]string) {
	w, h := cv.width(), cv.height()
	_, th := cv.measure(cv.title, "Ag")
	top := th * 3
	margin := 0.04 * h

	cv.text(cv.title, Title(f.Threshold), w/2, th*1.5, 0.5, 0.5)

	pos := make(map[string][2]float64, len(l.Positions))
	tr := fit(l, margin, top, w*plotFraction-2*margin, h-top-margin)
	for name, p := range l.Positions {
		if id, ok := names[name]; ok {
			x, y := tr.apply(p)
			pos[id] = [2]float64{x, y}
		}
	}

	for _, e := range f.Graph.Edges() {
		a, okA := pos[e.From]
		b, okB := pos[e.To]
		if !okA || !okB {
			continue
		}
		color := e.Color
		if color == "" {
			color = network.KeptColor
		}
		cv.line(a[0], a[1], b[0], b[1], color, edgeWidth)
	}

	radius := cv.pt(nodeRadius)
	for _, n := range f.Graph.Nodes() {
		p, ok := pos[n.ID]
		if !ok {
			continue
		}
		fill := n.Color
		if fill == "" {
			fill = fallbackColor(f.Assignment)
		}
		cv.disc(p[0], p[1], radius, fill, nodeOutline)
	}

	if f.Assignment != nil {
		drawLegend(cv, f.Assignment.Legend, w*plotFraction, top, h-margin)
	}
}

func fallbackColor(a *coloring.Assignment) string {
	if a != nil && a.Fallback != "" {
		return a.Fallback
	}
	return coloring.Fallback
}

// drawLegend lists genes top to bottom starting at (x, top). Entries that
// do not fit above bottom are summarized in a final "+k more" line.
func drawLegend(cv *canvas, legend []coloring.LegendEntry, x, top, bottom float64) {
	if len(legend) == 0 {
		return
	}
	lineH := cv.pt(legendPoints * legendSpacing)
	rows := int((bottom - top) / lineH)
	if rows < 1 {
		return
	}
	shown := legend
	more := 0
	if len(legend) > rows {
		shown = legend[:rows-1]
		more = len(legend) - len(shown)
	}

	marker := cv.pt(legendMarker)
	for i, e := range shown {
		y := top + (float64(i)+0.5)*lineH
		cv.disc(x+marker, y, marker, e.Color, nodeOutline/2)
		cv.text(cv.legend, e.Gene, x+marker*3, y, 0, 0.35)
	}
	if more > 0 {
		y := top + (float64(len(shown))+0.5)*lineH
		cv.text(cv.legend, fmt.Sprintf("+%d more", more), x+marker*3, y, 0, 0.35)
	}
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
