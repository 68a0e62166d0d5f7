// Package pipeline runs a complete ssnmovie job: load the network, read the
// annotation tables, sweep every source and write the run artifacts.
//
// The CLI and the tests share this entry point so that a run behaves the
// same everywhere.
//
// # Stages
//
//  1. Import: read the XGMML or JSON network
//  2. Annotate: read every annotation table, failing fast on schema errors
//  3. Sweep: per source, build the color assignment and render one frame
//     per threshold into <output>/<SOURCE>/
//  4. Report: write manifest.json and summary.html next to the frames
//
// # Usage
//
//	runner := pipeline.NewRunner(layoutCache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Network: "ssn.xgmml",
//	    Kofam:   "kofam.tsv",
//	    Output:  "frames",
//	})
package pipeline

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/ssnmovie/pkg/annotation"
	"github.com/matzehuels/ssnmovie/pkg/cache"
	"github.com/matzehuels/ssnmovie/pkg/errors"
	"github.com/matzehuels/ssnmovie/pkg/palette"
	"github.com/matzehuels/ssnmovie/pkg/render/nodelink"
	"github.com/matzehuels/ssnmovie/pkg/sweep"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultLayout is the Graphviz engine used for node placement.
	DefaultLayout = nodelink.DefaultAlgorithm

	// DefaultScheme is the palette used for gene colors.
	DefaultScheme = palette.Default

	// DefaultWorkers renders frames sequentially.
	DefaultWorkers = 1

	// DefaultOutput is the directory receiving the per-source folders.
	DefaultOutput = "."
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration of a run. It is filled from flags or a
// TOML file; the pipeline never reads process state itself.
type Options struct {
	// Inputs
	Network    string `toml:"network" json:"network"`
	Kofam      string `toml:"kofam" json:"kofam,omitempty"`
	Eggnog     string `toml:"eggnog" json:"eggnog,omitempty"`
	Annotation string `toml:"annotation" json:"annotation,omitempty"`

	// Output
	Output      string `toml:"output" json:"output"`
	SkipSummary bool   `toml:"skip_summary" json:"skip_summary,omitempty"`

	// Rendering
	Layout  string  `toml:"layout" json:"layout"`
	Scheme  string  `toml:"scheme" json:"scheme"`
	Workers int     `toml:"workers" json:"workers"`
	Width   float64 `toml:"width" json:"width,omitempty"`   // inches
	Height  float64 `toml:"height" json:"height,omitempty"` // inches
	DPI     float64 `toml:"dpi" json:"dpi,omitempty"`

	// Layout cache
	Cache cache.Config `toml:"cache" json:"cache"`

	// Runtime options (not serialized)
	Logger   *log.Logger    `toml:"-" json:"-"`
	Renderer sweep.Renderer `toml:"-" json:"-"` // default nodelink.Renderer
}

// SetDefaults fills zero fields with their defaults.
func (o *Options) SetDefaults() {
	if o.Output == "" {
		o.Output = DefaultOutput
	}
	if o.Layout == "" {
		o.Layout = DefaultLayout
	}
	if o.Scheme == "" {
		o.Scheme = DefaultScheme
	}
	if o.Workers == 0 {
		o.Workers = DefaultWorkers
	}
	if o.Width == 0 {
		o.Width = nodelink.DefaultWidth
	}
	if o.Height == 0 {
		o.Height = nodelink.DefaultHeight
	}
	if o.DPI == 0 {
		o.DPI = nodelink.DefaultDPI
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Validate checks the options after defaults are applied.
func (o *Options) Validate() error {
	if o.Network == "" {
		return errors.New(errors.ErrCodeInvalidInput, "network file is required")
	}
	if err := errors.ValidateOutputPath(o.Output); err != nil {
		return err
	}
	if err := errors.ValidateLayoutAlgorithm(o.Layout); err != nil {
		return err
	}
	if _, ok := palette.Lookup(o.Scheme); !ok {
		return errors.New(errors.ErrCodeInvalidScheme, "unknown color scheme %q", o.Scheme)
	}
	if o.Workers < 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "workers must be at least 1, got %d", o.Workers)
	}
	if o.Width < 0 || o.Height < 0 || o.DPI < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "figure size and dpi must be positive")
	}
	if err := o.Cache.Validate(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "cache")
	}
	return nil
}

// ValidateAndSetDefaults applies defaults, then validates.
func (o *Options) ValidateAndSetDefaults() error {
	o.SetDefaults()
	return o.Validate()
}

// Sources returns the configured annotation tables in sweep order.
func (o *Options) Sources() []annotation.Source {
	var out []annotation.Source
	for _, s := range []annotation.Source{
		{Kind: annotation.Kofam, Path: o.Kofam},
		{Kind: annotation.EggNOG, Path: o.Eggnog},
		{Kind: annotation.Custom, Path: o.Annotation},
	} {
		if s.Path != "" {
			out = append(out, s)
		}
	}
	return out
}

// String summarizes the options for debug logging.
func (o *Options) String() string {
	return fmt.Sprintf("network=%s sources=%d layout=%s scheme=%s workers=%d", o.Network, len(o.Sources()), o.Layout, o.Scheme, o.Workers)
}
