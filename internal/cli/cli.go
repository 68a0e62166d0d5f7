package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/ssnmovie/pkg/buildinfo"
	"github.com/matzehuels/ssnmovie/pkg/cache"
	"github.com/matzehuels/ssnmovie/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "ssnmovie"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance logging to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "ssnmovie renders sequence similarity networks across alignment score thresholds",
		Long: `ssnmovie renders one image of a sequence similarity network per distinct
alignment score, with nodes colored by KOFAM, eggNOG or custom gene
annotations, so the images can be stepped through like the frames of a movie.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.sweepCommand())
	root.AddCommand(c.paletteCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.convertCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner opens the configured layout cache and wraps it in a runner.
// An unreachable shared cache degrades to no caching with a warning.
func (c *CLI) newRunner(ctx context.Context, cfg cache.Config) *pipeline.Runner {
	lc, err := cache.Open(ctx, cfg)
	if err != nil {
		c.Logger.Warn("layout cache unavailable, continuing without it", "backend", cfg.Backend, "error", err)
		lc = cache.NewNullCache()
	}
	return pipeline.NewRunner(lc, cache.NewScopedKeyer(nil, appName+":"), c.Logger)
}
