package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/matzehuels/ssnmovie/pkg/cache"
	"github.com/matzehuels/ssnmovie/pkg/observability"
	"github.com/matzehuels/ssnmovie/pkg/pipeline"
)

// sweepFlags holds the flags of the sweep command.
type sweepFlags struct {
	opts       pipeline.Options
	configFile string
	tui        bool
}

// sweepCommand creates the sweep command, the main entry point.
func (c *CLI) sweepCommand() *cobra.Command {
	var flags sweepFlags

	cmd := &cobra.Command{
		Use:   "sweep [network.xgmml]",
		Short: "Render one frame per alignment score threshold",
		Long: `Render a sequence similarity network once for every distinct alignment
score. Frame T keeps the edges scoring at least T and draws them on the
network laid out with only those edges, so stepping through the frames
shows clusters separating as the threshold rises.

Each annotation table gets its own output directory (KOFAM, EGGNOG,
ANNOTATION) holding the frames, a manifest.json and a summary.html chart.
Without annotation tables the network is only loaded and its score range
reported.`,
		Example: `  ssnmovie sweep ssn.xgmml --kofam kofam.tsv
  ssnmovie sweep ssn.xgmml --eggnog emapper.tsv --scheme Set1 -j 8
  ssnmovie sweep --config run.toml --tui`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				flags.opts.Network = args[0]
			}
			opts := flags.opts
			if flags.configFile != "" {
				fileOpts, err := loadConfig(flags.configFile)
				if err != nil {
					return err
				}
				mergeFlags(&fileOpts, flags.opts, cmd.Flags())
				opts = fileOpts
			}
			if flags.tui && isTerminal(os.Stderr) {
				return c.runSweepTUI(cmd.Context(), opts)
			}
			return c.runSweep(cmd.Context(), opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&flags.opts.Kofam, "kofam", "", "KOFAM annotation table (TSV)")
	f.StringVar(&flags.opts.Eggnog, "eggnog", "", "eggNOG-mapper annotation table (TSV)")
	f.StringVar(&flags.opts.Annotation, "annotation", "", "custom annotation table with Hit_Id and Gene columns (TSV)")
	f.StringVarP(&flags.opts.Output, "output", "o", pipeline.DefaultOutput, "output directory")
	f.StringVar(&flags.opts.Layout, "layout", pipeline.DefaultLayout, "graphviz layout algorithm (neato, fdp, sfdp, circo, twopi, dot)")
	f.StringVar(&flags.opts.Scheme, "scheme", pipeline.DefaultScheme, "color scheme for genes (see 'ssnmovie palette --list')")
	f.IntVarP(&flags.opts.Workers, "workers", "j", pipeline.DefaultWorkers, "frames rendered in parallel")
	f.Float64Var(&flags.opts.Width, "width", 0, "frame width in inches (default 12)")
	f.Float64Var(&flags.opts.Height, "height", 0, "frame height in inches (default 10)")
	f.Float64Var(&flags.opts.DPI, "dpi", 0, "frame resolution (default 300)")
	f.BoolVar(&flags.opts.SkipSummary, "no-summary", false, "skip the summary.html chart")
	f.StringVar(&flags.opts.Cache.Backend, "cache", cache.BackendNone, "layout cache backend (none, memory, file, redis, mongo)")
	f.StringVar(&flags.opts.Cache.Dir, "cache-dir", "", "directory of the file cache")
	f.StringVar(&flags.opts.Cache.RedisURL, "redis-url", "", "redis URL of the redis cache")
	f.StringVar(&flags.opts.Cache.MongoURI, "mongo-uri", "", "MongoDB URI of the mongo cache")
	f.StringVarP(&flags.configFile, "config", "c", "", "TOML file with run options; flags override it")
	f.BoolVar(&flags.tui, "tui", false, "show live progress bars instead of log lines")

	return cmd
}

// runSweep executes a run with progress written as log lines.
func (c *CLI) runSweep(ctx context.Context, opts pipeline.Options) error {
	logger := loggerFromContext(ctx)
	observability.SetSweepHooks(newLogReporter(logger, 10))
	defer observability.Reset()

	runner := c.newRunner(ctx, opts.Cache)
	defer runner.Close()

	opts.Logger = logger
	logger.Debug("starting run", "options", opts.String())

	sw := newStopwatch(logger)
	res, err := runner.Execute(ctx, opts)
	if err != nil {
		return err
	}
	sw.done(fmt.Sprintf("Rendered %d thresholds for %d sources", res.Stats.Thresholds, len(res.Sources)))
	printResult(res)
	return nil
}

// runSweepTUI executes a run behind a Bubble Tea progress view. Pipeline
// logging is discarded while the view is active.
func (c *CLI) runSweepTUI(ctx context.Context, opts pipeline.Options) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(NewSweepModel(cancel), tea.WithOutput(os.Stderr))
	observability.SetSweepHooks(teaReporter{p: p})
	defer observability.Reset()

	quiet := log.NewWithOptions(io.Discard, log.Options{})
	runner := c.newRunner(ctx, opts.Cache)
	defer runner.Close()
	opts.Logger = quiet

	var res *pipeline.Result
	done := make(chan error, 1)
	go func() {
		var err error
		res, err = runner.Execute(ctx, opts)
		p.Send(runDoneMsg{err: err})
		done <- err
	}()

	final, err := p.Run()
	if err != nil {
		cancel()
		<-done
		return fmt.Errorf("progress view: %w", err)
	}
	if m, ok := final.(SweepModel); ok && m.Aborted {
		cancel()
		<-done
		return context.Canceled
	}
	if err := <-done; err != nil {
		return err
	}
	printResult(res)
	return nil
}

// printResult prints a table with one row per annotation source.
func printResult(res *pipeline.Result) {
	printSuccess("%d nodes, %d edges, scores %g to %g",
		res.Stats.NodeCount, res.Stats.EdgeCount, res.Stats.MinScore, res.Stats.MaxScore)

	rows := make([][]string, 0, len(res.Sources))
	for _, s := range res.Sources {
		m := s.Manifest
		rows = append(rows, []string{
			s.Source,
			strconv.Itoa(len(m.Frames)),
			fmt.Sprintf("%d/%d", m.Annotated, m.Nodes),
			strconv.Itoa(len(m.Legend)),
			s.Dir,
		})
	}
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Source", "Frames", "Annotated", "Genes", "Directory").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 1 || col == 3 {
				return StyleNumber
			}
			return StyleValue
		})
	fmt.Println(t.Render())
	printDetail("Run %s", res.RunID)
	if len(res.Sources) > 0 {
		printNextStep("Browse the frames", "ssnmovie serve "+filepath.Dir(res.Sources[0].Dir))
	}
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
