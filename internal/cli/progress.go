package cli

import (
	"context"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/ssnmovie/pkg/observability"
)

// =============================================================================
// logReporter - Sweep Progress as Log Lines
// =============================================================================

// logReporter logs sweep progress. To keep long sweeps readable it logs at
// most every step percent, plus the final frame.
type logReporter struct {
	logger *log.Logger
	step   int

	mu   sync.Mutex
	last map[string]int // source -> last logged percentage
}

var _ observability.SweepHooks = (*logReporter)(nil)

func newLogReporter(l *log.Logger, step int) *logReporter {
	if step < 1 {
		step = 1
	}
	return &logReporter{logger: l, step: step, last: make(map[string]int)}
}

func (r *logReporter) OnSweepStart(_ context.Context, source string, total int) {
	r.mu.Lock()
	r.last[source] = -r.step
	r.mu.Unlock()
	r.logger.Info("rendering", "source", source, "thresholds", total)
}

func (r *logReporter) OnThresholdComplete(_ context.Context, source string, threshold float64, done, total int) {
	pct := 100
	if total > 0 {
		pct = done * 100 / total
	}

	r.mu.Lock()
	show := done == total || pct >= r.last[source]+r.step
	if show {
		r.last[source] = pct
	}
	r.mu.Unlock()

	if show {
		r.logger.Info("score done", "source", source, "score", threshold, "done", done, "total", total, "percent", pct)
	} else {
		r.logger.Debug("score done", "source", source, "score", threshold, "done", done, "total", total)
	}
}

func (r *logReporter) OnSweepComplete(_ context.Context, source string, frames int, d time.Duration, err error) {
	if err != nil {
		r.logger.Error("sweep failed", "source", source, "frames", frames, "error", err)
		return
	}
	r.logger.Debug("sweep finished", "source", source, "frames", frames, "duration", d.Round(time.Millisecond))
}

// =============================================================================
// teaReporter - Sweep Progress as Bubble Tea Messages
// =============================================================================

// sender is the subset of *tea.Program used by teaReporter.
type sender interface {
	Send(msg tea.Msg)
}

// teaReporter forwards sweep events to a running Bubble Tea program.
type teaReporter struct {
	p sender
}

var _ observability.SweepHooks = teaReporter{}

func (r teaReporter) OnSweepStart(_ context.Context, source string, total int) {
	r.p.Send(sweepStartMsg{source: source, total: total})
}

func (r teaReporter) OnThresholdComplete(_ context.Context, source string, threshold float64, done, total int) {
	r.p.Send(thresholdMsg{source: source, threshold: threshold, done: done, total: total})
}

func (r teaReporter) OnSweepComplete(_ context.Context, source string, frames int, d time.Duration, err error) {
	r.p.Send(sweepDoneMsg{source: source, frames: frames, duration: d, err: err})
}
