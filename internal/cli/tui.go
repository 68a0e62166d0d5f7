package cli

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	barFullStyle  = lipgloss.NewStyle().Foreground(colorCyan)
	barEmptyStyle = lipgloss.NewStyle().Foreground(colorDim)
	sourceStyle   = lipgloss.NewStyle().Foreground(colorWhite).Width(12)
)

const barWidth = 30

// =============================================================================
// Messages
// =============================================================================

type sweepStartMsg struct {
	source string
	total  int
}

type thresholdMsg struct {
	source    string
	threshold float64
	done      int
	total     int
}

type sweepDoneMsg struct {
	source   string
	frames   int
	duration time.Duration
	err      error
}

// runDoneMsg ends the program once the whole run has returned.
type runDoneMsg struct{ err error }

// =============================================================================
// SweepModel - Live progress of a run
// =============================================================================

type sourceProgress struct {
	name     string
	done     int
	total    int
	last     float64
	duration time.Duration
	finished bool
	err      error
}

// SweepModel shows one progress bar per annotation source.
type SweepModel struct {
	Sources  []*sourceProgress
	Err      error
	Finished bool
	Aborted  bool

	cancel func()
}

// NewSweepModel creates a model. cancel is called when the user aborts.
func NewSweepModel(cancel func()) SweepModel {
	return SweepModel{cancel: cancel}
}

func (m SweepModel) Init() tea.Cmd {
	return nil
}

func (m SweepModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.Aborted = true
			if m.cancel != nil {
				m.cancel()
			}
			return m, tea.Quit
		}
	case sweepStartMsg:
		m.Sources = append(m.Sources, &sourceProgress{name: msg.source, total: msg.total})
	case thresholdMsg:
		if sp := m.source(msg.source); sp != nil {
			sp.done, sp.total, sp.last = msg.done, msg.total, msg.threshold
		}
	case sweepDoneMsg:
		if sp := m.source(msg.source); sp != nil {
			sp.finished, sp.duration, sp.err = true, msg.duration, msg.err
		}
	case runDoneMsg:
		m.Finished, m.Err = true, msg.err
		return m, tea.Quit
	}
	return m, nil
}

func (m SweepModel) source(name string) *sourceProgress {
	for _, sp := range m.Sources {
		if sp.name == name {
			return sp
		}
	}
	return nil
}

func (m SweepModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Rendering frames"))
	b.WriteString("\n")
	if len(m.Sources) == 0 {
		b.WriteString(StyleDim.Render("loading network and annotations..."))
		b.WriteString("\n")
	}
	for _, sp := range m.Sources {
		b.WriteString(sourceStyle.Render(sp.name))
		b.WriteString(progressBar(sp.done, sp.total))
		b.WriteString(" ")
		switch {
		case sp.err != nil:
			b.WriteString(styleIconError.Render(iconError + " failed"))
		case sp.finished:
			b.WriteString(styleIconSuccess.Render(iconSuccess))
			b.WriteString(StyleDim.Render(fmt.Sprintf(" %d frames in %s", sp.done, sp.duration.Round(time.Millisecond))))
		default:
			b.WriteString(StyleNumber.Render(fmt.Sprintf("%d/%d", sp.done, sp.total)))
			if sp.done > 0 {
				b.WriteString(StyleDim.Render(fmt.Sprintf("  score %g", sp.last)))
			}
		}
		b.WriteString("\n")
	}
	if !m.Finished && !m.Aborted {
		b.WriteString(StyleDim.Render("q quit"))
		b.WriteString("\n")
	}
	return b.String()
}

// progressBar draws a fixed-width bar for done out of total.
func progressBar(done, total int) string {
	filled := barWidth
	if total > 0 {
		filled = done * barWidth / total
	}
	return barFullStyle.Render(strings.Repeat("█", filled)) +
		barEmptyStyle.Render(strings.Repeat("░", barWidth-filled))
}
