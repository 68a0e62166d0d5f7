package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/google/go-cmp/cmp"
)

func TestLogReporter(t *testing.T) {
	var buf bytes.Buffer
	r := newLogReporter(newLogger(&buf, log.InfoLevel), 25)
	ctx := context.Background()

	r.OnSweepStart(ctx, "KOFAM", 10)
	for i := 1; i <= 10; i++ {
		r.OnThresholdComplete(ctx, "KOFAM", float64(100-i), i, 10)
	}
	r.OnSweepComplete(ctx, "KOFAM", 10, time.Second, nil)

	// Logged at 10, 40, 70 and 100 percent.
	got := strings.Count(buf.String(), "score done")
	if got != 4 {
		t.Errorf("logged %d progress lines, want 4:\n%s", got, buf.String())
	}
	if !strings.Contains(buf.String(), "percent=100") {
		t.Errorf("final frame not logged:\n%s", buf.String())
	}
}

func TestLogReporterFailure(t *testing.T) {
	var buf bytes.Buffer
	r := newLogReporter(newLogger(&buf, log.InfoLevel), 0)
	r.OnSweepComplete(context.Background(), "EGGNOG", 2, time.Second, errors.New("layout failed"))
	if !strings.Contains(buf.String(), "sweep failed") {
		t.Errorf("failure not logged: %q", buf.String())
	}
}

type recordingSender struct{ msgs []tea.Msg }

func (s *recordingSender) Send(msg tea.Msg) { s.msgs = append(s.msgs, msg) }

func TestTeaReporter(t *testing.T) {
	s := &recordingSender{}
	r := teaReporter{p: s}
	ctx := context.Background()

	r.OnSweepStart(ctx, "KOFAM", 2)
	r.OnThresholdComplete(ctx, "KOFAM", 30, 1, 2)
	r.OnSweepComplete(ctx, "KOFAM", 2, time.Second, nil)

	want := []tea.Msg{
		sweepStartMsg{source: "KOFAM", total: 2},
		thresholdMsg{source: "KOFAM", threshold: 30, done: 1, total: 2},
		sweepDoneMsg{source: "KOFAM", frames: 2, duration: time.Second},
	}
	if diff := cmp.Diff(want, s.msgs, cmp.AllowUnexported(sweepStartMsg{}, thresholdMsg{}, sweepDoneMsg{})); diff != "" {
		t.Errorf("messages mismatch (-want +got):\n%s", diff)
	}
}

func TestSweepModel(t *testing.T) {
	var m tea.Model = NewSweepModel(nil)
	if !strings.Contains(m.View(), "loading") {
		t.Errorf("initial view = %q", m.View())
	}

	m, _ = m.Update(sweepStartMsg{source: "KOFAM", total: 4})
	m, _ = m.Update(thresholdMsg{source: "KOFAM", threshold: 12.5, done: 2, total: 4})
	view := m.View()
	if !strings.Contains(view, "KOFAM") || !strings.Contains(view, "2/4") || !strings.Contains(view, "score 12.5") {
		t.Errorf("progress view = %q", view)
	}

	m, _ = m.Update(sweepDoneMsg{source: "KOFAM", frames: 4, duration: time.Second})
	m, cmd := m.Update(runDoneMsg{})
	if cmd == nil {
		t.Error("runDoneMsg should quit the program")
	}
	sm := m.(SweepModel)
	if !sm.Finished || sm.Err != nil || !sm.Sources[0].finished {
		t.Errorf("final model = %+v", sm)
	}
}

func TestSweepModelAbort(t *testing.T) {
	cancelled := false
	var m tea.Model = NewSweepModel(func() { cancelled = true })
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil || !cancelled || !m.(SweepModel).Aborted {
		t.Errorf("ctrl+c: cmd=%v cancelled=%v model=%+v", cmd != nil, cancelled, m)
	}
}

func TestProgressBar(t *testing.T) {
	if got := strings.Count(progressBar(0, 0), "█"); got != barWidth {
		t.Errorf("empty sweep bar has %d filled cells, want %d", got, barWidth)
	}
	if got := strings.Count(progressBar(1, 2), "█"); got != barWidth/2 {
		t.Errorf("half bar has %d filled cells, want %d", got, barWidth/2)
	}
}
