package summary

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/ssnmovie/pkg/sweep"
)

func testInfo() Info {
	return Info{
		Network:   "ssn",
		Source:    "KOFAM",
		Nodes:     3,
		Annotated: 1,
		Genes:     1,
		Result: &sweep.Result{
			Source: "KOFAM",
			Frames: []sweep.FrameResult{
				{Threshold: 30, Label: "30", Edges: 1, ConnectedNodes: 2},
				{Threshold: 20, Label: "20", Edges: 2, ConnectedNodes: 3},
				{Threshold: 10, Label: "10", Edges: 3, ConnectedNodes: 3},
			},
		},
	}
}

func TestRender(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, testInfo()); err != nil {
		t.Fatalf("Render: %v", err)
	}
	html := buf.String()
	for _, want := range []string{"ssn / KOFAM", "connected nodes", "alignment score", "3 nodes, 1 annotated"} {
		if !strings.Contains(html, want) {
			t.Errorf("summary page missing %q", want)
		}
	}
}

func TestWriteEmptySweep(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	info := testInfo()
	info.Result = &sweep.Result{Source: "KOFAM"}
	if err := Write(path, info); err != nil {
		t.Fatalf("Write: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "0 thresholds") {
		t.Error("empty sweep should report zero thresholds")
	}
}
