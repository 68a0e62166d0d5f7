package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/ssnmovie/pkg/pipeline"
	"github.com/matzehuels/ssnmovie/pkg/render/summary"
	"github.com/matzehuels/ssnmovie/pkg/sweep"
)

// newTestRoot creates an output directory with a KOFAM run and a stray
// directory without a manifest.
func newTestRoot(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	dir := filepath.Join(root, "KOFAM")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	m := &pipeline.Manifest{
		RunID:     "run-1",
		Network:   "ssn.xgmml",
		Source:    "KOFAM",
		Nodes:     3,
		Annotated: 2,
		Frames: []sweep.FrameResult{
			{Threshold: 30, Label: "30", File: "ssn.30.png", Edges: 1},
			{Threshold: 10, Label: "10", File: "ssn.10.png", Edges: 3},
		},
	}
	if err := pipeline.WriteManifest(filepath.Join(dir, pipeline.ManifestFile), m); err != nil {
		t.Fatal(err)
	}
	for name, content := range map[string]string{
		"ssn.30.png":     "png-30",
		"ssn.10.png":     "png-10",
		summary.FileName: "<html></html>",
	} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.MkdirAll(filepath.Join(root, "scratch"), 0o755); err != nil {
		t.Fatal(err)
	}
	return root
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func newServer(root string) *Server {
	return New(root, log.New(io.Discard))
}

func TestSources(t *testing.T) {
	s := newServer(newTestRoot(t))
	w := get(t, s, "/api/sources")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body)
	}
	var got []SourceInfo
	if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	want := []SourceInfo{{
		Source: "KOFAM", RunID: "run-1", Network: "ssn.xgmml",
		Frames: 2, Annotated: 2, Nodes: 3, Summary: true,
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("sources mismatch (-want +got):\n%s", diff)
	}
}

func TestManifest(t *testing.T) {
	s := newServer(newTestRoot(t))

	w := get(t, s, "/api/sources/KOFAM")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var m pipeline.Manifest
	if err := json.NewDecoder(w.Body).Decode(&m); err != nil {
		t.Fatal(err)
	}
	if m.RunID != "run-1" || len(m.Frames) != 2 {
		t.Errorf("manifest = %+v", m)
	}

	if w := get(t, s, "/api/sources/EGGNOG"); w.Code != http.StatusNotFound {
		t.Errorf("missing source status = %d, want 404", w.Code)
	}
}

func TestFiles(t *testing.T) {
	s := newServer(newTestRoot(t))
	tests := []struct {
		path   string
		status int
		body   string
	}{
		{"/files/KOFAM/ssn.30.png", http.StatusOK, "png-30"},
		{"/files/KOFAM/summary.html", http.StatusOK, "<html></html>"},
		{"/files/KOFAM/ssn.99.png", http.StatusNotFound, ""},
		{"/files/KOFAM/.hidden", http.StatusBadRequest, ""},
		{"/files/KOFAM/..%2fKOFAM%2fmanifest.json", http.StatusBadRequest, ""},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := get(t, s, tt.path)
			if w.Code != tt.status {
				t.Fatalf("status = %d, want %d (body %s)", w.Code, tt.status, w.Body)
			}
			if tt.body != "" && w.Body.String() != tt.body {
				t.Errorf("body = %q, want %q", w.Body, tt.body)
			}
		})
	}
}

func TestIndex(t *testing.T) {
	s := newServer(newTestRoot(t))
	w := get(t, s, "/")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	body := w.Body.String()
	for _, want := range []string{"KOFAM", `/files/KOFAM/ssn.30.png`, `/files/KOFAM/summary.html`} {
		if !strings.Contains(body, want) {
			t.Errorf("index missing %q", want)
		}
	}
	if strings.Contains(body, "scratch") {
		t.Error("index lists a directory without a manifest")
	}
}

func TestMissingRoot(t *testing.T) {
	s := newServer(filepath.Join(t.TempDir(), "nope"))
	if w := get(t, s, "/api/sources"); w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
	if w := get(t, s, "/healthz"); w.Code != http.StatusOK {
		t.Errorf("healthz status = %d", w.Code)
	}
}
