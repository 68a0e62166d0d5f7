package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/ssnmovie/pkg/errors"
	"github.com/matzehuels/ssnmovie/pkg/render/summary"
	"github.com/matzehuels/ssnmovie/pkg/sweep"
)

const testNetwork = `<?xml version="1.0" encoding="UTF-8"?>
<graph label="demo" xmlns="http://www.cs.rpi.edu/XGMML">
  <node id="a" label="A"><att name="Description" type="string" value="X1 kinase"/></node>
  <node id="b" label="B"><att name="Description" type="string" value="X2 ligase"/></node>
  <node id="c" label="C"><att name="Description" type="string" value="X3 unknown"/></node>
  <edge source="a" target="b"><att name="alignment_score" type="real" value="10"/></edge>
  <edge source="b" target="c"><att name="alignment_score" type="real" value="20"/></edge>
  <edge source="a" target="c"><att name="alignment_score" type="real" value="30"/></edge>
</graph>`

// fakeRenderer writes a placeholder instead of a PNG.
type fakeRenderer struct {
	mu     sync.Mutex
	frames []sweep.Frame
}

func (r *fakeRenderer) Render(_ context.Context, f sweep.Frame, path string) error {
	r.mu.Lock()
	r.frames = append(r.frames, f)
	r.mu.Unlock()
	return os.WriteFile(path, []byte("frame"), 0o644)
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func listDir(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names
}

func TestExecute(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out")
	rec := &fakeRenderer{}
	opts := Options{
		Network:    writeFile(t, dir, "ssn.xgmml", testNetwork),
		Kofam:      writeFile(t, dir, "kofam.tsv", "Hit_Id\tGene\nX1\tgeneA\n"),
		Annotation: writeFile(t, dir, "custom.tsv", "# curated\nHit_Id\tGene\nX2\tligB\nX3\tunkC\n"),
		Output:     out,
		Renderer:   rec,
	}

	res, err := NewRunner(nil, nil, nil).Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if res.Stats.NodeCount != 3 || res.Stats.EdgeCount != 3 || res.Stats.Thresholds != 3 {
		t.Errorf("Stats = %+v", res.Stats)
	}
	if res.Stats.MinScore != 10 || res.Stats.MaxScore != 30 {
		t.Errorf("score range = %v..%v, want 10..30", res.Stats.MinScore, res.Stats.MaxScore)
	}
	if len(rec.frames) != 6 {
		t.Errorf("rendered %d frames, want 3 per source", len(rec.frames))
	}

	want := []string{"manifest.json", "ssn.10.png", "ssn.20.png", "ssn.30.png", summary.FileName}
	for _, src := range []string{"KOFAM", "ANNOTATION"} {
		if diff := cmp.Diff(want, listDir(t, filepath.Join(out, src))); diff != "" {
			t.Errorf("%s output mismatch (-want +got):\n%s", src, diff)
		}
	}
	if _, err := os.Stat(filepath.Join(out, "EGGNOG")); !os.IsNotExist(err) {
		t.Error("unconfigured source should not get a directory")
	}

	m, err := ReadManifest(filepath.Join(out, "KOFAM", ManifestFile))
	if err != nil {
		t.Fatalf("ReadManifest: %v", err)
	}
	if m.RunID != res.RunID || m.Source != "KOFAM" || m.Annotated != 1 || m.Layout != DefaultLayout {
		t.Errorf("manifest = %+v", m)
	}
	if len(m.Frames) != 3 || m.Frames[0].File != "ssn.30.png" || m.Frames[2].Edges != 3 {
		t.Errorf("manifest frames = %+v", m.Frames)
	}
	if len(m.Legend) != 1 || m.Legend[0].Gene != "geneA" {
		t.Errorf("manifest legend = %+v", m.Legend)
	}
}

func TestExecuteSchemaErrorBeforeRender(t *testing.T) {
	dir := t.TempDir()
	rec := &fakeRenderer{}
	opts := Options{
		Network:  writeFile(t, dir, "ssn.xgmml", testNetwork),
		Kofam:    writeFile(t, dir, "kofam.tsv", "Hit_Id\tGene\nX1\tgeneA\n"),
		Eggnog:   writeFile(t, dir, "eggnog.tsv", "#query\tseed_ortholog\nX1\ts\n"),
		Output:   filepath.Join(dir, "out"),
		Renderer: rec,
	}
	_, err := NewRunner(nil, nil, nil).Execute(context.Background(), opts)
	if !errors.Is(err, errors.ErrCodeSchema) {
		t.Fatalf("Execute() error = %v, want SCHEMA", err)
	}
	if len(rec.frames) != 0 {
		t.Errorf("rendered %d frames before the schema error", len(rec.frames))
	}
}

func TestExecuteSkipSummary(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out")
	opts := Options{
		Network:     writeFile(t, dir, "net.xgmml", testNetwork),
		Eggnog:      writeFile(t, dir, "e.tsv", "#query\tPreferred_name\nX1\tdnaK\nX2\t-\n"),
		Output:      out,
		SkipSummary: true,
		Workers:     2,
		Renderer:    &fakeRenderer{},
	}
	if _, err := NewRunner(nil, nil, nil).Execute(context.Background(), opts); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	for _, name := range listDir(t, filepath.Join(out, "EGGNOG")) {
		if name == summary.FileName {
			t.Error("summary written despite SkipSummary")
		}
	}
}

func TestExecuteNoSources(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out")
	rec := &fakeRenderer{}
	var logs strings.Builder
	opts := Options{
		Network:  writeFile(t, dir, "ssn.xgmml", testNetwork),
		Output:   out,
		Renderer: rec,
		Logger:   log.NewWithOptions(&logs, log.Options{}),
	}

	res, err := NewRunner(nil, nil, nil).Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(res.Sources) != 0 || len(rec.frames) != 0 {
		t.Errorf("got %d sources and %d frames, want none", len(res.Sources), len(rec.frames))
	}
	if res.Stats.NodeCount != 3 || res.Stats.MinScore != 10 || res.Stats.MaxScore != 30 {
		t.Errorf("Stats = %+v", res.Stats)
	}
	for _, want := range []string{"network range of alignment score", "no annotation tables"} {
		if !strings.Contains(logs.String(), want) {
			t.Errorf("log missing %q:\n%s", want, logs.String())
		}
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Error("output directory created without sources")
	}
}

func TestExecuteMissingNetwork(t *testing.T) {
	dir := t.TempDir()
	_, err := NewRunner(nil, nil, nil).Execute(context.Background(), Options{
		Network:  filepath.Join(dir, "nope.xgmml"),
		Kofam:    writeFile(t, dir, "k.tsv", "Hit_Id\tGene\n"),
		Renderer: &fakeRenderer{},
	})
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("Execute() error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestSetDefaults(t *testing.T) {
	var opts Options
	opts.SetDefaults()
	if opts.Layout != "neato" || opts.Scheme != "tab20" || opts.Workers != 1 {
		t.Errorf("defaults = layout %s, scheme %s, workers %d", opts.Layout, opts.Scheme, opts.Workers)
	}
	if opts.Width != 12 || opts.Height != 10 || opts.DPI != 300 {
		t.Errorf("figure defaults = %vx%v @ %v", opts.Width, opts.Height, opts.DPI)
	}
	if opts.Logger == nil {
		t.Error("Logger should default to a discard logger")
	}
}

func TestValidate(t *testing.T) {
	base := func() Options {
		o := Options{Network: "n.xgmml", Kofam: "k.tsv"}
		o.SetDefaults()
		return o
	}
	tests := []struct {
		name   string
		modify func(*Options)
		code   errors.Code
	}{
		{"Valid", func(*Options) {}, ""},
		{"NoNetwork", func(o *Options) { o.Network = "" }, errors.ErrCodeInvalidInput},
		{"NoSources", func(o *Options) { o.Kofam = "" }, ""},
		{"BadLayout", func(o *Options) { o.Layout = "spring" }, errors.ErrCodeInvalidLayout},
		{"BadScheme", func(o *Options) { o.Scheme = "rainbow" }, errors.ErrCodeInvalidScheme},
		{"ReversedScheme", func(o *Options) { o.Scheme = "viridis_r" }, ""},
		{"NegativeWorkers", func(o *Options) { o.Workers = -1 }, errors.ErrCodeInvalidConfig},
		{"BadCache", func(o *Options) { o.Cache.Backend = "redis" }, errors.ErrCodeInvalidConfig},
		{"BlankOutput", func(o *Options) { o.Output = "  " }, errors.ErrCodeInvalidPath},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := base()
			tt.modify(&o)
			err := o.Validate()
			if tt.code == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("Validate() = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestSources(t *testing.T) {
	o := Options{Annotation: "c.tsv", Kofam: "k.tsv"}
	var names []string
	for _, s := range o.Sources() {
		names = append(names, s.Name())
	}
	if got := strings.Join(names, ","); got != "KOFAM,ANNOTATION" {
		t.Errorf("Sources() = %s, want KOFAM,ANNOTATION", got)
	}
}
