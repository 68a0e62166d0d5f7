package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/ssnmovie/pkg/errors"
	pkgio "github.com/matzehuels/ssnmovie/pkg/io"
)

const testNetwork = `<?xml version="1.0" encoding="UTF-8"?>
<graph label="demo" xmlns="http://www.cs.rpi.edu/XGMML">
  <node id="a" label="A"><att name="Description" type="string" value="X1 kinase"/></node>
  <node id="b" label="B"><att name="Description" type="string" value="X2 ligase"/></node>
  <edge source="a" target="b"><att name="alignment_score" type="real" value="42"/></edge>
</graph>`

func TestRootCommand(t *testing.T) {
	root := New(&bytes.Buffer{}, LogInfo).RootCommand()
	want := []string{"cache", "completion", "convert", "palette", "serve", "sweep"}
	var got []string
	for _, cmd := range root.Commands() {
		got = append(got, cmd.Name())
	}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("subcommands = %v, want %v", got, want)
	}
}

func TestSweepCommandErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want errors.Code
	}{
		{"MissingNetwork", []string{"sweep", "missing.xgmml"}, errors.ErrCodeFileNotFound},
		{"BadLayout", []string{"sweep", "ssn.xgmml", "--kofam", "k.tsv", "--layout", "spring"}, errors.ErrCodeInvalidLayout},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := New(&bytes.Buffer{}, LogInfo).RootCommand()
			root.SetArgs(append(tt.args, "--output", t.TempDir()))
			root.SetErr(&bytes.Buffer{})
			if err := root.Execute(); !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %s", err, tt.want)
			}
		})
	}
}

func TestSweepCommandNetworkOnly(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "ssn.xgmml")
	if err := os.WriteFile(in, []byte(testNetwork), 0o644); err != nil {
		t.Fatal(err)
	}
	root := New(&bytes.Buffer{}, LogInfo).RootCommand()
	root.SetArgs([]string{"sweep", in, "--output", filepath.Join(dir, "out")})
	root.SetOut(&bytes.Buffer{})
	if err := root.Execute(); err != nil {
		t.Fatalf("sweep without annotation tables: %v", err)
	}
}

func TestPaletteCommand(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"Default", []string{"palette", "-n", "3"}, []string{"tab20", "(3 colors)", "#1f77b4"}},
		{"List", []string{"palette", "--list"}, []string{"viridis", "continuous", "Set1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := New(&bytes.Buffer{}, LogInfo).RootCommand()
			var out bytes.Buffer
			root.SetOut(&out)
			root.SetArgs(tt.args)
			if err := root.Execute(); err != nil {
				t.Fatalf("Execute: %v", err)
			}
			for _, w := range tt.want {
				if !strings.Contains(out.String(), w) {
					t.Errorf("output missing %q:\n%s", w, out.String())
				}
			}
		})
	}
}

func TestPaletteCommandUnknownScheme(t *testing.T) {
	root := New(&bytes.Buffer{}, LogInfo).RootCommand()
	root.SetArgs([]string{"palette", "rainbow"})
	root.SetErr(&bytes.Buffer{})
	if err := root.Execute(); !errors.Is(err, errors.ErrCodeInvalidScheme) {
		t.Errorf("error = %v, want INVALID_SCHEME", err)
	}
}

func TestConvertCommand(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "ssn.xgmml")
	if err := os.WriteFile(in, []byte(testNetwork), 0o644); err != nil {
		t.Fatal(err)
	}

	root := New(&bytes.Buffer{}, LogInfo).RootCommand()
	root.SetArgs([]string{"convert", in})
	if err := root.Execute(); err != nil {
		t.Fatalf("convert: %v", err)
	}

	g, err := pkgio.Import(filepath.Join(dir, "ssn.json"))
	if err != nil {
		t.Fatalf("reading converted network: %v", err)
	}
	if g.NodeCount() != 2 || g.EdgeCount() != 1 {
		t.Errorf("converted network has %d nodes, %d edges", g.NodeCount(), g.EdgeCount())
	}
}
