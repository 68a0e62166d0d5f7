package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/matzehuels/ssnmovie/pkg/buildinfo"
	"github.com/matzehuels/ssnmovie/pkg/coloring"
	"github.com/matzehuels/ssnmovie/pkg/render"
	"github.com/matzehuels/ssnmovie/pkg/sweep"
)

// ManifestFile is the per-source run record written next to the frames.
const ManifestFile = "manifest.json"

// Manifest records how the frames of one annotation source were made.
type Manifest struct {
	RunID      string                 `json:"run_id"`
	CreatedAt  time.Time              `json:"created_at"`
	Version    string                 `json:"version"`
	Network    string                 `json:"network"`
	Source     string                 `json:"source"`
	Annotation string                 `json:"annotation_file"`
	Layout     string                 `json:"layout"`
	Scheme     string                 `json:"scheme"`
	Nodes      int                    `json:"nodes"`
	Edges      int                    `json:"edges"`
	Annotated  int                    `json:"annotated"`
	Legend     []coloring.LegendEntry `json:"legend"`
	Frames     []sweep.FrameResult    `json:"frames"`
	Duration   time.Duration          `json:"duration_ns"`
}

func newManifest(runID string, opts Options, source string) *Manifest {
	return &Manifest{
		RunID:      runID,
		CreatedAt:  time.Now().UTC(),
		Version:    buildinfo.Version,
		Network:    opts.Network,
		Annotation: source,
		Layout:     opts.Layout,
		Scheme:     opts.Scheme,
	}
}

// WriteManifest stores m at path atomically.
func WriteManifest(path string, m *Manifest) error {
	return render.WriteFileAtomic(path, func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(m)
	})
}

// ReadManifest loads a manifest written by WriteManifest.
func ReadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return &m, nil
}
