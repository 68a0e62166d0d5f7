// Package summary writes an HTML overview of a finished sweep: retained
// edges and connected nodes per threshold, one page per annotation source.
package summary

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/matzehuels/ssnmovie/pkg/render"
	"github.com/matzehuels/ssnmovie/pkg/sweep"
)

// FileName is the summary page written next to the frames.
const FileName = "summary.html"

// Info describes the sweep being summarized.
type Info struct {
	Network   string // Network stem
	Source    string // Annotation source directory name
	Nodes     int
	Annotated int
	Genes     int
	Result    *sweep.Result
}

// Write renders the summary page of info to path.
func Write(path string, info Info) error {
	return render.WriteFileAtomic(path, func(w io.Writer) error {
		return Render(w, info)
	})
}

// Render writes the summary page of info to w.
func Render(w io.Writer, info Info) error {
	page := components.NewPage()
	page.AddCharts(lineBase(info))
	return page.Render(w)
}

func lineBase(info Info) *charts.Line {
	var (
		labels    []string
		edges     []opts.LineData
		connected []opts.LineData
	)
	if info.Result != nil {
		for _, fr := range info.Result.Frames {
			labels = append(labels, fmt.Sprintf("%g", fr.Threshold))
			edges = append(edges, opts.LineData{Value: fr.Edges})
			connected = append(connected, opts.LineData{Value: fr.ConnectedNodes})
		}
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "ssnmovie summary",
			Width:     "100vw",
			Height:    "90vh",
		}),
		charts.WithTitleOpts(opts.Title{
			Title: fmt.Sprintf("%s / %s", info.Network, info.Source),
			Subtitle: fmt.Sprintf("%d nodes, %d annotated, %d genes, %d thresholds",
				info.Nodes, info.Annotated, info.Genes, len(labels)),
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(true),
			Top:  "bottom",
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: "alignment score",
		}),
	)
	line.SetXAxis(labels).
		AddSeries("edges", edges).
		AddSeries("connected nodes", connected)
	return line
}
