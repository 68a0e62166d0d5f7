// Package coloring turns annotation records into a per-node color
// assignment.
//
// [Build] joins the records of one annotation source onto the network by
// Hit_Id, gives every distinct gene a palette color and every node exactly
// one color. Genes are sorted before the palette is requested, so the same
// inputs always produce the same gene colors.
package coloring

import (
	"slices"

	"github.com/matzehuels/ssnmovie/pkg/annotation"
	"github.com/matzehuels/ssnmovie/pkg/network"
	"github.com/matzehuels/ssnmovie/pkg/palette"
)

// Fallback is the color of nodes without a matching annotation.
const Fallback = "#808080"

// Options configures [Build].
type Options struct {
	Scheme   string // Palette scheme name (default palette.Default)
	Fallback string // Color of unannotated nodes (default Fallback)
}

func (o *Options) setDefaults() {
	if o.Scheme == "" {
		o.Scheme = palette.Default
	}
	if o.Fallback == "" {
		o.Fallback = Fallback
	}
}

// LegendEntry pairs a gene label with its color.
type LegendEntry struct {
	Gene  string `json:"gene"`
	Color string `json:"color"`
}

// Assignment is a total mapping from node ID to color.
type Assignment struct {
	Colors    map[string]string // Node ID to color, one entry per node
	Legend    []LegendEntry     // One entry per gene, sorted by gene
	Fallback  string            // Color given to unannotated nodes
	Annotated int               // Number of nodes colored by a gene
}

// Color returns the color of a node, or the fallback for unknown IDs.
func (a *Assignment) Color(nodeID string) string {
	if c, ok := a.Colors[nodeID]; ok {
		return c
	}
	return a.Fallback
}

// Genes returns the legend gene labels in order.
func (a *Assignment) Genes() []string {
	genes := make([]string, len(a.Legend))
	for i, e := range a.Legend {
		genes[i] = e.Gene
	}
	return genes
}

// Build computes the color assignment of nodeIDs.
//
// Records whose Hit_Id is not in hits are ignored. When several records
// share a Hit_Id the last one decides the gene of its nodes, while every
// gene still gets a legend entry. Without any matching record no palette is
// requested and every node gets the fallback color.
//
// Build does not modify its arguments.
func Build(nodeIDs []string, hits network.HitIndex, records []annotation.Record, opts Options) (*Assignment, error) {
	opts.setDefaults()

	geneOf := make(map[string]string)
	var genes []string
	for _, r := range records {
		if !hits.Contains(r.HitID) {
			continue
		}
		geneOf[r.HitID] = r.Gene
		genes = append(genes, r.Gene)
	}
	slices.Sort(genes)
	genes = slices.Compact(genes)

	a := &Assignment{
		Colors:   make(map[string]string, len(nodeIDs)),
		Legend:   make([]LegendEntry, len(genes)),
		Fallback: opts.Fallback,
	}

	colorOf := make(map[string]string, len(genes))
	if len(genes) > 0 {
		pal, err := palette.Get(opts.Scheme, len(genes))
		if err != nil {
			return nil, err
		}
		for i, g := range genes {
			colorOf[g] = pal[i]
			a.Legend[i] = LegendEntry{Gene: g, Color: pal[i]}
		}
	}

	nodeGene := make(map[string]string)
	for hit, gene := range geneOf {
		for _, id := range hits[hit] {
			nodeGene[id] = gene
		}
	}

	for _, id := range nodeIDs {
		if gene, ok := nodeGene[id]; ok {
			a.Colors[id] = colorOf[gene]
			a.Annotated++
			continue
		}
		a.Colors[id] = opts.Fallback
	}
	return a, nil
}

// Apply writes the assigned colors onto the nodes of g.
func (a *Assignment) Apply(g *network.Graph) {
	for _, n := range g.Nodes() {
		n.Color = a.Color(n.ID)
	}
}
