package nodelink

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/matzehuels/ssnmovie/pkg/network"
)

// nodeSizeInches is the node diameter Graphviz reserves during layout.
const nodeSizeInches = 0.1

// ToDOT converts a pruned network to undirected Graphviz DOT source.
//
// Nodes are renamed n0..nN in graph order so that arbitrary sequence IDs
// never need quoting; names maps each DOT name back to its node ID. The
// output only depends on topology and node order, which makes it a stable
// layout cache key.
func ToDOT(g *network.Graph) (dot string, names map[string]string) {
	ids := g.NodeIDs()
	names = make(map[string]string, len(ids))
	short := make(map[string]string, len(ids))

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	fmt.Fprintf(&buf, "  node [shape=circle, fixedsize=true, width=%s, label=\"\"];\n",
		strconv.FormatFloat(nodeSizeInches, 'f', -1, 64))
	for i, id := range ids {
		name := "n" + strconv.Itoa(i)
		names[name] = id
		short[id] = name
		fmt.Fprintf(&buf, "  %s;\n", name)
	}
	for _, e := range g.Edges() {
		fmt.Fprintf(&buf, "  %s -- %s;\n", short[e.From], short[e.To])
	}
	buf.WriteString("}\n")
	return buf.String(), names
}
