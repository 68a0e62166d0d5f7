package network

import (
	"math"
	"slices"
	"strings"
)

// KeptColor is the display color given to edges that survive a prune.
const KeptColor = "#d3d3d3"

// Scores returns the distinct alignment scores of the graph in strictly
// descending order. NaN scores are ignored. A graph without edges yields an
// empty slice.
func (g *Graph) Scores() []float64 {
	seen := make(map[float64]struct{}, len(g.edges))
	scores := make([]float64, 0, len(g.edges))
	for _, e := range g.edges {
		if math.IsNaN(e.Score) {
			continue
		}
		if _, ok := seen[e.Score]; ok {
			continue
		}
		seen[e.Score] = struct{}{}
		scores = append(scores, e.Score)
	}
	slices.Sort(scores)
	slices.Reverse(scores)
	return scores
}

// ScoreRange returns the smallest and largest alignment score. ok is false
// when the graph has no edges.
func (g *Graph) ScoreRange() (lo, hi float64, ok bool) {
	scores := g.Scores()
	if len(scores) == 0 {
		return 0, 0, false
	}
	return scores[len(scores)-1], scores[0], true
}

// Prune removes every edge scoring below threshold and colors the
// remaining edges with keptColor (the package default when empty). It
// returns the number of removed edges.
//
// Prune mutates the receiver; callers sweeping a shared network work on a
// [Graph.Clone].
func (g *Graph) Prune(threshold float64, keptColor string) int {
	if keptColor == "" {
		keptColor = KeptColor
	}
	removed := g.removeWhere(func(e Edge) bool {
		return !(e.Score >= threshold)
	})
	for i := range g.edges {
		g.edges[i].Color = keptColor
	}
	return removed
}

// Undirected converts the graph in place into an undirected graph. When
// both directions of a pair exist they collapse into a single edge:
//   - an edge colored by a prune beats an uncolored one
//   - otherwise the higher score wins
//   - on equal scores the edge whose From sorts first wins
//
// Self-loops are kept. Converting an undirected graph is a no-op.
func (g *Graph) Undirected() {
	if !g.directed {
		return
	}
	g.directed = false

	merged := make([]Edge, 0, len(g.edges))
	pos := make(map[edgeKey]int, len(g.edges))
	for _, e := range g.edges {
		k := g.key(e.From, e.To)
		i, ok := pos[k]
		if !ok {
			pos[k] = len(merged)
			merged = append(merged, e)
			continue
		}
		if preferEdge(e, merged[i]) {
			merged[i] = e
		}
	}
	g.edges = merged
	g.reindex()
}

// preferEdge reports whether a should replace b when both connect the
// same pair of nodes.
func preferEdge(a, b Edge) bool {
	aKept, bKept := a.Color != "", b.Color != ""
	if aKept != bKept {
		return aKept
	}
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	return strings.Compare(a.From, b.From) < 0
}

// HitIndex maps a Hit_Id to the IDs of the nodes carrying it, in node
// insertion order.
type HitIndex map[string][]string

// HitIndex builds the Hit_Id lookup used to join annotation tables onto
// the network. Nodes without a Hit_Id are skipped.
func (g *Graph) HitIndex() HitIndex {
	idx := make(HitIndex, len(g.nodes))
	for _, id := range g.order {
		n := g.nodes[id]
		if n.HitID == "" {
			continue
		}
		idx[n.HitID] = append(idx[n.HitID], id)
	}
	return idx
}

// Contains reports whether hitID belongs to at least one node.
func (h HitIndex) Contains(hitID string) bool {
	return len(h[hitID]) > 0
}

// HitIDFromDescription returns the first whitespace-delimited token of a
// node description, or "" for a blank description.
func HitIDFromDescription(desc string) string {
	fields := strings.Fields(desc)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// DeriveHitID picks the Hit_Id for a node: the first description token,
// falling back to the label and then the node ID.
func DeriveHitID(n Node) string {
	if id := HitIDFromDescription(n.Description); id != "" {
		return id
	}
	if l := strings.TrimSpace(n.Label); l != "" {
		return l
	}
	return n.ID
}
