package network

import (
	"errors"
	"maps"
	"slices"
)

var (
	// ErrInvalidNodeID is returned by [Graph.AddNode] when the node ID is
	// empty. All nodes must have non-empty identifiers.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNodeID is returned by [Graph.AddNode] when a node with the
	// same ID already exists in the graph.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrUnknownSourceNode is returned by [Graph.AddEdge] and [Graph.SetEdge]
	// when the From node does not exist.
	ErrUnknownSourceNode = errors.New("unknown source node")

	// ErrUnknownTargetNode is returned by [Graph.AddEdge] and [Graph.SetEdge]
	// when the To node does not exist.
	ErrUnknownTargetNode = errors.New("unknown target node")

	// ErrDuplicateEdge is returned by [Graph.AddEdge] when an edge between the
	// same (ordered, for directed graphs) node pair already exists.
	ErrDuplicateEdge = errors.New("duplicate edge")
)

// Metadata stores arbitrary key-value pairs attached to nodes, edges or the
// graph. Loaders keep every attribute of the input file here so that nothing
// is lost even when the sweep only reads a few of them.
type Metadata map[string]any

// Node is a sequence in the similarity network.
//
// The zero value is not usable - ID must be set before adding to a Graph.
type Node struct {
	ID          string   // Unique identifier from the network file
	Label       string   // Display label from the network file (optional)
	Description string   // Free-text description; its first token is the Hit_Id
	HitID       string   // External identifier used to join annotation tables
	Color       string   // Assigned fill color (optional)
	Meta        Metadata // Remaining attributes (never nil after AddNode)
}

// Edge is a similarity relation between two sequences.
type Edge struct {
	From  string   // Source node ID
	To    string   // Target node ID
	Score float64  // Alignment score
	Color string   // Display color (set for kept edges during a sweep)
	Meta  Metadata // Remaining attributes (never nil after AddEdge)
}

// edgeKey identifies an edge by its endpoints. Undirected graphs store the
// endpoints in canonical (sorted) order.
type edgeKey struct{ a, b string }

// Graph is a weighted similarity network.
//
// Networks are loaded as directed graphs (one edge per ordered pair) and are
// converted with [Graph.Undirected] before rendering. Node iteration follows
// insertion order so that every derived artifact (DOT text, layouts, images)
// is reproducible for identical input.
//
// The zero value is not usable - use New to create a valid Graph instance.
// Graph is not safe for concurrent mutation; concurrent readers are fine.
type Graph struct {
	directed bool
	nodes    map[string]*Node
	order    []string
	edges    []Edge
	index    map[edgeKey]int
	meta     Metadata
}

// New creates an empty directed Graph with optional graph-level metadata.
// The metadata parameter can be nil, in which case an empty map is created.
func New(meta Metadata) *Graph {
	if meta == nil {
		meta = Metadata{}
	}
	return &Graph{
		directed: true,
		nodes:    make(map[string]*Node),
		index:    make(map[edgeKey]int),
		meta:     meta,
	}
}

// Meta returns the graph-level metadata map.
func (g *Graph) Meta() Metadata { return g.meta }

// Directed reports whether edges are ordered pairs.
func (g *Graph) Directed() bool { return g.directed }

// AddNode adds a node to the graph.
// Returns ErrInvalidNodeID if the node ID is empty, or ErrDuplicateNodeID
// if a node with the same ID already exists. The node's Meta field is
// initialized to an empty map if nil.
func (g *Graph) AddNode(n Node) error {
	if n.ID == "" {
		return ErrInvalidNodeID
	}
	if _, exists := g.nodes[n.ID]; exists {
		return ErrDuplicateNodeID
	}
	if n.Meta == nil {
		n.Meta = Metadata{}
	}
	node := n
	g.nodes[n.ID] = &node
	g.order = append(g.order, n.ID)
	return nil
}

// AddEdge adds an edge between two existing nodes.
// Returns ErrUnknownSourceNode or ErrUnknownTargetNode for missing
// endpoints, and ErrDuplicateEdge if the pair is already connected.
func (g *Graph) AddEdge(e Edge) error {
	if err := g.checkEndpoints(e); err != nil {
		return err
	}
	if _, exists := g.index[g.key(e.From, e.To)]; exists {
		return ErrDuplicateEdge
	}
	g.appendEdge(e)
	return nil
}

// SetEdge adds the edge, or replaces the attributes of an existing edge
// between the same pair. The edge keeps its original position in
// [Graph.Edges]. Loaders use this for files that repeat an edge: the last
// occurrence in the file wins.
func (g *Graph) SetEdge(e Edge) error {
	if err := g.checkEndpoints(e); err != nil {
		return err
	}
	if i, exists := g.index[g.key(e.From, e.To)]; exists {
		if e.Meta == nil {
			e.Meta = Metadata{}
		}
		g.edges[i] = e
		return nil
	}
	g.appendEdge(e)
	return nil
}

func (g *Graph) checkEndpoints(e Edge) error {
	if _, ok := g.nodes[e.From]; !ok {
		return ErrUnknownSourceNode
	}
	if _, ok := g.nodes[e.To]; !ok {
		return ErrUnknownTargetNode
	}
	return nil
}

func (g *Graph) appendEdge(e Edge) {
	if e.Meta == nil {
		e.Meta = Metadata{}
	}
	g.index[g.key(e.From, e.To)] = len(g.edges)
	g.edges = append(g.edges, e)
}

func (g *Graph) key(from, to string) edgeKey {
	if !g.directed && to < from {
		return edgeKey{to, from}
	}
	return edgeKey{from, to}
}

// RemoveEdge removes the edge from→to if it exists.
// No error is returned if the edge does not exist.
func (g *Graph) RemoveEdge(from, to string) {
	k := g.key(from, to)
	if _, ok := g.index[k]; !ok {
		return
	}
	g.removeWhere(func(e Edge) bool { return g.key(e.From, e.To) == k })
}

// removeWhere deletes every edge matching drop and rebuilds the pair index.
func (g *Graph) removeWhere(drop func(Edge) bool) int {
	before := len(g.edges)
	g.edges = slices.DeleteFunc(g.edges, drop)
	g.reindex()
	return before - len(g.edges)
}

func (g *Graph) reindex() {
	clear(g.index)
	for i, e := range g.edges {
		g.index[g.key(e.From, e.To)] = i
	}
}

// Nodes returns all nodes in insertion order. The returned slice contains
// pointers to the actual node structs, so modifications affect the graph.
func (g *Graph) Nodes() []*Node {
	nodes := make([]*Node, len(g.order))
	for i, id := range g.order {
		nodes[i] = g.nodes[id]
	}
	return nodes
}

// NodeIDs returns all node IDs in insertion order.
func (g *Graph) NodeIDs() []string { return slices.Clone(g.order) }

// Node returns the node with the given ID and true, or nil and false if not found.
func (g *Graph) Node(id string) (*Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Edges returns a copy of all edges in insertion order.
func (g *Graph) Edges() []Edge { return slices.Clone(g.edges) }

// Edge returns the edge between from and to. For undirected graphs the
// argument order does not matter.
func (g *Graph) Edge(from, to string) (Edge, bool) {
	i, ok := g.index[g.key(from, to)]
	if !ok {
		return Edge{}, false
	}
	return g.edges[i], true
}

// HasEdge reports whether from and to are connected.
func (g *Graph) HasEdge(from, to string) bool {
	_, ok := g.index[g.key(from, to)]
	return ok
}

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges in the graph.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// ConnectedNodeCount returns the number of nodes with at least one edge.
func (g *Graph) ConnectedNodeCount() int {
	seen := make(map[string]struct{}, len(g.nodes))
	for _, e := range g.edges {
		seen[e.From] = struct{}{}
		seen[e.To] = struct{}{}
	}
	return len(seen)
}

// Clone returns an independent copy of the graph. Metadata maps are copied
// one level deep, which is enough since the sweep only writes Color fields.
func (g *Graph) Clone() *Graph {
	c := &Graph{
		directed: g.directed,
		nodes:    make(map[string]*Node, len(g.nodes)),
		order:    slices.Clone(g.order),
		edges:    make([]Edge, len(g.edges)),
		index:    maps.Clone(g.index),
		meta:     maps.Clone(g.meta),
	}
	for id, n := range g.nodes {
		nc := *n
		nc.Meta = maps.Clone(n.Meta)
		c.nodes[id] = &nc
	}
	for i, e := range g.edges {
		e.Meta = maps.Clone(e.Meta)
		c.edges[i] = e
	}
	return c
}
