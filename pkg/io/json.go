package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/ssnmovie/pkg/network"
)

type jsonGraph struct {
	Meta  network.Metadata `json:"meta,omitempty"`
	Nodes []jsonNode       `json:"nodes"`
	Edges []jsonEdge       `json:"edges"`
}

type jsonNode struct {
	ID          string           `json:"id"`
	Label       string           `json:"label,omitempty"`
	Description string           `json:"description,omitempty"`
	Meta        network.Metadata `json:"meta,omitempty"`
}

type jsonEdge struct {
	From  string           `json:"from"`
	To    string           `json:"to"`
	Score *float64         `json:"alignment_score"`
	Meta  network.Metadata `json:"meta,omitempty"`
}

// ReadJSON decodes a JSON network from r.
//
// Each node needs an "id"; "label", "description" and "meta" are optional.
// Each edge needs "from", "to" and a finite numeric "alignment_score". Repeated
// edges between the same ordered pair collapse to the last one.
// ReadJSON does not close r.
func ReadJSON(r io.Reader) (*network.Graph, error) {
	var data jsonGraph
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	g := network.New(data.Meta)
	for _, n := range data.Nodes {
		nd := network.Node{ID: n.ID, Label: n.Label, Description: n.Description, Meta: n.Meta}
		nd.HitID = network.DeriveHitID(nd)
		if err := g.AddNode(nd); err != nil {
			return nil, fmt.Errorf("node %q: %w", n.ID, err)
		}
	}
	for i, e := range data.Edges {
		if e.Score == nil {
			return nil, fmt.Errorf("edge %d (%s->%s): missing %s", i, e.From, e.To, ScoreAttribute)
		}
		if err := checkScore(*e.Score); err != nil {
			return nil, fmt.Errorf("edge %d (%s->%s): %w", i, e.From, e.To, err)
		}
		if err := g.SetEdge(network.Edge{From: e.From, To: e.To, Score: *e.Score, Meta: e.Meta}); err != nil {
			return nil, fmt.Errorf("edge %d (%s->%s): %w", i, e.From, e.To, err)
		}
	}
	return g, nil
}

// WriteJSON encodes the network as indented JSON. The output can be read
// back with [ReadJSON].
func WriteJSON(g *network.Graph, w io.Writer) error {
	out := jsonGraph{
		Meta:  g.Meta(),
		Nodes: make([]jsonNode, 0, g.NodeCount()),
		Edges: make([]jsonEdge, 0, g.EdgeCount()),
	}
	for _, n := range g.Nodes() {
		out.Nodes = append(out.Nodes, jsonNode{ID: n.ID, Label: n.Label, Description: n.Description, Meta: n.Meta})
	}
	for _, e := range g.Edges() {
		score := e.Score
		out.Edges = append(out.Edges, jsonEdge{From: e.From, To: e.To, Score: &score, Meta: e.Meta})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes the network to a JSON file at path.
func ExportJSON(g *network.Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteJSON(g, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
