package io

import (
	"encoding/xml"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/matzehuels/ssnmovie/pkg/network"
)

type xgmmlGraph struct {
	XMLName xml.Name    `xml:"graph"`
	Label   string      `xml:"label,attr"`
	Atts    []xgmmlAtt  `xml:"att"`
	Nodes   []xgmmlNode `xml:"node"`
	Edges   []xgmmlEdge `xml:"edge"`
}

type xgmmlNode struct {
	ID    string     `xml:"id,attr"`
	Label string     `xml:"label,attr"`
	Atts  []xgmmlAtt `xml:"att"`
}

type xgmmlEdge struct {
	ID     string     `xml:"id,attr"`
	Source string     `xml:"source,attr"`
	Target string     `xml:"target,attr"`
	Atts   []xgmmlAtt `xml:"att"`
}

type xgmmlAtt struct {
	Name  string     `xml:"name,attr"`
	Type  string     `xml:"type,attr"`
	Value string     `xml:"value,attr"`
	Atts  []xgmmlAtt `xml:"att"`
}

// value converts the attribute to a Go value. Lists become []any of their
// elements, numeric types are parsed and everything else stays a string.
func (a xgmmlAtt) value() any {
	if a.Type == "list" || (a.Value == "" && len(a.Atts) > 0) {
		items := make([]any, len(a.Atts))
		for i, c := range a.Atts {
			items[i] = c.value()
		}
		return items
	}
	switch a.Type {
	case "real":
		if f, err := strconv.ParseFloat(a.Value, 64); err == nil {
			return f
		}
	case "integer":
		if n, err := strconv.ParseInt(a.Value, 10, 64); err == nil {
			return n
		}
	case "boolean":
		if b, err := strconv.ParseBool(a.Value); err == nil {
			return b
		}
	}
	return a.Value
}

// first returns the scalar text of the attribute, or the text of its first
// list element.
func (a xgmmlAtt) first() string {
	if len(a.Atts) > 0 {
		return a.Atts[0].first()
	}
	return a.Value
}

// ReadXGMML decodes an XGMML document from r into a directed network.
//
// Nodes keep their XGMML id as [network.Node.ID]; the Hit_Id is derived from
// the Description attribute. Edges must carry a finite numeric alignment_score.
// Repeated edges between the same ordered pair collapse to the last one.
// ReadXGMML does not close r.
func ReadXGMML(r io.Reader) (*network.Graph, error) {
	var doc xgmmlGraph
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode xgmml: %w", err)
	}

	meta := network.Metadata{}
	if doc.Label != "" {
		meta["label"] = doc.Label
	}
	for _, a := range doc.Atts {
		meta[a.Name] = a.value()
	}
	g := network.New(meta)

	for _, n := range doc.Nodes {
		nd := network.Node{ID: n.ID, Label: n.Label, Meta: network.Metadata{}}
		for _, a := range n.Atts {
			if a.Name == DescriptionAttribute {
				nd.Description = strings.TrimSpace(a.first())
				continue
			}
			nd.Meta[a.Name] = a.value()
		}
		nd.HitID = network.DeriveHitID(nd)
		if err := g.AddNode(nd); err != nil {
			return nil, fmt.Errorf("node %q: %w", n.ID, err)
		}
	}

	for i, e := range doc.Edges {
		ed := network.Edge{From: e.Source, To: e.Target, Meta: network.Metadata{}}
		if e.ID != "" {
			ed.Meta["id"] = e.ID
		}
		var scored bool
		for _, a := range e.Atts {
			if a.Name != ScoreAttribute {
				ed.Meta[a.Name] = a.value()
				continue
			}
			s, err := strconv.ParseFloat(strings.TrimSpace(a.first()), 64)
			if err != nil {
				return nil, fmt.Errorf("edge %d (%s->%s): %s %q is not numeric", i, e.Source, e.Target, ScoreAttribute, a.first())
			}
			if err := checkScore(s); err != nil {
				return nil, fmt.Errorf("edge %d (%s->%s): %w", i, e.Source, e.Target, err)
			}
			ed.Score = s
			scored = true
		}
		if !scored {
			return nil, fmt.Errorf("edge %d (%s->%s): missing %s", i, e.Source, e.Target, ScoreAttribute)
		}
		if err := g.SetEdge(ed); err != nil {
			return nil, fmt.Errorf("edge %d (%s->%s): %w", i, e.Source, e.Target, err)
		}
	}
	return g, nil
}

// checkScore rejects alignment scores that cannot order thresholds.
func checkScore(s float64) error {
	if math.IsNaN(s) || math.IsInf(s, 0) {
		return fmt.Errorf("%s %v is not finite", ScoreAttribute, s)
	}
	return nil
}
