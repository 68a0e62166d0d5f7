// Package network provides the weighted graph model of a sequence
// similarity network (SSN).
//
// # Overview
//
// An SSN connects protein or gene sequences whose pairwise alignment score
// passes a cutoff. Sequences are nodes; each edge carries the alignment
// score of the pair. Raising the cutoff removes weak edges and splits the
// network into tighter clusters, which is what a threshold sweep visualizes.
//
// # Basic Usage
//
// Loaders build a [Graph] with [New], [Graph.AddNode] and [Graph.SetEdge]:
//
//	g := network.New(nil)
//	g.AddNode(network.Node{ID: "1", Description: "X1 putative kinase"})
//	g.AddNode(network.Node{ID: "2", Description: "X2 hypothetical"})
//	g.SetEdge(network.Edge{From: "1", To: "2", Score: 35})
//
// The loaded network is treated as read-only. A sweep step works on a
// [Graph.Clone], calls [Graph.Prune] to drop edges below the threshold and
// [Graph.Undirected] to collapse reciprocal edges before rendering.
//
// # Hit_Id
//
// Annotation tables are joined onto nodes by Hit_Id, the first
// whitespace-delimited token of the node description. [DeriveHitID]
// computes it and [Graph.HitIndex] builds the reverse lookup.
//
// # Determinism
//
// Nodes and edges keep insertion order and [Graph.Scores] is sorted, so the
// same input file always produces the same DOT text, layout and images.
package network
