// Package nodelink renders sweep frames as node-link diagrams.
//
// # Overview
//
// A frame is one pruned, undirected similarity network. Graphviz computes
// node positions, and the frame is painted on a raster canvas: kept edges
// in their display color, every node as a disc filled with its gene color
// and outlined in black, a gene legend on the right and the title
// "SSN organisation <threshold>" on top.
//
// # Usage
//
//	r := nodelink.New(nodelink.Options{DPI: 150, Cache: c})
//	engine := sweep.New(r, sweep.Options{})
//
// # Layout
//
// [ToDOT] produces undirected DOT source with positional node names, and a
// [LayoutEngine] turns it into a [Layout]. [GraphvizEngine] runs the
// embedded Graphviz (dot, neato, fdp, sfdp, twopi or circo) and reads the
// "plain" output format. With a cache configured the engine is wrapped in a
// [CachedEngine], so a topology that recurs across thresholds or
// annotation sources is laid out once.
//
// # Resources
//
// Each Render call owns its Graphviz instance, parsed graph, font faces and
// canvas and releases them before returning. Output goes through
// [render.WriteFileAtomic].
package nodelink
