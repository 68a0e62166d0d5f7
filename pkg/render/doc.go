// Package render holds helpers shared by the frame renderers.
//
// # Node-Link Frames
//
// The [nodelink] subpackage draws one pruned similarity network per
// threshold: Graphviz computes node positions and the frame is painted onto
// a raster canvas with a gene legend and a title.
//
//	r := nodelink.New(nodelink.Options{DPI: 300})
//	err := r.Render(ctx, frame, "out/KOFAM/ssn.35.png")
//
// # Sweep Summary
//
// The [summary] subpackage writes an HTML chart of retained edges and
// connected nodes per threshold for a finished sweep.
//
// # Atomic Output
//
// Every artifact goes through [WriteFileAtomic], so an interrupted sweep
// leaves either a complete file or none at all.
package render
