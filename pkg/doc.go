// Package pkg provides the libraries behind ssnmovie, a renderer for
// sequence similarity networks (SSNs) swept across alignment score
// thresholds.
//
// # Overview
//
// An SSN connects protein sequences whose pairwise alignment score passes
// a cutoff. Raising the cutoff splits the network into smaller clusters.
// ssnmovie draws the network once per distinct score, so the images can be
// stepped through like the frames of a movie, with nodes colored by gene
// annotation.
//
// # Architecture
//
// The data flow of a run:
//
//	XGMML network + annotation tables
//	         ↓
//	    [io] and [annotation] packages (read inputs)
//	         ↓
//	    [coloring] package (node colors and gene legend, via [palette])
//	         ↓
//	    [sweep] package (one pruned frame per threshold)
//	         ↓
//	    [render/nodelink] package (Graphviz layout + PNG)
//	         ↓
//	    frames, manifest.json, summary.html
//
// [pipeline] wires these stages together and is what the command line runs.
//
// # Quick Start
//
//	runner := pipeline.NewRunner(nil, nil, logger)
//	res, err := runner.Execute(ctx, pipeline.Options{
//	    Network: "ssn.xgmml",
//	    Kofam:   "kofam.tsv",
//	    Output:  "frames",
//	})
//
// # Main Packages
//
// [network] - The similarity graph: nodes with attributes, scored edges,
// thresholds and pruning.
//
// [io] - XGMML and JSON network readers and the JSON writer.
//
// [annotation] - KOFAM, eggNOG-mapper and custom gene tables.
//
// [palette] - Named qualitative and continuous color schemes.
//
// [coloring] - Maps genes to colors and nodes to genes.
//
// [sweep] - Threshold labels and the parallel frame engine.
//
// [render] - The node-link frame renderer and the sweep summary chart.
//
// [cache] - Layout caches (memory, file, Redis, MongoDB).
//
// [observability] - Progress and metrics hooks with no-op defaults.
//
// [errors] - Coded errors shared by every package.
package pkg
