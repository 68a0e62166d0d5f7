// Package io reads similarity networks from disk.
//
// # Formats
//
// Two input formats are supported and selected by file extension in
// [Import]:
//
//   - XGMML (.xgmml, .xml): the format written by EFI-EST and Cytoscape
//   - JSON (.json): a small node/edge document, also produced by [WriteJSON]
//
// # XGMML
//
// Nodes carry a Description attribute (a string or a list whose first
// element is used) and edges an alignment_score attribute:
//
//	<graph label="ssn" xmlns="http://www.cs.rpi.edu/XGMML">
//	  <node id="1" label="X1">
//	    <att name="Description" type="list">
//	      <att type="string" name="Description" value="X1 putative kinase"/>
//	    </att>
//	  </node>
//	  <edge source="1" target="2">
//	    <att name="alignment_score" type="real" value="35"/>
//	  </edge>
//	</graph>
//
// Every other attribute is kept in the node or edge [network.Metadata].
//
// # JSON
//
//	{
//	  "nodes": [{"id": "1", "label": "X1", "description": "X1 putative kinase"}],
//	  "edges": [{"from": "1", "to": "2", "alignment_score": 35}]
//	}
//
// # Errors
//
// Any file that cannot be parsed into a network, including an edge without
// a numeric alignment_score or an edge referencing an unknown node, yields
// an INPUT_FORMAT error from pkg/errors.
package io
