// Package netlist models modules connected by weighted hyperedges and derives
// the weighted simple graph used by graph-based layout code.
//
// # Graph Construction
//
// [New] resolves raw edges against the module set and star-expands them:
//
//   - Module i gets node id i.
//   - An edge with two pins becomes one weighted graph edge. Repeated edges
//     between the same pair accumulate their weights.
//   - An edge with three or more pins gets a zero-mass hypernode named
//     "_hyper_<k>", connected once to every distinct member with the edge
//     weight. The counter k only increases and skips module names.
//
// The mass of a module node is the module area; hypernodes have mass 0.
// Adjacency lists are symmetric and ordered by first insertion.
//
// # YAML Format
//
//	Modules:
//	  A:
//	    area: 4
//	    center: [1, 2]
//	  B:
//	    fixed: true
//	    rectangles:
//	      - [0, 0, 2, 3]          # x, y, w, h
//	      - [2, 0, 2, 1, Core]    # optional region
//	      - {center: [3, 3], shape: [1, 1], fixed: false, name: io}
//	Nets:
//	  - [A, B]                    # weight 1
//	  - [A, B, 2.5]
//
// A rectangle takes the module's fixed flag and name unless it is written as
// an attribute mapping that sets its own. Module order in the document
// defines node ids. A trailing unquoted number
// in a net is its weight; quote numeric module names.
package netlist
