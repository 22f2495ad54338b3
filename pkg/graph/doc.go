// Package graph provides the weighted undirected simple graph that a netlist
// is flattened into, together with its serialization format.
//
// # Overview
//
// Graph-based layout algorithms (force-directed placement, spectral methods)
// need dense integer node ids, an adjacency list and a per-node mass. [Graph]
// stores exactly that: a node table (id → name, kind, mass) and one ordered
// adjacency array per node. Ids are assigned densely by [Graph.AddNode] in
// call order and never change.
//
// # Node Kinds
//
//   - [NodeKindModule]: a real module of the netlist; its mass is the module area
//   - [NodeKindHypernode]: a synthetic, zero-mass star center created for a
//     hyperedge with three or more pins
//
// # Parallel Edges
//
// The graph is simple: at most one edge joins two nodes. Adding an edge
// between nodes that are already connected accumulates the weight on the
// existing edge, on both endpoints. A self-loop is stored once in the node's
// own adjacency.
//
// # Adjacency Order
//
// A node's neighbors are listed in the order their edge was first added.
// Because distinct edges are also kept in first-insertion order, rebuilding a
// graph from [Graph.Edges] reproduces identical adjacency lists, which is
// what makes [Document] round trips exact.
//
// # Serialization
//
// [Document] is the JSON/BSON wire format:
//
//	{
//	  "nodes": [{"id": 0, "name": "A", "kind": "module", "mass": 4}],
//	  "edges": [{"from": 0, "to": 1, "weight": 1}],
//	  "adjacency": [[{"id": 1, "weight": 1}]],
//	  "mass": [4]
//	}
//
// Use [FromGraph]/[ToGraph] to convert, and [Marshal], [Write], [Read],
// [WriteFile] and [ReadFile] for I/O. [Graph.ToGonum] exposes the graph to
// gonum-based consumers.
//
// # Concurrency
//
// Graph instances are not safe for concurrent mutation. Read-only use from
// several goroutines is safe once construction is complete.
package graph
