package graph

import (
	"fmt"
)

// Node kinds as they appear in serialized documents.
const (
	KindModule    = "module"
	KindHypernode = "hypernode"
)

// Document is the canonical serialization format of a Graph.
// Used for JSON exports, API responses, the netlist store and caching.
//
// Adjacency and Mass are derived from Nodes and Edges; they are included so
// that consumers do not need to rebuild them.
type Document struct {
	Nodes     []NodeDoc       `json:"nodes" bson:"nodes"`
	Edges     []EdgeDoc       `json:"edges" bson:"edges"`
	Adjacency [][]NeighborDoc `json:"adjacency" bson:"adjacency"`
	Mass      []float64       `json:"mass" bson:"mass"`
}

// NodeDoc is the serialized form of a Node.
type NodeDoc struct {
	ID   int     `json:"id" bson:"id"`
	Name string  `json:"name" bson:"name"`
	Kind string  `json:"kind" bson:"kind"`
	Mass float64 `json:"mass" bson:"mass"`
}

// EdgeDoc is the serialized form of an Edge.
type EdgeDoc struct {
	From   int     `json:"from" bson:"from"`
	To     int     `json:"to" bson:"to"`
	Weight float64 `json:"weight" bson:"weight"`
}

// NeighborDoc is the serialized form of a Neighbor.
type NeighborDoc struct {
	ID     int     `json:"id" bson:"id"`
	Weight float64 `json:"weight" bson:"weight"`
}

// FromGraph converts a Graph to its serialization format.
// Nodes are listed by id and edges in first-insertion order, so the output
// is deterministic.
func FromGraph(g *Graph) Document {
	doc := Document{
		Nodes:     make([]NodeDoc, g.NodeCount()),
		Edges:     make([]EdgeDoc, g.EdgeCount()),
		Adjacency: make([][]NeighborDoc, g.NodeCount()),
		Mass:      g.Masses(),
	}

	for i, n := range g.nodes {
		doc.Nodes[i] = NodeDoc{ID: n.ID, Name: n.Name, Kind: n.Kind.String(), Mass: n.Mass}
	}
	for i, e := range g.edges {
		doc.Edges[i] = EdgeDoc{From: e.From, To: e.To, Weight: e.Weight}
	}
	for i, nbrs := range g.adj {
		row := make([]NeighborDoc, len(nbrs))
		for j, nb := range nbrs {
			row[j] = NeighborDoc{ID: nb.ID, Weight: nb.Weight}
		}
		doc.Adjacency[i] = row
	}

	return doc
}

// ToGraph rebuilds a Graph from a Document.
//
// Nodes must be listed with ids 0, 1, 2, ... in order. Adjacency and Mass in
// the document are ignored; they are recomputed from Nodes and Edges.
func ToGraph(doc Document) (*Graph, error) {
	g := New()

	for i, nd := range doc.Nodes {
		if nd.ID != i {
			return nil, fmt.Errorf("node %q: id %d is not dense (expected %d)", nd.Name, nd.ID, i)
		}
		kind, err := parseKind(nd.Kind)
		if err != nil {
			return nil, fmt.Errorf("node %q: %w", nd.Name, err)
		}
		if _, err := g.AddNode(nd.Name, kind, nd.Mass); err != nil {
			return nil, fmt.Errorf("add node %s: %w", nd.Name, err)
		}
	}

	for _, ed := range doc.Edges {
		if err := g.AddEdge(ed.From, ed.To, ed.Weight); err != nil {
			return nil, fmt.Errorf("add edge %d-%d: %w", ed.From, ed.To, err)
		}
	}

	return g, nil
}

func parseKind(s string) (NodeKind, error) {
	switch s {
	case KindModule, "":
		return NodeKindModule, nil
	case KindHypernode:
		return NodeKindHypernode, nil
	default:
		return 0, fmt.Errorf("unknown node kind %q", s)
	}
}
