package graph

import (
	"errors"
	"fmt"
	"math"
	"slices"
)

var (
	// ErrEmptyNodeName is returned by [Graph.AddNode] when the name is empty.
	ErrEmptyNodeName = errors.New("node name must not be empty")

	// ErrDuplicateNode is returned by [Graph.AddNode] when a node with the
	// same name already exists. Node names are unique across kinds.
	ErrDuplicateNode = errors.New("duplicate node name")

	// ErrUnknownNode is returned by [Graph.AddEdge] when an endpoint id is
	// outside [0, NodeCount).
	ErrUnknownNode = errors.New("unknown node")

	// ErrInvalidWeight is returned by [Graph.AddEdge] when the weight is not
	// a positive finite number.
	ErrInvalidWeight = errors.New("edge weight must be positive")

	// ErrInvalidMass is returned by [Graph.AddNode] when the mass is negative
	// or NaN.
	ErrInvalidMass = errors.New("node mass must be non-negative")

	// ErrAsymmetricAdjacency is returned by [Graph.Validate] when an edge is
	// recorded on one endpoint but not on the other, or with a different
	// weight. This indicates graph corruption.
	ErrAsymmetricAdjacency = errors.New("adjacency is not symmetric")
)

// NodeKind distinguishes module nodes from synthetic star centers.
type NodeKind int

const (
	// NodeKindModule represents a module of the netlist.
	NodeKindModule NodeKind = iota
	// NodeKindHypernode represents the zero-mass center of a star-expanded
	// hyperedge.
	NodeKindHypernode
)

// String returns "module" or "hypernode".
func (k NodeKind) String() string {
	switch k {
	case NodeKindModule:
		return KindModule
	case NodeKindHypernode:
		return KindHypernode
	default:
		return fmt.Sprintf("NodeKind(%d)", int(k))
	}
}

// Node is a vertex of the graph.
type Node struct {
	ID   int      // Dense id in [0, NodeCount)
	Name string   // Module name, or the generated hypernode name
	Kind NodeKind // Module or hypernode
	Mass float64  // Module area; 0 for hypernodes
}

// IsHypernode reports whether the node is a synthetic star center.
func (n Node) IsHypernode() bool { return n.Kind == NodeKindHypernode }

// Neighbor is one entry of an adjacency list: the node reached through a
// single edge and the weight of that edge.
type Neighbor struct {
	ID     int
	Weight float64
}

// Edge is a distinct undirected edge. From is the endpoint named first when
// the edge was created.
type Edge struct {
	From   int
	To     int
	Weight float64
}

type pair struct{ a, b int }

func orderedPair(a, b int) pair {
	if a > b {
		a, b = b, a
	}
	return pair{a, b}
}

// Graph is a weighted undirected simple graph with dense integer node ids.
//
// The zero value is not usable - use New to create a valid Graph.
type Graph struct {
	nodes  []Node
	byName map[string]int
	adj    [][]Neighbor
	slot   []map[int]int // node -> neighbor id -> index into adj[node]
	edges  []Edge
	edgeAt map[pair]int // ordered endpoints -> index into edges
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		byName: make(map[string]int),
		edgeAt: make(map[pair]int),
	}
}

// AddNode appends a node and returns its id, which is the number of nodes
// that existed before the call.
func (g *Graph) AddNode(name string, kind NodeKind, mass float64) (int, error) {
	if name == "" {
		return -1, ErrEmptyNodeName
	}
	if _, exists := g.byName[name]; exists {
		return -1, fmt.Errorf("%w: %q", ErrDuplicateNode, name)
	}
	if mass < 0 || math.IsNaN(mass) {
		return -1, fmt.Errorf("%w: %q has mass %v", ErrInvalidMass, name, mass)
	}

	id := len(g.nodes)
	g.nodes = append(g.nodes, Node{ID: id, Name: name, Kind: kind, Mass: mass})
	g.byName[name] = id
	g.adj = append(g.adj, nil)
	g.slot = append(g.slot, make(map[int]int))
	return id, nil
}

// AddEdge connects nodes a and b with the given weight. If the nodes are
// already connected the weight is added to the existing edge.
func (g *Graph) AddEdge(a, b int, weight float64) error {
	if !g.valid(a) {
		return fmt.Errorf("%w: %d", ErrUnknownNode, a)
	}
	if !g.valid(b) {
		return fmt.Errorf("%w: %d", ErrUnknownNode, b)
	}
	if !(weight > 0) || math.IsInf(weight, 1) {
		return fmt.Errorf("%w: %v", ErrInvalidWeight, weight)
	}

	key := orderedPair(a, b)
	if i, ok := g.edgeAt[key]; ok {
		g.edges[i].Weight += weight
		g.adj[a][g.slot[a][b]].Weight += weight
		if a != b {
			g.adj[b][g.slot[b][a]].Weight += weight
		}
		return nil
	}

	g.edgeAt[key] = len(g.edges)
	g.edges = append(g.edges, Edge{From: a, To: b, Weight: weight})
	g.link(a, b, weight)
	if a != b {
		g.link(b, a, weight)
	}
	return nil
}

func (g *Graph) link(from, to int, weight float64) {
	g.slot[from][to] = len(g.adj[from])
	g.adj[from] = append(g.adj[from], Neighbor{ID: to, Weight: weight})
}

func (g *Graph) valid(id int) bool { return id >= 0 && id < len(g.nodes) }

// Node returns the node with the given id and true, or a zero Node and false
// if the id is out of range.
func (g *Graph) Node(id int) (Node, bool) {
	if !g.valid(id) {
		return Node{}, false
	}
	return g.nodes[id], true
}

// NodeByName returns the node with the given name and true, or a zero Node
// and false if there is none.
func (g *Graph) NodeByName(name string) (Node, bool) {
	id, ok := g.byName[name]
	if !ok {
		return Node{}, false
	}
	return g.nodes[id], true
}

// Nodes returns a copy of the node table, ordered by id.
func (g *Graph) Nodes() []Node { return slices.Clone(g.nodes) }

// Edges returns a copy of the distinct edges in first-insertion order.
func (g *Graph) Edges() []Edge { return slices.Clone(g.edges) }

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of distinct edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// HypernodeCount returns the number of hypernodes.
func (g *Graph) HypernodeCount() int {
	n := 0
	for _, node := range g.nodes {
		if node.IsHypernode() {
			n++
		}
	}
	return n
}

// Neighbors returns the adjacency list of a node. The returned slice is a
// read-only view; it is nil for unknown ids.
func (g *Graph) Neighbors(id int) []Neighbor {
	if !g.valid(id) {
		return nil
	}
	return g.adj[id]
}

// Degree returns the number of distinct neighbors of a node.
func (g *Graph) Degree(id int) int { return len(g.Neighbors(id)) }

// Weight returns the weight of the edge between a and b and whether it
// exists.
func (g *Graph) Weight(a, b int) (float64, bool) {
	i, ok := g.edgeAt[orderedPair(a, b)]
	if !ok {
		return 0, false
	}
	return g.edges[i].Weight, true
}

// Adjacency returns a deep copy of every adjacency list, indexed by node id.
func (g *Graph) Adjacency() [][]Neighbor {
	out := make([][]Neighbor, len(g.adj))
	for i, nbrs := range g.adj {
		out[i] = slices.Clone(nbrs)
		if out[i] == nil {
			out[i] = []Neighbor{}
		}
	}
	return out
}

// Masses returns the mass vector, indexed by node id.
func (g *Graph) Masses() []float64 {
	out := make([]float64, len(g.nodes))
	for i, n := range g.nodes {
		out[i] = n.Mass
	}
	return out
}

// Validate checks the structural invariants: ids are dense and match their
// position, every adjacency entry points at a valid node, and adjacency is
// symmetric with equal weights.
func (g *Graph) Validate() error {
	for i, n := range g.nodes {
		if n.ID != i {
			return fmt.Errorf("node %q has id %d at position %d", n.Name, n.ID, i)
		}
	}
	for a, nbrs := range g.adj {
		for _, nb := range nbrs {
			if !g.valid(nb.ID) {
				return fmt.Errorf("%w: %d in adjacency of %d", ErrUnknownNode, nb.ID, a)
			}
			back, ok := g.slot[nb.ID][a]
			if !ok || g.adj[nb.ID][back].Weight != nb.Weight {
				return fmt.Errorf("%w: %d -> %d", ErrAsymmetricAdjacency, a, nb.ID)
			}
		}
	}
	return nil
}
