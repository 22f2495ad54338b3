package netlist

import (
	"fmt"
	"math"
	"slices"
	"strconv"

	"github.com/matzehuels/frame/pkg/errors"
	"github.com/matzehuels/frame/pkg/geometry"
	"github.com/matzehuels/frame/pkg/graph"
)

// HypernodePrefix is the name prefix of the synthetic star centers created
// for edges with three or more pins.
const HypernodePrefix = "_hyper_"

// DefaultWeight is the weight of an edge that does not give one.
const DefaultWeight = 1.0

// NamedEdge is a raw edge as read from input: module names plus a weight.
type NamedEdge struct {
	Modules []string
	Weight  float64
}

// HyperEdge is a resolved edge connecting two or more modules.
type HyperEdge struct {
	Modules []*Module
	Weight  float64
}

// Pins returns the number of module references of the edge.
func (e HyperEdge) Pins() int { return len(e.Modules) }

// Names returns the names of the connected modules in order.
func (e HyperEdge) Names() []string {
	names := make([]string, len(e.Modules))
	for i, m := range e.Modules {
		names[i] = m.Name()
	}
	return names
}

// Netlist is a set of modules connected by hyperedges, together with the
// graph derived from them.
//
// Module i of the input has node id i. Every edge with three or more pins
// adds one hypernode after the modules, in edge order, with one spoke of the
// edge weight per distinct member. Two-pin edges between the same pair of
// modules accumulate their weights.
type Netlist struct {
	modules    []*Module
	byName     map[string]*Module
	edges      []HyperEdge
	rectangles []*geometry.Rectangle

	g    *graph.Graph
	adj  [][]graph.Neighbor
	mass []float64
}

// New builds a netlist from ordered modules and raw edges.
//
// Construction fails on an empty or duplicate module name, an edge with
// fewer than two pins, an edge naming an unknown module, or a weight that is
// not a positive finite number. No netlist is returned on failure.
func New(modules []*Module, edges []NamedEdge) (*Netlist, error) {
	n := &Netlist{
		modules: slices.Clone(modules),
		byName:  make(map[string]*Module, len(modules)),
	}

	for i, m := range n.modules {
		if m == nil {
			return nil, errors.New(errors.ErrCodeInvalidModule, "module %d is nil", i)
		}
		if err := errors.ValidateModuleName(m.Name()); err != nil {
			return nil, err
		}
		if _, dup := n.byName[m.Name()]; dup {
			return nil, errors.New(errors.ErrCodeDuplicateModule, "duplicate module %q", m.Name())
		}
		n.byName[m.Name()] = m
	}

	n.edges = make([]HyperEdge, 0, len(edges))
	for i, e := range edges {
		he, err := n.resolve(e)
		if err != nil {
			return nil, fmt.Errorf("edge %d: %w", i, err)
		}
		n.edges = append(n.edges, he)
	}

	if err := n.derive(); err != nil {
		return nil, err
	}
	return n, nil
}

func (n *Netlist) resolve(e NamedEdge) (HyperEdge, error) {
	if len(e.Modules) < 2 {
		return HyperEdge{}, errors.New(errors.ErrCodeInvalidEdge, "edge %v needs at least two modules", e.Modules)
	}
	if !(e.Weight > 0) || math.IsInf(e.Weight, 1) {
		return HyperEdge{}, errors.New(errors.ErrCodeInvalidWeight, "incorrect edge weight %v", e.Weight)
	}

	mods := make([]*Module, len(e.Modules))
	for i, name := range e.Modules {
		m, ok := n.byName[name]
		if !ok {
			return HyperEdge{}, errors.New(errors.ErrCodeUnknownModule, "unknown module %q in edge", name)
		}
		mods[i] = m
	}
	return HyperEdge{Modules: mods, Weight: e.Weight}, nil
}

// derive recomputes the rectangle union, the graph, the adjacency list and
// the mass vector from the modules and edges.
func (n *Netlist) derive() error {
	n.rectangles = n.rectangles[:0]
	for _, m := range n.modules {
		n.rectangles = append(n.rectangles, m.rectangles...)
	}

	g, err := n.buildGraph()
	if err != nil {
		return err
	}
	n.g = g
	n.adj = g.Adjacency()
	n.mass = g.Masses()
	return nil
}

func (n *Netlist) buildGraph() (*graph.Graph, error) {
	g := graph.New()
	ids := make(map[*Module]int, len(n.modules))
	for _, m := range n.modules {
		id, err := g.AddNode(m.Name(), graph.NodeKindModule, m.Area())
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidModule, err, "module %q", m.Name())
		}
		ids[m] = id
	}

	next := 0
	for _, e := range n.edges {
		if e.Pins() == 2 {
			if err := g.AddEdge(ids[e.Modules[0]], ids[e.Modules[1]], e.Weight); err != nil {
				return nil, errors.Wrap(errors.ErrCodeInternal, err, "add edge %v", e.Names())
			}
			continue
		}

		var name string
		name, next = n.hypernodeName(next)
		center, err := g.AddNode(name, graph.NodeKindHypernode, 0)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "add hypernode %s", name)
		}
		// One spoke per distinct member: a repeated pin must not double the
		// spoke weight.
		seen := make(map[*Module]bool, len(e.Modules))
		for _, m := range e.Modules {
			if seen[m] {
				continue
			}
			seen[m] = true
			if err := g.AddEdge(center, ids[m], e.Weight); err != nil {
				return nil, errors.Wrap(errors.ErrCodeInternal, err, "add edge %s-%s", name, m.Name())
			}
		}
	}
	return g, nil
}

// hypernodeName returns the first name HypernodePrefix+k with k >= next that
// is not a module name, and the counter value to use for the next call.
func (n *Netlist) hypernodeName(next int) (string, int) {
	for {
		name := HypernodePrefix + strconv.Itoa(next)
		next++
		if _, taken := n.byName[name]; !taken {
			return name, next
		}
	}
}

// Modules returns the modules in node-id order.
func (n *Netlist) Modules() []*Module { return slices.Clone(n.modules) }

// Module returns the module with the given name.
func (n *Netlist) Module(name string) (*Module, bool) {
	m, ok := n.byName[name]
	return m, ok
}

// NumModules returns the number of modules.
func (n *Netlist) NumModules() int { return len(n.modules) }

// Edges returns the resolved edges in input order.
func (n *Netlist) Edges() []HyperEdge { return slices.Clone(n.edges) }

// NamedEdges returns the edges with module references replaced by names.
func (n *Netlist) NamedEdges() []NamedEdge {
	out := make([]NamedEdge, len(n.edges))
	for i, e := range n.edges {
		out[i] = NamedEdge{Modules: e.Names(), Weight: e.Weight}
	}
	return out
}

// Rectangles returns the rectangles of all modules, module by module.
func (n *Netlist) Rectangles() []*geometry.Rectangle { return slices.Clone(n.rectangles) }

// NumRectangles returns the number of rectangles of all modules.
func (n *Netlist) NumRectangles() int { return len(n.rectangles) }

// Graph returns the derived graph. It must not be modified.
func (n *Netlist) Graph() *graph.Graph { return n.g }

// Adjacency returns, for each node id, the (neighbor id, weight) pairs of
// the derived graph.
func (n *Netlist) Adjacency() [][]graph.Neighbor {
	out := make([][]graph.Neighbor, len(n.adj))
	for i, nbrs := range n.adj {
		out[i] = slices.Clone(nbrs)
	}
	return out
}

// ModuleSizes returns the mass vector: module area for module nodes and 0
// for hypernodes, indexed by node id.
func (n *Netlist) ModuleSizes() []float64 { return slices.Clone(n.mass) }

// CreateSquares gives every module without rectangles a default square and
// returns those modules. Every such module must have a positive area;
// otherwise nothing is changed and an error is returned.
func (n *Netlist) CreateSquares() ([]*Module, error) {
	var pending []*Module
	for _, m := range n.modules {
		if m.NumRectangles() > 0 {
			continue
		}
		if !(m.Area() > 0) {
			return nil, errors.New(errors.ErrCodeInvalidModule, "module %q has no rectangles and no area", m.Name())
		}
		pending = append(pending, m)
	}

	for _, m := range pending {
		if _, err := m.CreateSquare(); err != nil {
			return nil, err
		}
	}
	if len(pending) > 0 {
		if err := n.derive(); err != nil {
			return nil, err
		}
	}
	return pending, nil
}
