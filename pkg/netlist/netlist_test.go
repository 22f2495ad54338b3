package netlist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/frame/pkg/errors"
	"github.com/matzehuels/frame/pkg/geometry"
	"github.com/matzehuels/frame/pkg/graph"
)

const sample = `
Modules:
  A:
    area: 4
    center: [1, 2]
  B:
    fixed: true
    rectangles:
      - [0, 0, 2, 3]
      - [2, 0, 2, 1, Core]
  C:
    area: 9
  D:
    rectangles:
      - [5, 5, 1, 1]
Nets:
  - [A, B]
  - [A, B, C, 2.5]
  - [B, A, 0.5]
  - [B, C, D]
`

func mustParse(t *testing.T, src string) *Netlist {
	t.Helper()
	n, err := Parse([]byte(src))
	require.NoError(t, err)
	return n
}

func mustModule(t *testing.T, name string, opts ...ModuleOption) *Module {
	t.Helper()
	m, err := NewModule(name, opts...)
	require.NoError(t, err)
	return m
}

func TestNetlistAccessors(t *testing.T) {
	n := mustParse(t, sample)

	assert.Equal(t, 4, n.NumModules())
	assert.Equal(t, 3, n.NumRectangles())
	assert.Len(t, n.Rectangles(), 3)
	require.Len(t, n.Edges(), 4)

	e := n.Edges()[1]
	assert.Equal(t, 3, e.Pins())
	assert.Equal(t, []string{"A", "B", "C"}, e.Names())
	assert.Equal(t, 2.5, e.Weight)

	b, ok := n.Module("B")
	require.True(t, ok)
	assert.True(t, b.Fixed())
	assert.Equal(t, 8.0, b.Area())
	for _, r := range b.Rectangles() {
		assert.True(t, r.Fixed())
		assert.Equal(t, "B", r.Name())
	}
	assert.Equal(t, "Core", b.Rectangles()[1].Region())

	_, ok = n.Module("missing")
	assert.False(t, ok)
}

func TestNetlistGraph(t *testing.T) {
	n := mustParse(t, sample)

	// 4 modules and 2 hyperedges with three or more pins.
	g := n.Graph()
	assert.Equal(t, 6, g.NodeCount())
	assert.Equal(t, 2, g.HypernodeCount())
	require.NoError(t, g.Validate())

	for i, name := range []string{"A", "B", "C", "D", "_hyper_0", "_hyper_1"} {
		node, ok := g.NodeByName(name)
		require.True(t, ok, name)
		assert.Equal(t, i, node.ID, name)
		assert.Equal(t, i >= 4, node.IsHypernode(), name)
	}

	assert.Equal(t, []float64{4, 8, 9, 1, 0, 0}, n.ModuleSizes())

	want := [][]graph.Neighbor{
		{{ID: 1, Weight: 1.5}, {ID: 4, Weight: 2.5}},
		{{ID: 0, Weight: 1.5}, {ID: 4, Weight: 2.5}, {ID: 5, Weight: 1}},
		{{ID: 4, Weight: 2.5}, {ID: 5, Weight: 1}},
		{{ID: 5, Weight: 1}},
		{{ID: 0, Weight: 2.5}, {ID: 1, Weight: 2.5}, {ID: 2, Weight: 2.5}},
		{{ID: 1, Weight: 1}, {ID: 2, Weight: 1}, {ID: 3, Weight: 1}},
	}
	assert.Equal(t, want, n.Adjacency())
}

func TestNetlistAdjacencySymmetric(t *testing.T) {
	n := mustParse(t, sample)
	adj := n.Adjacency()
	for a, nbrs := range adj {
		for _, nb := range nbrs {
			assert.Containsf(t, adj[nb.ID], graph.Neighbor{ID: a, Weight: nb.Weight},
				"%d -> %d has no reverse entry", a, nb.ID)
		}
	}
}

func TestNetlistMass(t *testing.T) {
	n := mustParse(t, sample)
	mass := n.ModuleSizes()
	require.Len(t, mass, n.Graph().NodeCount())

	for _, node := range n.Graph().Nodes() {
		if node.IsHypernode() {
			assert.Zero(t, mass[node.ID])
			continue
		}
		m, ok := n.Module(node.Name)
		require.True(t, ok)
		assert.Equal(t, m.Area(), mass[node.ID])
	}
}

func TestHypernodeNamesSkipModules(t *testing.T) {
	mods := []*Module{
		mustModule(t, "_hyper_0", WithArea(1)),
		mustModule(t, "_hyper_2", WithArea(1)),
		mustModule(t, "x", WithArea(1)),
	}
	edges := []NamedEdge{
		{Modules: []string{"_hyper_0", "_hyper_2", "x"}, Weight: 1},
		{Modules: []string{"_hyper_0", "_hyper_2", "x"}, Weight: 1},
		{Modules: []string{"x", "_hyper_0", "_hyper_2"}, Weight: 1},
	}

	n, err := New(mods, edges)
	require.NoError(t, err)

	var hyper []string
	for _, node := range n.Graph().Nodes() {
		if node.IsHypernode() {
			hyper = append(hyper, node.Name)
		}
	}
	assert.Equal(t, []string{"_hyper_1", "_hyper_3", "_hyper_4"}, hyper)
	assert.Equal(t, 6, n.Graph().NodeCount())
}

func TestNodeIDDensity(t *testing.T) {
	mods := make([]*Module, 0, 5)
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		mods = append(mods, mustModule(t, name, WithArea(2)))
	}
	edges := []NamedEdge{
		{Modules: []string{"a", "b"}, Weight: 1},
		{Modules: []string{"a", "b", "c"}, Weight: 1},
		{Modules: []string{"c", "d", "e", "a"}, Weight: 3},
		{Modules: []string{"e", "e"}, Weight: 1},
		{Modules: []string{"b", "c", "d"}, Weight: 1},
	}

	n, err := New(mods, edges)
	require.NoError(t, err)

	g := n.Graph()
	assert.Equal(t, 5+3, g.NodeCount())
	for i, node := range g.Nodes() {
		assert.Equal(t, i, node.ID)
	}
	assert.Len(t, n.Adjacency(), g.NodeCount())
	assert.Len(t, n.ModuleSizes(), g.NodeCount())

	// The self-loop is kept once.
	assert.Equal(t, []graph.Neighbor{{ID: 4, Weight: 1}}, n.Adjacency()[4][1:2])
}

func TestHyperedgeRepeatedPin(t *testing.T) {
	mods := []*Module{mustModule(t, "A", WithArea(1)), mustModule(t, "B", WithArea(1))}
	n, err := New(mods, []NamedEdge{{Modules: []string{"A", "A", "B"}, Weight: 2}})
	require.NoError(t, err)

	adj := n.Adjacency()
	require.Len(t, adj, 3)
	assert.Equal(t, []graph.Neighbor{{ID: 0, Weight: 2}, {ID: 1, Weight: 2}}, adj[2])
	assert.Equal(t, []graph.Neighbor{{ID: 2, Weight: 2}}, adj[0])
	assert.Equal(t, 2, n.Graph().EdgeCount())

	// The edge itself keeps every pin.
	assert.Equal(t, 3, n.Edges()[0].Pins())
}

func TestNewErrors(t *testing.T) {
	a := mustModule(t, "A", WithArea(1))
	b := mustModule(t, "B", WithArea(1))

	tests := []struct {
		name    string
		modules []*Module
		edges   []NamedEdge
		code    errors.Code
	}{
		{"unknown module", []*Module{a, b}, []NamedEdge{{Modules: []string{"A", "Z"}, Weight: 1}}, errors.ErrCodeUnknownModule},
		{"zero weight", []*Module{a, b}, []NamedEdge{{Modules: []string{"A", "B"}, Weight: 0}}, errors.ErrCodeInvalidWeight},
		{"negative weight", []*Module{a, b}, []NamedEdge{{Modules: []string{"A", "B"}, Weight: -1}}, errors.ErrCodeInvalidWeight},
		{"single pin", []*Module{a, b}, []NamedEdge{{Modules: []string{"A"}, Weight: 1}}, errors.ErrCodeInvalidEdge},
		{"duplicate module", []*Module{a, b, a}, nil, errors.ErrCodeDuplicateModule},
		{"nil module", []*Module{a, nil}, nil, errors.ErrCodeInvalidModule},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := New(tt.modules, tt.edges)
			require.Error(t, err)
			assert.Nil(t, n)
			assert.True(t, errors.Is(err, tt.code), "got %v, want code %s", err, tt.code)
		})
	}
}

func TestCreateSquares(t *testing.T) {
	n := mustParse(t, sample)

	created, err := n.CreateSquares()
	require.NoError(t, err)
	require.Len(t, created, 2)
	assert.Equal(t, "A", created[0].Name())
	assert.Equal(t, "C", created[1].Name())
	assert.Equal(t, 5, n.NumRectangles())

	a, _ := n.Module("A")
	require.Equal(t, 1, a.NumRectangles())
	sq := a.Rectangles()[0]
	assert.Equal(t, geometry.Shape{W: 2, H: 2}, sq.Shape())
	assert.True(t, sq.Center().Eq(geometry.Pt(1, 2)))
	assert.Equal(t, geometry.DefaultRegion, sq.Region())
	assert.Equal(t, "A", sq.Name())

	c, _ := n.Module("C")
	assert.True(t, c.Rectangles()[0].Center().Eq(geometry.Pt(0, 0)))

	assert.Equal(t, []float64{4, 8, 9, 1, 0, 0}, n.ModuleSizes())

	again, err := n.CreateSquares()
	require.NoError(t, err)
	assert.Empty(t, again)
}

func TestCreateSquaresNeedsArea(t *testing.T) {
	n, err := New([]*Module{
		mustModule(t, "A", WithArea(4)),
		mustModule(t, "B"),
	}, nil)
	require.NoError(t, err)

	_, err = n.CreateSquares()
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidModule))
	assert.Equal(t, 0, n.NumRectangles(), "failed CreateSquares must not change the netlist")
}
