package graph

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

// triangle builds a-b (1), b-c (2), hypernode h connected to a, b, c (3).
func triangle(t *testing.T) *Graph {
	t.Helper()
	g := New()
	for _, n := range []struct {
		name string
		kind NodeKind
		mass float64
	}{
		{"a", NodeKindModule, 4},
		{"b", NodeKindModule, 2},
		{"c", NodeKindModule, 1},
		{"h", NodeKindHypernode, 0},
	} {
		if _, err := g.AddNode(n.name, n.kind, n.mass); err != nil {
			t.Fatalf("AddNode(%s): %v", n.name, err)
		}
	}
	for _, e := range []Edge{{0, 1, 1}, {1, 2, 2}, {3, 0, 3}, {3, 1, 3}, {3, 2, 3}} {
		if err := g.AddEdge(e.From, e.To, e.Weight); err != nil {
			t.Fatalf("AddEdge(%d, %d): %v", e.From, e.To, err)
		}
	}
	return g
}

func TestAddNodeDenseIDs(t *testing.T) {
	g := New()
	for i, name := range []string{"x", "y", "z"} {
		id, err := g.AddNode(name, NodeKindModule, 1)
		if err != nil {
			t.Fatalf("AddNode: %v", err)
		}
		if id != i {
			t.Errorf("id = %d, want %d", id, i)
		}
	}
	if g.NodeCount() != 3 {
		t.Errorf("NodeCount = %d, want 3", g.NodeCount())
	}
}

func TestAddNodeErrors(t *testing.T) {
	g := New()
	if _, err := g.AddNode("a", NodeKindModule, 1); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		node    string
		mass    float64
		wantErr error
	}{
		{"empty name", "", 1, ErrEmptyNodeName},
		{"duplicate", "a", 1, ErrDuplicateNode},
		{"negative mass", "b", -1, ErrInvalidMass},
		{"NaN mass", "c", math.NaN(), ErrInvalidMass},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := g.AddNode(tt.node, NodeKindModule, tt.mass)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
			if id != -1 {
				t.Errorf("id = %d, want -1", id)
			}
		})
	}
	if g.NodeCount() != 1 {
		t.Errorf("failed AddNode must not add nodes, count = %d", g.NodeCount())
	}
}

func TestAddEdgeErrors(t *testing.T) {
	g := New()
	g.AddNode("a", NodeKindModule, 1)
	g.AddNode("b", NodeKindModule, 1)

	tests := []struct {
		name    string
		a, b    int
		weight  float64
		wantErr error
	}{
		{"unknown source", 5, 1, 1, ErrUnknownNode},
		{"unknown target", 0, -1, 1, ErrUnknownNode},
		{"zero weight", 0, 1, 0, ErrInvalidWeight},
		{"negative weight", 0, 1, -2, ErrInvalidWeight},
		{"NaN weight", 0, 1, math.NaN(), ErrInvalidWeight},
		{"infinite weight", 0, 1, math.Inf(1), ErrInvalidWeight},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := g.AddEdge(tt.a, tt.b, tt.weight); !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
	if g.EdgeCount() != 0 {
		t.Errorf("failed AddEdge must not add edges, count = %d", g.EdgeCount())
	}
}

func TestAdjacencySymmetric(t *testing.T) {
	g := triangle(t)
	if err := g.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	adj := g.Adjacency()
	for a, nbrs := range adj {
		for _, nb := range nbrs {
			found := false
			for _, back := range adj[nb.ID] {
				if back.ID == a && back.Weight == nb.Weight {
					found = true
				}
			}
			if !found {
				t.Errorf("edge %d->%d (w=%v) has no reverse entry", a, nb.ID, nb.Weight)
			}
		}
	}
}

func TestAdjacencyOrder(t *testing.T) {
	g := triangle(t)

	want := [][]Neighbor{
		{{1, 1}, {3, 3}},
		{{0, 1}, {2, 2}, {3, 3}},
		{{1, 2}, {3, 3}},
		{{0, 3}, {1, 3}, {2, 3}},
	}
	if got := g.Adjacency(); !reflect.DeepEqual(got, want) {
		t.Errorf("Adjacency() = %v, want %v", got, want)
	}
}

func TestParallelEdgesAccumulate(t *testing.T) {
	g := New()
	g.AddNode("a", NodeKindModule, 1)
	g.AddNode("b", NodeKindModule, 1)

	for _, w := range []float64{1, 2.5} {
		if err := g.AddEdge(0, 1, w); err != nil {
			t.Fatal(err)
		}
	}
	// Reversed endpoints hit the same edge.
	if err := g.AddEdge(1, 0, 0.5); err != nil {
		t.Fatal(err)
	}

	if g.EdgeCount() != 1 {
		t.Fatalf("EdgeCount = %d, want 1", g.EdgeCount())
	}
	if w, ok := g.Weight(1, 0); !ok || w != 4 {
		t.Errorf("Weight = %v, %v; want 4, true", w, ok)
	}
	if got := g.Neighbors(0); len(got) != 1 || got[0] != (Neighbor{ID: 1, Weight: 4}) {
		t.Errorf("Neighbors(0) = %v", got)
	}
	if got := g.Neighbors(1); len(got) != 1 || got[0] != (Neighbor{ID: 0, Weight: 4}) {
		t.Errorf("Neighbors(1) = %v", got)
	}
	if err := g.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestSelfLoop(t *testing.T) {
	g := New()
	g.AddNode("a", NodeKindModule, 1)
	if err := g.AddEdge(0, 0, 2); err != nil {
		t.Fatal(err)
	}
	if err := g.AddEdge(0, 0, 1); err != nil {
		t.Fatal(err)
	}
	if got := g.Neighbors(0); len(got) != 1 || got[0] != (Neighbor{ID: 0, Weight: 3}) {
		t.Errorf("Neighbors(0) = %v, want [{0 3}]", got)
	}
	if err := g.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestMassesAndLookups(t *testing.T) {
	g := triangle(t)

	if got, want := g.Masses(), []float64{4, 2, 1, 0}; !reflect.DeepEqual(got, want) {
		t.Errorf("Masses() = %v, want %v", got, want)
	}
	if g.HypernodeCount() != 1 {
		t.Errorf("HypernodeCount = %d, want 1", g.HypernodeCount())
	}

	n, ok := g.NodeByName("h")
	if !ok || n.ID != 3 || !n.IsHypernode() {
		t.Errorf("NodeByName(h) = %+v, %v", n, ok)
	}
	if _, ok := g.NodeByName("missing"); ok {
		t.Error("NodeByName(missing) should fail")
	}
	if _, ok := g.Node(4); ok {
		t.Error("Node(4) should fail")
	}
	if g.Neighbors(-1) != nil {
		t.Error("Neighbors(-1) should be nil")
	}
	if g.Degree(3) != 3 {
		t.Errorf("Degree(3) = %d, want 3", g.Degree(3))
	}
}

func TestAdjacencyIsCopy(t *testing.T) {
	g := triangle(t)
	adj := g.Adjacency()
	adj[0][0].Weight = 100
	if w, _ := g.Weight(0, 1); w != 1 {
		t.Errorf("mutating Adjacency() result changed the graph: weight = %v", w)
	}

	empty := New()
	empty.AddNode("lonely", NodeKindModule, 1)
	if adj := empty.Adjacency(); adj[0] == nil {
		t.Error("isolated nodes should have an empty, non-nil adjacency list")
	}
}

func TestNodeKindString(t *testing.T) {
	tests := []struct {
		kind NodeKind
		want string
	}{
		{NodeKindModule, "module"},
		{NodeKindHypernode, "hypernode"},
		{NodeKind(7), "NodeKind(7)"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestDocumentRoundTrip(t *testing.T) {
	g := triangle(t)
	g.AddEdge(0, 1, 2) // accumulated weight must survive

	data, err := Marshal(g)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(doc.Nodes) != 4 || len(doc.Edges) != 5 || len(doc.Mass) != 4 || len(doc.Adjacency) != 4 {
		t.Fatalf("document sizes: nodes=%d edges=%d mass=%d adj=%d",
			len(doc.Nodes), len(doc.Edges), len(doc.Mass), len(doc.Adjacency))
	}
	if doc.Nodes[3].Kind != KindHypernode {
		t.Errorf("kind = %q, want %q", doc.Nodes[3].Kind, KindHypernode)
	}

	back, err := Read(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !reflect.DeepEqual(back.Adjacency(), g.Adjacency()) {
		t.Errorf("adjacency mismatch:\n got %v\nwant %v", back.Adjacency(), g.Adjacency())
	}
	if !reflect.DeepEqual(back.Nodes(), g.Nodes()) {
		t.Errorf("nodes mismatch:\n got %v\nwant %v", back.Nodes(), g.Nodes())
	}
}

func TestReadErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"invalid json", `{invalid json}`},
		{"sparse ids", `{"nodes":[{"id":1,"name":"a"}],"edges":[]}`},
		{"unknown kind", `{"nodes":[{"id":0,"name":"a","kind":"blob"}],"edges":[]}`},
		{"unknown endpoint", `{"nodes":[{"id":0,"name":"a"}],"edges":[{"from":0,"to":9,"weight":1}]}`},
		{"bad weight", `{"nodes":[{"id":0,"name":"a"},{"id":1,"name":"b"}],"edges":[{"from":0,"to":1,"weight":0}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Read(strings.NewReader(tt.input)); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestReadWriteFile(t *testing.T) {
	g := triangle(t)
	path := filepath.Join(t.TempDir(), "graph.json")

	if err := WriteFile(g, path); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	back, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if back.NodeCount() != 4 || back.EdgeCount() != 5 {
		t.Errorf("counts = %d/%d, want 4/5", back.NodeCount(), back.EdgeCount())
	}

	if _, err := ReadFile(filepath.Join(t.TempDir(), "missing.json")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("ReadFile(missing) = %v, want ErrNotExist", err)
	}
}

func TestToGonum(t *testing.T) {
	g := triangle(t)
	g.AddEdge(2, 2, 1) // self-loop is skipped

	wg := g.ToGonum()
	if got := wg.Nodes().Len(); got != 4 {
		t.Errorf("gonum nodes = %d, want 4", got)
	}
	if got := wg.Edges().Len(); got != 5 {
		t.Errorf("gonum edges = %d, want 5", got)
	}
	if w, ok := wg.Weight(3, 1); !ok || w != 3 {
		t.Errorf("gonum weight(3,1) = %v, %v; want 3, true", w, ok)
	}
	if w, ok := wg.Weight(0, 2); ok || !math.IsInf(w, 1) {
		t.Errorf("gonum weight(0,2) = %v, %v; want +Inf, false", w, ok)
	}
}
