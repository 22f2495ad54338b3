package graph

import (
	"math"

	"gonum.org/v1/gonum/graph/simple"
)

// ToGonum copies the graph into a gonum weighted undirected graph, with
// gonum node ids equal to the dense ids of g. Absent edges report an infinite
// weight. Gonum simple graphs cannot hold self-loops, so those are skipped.
func (g *Graph) ToGonum() *simple.WeightedUndirectedGraph {
	wg := simple.NewWeightedUndirectedGraph(0, math.Inf(1))
	for _, n := range g.nodes {
		wg.AddNode(simple.Node(n.ID))
	}
	for _, e := range g.edges {
		if e.From == e.To {
			continue
		}
		wg.SetWeightedEdge(wg.NewWeightedEdge(simple.Node(e.From), simple.Node(e.To), e.Weight))
	}
	return wg
}
