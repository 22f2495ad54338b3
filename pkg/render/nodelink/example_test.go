package nodelink_test

import (
	"fmt"

	"github.com/matzehuels/frame/pkg/graph"
	"github.com/matzehuels/frame/pkg/render/nodelink"
)

func ExampleToDOT() {
	g := graph.New()
	_, _ = g.AddNode("cpu", graph.NodeKindModule, 12)
	_, _ = g.AddNode("cache", graph.NodeKindModule, 6)
	_ = g.AddEdge(0, 1, 2)

	fmt.Print(nodelink.ToDOT(g, nodelink.Options{Detailed: true}))
	// Output:
	// graph G {
	//   layout=neato;
	//   overlap=false;
	//   bgcolor="transparent";
	//   node [shape=box, style="rounded,filled", fillcolor=white, fontsize=14, margin="0.2,0.1"];
	//
	//   "cpu" [label="cpu\nid: 0\nmass: 12"];
	//   "cache" [label="cache\nid: 1\nmass: 6"];
	//
	//   "cpu" -- "cache" [label="2"];
	// }
}
