// Package pkg holds the libraries behind frame.
//
// # Overview
//
// frame models the data of rectilinear floorplanning: modules made of
// rectangles, connected by weighted multi-pin nets. Its core turns such a
// netlist into the weighted simple graph that graph-based layout code
// consumes. The packages are:
//
//  1. [geometry] - points, shapes and rectangles
//  2. [netlist] - modules, nets, star expansion and the YAML codec
//  3. [graph] - the derived graph, its document form and a gonum adapter
//  4. [render/nodelink] - DOT and SVG export of a graph
//  5. [pipeline] - parse, build and export with caching
//  6. [cache], [store], [config] - infrastructure used by the CLI and API
//  7. [observability] - hooks for pipeline, cache and HTTP events
//
// # Data Flow
//
//	YAML netlist
//	     ↓
//	[netlist] package (resolve nets, star-expand hyperedges)
//	     ↓
//	[graph] package (nodes, adjacency, mass)
//	     ↓
//	JSON / YAML / DOT / SVG / PDF / PNG
//
// # Quick Start
//
//	n, err := netlist.ReadFile("chip.yaml")
//	if err != nil {
//	    return err
//	}
//	adj := n.Adjacency()    // [][]graph.Neighbor, symmetric
//	mass := n.ModuleSizes() // module areas, 0 for hypernodes
//	data, err := graph.Marshal(n.Graph())
//
// [geometry]: github.com/matzehuels/frame/pkg/geometry
// [netlist]: github.com/matzehuels/frame/pkg/netlist
// [graph]: github.com/matzehuels/frame/pkg/graph
// [render/nodelink]: github.com/matzehuels/frame/pkg/render/nodelink
// [pipeline]: github.com/matzehuels/frame/pkg/pipeline
// [cache]: github.com/matzehuels/frame/pkg/cache
// [store]: github.com/matzehuels/frame/pkg/store
// [config]: github.com/matzehuels/frame/pkg/config
// [observability]: github.com/matzehuels/frame/pkg/observability
package pkg
