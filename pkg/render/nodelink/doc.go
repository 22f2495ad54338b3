// Package nodelink renders netlist graphs as node-link diagrams.
//
// # Usage
//
// Convert a graph to DOT format, then render to SVG:
//
//	dot := nodelink.ToDOT(n.Graph(), nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// PDF and PNG output go through the parent render package:
//
//	pdf, err := render.ToPDF(ctx, svg)
//
// # DOT Format
//
// [ToDOT] produces an undirected graph laid out with neato. Module nodes are
// rounded boxes labeled with the module name; hypernodes (star centers of
// multi-pin nets) are small points with an external label. With
// Options.Detailed, labels add node ids and masses and edges carry their
// weights.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package nodelink
