// Package render provides graph export rendering for netlists.
//
// # Overview
//
// The derived netlist graph can be exported as Graphviz DOT and rendered to
// SVG in-process (see the [nodelink] subpackage). This package adds format
// conversion from SVG to PDF and PNG using the external rsvg-convert tool
// (from librsvg).
//
//	dot := nodelink.ToDOT(g, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0)  // 2x scale
//
// Rendering draws the graph structure only: module nodes, hypernodes and
// weighted edges. It does not draw floorplans.
package render
