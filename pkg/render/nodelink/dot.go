package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/frame/pkg/graph"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds node ids, masses and edge weights to the labels.
	// When false, module nodes show only their name.
	Detailed bool
}

// ToDOT converts a netlist graph to an undirected Graphviz DOT graph.
// Render the result with [RenderSVG].
//
// Module nodes are boxes; hypernodes are drawn as points. Nodes appear in id
// order and edges in insertion order, so the output is deterministic.
func ToDOT(g *graph.Graph, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  overlap=false;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("\n")

	nodes := g.Nodes()
	for _, n := range nodes {
		attrs := fmtAttrs(n, fmtLabel(n, opts.Detailed))
		fmt.Fprintf(&buf, "  %q [%s];\n", n.Name, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		from, to := nodes[e.From].Name, nodes[e.To].Name
		if opts.Detailed {
			fmt.Fprintf(&buf, "  %q -- %q [label=%q];\n", from, to, formatFloat(e.Weight))
			continue
		}
		fmt.Fprintf(&buf, "  %q -- %q;\n", from, to)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n graph.Node, detailed bool) string {
	if !detailed {
		return n.Name
	}
	return fmt.Sprintf("%s\nid: %d\nmass: %s", n.Name, n.ID, formatFloat(n.Mass))
}

func fmtAttrs(n graph.Node, label string) []string {
	if n.IsHypernode() {
		return []string{"shape=point", "width=0.12", fmt.Sprintf("xlabel=%q", label), "fillcolor=black"}
	}
	return []string{fmt.Sprintf("label=%q", label)}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// RenderSVG lays out a DOT graph with Graphviz and returns it as SVG. The
// root element is rewritten by [fitRoot] so the drawing scales when
// embedded. Package render converts the result to PDF or PNG.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse dot: %w", err)
	}
	defer g.Close()

	var svg bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &svg); err != nil {
		return nil, fmt.Errorf("render svg: %w", err)
	}
	return fitRoot(svg.Bytes()), nil
}

var (
	svgOpenTag  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxAttr = regexp.MustCompile(`viewBox="([^"]*)"`)
)

// fitRoot replaces the root <svg> tag with one whose viewBox starts at the
// origin and whose width and height match the drawing. Documents without a
// usable viewBox are returned unchanged.
func fitRoot(svg []byte) []byte {
	m := viewBoxAttr.FindSubmatch(svg)
	if m == nil {
		return svg
	}
	box := strings.Fields(string(m[1]))
	if len(box) != 4 {
		return svg
	}
	w, errW := strconv.ParseFloat(box[2], 64)
	h, errH := strconv.ParseFloat(box[3], 64)
	if errW != nil || errH != nil || w <= 0 || h <= 0 {
		return svg
	}

	loc := svgOpenTag.FindIndex(svg)
	if loc == nil {
		return svg
	}
	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %s %s" width="%.0f" height="%.0f">`,
		formatFloat(w), formatFloat(h), math.Ceil(w), math.Ceil(h))

	out := make([]byte, 0, len(svg)+len(tag))
	out = append(out, svg[:loc[0]]...)
	out = append(out, tag...)
	return append(out, svg[loc[1]:]...)
}
