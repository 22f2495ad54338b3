package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/frame/pkg/errors"
	"github.com/matzehuels/frame/pkg/graph"
	"github.com/matzehuels/frame/pkg/netlist"
	"github.com/matzehuels/frame/pkg/render"
	"github.com/matzehuels/frame/pkg/render/nodelink"
)

// Export produces the requested formats for a built netlist without
// touching any cache. DOT and SVG are computed at most once per call.
func Export(ctx context.Context, n *netlist.Netlist, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	var (
		dot string
		svg []byte
	)
	dotSource := func() string {
		if dot == "" {
			dot = nodelink.ToDOT(n.Graph(), nodelink.Options{Detailed: opts.Detailed})
		}
		return dot
	}
	svgBytes := func() ([]byte, error) {
		if svg == nil {
			var err error
			if svg, err = nodelink.RenderSVG(ctx, dotSource()); err != nil {
				return nil, err
			}
		}
		return svg, nil
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		var (
			data []byte
			err  error
		)

		switch format {
		case FormatJSON:
			data, err = graph.Marshal(n.Graph())
		case FormatYAML:
			data, err = netlist.Marshal(n)
		case FormatDOT:
			data = []byte(dotSource())
		case FormatSVG:
			data, err = svgBytes()
		case FormatPDF:
			if data, err = svgBytes(); err == nil {
				data, err = render.ToPDF(ctx, data)
			}
		case FormatPNG:
			if data, err = svgBytes(); err == nil {
				data, err = render.ToPNG(ctx, data, opts.Scale)
			}
		default:
			return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("export %s: %w", format, err)
		}
		opts.Logger.Debug("exported", "format", format, "bytes", len(data))
		artifacts[format] = data
	}
	return artifacts, nil
}

// Extension returns the file extension for a format.
func Extension(format string) string {
	if format == FormatYAML {
		return ".yaml"
	}
	return "." + format
}
