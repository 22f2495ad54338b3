// Package pipeline turns a YAML netlist into exported artifacts. The CLI
// and the API server both run netlists through a [Runner], so they cache and
// log the same way.
//
// A run has two steps. Build parses the netlist and derives its graph,
// optionally adding default squares first. Export then renders the graph in
// each requested format: the JSON graph document, normalized YAML, DOT, SVG,
// PDF or PNG.
//
// Artifacts are cached by the SHA-256 of the YAML source, so an unchanged
// netlist is rendered once:
//
//	r := pipeline.NewRunner(c, nil, logger)
//	res, err := r.Execute(ctx, pipeline.Options{
//		Source:  src,
//		Formats: []string{"json", "svg"},
//	})
//	if err != nil {
//		return err
//	}
//	doc := res.Artifacts["json"]
package pipeline

import (
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"gonum.org/v1/gonum/graph/topo"

	"github.com/matzehuels/frame/pkg/cache"
	"github.com/matzehuels/frame/pkg/errors"
	"github.com/matzehuels/frame/pkg/netlist"
)

// Output formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
	FormatPDF  = "pdf"
	FormatPNG  = "png"
)

// ValidFormats lists the supported output formats in display order.
var ValidFormats = []string{FormatJSON, FormatYAML, FormatDOT, FormatSVG, FormatPDF, FormatPNG}

// DefaultScale is the PNG scale factor.
const DefaultScale = 2.0

// Options configures one run.
type Options struct {
	// Source is the YAML netlist.
	Source []byte `json:"-"`
	// Name labels the netlist in logs and stored records, usually the file name.
	Name string `json:"name,omitempty"`

	// Squares creates a default square for every module without rectangles
	// before exporting.
	Squares bool `json:"squares,omitempty"`

	Formats  []string `json:"formats,omitempty"`
	Detailed bool     `json:"detailed,omitempty"` // detailed DOT labels
	Scale    float64  `json:"scale,omitempty"`    // PNG scale
	Refresh  bool     `json:"refresh,omitempty"`  // ignore cached artifacts

	Logger *log.Logger `json:"-"`
}

// Result is the outcome of [Runner.Execute].
type Result struct {
	// Netlist is the built netlist.
	Netlist *netlist.Netlist

	// SourceHash is the content hash of the YAML source.
	SourceHash string

	Artifacts map[string][]byte // by format
	Stats     Stats

	// CacheHit reports whether every artifact came from the cache.
	CacheHit bool
}

// ValidateFormat fails unless format is one of [ValidFormats].
func ValidateFormat(format string) error {
	if !slices.Contains(ValidFormats, format) {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: %s)", format, strings.Join(ValidFormats, ", "))
	}
	return nil
}

// ValidateFormats applies [ValidateFormat] to each entry.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAndSetDefaults checks the options and fills in defaults.
// It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatJSON}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Scale < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be positive, got %v", o.Scale)
	}
	if o.Name == "" {
		o.Name = "netlist"
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// ArtifactKeyOpts returns cache key options for one export format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{Format: format, Squares: o.Squares}
	switch format {
	case FormatDOT, FormatSVG, FormatPDF, FormatPNG:
		opts.Detailed = o.Detailed
	}
	if format == FormatPNG {
		opts.Scale = o.Scale
	}
	return opts
}

// Stats contains netlist sizes and pipeline timings.
type Stats struct {
	Modules    int     `json:"modules"`
	Nets       int     `json:"nets"`
	Rectangles int     `json:"rectangles"`
	Nodes      int     `json:"nodes"`
	Hypernodes int     `json:"hypernodes"`
	Edges      int     `json:"edges"`
	TotalArea  float64 `json:"total_area"`
	MaxDegree  int     `json:"max_degree"`
	Components int     `json:"components"`

	BuildTime  time.Duration `json:"-"`
	ExportTime time.Duration `json:"-"`
}

// ComputeStats summarizes a built netlist. Components counts connected
// components of the derived graph, isolated nodes included.
func ComputeStats(n *netlist.Netlist) Stats {
	g := n.Graph()
	s := Stats{
		Modules:    n.NumModules(),
		Nets:       len(n.Edges()),
		Rectangles: n.NumRectangles(),
		Nodes:      g.NodeCount(),
		Hypernodes: g.HypernodeCount(),
		Edges:      g.EdgeCount(),
	}
	for _, m := range n.Modules() {
		s.TotalArea += m.Area()
	}
	for id := range g.NodeCount() {
		s.MaxDegree = max(s.MaxDegree, g.Degree(id))
	}
	s.Components = len(topo.ConnectedComponents(g.ToGonum()))
	return s
}
