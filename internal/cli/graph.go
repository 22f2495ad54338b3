package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/frame/pkg/pipeline"
)

// buildFlags are the pipeline flags shared by graph, export and watch.
type buildFlags struct {
	formats  string
	squares  bool
	detailed bool
	scale    float64
	refresh  bool
	noCache  bool
}

func (f *buildFlags) register(cmd *cobra.Command, formatHelp string) {
	cmd.Flags().StringVarP(&f.formats, "format", "f", "", formatHelp)
	cmd.Flags().BoolVar(&f.squares, "squares", false, "create default squares for modules without rectangles")
	cmd.Flags().BoolVar(&f.detailed, "detailed", false, "show ids, masses and weights in DOT/SVG output")
	cmd.Flags().Float64Var(&f.scale, "scale", pipeline.DefaultScale, "PNG scale factor")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "ignore cached exports")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
}

// options returns pipeline options for the source read from path.
func (f *buildFlags) options(path string, src []byte) (pipeline.Options, error) {
	opts := pipeline.Options{
		Source:   src,
		Name:     filepath.Base(path),
		Formats:  parseFormats(f.formats),
		Squares:  f.squares,
		Detailed: f.detailed,
		Scale:    f.scale,
		Refresh:  f.refresh,
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return pipeline.Options{}, err
	}
	return opts, nil
}

// graphCommand creates the graph command.
func (c *CLI) graphCommand() *cobra.Command {
	var (
		flags  buildFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "graph [netlist.yaml]",
		Short: "Print the derived graph of a netlist",
		Long: `Print the derived graph of a netlist.

Nets with three or more modules are star-expanded through hypernodes. The
graph document (JSON) lists nodes, edges, adjacency and mass; use --format
for YAML, DOT, SVG, PDF or PNG instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGraph(cmd.Context(), args[0], &flags, output)
		},
	}

	flags.register(cmd, "output format: json (default), yaml, dot, svg, pdf, png")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")

	return cmd
}

func (c *CLI) runGraph(ctx context.Context, input string, flags *buildFlags, output string) error {
	src, err := os.ReadFile(input)
	if err != nil {
		return err
	}
	opts, err := flags.options(input, src)
	if err != nil {
		return err
	}
	if len(opts.Formats) != 1 {
		return fmt.Errorf("graph writes a single format, got %d (use export for several)", len(opts.Formats))
	}

	runner, err := c.newRunner(ctx, flags.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		return err
	}

	out, err := openOutput(output)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := out.Write(result.Artifacts[opts.Formats[0]]); err != nil {
		return err
	}
	if output != "" {
		printSuccess("Graph written")
		printFile(output)
		printStats(result.Stats, result.CacheHit)
	}
	return nil
}
