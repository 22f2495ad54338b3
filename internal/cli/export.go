package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/frame/pkg/pipeline"
)

// exportCommand creates the export command.
func (c *CLI) exportCommand() *cobra.Command {
	var (
		flags  buildFlags
		outDir string
	)

	cmd := &cobra.Command{
		Use:   "export [netlist.yaml...]",
		Short: "Write graph artifacts for one or more netlists",
		Long: `Write graph artifacts for one or more netlists.

For each input, one file per format is written next to the input (or into
--dir), named after the input: chip.yaml → chip.json, chip.dot, ...
Inputs are processed concurrently; the first failure stops the rest.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runExport(cmd.Context(), args, &flags, outDir)
		},
	}

	flags.register(cmd, "output format(s): json (default), yaml, dot, svg, pdf, png (comma-separated)")
	cmd.Flags().StringVarP(&outDir, "dir", "d", "", "output directory (default: next to each input)")

	return cmd
}

func (c *CLI) runExport(ctx context.Context, inputs []string, flags *buildFlags, outDir string) error {
	if outDir != "" {
		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return err
		}
	}

	runner, err := c.newRunner(ctx, flags.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	sw := startStopwatch(c.Logger)
	spinner := newSpinner(ctx, fmt.Sprintf("Exporting %d netlists...", len(inputs)))
	spinner.Start()

	written := make([][]string, len(inputs))
	results := make([]*pipeline.Result, len(inputs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, input := range inputs {
		g.Go(func() error {
			res, paths, err := exportFile(gctx, runner, input, flags, outDir)
			if err != nil {
				return fmt.Errorf("%s: %w", input, err)
			}
			results[i], written[i] = res, paths
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		spinner.StopWithError("Export failed")
		return err
	}
	spinner.Stop()

	for i, input := range inputs {
		printSuccess("%s", input)
		for _, p := range written[i] {
			printFile(p)
		}
		printStats(results[i].Stats, results[i].CacheHit)
	}
	sw.done("exported netlists", "count", len(inputs))
	return nil
}

// exportFile runs the pipeline for one input and writes its artifacts.
func exportFile(ctx context.Context, runner *pipeline.Runner, input string, flags *buildFlags, outDir string) (*pipeline.Result, []string, error) {
	src, err := os.ReadFile(input)
	if err != nil {
		return nil, nil, err
	}
	opts, err := flags.options(input, src)
	if err != nil {
		return nil, nil, err
	}
	opts.Logger = loggerFromContext(ctx)

	base := basePath(input, outDir)
	for _, format := range opts.Formats {
		if filepath.Clean(base+pipeline.Extension(format)) == filepath.Clean(input) {
			return nil, nil, fmt.Errorf("%s export would overwrite the input (use --dir)", format)
		}
	}

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		return nil, nil, err
	}
	paths, err := writeArtifacts(base, opts.Formats, result.Artifacts)
	if err != nil {
		return nil, nil, err
	}
	return result, paths, nil
}
