package cli

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/frame/pkg/netlist"
	"github.com/matzehuels/frame/pkg/pipeline"
)

// checkResult is the outcome of validating one netlist file.
type checkResult struct {
	path  string
	stats pipeline.Stats
	err   error
}

// checkCommand creates the check command.
func (c *CLI) checkCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check [netlist.yaml...]",
		Short: "Validate netlists and print their sizes",
		Long: `Validate one or more YAML netlists.

Every file is parsed and its graph is derived; files are checked
concurrently. The command fails if any netlist is invalid.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCheck(cmd.Context(), args)
		},
	}
}

func (c *CLI) runCheck(ctx context.Context, files []string) error {
	sw := startStopwatch(c.Logger)
	results := checkFiles(ctx, files)

	failed := 0
	for _, r := range results {
		if r.err != nil {
			failed++
			printError("%s: %v", r.path, r.err)
			continue
		}
		printSuccess("%s", r.path)
		printStats(r.stats, false)
	}
	sw.done("checked netlists", "count", len(files))

	if failed > 0 {
		return fmt.Errorf("%d of %d netlists invalid", failed, len(files))
	}
	return nil
}

// checkFiles validates files concurrently. Results keep the input order and
// every file is checked even if some fail.
func checkFiles(ctx context.Context, files []string) []checkResult {
	results := make([]checkResult, len(files))
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, path := range files {
		g.Go(func() error {
			results[i] = checkFile(ctx, path)
			return nil
		})
	}
	_ = g.Wait()
	return results
}

func checkFile(ctx context.Context, path string) checkResult {
	r := checkResult{path: path}
	if r.err = ctx.Err(); r.err != nil {
		return r
	}
	data, err := os.ReadFile(path)
	if err != nil {
		r.err = err
		return r
	}
	n, err := netlist.Parse(data)
	if err != nil {
		r.err = err
		return r
	}
	loggerFromContext(ctx).Debug("checked", "path", path, "modules", n.NumModules())
	r.stats = pipeline.ComputeStats(n)
	return r
}
