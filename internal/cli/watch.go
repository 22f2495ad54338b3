package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

// watchDebounce coalesces the burst of events editors produce on save.
const watchDebounce = 150 * time.Millisecond

// watchCommand creates the watch command.
func (c *CLI) watchCommand() *cobra.Command {
	var (
		flags  buildFlags
		outDir string
	)

	cmd := &cobra.Command{
		Use:   "watch [netlist.yaml]",
		Short: "Re-export a netlist whenever it changes",
		Long: `Export a netlist, then re-export it every time the file is saved.

Artifacts are written like the export command does. Invalid edits are
reported and the previous artifacts stay in place. Stop with Ctrl+C.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runWatch(cmd.Context(), args[0], &flags, outDir)
		},
	}

	flags.register(cmd, "output format(s): json (default), yaml, dot, svg, pdf, png (comma-separated)")
	cmd.Flags().StringVarP(&outDir, "dir", "d", "", "output directory (default: next to the input)")

	return cmd
}

func (c *CLI) runWatch(ctx context.Context, input string, flags *buildFlags, outDir string) error {
	if _, err := os.Stat(input); err != nil {
		return err
	}
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

	export := func() {
		res, paths, err := exportFile(ctx, runner, input, flags, outDir)
		if err != nil {
			printError("%s: %v", input, err)
			return
		}
		printSuccess("%s", input)
		for _, p := range paths {
			printFile(p)
		}
		printStats(res.Stats, res.CacheHit)
	}

	export()
	printInfo("Watching %s (Ctrl+C to stop)", input)

	return watchFile(ctx, input, watchDebounce, c.Logger, export)
}

// watchFile calls onChange once per burst of writes to path until ctx ends.
// The parent directory is watched so that editors which replace the file on
// save are still followed.
func watchFile(ctx context.Context, path string, debounce time.Duration, logger *log.Logger, onChange func()) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	target := filepath.Clean(path)
	if err := w.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}

	var (
		timer   *time.Timer
		timerCh <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case <-timerCh:
			timerCh = nil
			onChange()

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target || ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			logger.Debug("netlist changed", "path", ev.Name, "op", ev.Op)
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			timerCh = timer.C

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", "err", err)
		}
	}
}
