package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/frame/pkg/netlist"
)

// squaresCommand creates the squares command.
func (c *CLI) squaresCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "squares [netlist.yaml]",
		Short: "Add default squares to modules without rectangles",
		Long: `Add default squares to modules without rectangles.

Every module that has no rectangles gets one square of its declared area,
centered on the module center (or the origin). The result is written as
YAML. The command fails without writing anything if such a module has no
positive area.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSquares(cmd.Context(), args[0], output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")

	return cmd
}

func (c *CLI) runSquares(ctx context.Context, input, output string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	n, err := netlist.ReadFile(input)
	if err != nil {
		return err
	}
	created, err := n.CreateSquares()
	if err != nil {
		return err
	}
	for _, m := range created {
		c.Logger.Debug("created square", "module", m.Name(), "area", m.Area())
	}
	c.Logger.Infof("Created %d squares", len(created))

	if output == "" {
		return netlist.Write(n, os.Stdout)
	}
	if err := netlist.WriteFile(n, output); err != nil {
		return err
	}
	printSuccess("Squares written")
	printFile(output)
	return nil
}
