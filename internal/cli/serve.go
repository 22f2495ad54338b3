package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/frame/internal/api"
	"github.com/matzehuels/frame/pkg/cache"
	"github.com/matzehuels/frame/pkg/pipeline"
)

const apiKeyPrefix = "api:"

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the HTTP API.

Endpoints derive graphs from posted netlists and manage stored netlists
(see the [server], [cache] and [store] config sections). The server shuts
down gracefully on Ctrl+C.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = c.Config.Server.Addr
			}
			return c.runServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default: server.addr from config)")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr string) error {
	st, err := c.openStore(ctx)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() {
		if err := st.Close(context.WithoutCancel(ctx)); err != nil {
			c.Logger.Warn("close store", "err", err)
		}
	}()

	ch, err := c.openCache(ctx, false)
	if err != nil {
		return fmt.Errorf("open cache: %w", err)
	}
	// API entries live under their own prefix so a shared Redis database
	// keeps them apart from CLI runs.
	runner := pipeline.NewRunner(ch, cache.WithPrefix(nil, apiKeyPrefix), c.Logger)
	defer runner.Close()

	srv := api.New(runner, st,
		api.WithLogger(c.Logger),
		api.WithMaxBodyBytes(c.Config.Server.MaxBodyBytes),
	)

	c.Logger.Info("listening", "addr", addr, "cache", c.Config.Cache.Type, "store", c.Config.Store.Type)
	if err := srv.ListenAndServe(ctx, addr, c.Config.Server.ShutdownTimeout); err != nil {
		return err
	}
	c.Logger.Info("server stopped")
	return nil
}
