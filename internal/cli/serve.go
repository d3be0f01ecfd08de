package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/drainplan/internal/server"
	"github.com/matzehuels/drainplan/pkg/observability"
)

// defaultAddr is the listen address of the HTTP API.
const defaultAddr = "127.0.0.1:8080"

// serveCommand creates the serve command that exposes the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve layouts over HTTP",
		Long: `Serve layouts over HTTP.

Routes:
  GET  /healthz              liveness and version
  POST /v1/layout            JSON parameters in, layout JSON out
  GET  /v1/layout.{format}   query parameters in, svg/png/pdf/json/txt out

Layouts and artifacts are cached in the same backend as the other commands;
set DRAINPLAN_REDIS_ADDR to share a Redis cache between instances.
With --verbose every pipeline, cache and request event is logged.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", defaultAddr, "listen address")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr string, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	if c.Logger.GetLevel() <= log.DebugLevel {
		h := observability.NewLogHooks(c.Logger)
		observability.SetPipelineHooks(h)
		observability.SetCacheHooks(h)
		observability.SetServerHooks(h)
		defer observability.Reset()
	}

	printKeyValue("Listening", "http://"+addr)
	return server.New(runner, c.Logger).ListenAndServe(ctx, addr)
}
