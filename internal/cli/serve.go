package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/mindgeo/internal/server"
	"github.com/matzehuels/mindgeo/pkg/observability"
)

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		origins []string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the geometry engine over HTTP",
		Long: `Run the JSON API used by canvas clients.

Endpoints:
  POST /v1/layout         arrange a tree
  POST /v1/containment    resolve a drag-and-drop
  POST /v1/placement      find a free spot for a new node
  POST /v1/edges/recalc   re-resolve edge sides
  POST /v1/outline        import a bulleted outline
  GET  /healthz           liveness and counters

The server stops gracefully on interrupt.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := c.Config.Server
			if cmd.Flags().Changed("addr") {
				cfg.Addr = addr
			}
			if cmd.Flags().Changed("cors-origin") {
				cfg.CORSOrigins = origins
			}

			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			counters := observability.NewCounters()
			observability.SetEngineHooks(counters)
			observability.SetCacheHooks(counters)
			observability.SetHTTPHooks(counters)
			defer observability.Reset()

			defaults := c.baseOptions()
			srv := server.New(runner, c.Logger, server.Config{
				Addr:         cfg.Addr,
				ReadTimeout:  cfg.ReadTimeout.Duration,
				WriteTimeout: cfg.WriteTimeout.Duration,
				MaxBodyBytes: cfg.MaxBodyBytes,
				CORSOrigins:  cfg.CORSOrigins,
				Defaults:     defaults,
			}, counters)

			err = srv.ListenAndServe(ctx, func(bound string) {
				printSuccess("Listening on %s", StyleLink.Render("http://"+bound))
				printDetail("cache: %s", c.Config.Cache.Backend)
			})
			if err != nil {
				return fmt.Errorf("serve: %w", err)
			}
			printInfo("Server stopped")
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().StringSliceVar(&origins, "cors-origin", nil, "allowed CORS origin (repeatable)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}
