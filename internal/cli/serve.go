package cli

import (
	"github.com/spf13/cobra"

	"github.com/certifyme/certrender/internal/server"
)

// serveCommand creates the serve command, which runs the HTTP preview API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP render API",
		Long: `Run the HTTP render API.

Endpoints:
  GET  /health       liveness probe
  GET  /v1/layouts   layout catalog
  POST /v1/render    render a template and record
  POST /v1/record    merged record as JSON`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if addr == "" {
				addr = c.Config.Listen
			}

			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			srv := server.New(runner,
				server.WithOrigin(c.Config.Origin),
				server.WithAssetBase(c.Config.AssetBase),
				server.WithAssetTimeout(c.Config.AssetTimeout),
				server.WithLogger(c.Logger),
			)
			printInfo("Listening on %s", StyleLink.Render(addr))
			return srv.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}
