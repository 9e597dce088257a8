package cli

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/zscene/internal/server"
	"github.com/matzehuels/zscene/pkg/presets"
)

// serveCommand runs the HTTP preview server.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve rendered presets over HTTP",
		Long: `Serve rendered presets over HTTP.

  GET /presets                   list presets as JSON
  GET /presets/{name}.svg        render a frame (also .png, .pdf)
  GET /presets/{name}/graph      scene hierarchy as DOT (?format=svg for SVG)

Frame requests take width, height, zoom, background, centered, rx, ry, rz,
frame and frames query parameters. With the redis cache backend several
servers can share one cache.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if addr == "" {
				addr = c.cfg.Server.Addr
			}
			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			printSuccess("Serving on %s", StyleLink.Render("http://"+addr))
			printKeyValue("cache", c.cfg.Cache.Backend)
			printKeyValue("presets", strings.Join(presets.Names(), ", "))
			err = server.New(runner, c.Logger, c.cfg).ListenAndServe(ctx, addr)
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, localhost:8080)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	return cmd
}
