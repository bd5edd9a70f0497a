package cli

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/matzehuels/permrank/pkg/config"
	"github.com/matzehuels/permrank/pkg/observability"
	"github.com/matzehuels/permrank/pkg/pipeline"
	"github.com/matzehuels/permrank/pkg/server"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Serve the ranking API and Prometheus metrics until interrupted.

The listen address, timeouts and cache backend come from the config file;
--addr overrides the address.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := *c.Config
			if addr != "" {
				cfg.Server.Addr = addr
			}

			runner, err := c.newRunner(cmd.Context(), noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			hooks := observability.NewPrometheusHooks(prometheus.DefaultRegisterer)
			observability.SetSchemeHooks(hooks)
			observability.SetCacheHooks(hooks)
			observability.SetHTTPHooks(hooks)
			defer observability.Reset()

			srv := server.New(runner, c.Logger, server.Config{
				Addr:         cfg.Server.Addr,
				ReadTimeout:  cfg.Server.ReadTimeout,
				WriteTimeout: cfg.Server.WriteTimeout,
				Defaults: pipeline.Options{
					Scheme:   cfg.Defaults.Scheme,
					Alphabet: cfg.Defaults.Alphabet,
					K:        cfg.Defaults.K,
				},
			})
			if noCache || cfg.Cache.Backend == config.BackendNone {
				printWarning("Caching is disabled, every request is computed")
			}
			printInfo("Serving on %s", cfg.Server.Addr)
			return srv.ListenAndServe(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	return cmd
}
