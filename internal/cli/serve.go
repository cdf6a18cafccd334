package cli

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/matzehuels/prefgraph/pkg/api"
	"github.com/matzehuels/prefgraph/pkg/observability"
)

type serveOpts struct {
	addr      string
	rateLimit float64
	burst     int
	noCache   bool
	metrics   bool
}

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the decision API over HTTP",
		Long: `Serve exposes the decision pipeline as a JSON API:

  POST /api/v1/decide    decide a scenario
  POST /api/v1/generate  generate a random scenario
  POST /api/v1/render    render a criterion graph or the decision
  GET  /health           liveness and build information
  GET  /metrics          Prometheus metrics`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.Config.Serve
			if !cmd.Flags().Changed("addr") {
				opts.addr = cfg.Addr
			}
			if !cmd.Flags().Changed("rate-limit") {
				opts.rateLimit = cfg.RateLimit
			}
			if !cmd.Flags().Changed("burst") {
				opts.burst = cfg.Burst
			}

			ctx := cmd.Context()
			runner, err := c.newRunner(ctx, opts.noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			if opts.metrics {
				hooks := observability.NewPrometheusHooks(prometheus.DefaultRegisterer)
				observability.SetDecisionHooks(hooks)
				observability.SetCacheHooks(hooks)
				observability.SetHTTPHooks(hooks)
				defer observability.Reset()
			}

			router := api.NewRouter(api.Config{
				Runner:            runner,
				Logger:            c.Logger,
				RateLimit:         opts.rateLimit,
				Burst:             opts.burst,
				RequireNormalized: c.Config.Decide.RequireNormalized,
				Tolerance:         c.Config.Decide.Tolerance,
			})
			return api.ListenAndServe(ctx, opts.addr, router, c.Logger)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", ":8080", "listen address")
	cmd.Flags().Float64Var(&opts.rateLimit, "rate-limit", 10, "requests per second per client (0 disables)")
	cmd.Flags().IntVar(&opts.burst, "burst", 20, "requests a client may burst above the rate limit")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the decision cache")
	cmd.Flags().BoolVar(&opts.metrics, "metrics", true, "collect Prometheus metrics")

	return cmd
}
