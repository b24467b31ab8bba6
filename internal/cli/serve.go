package cli

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/matzehuels/hotnet/pkg/observability"
	"github.com/matzehuels/hotnet/pkg/observability/prom"
	"github.com/matzehuels/hotnet/pkg/server"
)

type serveOpts struct {
	addr     string
	maxNodes int
	metrics  bool
}

// serveCommand creates the serve command, which runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{addr: ":8080", maxNodes: server.DefaultMaxNodes, metrics: true}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the pipeline over HTTP",
		Example: `  hotnet serve --addr :8080
  hotnet serve --redis redis://localhost:6379/0`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			runner, err := c.newRunner(ctx)
			if err != nil {
				return err
			}
			defer runner.Close()

			var srvOpts server.Options
			srvOpts.MaxNodes = opts.maxNodes
			if opts.metrics {
				reg := prometheus.NewRegistry()
				reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
				m := prom.New(reg)
				observability.SetPipelineHooks(m)
				observability.SetCacheHooks(m)
				observability.SetHTTPHooks(m)
				defer observability.Reset()
				srvOpts.Metrics = promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
			}

			return server.New(runner, c.Logger, srvOpts).ListenAndServe(ctx, opts.addr)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().IntVar(&opts.maxNodes, "max-nodes", opts.maxNodes, "largest network size a request may ask for")
	cmd.Flags().BoolVar(&opts.metrics, "metrics", opts.metrics, "expose Prometheus metrics at /metrics")

	return cmd
}
