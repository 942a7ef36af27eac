package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/limejump/corona-analytics/internal/api"
	"github.com/limejump/corona-analytics/internal/api/handlers"
	"github.com/limejump/corona-analytics/pkg/metrics"
)

// apiCmd represents the api command
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the REST API server",
	Long: `Starts the REST API server.

Endpoints:
  GET  /health                          - Health check
  GET  /api/mpans                       - PPA MPANs (start, end, contracted, remove_cancelled, quote_type, meter_type)
  GET  /api/mpans/{mpan}                - MPAN summary with live contract and continuity
  GET  /api/mpans/{mpan}/attribution    - Contracts clamped to a reporting period (from, to)
  GET  /api/quotes                      - Quote ids
  GET  /api/companies/{id}              - Company by id with billing
  GET  /api/companies?name=             - Company by name with billing
  GET  /metrics                         - Prometheus metrics (METRICS_ENABLED)

Example:
  go run ./cmd/corona api
  go run ./cmd/corona api --port 8080`,
	RunE: runAPIServer,
}

var (
	apiPort string
)

func init() {
	rootCmd.AddCommand(apiCmd)

	apiCmd.Flags().StringVar(&apiPort, "port", "", "API server port (default PORT)")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	d, err := newDeps(ctx)
	if err != nil {
		return err
	}
	defer d.close()

	if apiPort != "" {
		d.cfg.Port = apiPort
	}

	var reg *metrics.Registry
	if d.cfg.MetricsEnabled {
		reg = d.metrics
	}

	router := api.NewRouter(
		handlers.NewMPANHandler(d.assets, d.log),
		handlers.NewCompanyHandler(d.companies, d.log),
		reg,
		d.log,
	)
	server := api.New(d.cfg, d.log, router)

	out := cmd.OutOrStdout()
	PrintSuccess(out, fmt.Sprintf("Server running on http://localhost:%s", d.cfg.Port))
	fmt.Fprintln(out, "Press Ctrl+C to stop")

	if err := server.Run(ctx); err != nil {
		return err
	}

	d.log.Info("Server stopped")
	return nil
}
