package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"supaview/internal/telemetry"
	"supaview/internal/web"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// startServer is replaced in tests.
var startServer = func(ctx context.Context, s *web.Server) error {
	return s.Start(ctx)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the table as a web page",
	Long: `Starts a local web server. The table is read once when the server starts;
GET / shows it, GET /api/state returns it as JSON, and /metrics exposes
Prometheus metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		a, err := newApp(ctx, appOptions{withMetrics: true})
		if err != nil {
			return err
		}
		defer a.Close()

		server := web.NewServer(a.component, a.metrics, a.cfg.Addr)
		cmd.Printf("Serving %s on http://%s\n", a.cfg.Table, server.Addr())
		if err := startServer(ctx, server); err != nil {
			telemetry.LogError("dashboard stopped", err, "addr", server.Addr())
			return err
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().String("addr", "127.0.0.1:3000", "Listen address")
	viper.BindPFlag("addr", serveCmd.Flags().Lookup("addr"))
	rootCmd.AddCommand(serveCmd)
}
