package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/arktech/studydao/engine/api"
	"github.com/arktech/studydao/module/metrics"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the verification REST API and prometheus metrics",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		log = zerolog.New(os.Stderr).With().Timestamp().Logger().Level(log.GetLevel())

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		registry := prometheus.NewRegistry()
		registry.MustRegister(collectors.NewGoCollector())
		registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		verificationCollector := metrics.NewVerificationCollector(registry)
		restCollector := metrics.NewRestCollector(registry)

		n, err := buildNode(ctx, log, cfg, verificationCollector, true)
		if err != nil {
			log.Fatal().Err(err).Msg("could not connect")
		}
		defer n.Close()

		verifier, kernelRPC, err := n.verifier(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("could not create verifier")
		}
		defer kernelRPC.Close()
		verificationCollector.AttemptsInFlight(verifier.InFlight)

		if cfg.Metrics.Port > 0 {
			metricsServer := metrics.NewServer(log, cfg.Metrics.Port, registry)
			<-metricsServer.Ready()
			if err := metricsServer.Err(); err != nil {
				log.Fatal().Err(err).Msg("could not start metrics server")
			}
			defer func() { <-metricsServer.Done() }()
		}

		server := api.NewServer(api.Backend{
			Verifier: verifier,
			Gate:     n.gate(),
			Sessions: n.dao,
			Groups:   n.dao,
		}, cfg.API.Listen, log, restCollector)

		serveErr := make(chan error, 1)
		go func() {
			log.Info().Str("address", cfg.API.Listen).Str("sender", n.sender().Hex()).Msg("rest api server started")
			serveErr <- server.ListenAndServe()
		}()

		select {
		case <-ctx.Done():
			log.Info().Msg("shutting down")
		case err := <-serveErr:
			if !errors.Is(err, http.ErrServerClosed) {
				log.Error().Err(err).Msg("rest api server failed")
			}
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Warn().Err(err).Msg("rest api server did not shut down cleanly")
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
