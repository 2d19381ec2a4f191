package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Dany7865/IITR-esummit07/internal/api"
	"github.com/Dany7865/IITR-esummit07/internal/logger"
	"github.com/Dany7865/IITR-esummit07/internal/weights"
)

var (
	servePort int
	serveSeed bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API and WhatsApp webhook",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Port to listen on (default from config)")
	serveCmd.Flags().BoolVar(&serveSeed, "seed", false, "Load the sample leads when the store is empty")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return withApp(ctx, func(a *app) error {
		if serveSeed {
			n, err := a.discovery.Seed(ctx)
			if err != nil {
				return fmt.Errorf("failed to seed leads: %w", err)
			}
			a.logger.Info("Seeded sample leads", logger.Int("count", n))
		}

		a.metrics.RecordWeights(storedWeights(ctx, a.weights, a.logger))

		port := a.cfg.Server.Port
		if servePort > 0 {
			port = servePort
		}

		server := api.NewServer(api.Deps{
			Scorer:      a.scorer,
			Leads:       a.leads,
			Adapter:     a.adapter,
			Weights:     a.weights,
			Discovery:   a.discovery,
			Notifier:    a.notifier,
			Officers:    a.officers,
			Inbox:       a.inbox,
			Metrics:     a.metrics,
			Logger:      a.logger,
			VerifyToken: a.cfg.Server.WhatsAppVerifyToken,
		})
		return server.Run(ctx, fmt.Sprintf(":%d", port))
	})
}

// storedWeights reads the learned weights for the startup gauges. An
// unreadable store is not fatal: the server starts with no weight gauges and
// scoring falls back to the default weight.
func storedWeights(ctx context.Context, store weights.Store, log logger.Logger) map[string]float64 {
	records, err := store.All(ctx)
	if err != nil {
		log.Warn("Failed to read weights, starting without weight metrics", logger.Error(err))
		return map[string]float64{}
	}
	m := make(map[string]float64, len(records))
	for _, r := range records {
		m[r.Key] = r.Weight
	}
	return m
}
