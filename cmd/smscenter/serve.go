package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aradsms/smscenter/internal/smscenter/app"
	"github.com/aradsms/smscenter/internal/smscenter/input"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Consume commands from NATS until interrupted",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, appLogger, err := root.load()
			if err != nil {
				return err
			}
			appLogger.Info("SMS center starting...",
				"log_level", cfg.LogLevel,
				"transport", cfg.Transport,
				"command_subject", cfg.NATSCommandSubject,
				"metrics_port", cfg.MetricsPort,
			)

			mainCtx, mainCancel := context.WithCancel(context.Background())
			defer mainCancel()

			nc, err := connectNATSIfNeeded(mainCtx, cfg, appLogger, true)
			if err != nil {
				return err
			}
			defer nc.Close()

			smsTransport, err := buildTransport(cfg, nc, appLogger)
			if err != nil {
				return err
			}
			center := app.NewCenter(smsTransport, appLogger)
			consumer := input.NewNATSCommandConsumer(nc, center, appLogger)

			g, groupCtx := errgroup.WithContext(mainCtx)

			g.Go(func() error {
				return consumer.StartConsuming(groupCtx, cfg.NATSCommandSubject, cfg.NATSQueueGroup)
			})

			if cfg.MetricsPort > 0 {
				metricsServer := &http.Server{
					Addr:              fmt.Sprintf(":%d", cfg.MetricsPort),
					Handler:           newMetricsRouter(center),
					ReadHeaderTimeout: 5 * time.Second,
				}
				g.Go(func() error {
					appLogger.Info("Metrics server listening", "addr", metricsServer.Addr)
					if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
						return fmt.Errorf("metrics server failed: %w", err)
					}
					return nil
				})
				g.Go(func() error {
					<-groupCtx.Done()
					shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
					defer cancel()
					return metricsServer.Shutdown(shutdownCtx)
				})
			}

			appLogger.Info("SMS center ready.")

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			defer signal.Stop(sigCh)

			var groupErr error
			select {
			case sig := <-sigCh:
				appLogger.Info("Received termination signal", "signal", sig.String())
			case groupErr = <-watchGroup(g):
				appLogger.Error("A component failed, initiating shutdown", "error", groupErr)
			}

			appLogger.Info("Attempting graceful shutdown...")
			mainCancel()

			if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
				appLogger.Error("Error during graceful shutdown of components", "error", err)
				return err
			}
			if groupErr != nil && !errors.Is(groupErr, context.Canceled) {
				return groupErr
			}

			snap := center.Snapshot()
			appLogger.Info("SMS center shutdown complete.", "held_messages", snap.HeldTotal)
			return nil
		},
	}
}

// newMetricsRouter exposes Prometheus metrics and a health endpoint with a state summary.
func newMetricsRouter(center *app.Center) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		snap := center.Snapshot()
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status":        "ok",
			"registered":    len(snap.Registrations),
			"reachable":     len(snap.Reachable),
			"groups":        len(snap.Groups),
			"held_messages": snap.HeldTotal,
		})
	})
	return r
}

// watchGroup is a helper to monitor an errgroup for early exit.
func watchGroup(g *errgroup.Group) <-chan error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- g.Wait()
	}()
	return errCh
}
