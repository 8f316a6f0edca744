package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aradsms/smscenter/internal/platform/config"
	"github.com/aradsms/smscenter/internal/platform/logger"
	"github.com/aradsms/smscenter/internal/platform/messagebroker"
	"github.com/aradsms/smscenter/internal/smscenter/domain"
	"github.com/aradsms/smscenter/internal/smscenter/transport"
	"github.com/spf13/cobra"
)

const serviceName = "sms-center"

type rootOptions struct {
	configFile string
	logLevel   string
	logFormat  string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "smscenter",
		Short: "Minimal SMS routing center",
		Long: `smscenter maps identifiers to phone numbers, tracks which numbers are
subscribed, routes point-to-point, group and broadcast messages, and holds
messages for registered numbers until they subscribe.

Commands are read from a file (run) or from a NATS subject (serve).`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&opts.configFile, "config", "", "config file (default is configs/config.defaults.yaml)")
	cmd.PersistentFlags().StringVarP(&opts.logLevel, "log-level", "l", "", "log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&opts.logFormat, "log-format", "", "log format (json, text)")

	cmd.AddCommand(newRunCmd(opts), newServeCmd(opts))
	return cmd
}

// load resolves configuration and the logger, letting flags win over file and environment.
func (o *rootOptions) load() (*config.Config, *slog.Logger, error) {
	var (
		cfg *config.Config
		err error
	)
	if o.configFile != "" {
		cfg, err = config.LoadFile(o.configFile)
	} else {
		cfg, err = config.Load("./configs", "config.defaults")
	}
	if err != nil {
		slog.Error("Failed to load configuration", "service", serviceName, "error", err)
		return nil, nil, err
	}

	if o.logLevel != "" {
		cfg.LogLevel = o.logLevel
	}
	if o.logFormat != "" {
		cfg.LogFormat = o.logFormat
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	return cfg, logger.NewWithWriter(stdout, cfg.LogLevel, cfg.LogFormat), nil
}

// buildTransport wires the configured outbound transport. nc may be nil when
// the transport mode does not need NATS.
func buildTransport(cfg *config.Config, nc *messagebroker.NATSClient, appLogger *slog.Logger) (domain.Transport, error) {
	logTransport := transport.NewLogTransport(appLogger)
	switch cfg.Transport {
	case config.TransportLog:
		return logTransport, nil
	case config.TransportNATS, config.TransportBoth:
		if nc == nil {
			return nil, fmt.Errorf("transport %q requires a NATS connection", cfg.Transport)
		}
		natsTransport := transport.NewNATSTransport(nc, cfg.NATSOutboundSubject, appLogger)
		if cfg.Transport == config.TransportNATS {
			return natsTransport, nil
		}
		return transport.Multi{logTransport, natsTransport}, nil
	default:
		return nil, fmt.Errorf("unknown transport %q", cfg.Transport)
	}
}

// connectNATSIfNeeded opens a NATS connection when required or when the transport uses it.
func connectNATSIfNeeded(ctx context.Context, cfg *config.Config, appLogger *slog.Logger, required bool) (*messagebroker.NATSClient, error) {
	if !required && !cfg.UsesNATS() {
		return nil, nil
	}
	appLogger.InfoContext(ctx, "Connecting to NATS", "url", cfg.NATSUrl)
	nc, err := messagebroker.NewNATSClient(cfg.NATSUrl, appLogger, serviceName)
	if err != nil {
		appLogger.ErrorContext(ctx, "Failed to connect to NATS", "error", err)
		return nil, err
	}
	appLogger.InfoContext(ctx, "Successfully connected to NATS")
	return nc, nil
}
