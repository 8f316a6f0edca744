package transport

import (
	"context"
	"log/slog"

	"github.com/aradsms/smscenter/internal/smscenter/domain"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
)

const logTransportName = "log"

// LogTransport "delivers" messages by logging them. It is the default
// transport when no broker is configured.
type LogTransport struct {
	logger *slog.Logger
	newID  func() string
}

// NewLogTransport creates a LogTransport.
func NewLogTransport(logger *slog.Logger) *LogTransport {
	return &LogTransport{
		logger: logger.With("transport", logTransportName),
		newID:  uuid.NewString,
	}
}

// Send logs the message with a generated provider message id.
func (t *LogTransport) Send(ctx context.Context, from, to domain.PhoneNumber, text string) {
	timer := prometheus.NewTimer(transportSendDurationHist.WithLabelValues(logTransportName))
	defer timer.ObserveDuration()

	t.logger.InfoContext(ctx, "SMS sent",
		"provider_msg_id", "log-"+t.newID(),
		"from", from,
		"to", to,
		"text", text)
	transportSendsCounter.WithLabelValues(logTransportName, "success").Inc()
}
