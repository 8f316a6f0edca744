package transport

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/aradsms/smscenter/internal/smscenter/domain"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
)

const natsTransportName = "nats"

// Publisher is the subset of the NATS client used for outbound messages.
type Publisher interface {
	Publish(ctx context.Context, subject string, data []byte) error
}

// OutboundSMS is the payload published for every transmission.
type OutboundSMS struct {
	ID     string             `json:"id"`
	From   domain.PhoneNumber `json:"from"`
	To     domain.PhoneNumber `json:"to"`
	Text   string             `json:"text"`
	SentAt time.Time          `json:"sent_at"`
}

// NATSTransport publishes each message to a subject for a downstream sender.
// Publish failures are logged and counted; they are not reported to the caller.
type NATSTransport struct {
	publisher Publisher
	subject   string
	logger    *slog.Logger
	now       func() time.Time
	newID     func() string
}

// NewNATSTransport creates a NATSTransport publishing on subject.
func NewNATSTransport(publisher Publisher, subject string, logger *slog.Logger) *NATSTransport {
	return &NATSTransport{
		publisher: publisher,
		subject:   subject,
		logger:    logger.With("transport", natsTransportName, "subject", subject),
		now:       func() time.Time { return time.Now().UTC() },
		newID:     uuid.NewString,
	}
}

// Send publishes the message as JSON.
func (t *NATSTransport) Send(ctx context.Context, from, to domain.PhoneNumber, text string) {
	timer := prometheus.NewTimer(transportSendDurationHist.WithLabelValues(natsTransportName))
	defer timer.ObserveDuration()

	msg := OutboundSMS{
		ID:     t.newID(),
		From:   from,
		To:     to,
		Text:   text,
		SentAt: t.now(),
	}
	payload, err := json.Marshal(msg)
	if err != nil {
		t.logger.ErrorContext(ctx, "Failed to marshal outbound SMS", "error", err, "to", to)
		transportSendsCounter.WithLabelValues(natsTransportName, "error").Inc()
		return
	}

	if err := t.publisher.Publish(ctx, t.subject, payload); err != nil {
		t.logger.ErrorContext(ctx, "Failed to publish outbound SMS", "error", err, "id", msg.ID, "to", to)
		transportSendsCounter.WithLabelValues(natsTransportName, "error").Inc()
		return
	}
	t.logger.DebugContext(ctx, "Outbound SMS published", "id", msg.ID, "from", from, "to", to)
	transportSendsCounter.WithLabelValues(natsTransportName, "success").Inc()
}
