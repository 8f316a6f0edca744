package input

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/nats-io/nats.go"
)

// Subscriber is the subset of the NATS client used by the command consumer.
type Subscriber interface {
	SubscribeToSubjectWithQueue(ctx context.Context, subject, queueGroup string, handler nats.MsgHandler) error
}

// CommandReply is sent back when a command message carries a reply subject.
type CommandReply struct {
	Executed int      `json:"executed"`
	Errors   []string `json:"errors,omitempty"`
}

// NATSCommandConsumer executes command lines received on a NATS subject.
// A message body may hold several lines.
type NATSCommandConsumer struct {
	subscriber Subscriber
	executor   Executor
	logger     *slog.Logger
}

// NewNATSCommandConsumer creates a NATSCommandConsumer.
func NewNATSCommandConsumer(subscriber Subscriber, executor Executor, logger *slog.Logger) *NATSCommandConsumer {
	return &NATSCommandConsumer{
		subscriber: subscriber,
		executor:   executor,
		logger:     logger.With("component", "nats_command_consumer"),
	}
}

// StartConsuming subscribes to subject and blocks until ctx is cancelled.
// Messages delivered while the subscription drains are still executed in full.
func (c *NATSCommandConsumer) StartConsuming(ctx context.Context, subject, queueGroup string) error {
	c.logger.InfoContext(ctx, "Starting NATS command subscription", "subject", subject, "queue_group", queueGroup)
	handlerCtx := context.WithoutCancel(ctx)
	err := c.subscriber.SubscribeToSubjectWithQueue(ctx, subject, queueGroup, func(msg *nats.Msg) {
		natsCommandMessagesReceivedCounter.WithLabelValues(subject).Inc()
		c.handleMessage(handlerCtx, msg)
	})
	if err != nil {
		c.logger.ErrorContext(ctx, "NATS command subscription failed", "error", err, "subject", subject)
		return err
	}
	c.logger.InfoContext(ctx, "NATS command subscription ended", "subject", subject)
	return nil
}

func (c *NATSCommandConsumer) handleMessage(ctx context.Context, msg *nats.Msg) CommandReply {
	c.logger.DebugContext(ctx, "Received command message", "subject", msg.Subject, "data_len", len(msg.Data))

	var reply CommandReply
	for _, line := range strings.Split(string(msg.Data), "\n") {
		cmds, err := ParseLine(line)
		if err != nil {
			commandsRejectedCounter.WithLabelValues(sourceNATS).Inc()
			c.logger.WarnContext(ctx, "Rejected command line", "subject", msg.Subject, "error", err)
			reply.Errors = append(reply.Errors, err.Error())
			continue
		}
		for _, cmd := range cmds {
			if err := c.executor.Execute(ctx, cmd); err != nil {
				c.logger.ErrorContext(ctx, "Command failed", "kind", cmd.Kind(), "error", err)
				reply.Errors = append(reply.Errors, err.Error())
				continue
			}
			reply.Executed++
		}
	}

	if msg.Reply != "" {
		data, err := json.Marshal(reply)
		if err != nil {
			c.logger.ErrorContext(ctx, "Failed to marshal command reply", "error", err)
			return reply
		}
		if err := msg.Respond(data); err != nil {
			c.logger.WarnContext(ctx, "Failed to send command reply", "reply", msg.Reply, "error", err)
		}
	}
	return reply
}
