package app

import (
	"context"
	"fmt"

	"github.com/aradsms/smscenter/internal/smscenter/domain"
)

// Execute applies one command to the center. Only Register and SendMessage can fail.
func (c *Center) Execute(ctx context.Context, cmd domain.Command) error {
	var err error
	switch cmd := cmd.(type) {
	case domain.Register:
		err = c.Register(ctx, cmd.Identifier, cmd.PhoneNumber)
	case domain.Subscribe:
		c.Subscribe(ctx, cmd.Identifier)
	case domain.Unsubscribe:
		c.Unsubscribe(ctx, cmd.Identifier)
	case domain.CreateGroup:
		c.CreateGroup(ctx, cmd.Group, cmd.Patterns)
	case domain.SendMessage:
		err = c.SendMessage(ctx, cmd.Sender, cmd.Receiver, cmd.Text)
	case domain.SendBroadcast:
		c.SendBroadcast(ctx, cmd.Sender, cmd.Text)
	case domain.SendGroupMessage:
		c.SendGroupMessage(ctx, cmd.Sender, cmd.Group, cmd.Text)
	default:
		return fmt.Errorf("unsupported command type %T", cmd)
	}

	status := "success"
	if err != nil {
		status = "error"
	}
	commandsProcessedCounter.WithLabelValues(string(cmd.Kind()), status).Inc()
	return err
}
