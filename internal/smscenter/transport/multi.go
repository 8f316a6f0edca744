package transport

import (
	"context"

	"github.com/aradsms/smscenter/internal/smscenter/domain"
)

// Multi fans every send out to each transport in order.
type Multi []domain.Transport

func (m Multi) Send(ctx context.Context, from, to domain.PhoneNumber, text string) {
	for _, t := range m {
		t.Send(ctx, from, to, text)
	}
}
