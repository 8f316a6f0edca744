package app

import "github.com/aradsms/smscenter/internal/smscenter/domain"

// heldQueue keeps, per recipient number, the messages waiting for that number
// to become reachable. Order within a recipient is send order.
type heldQueue struct {
	messages map[domain.PhoneNumber][]domain.HeldMessage
	total    int
}

func newHeldQueue() *heldQueue {
	return &heldQueue{messages: make(map[domain.PhoneNumber][]domain.HeldMessage)}
}

func (q *heldQueue) hold(recipient domain.PhoneNumber, msg domain.HeldMessage) {
	q.messages[recipient] = append(q.messages[recipient], msg)
	q.total++
}

// drain removes and returns everything held for recipient, oldest first.
func (q *heldQueue) drain(recipient domain.PhoneNumber) []domain.HeldMessage {
	msgs, ok := q.messages[recipient]
	if !ok {
		return nil
	}
	delete(q.messages, recipient)
	q.total -= len(msgs)
	return msgs
}

func (q *heldQueue) pending(recipient domain.PhoneNumber) []domain.HeldMessage {
	msgs := q.messages[recipient]
	out := make([]domain.HeldMessage, len(msgs))
	copy(out, msgs)
	return out
}

func (q *heldQueue) size() int {
	return q.total
}
