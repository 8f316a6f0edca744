package app

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/aradsms/smscenter/internal/smscenter/domain"
)

// Center is the routing engine. It owns the directory, the reachability set,
// the group registry and the held-message queue for its whole lifetime.
// All operations are serialized by a single mutex, so a held-message flush is
// never interleaved with another command.
type Center struct {
	mu        sync.Mutex
	directory *directory
	reachable *reachabilitySet
	groups    *groupRegistry
	held      *heldQueue
	transport domain.Transport
	logger    *slog.Logger
}

// NewCenter creates an empty Center that transmits through transport.
func NewCenter(transport domain.Transport, logger *slog.Logger) *Center {
	return &Center{
		directory: newDirectory(),
		reachable: newReachabilitySet(),
		groups:    newGroupRegistry(),
		held:      newHeldQueue(),
		transport: transport,
		logger:    logger.With("component", "sms_center"),
	}
}

// Register binds identifier to phone. Re-registering an identifier fails with
// domain.ErrDuplicateIdentifier and leaves the existing binding in place.
func (c *Center) Register(ctx context.Context, id domain.Identifier, phone domain.PhoneNumber) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.logger.InfoContext(ctx, "Registering identifier", "identifier", id, "phone_number", phone)
	if err := c.directory.register(id, phone); err != nil {
		c.logger.WarnContext(ctx, "Registration rejected", "identifier", id, "error", err)
		return err
	}
	return nil
}

// Resolve returns the phone number registered for id.
func (c *Center) Resolve(id domain.Identifier) (domain.PhoneNumber, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.directory.resolve(id)
}

// Subscribe marks the identifier's number reachable and delivers everything
// held for it. Unknown identifiers are ignored.
func (c *Center) Subscribe(ctx context.Context, id domain.Identifier) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.logger.InfoContext(ctx, "Subscribing identifier", "identifier", id)
	phone, ok := c.directory.resolve(id)
	if !ok {
		c.logger.DebugContext(ctx, "Subscribe ignored for unregistered identifier", "identifier", id)
		return
	}
	c.reachable.add(phone)

	held := c.held.drain(phone)
	if len(held) == 0 {
		return
	}
	heldQueueDepthGauge.Sub(float64(len(held)))
	c.logger.InfoContext(ctx, "Flushing held messages", "phone_number", phone, "count", len(held))
	for _, msg := range held {
		c.transmit(ctx, routeHeldFlush, msg.Sender, phone, msg.Text)
	}
}

// Unsubscribe marks the identifier's number unreachable. The registration is kept.
func (c *Center) Unsubscribe(ctx context.Context, id domain.Identifier) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.logger.InfoContext(ctx, "Unsubscribing identifier", "identifier", id)
	phone, ok := c.directory.resolve(id)
	if !ok {
		return
	}
	c.reachable.remove(phone)
}

// CreateGroup stores the group's patterns with wildcard markers removed,
// replacing any earlier definition of the same group.
func (c *Center) CreateGroup(ctx context.Context, group domain.GroupIdentifier, patterns []string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	prefixes := c.groups.define(group, patterns)
	c.logger.InfoContext(ctx, "Creating group", "group", group, "patterns", patterns, "prefixes", prefixes)
}

// SendMessage delivers text from sender to receiver, or holds it if the
// receiver is registered but not reachable. Validation happens before any
// side effect: unregistered sender, unregistered receiver, then unsubscribed sender.
func (c *Center) SendMessage(ctx context.Context, sender, receiver domain.Identifier, text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	senderPhone, senderOK := c.directory.resolve(sender)
	receiverPhone, receiverOK := c.directory.resolve(receiver)

	switch {
	case !senderOK:
		return fmt.Errorf("send from %q: %w", sender, domain.ErrUnregisteredSender)
	case !receiverOK:
		return fmt.Errorf("send to %q: %w", receiver, domain.ErrUnregisteredReceiver)
	case !c.reachable.contains(senderPhone):
		return fmt.Errorf("send from %q: %w", sender, domain.ErrUnsubscribedSender)
	}

	if !c.reachable.contains(receiverPhone) {
		c.held.hold(receiverPhone, domain.HeldMessage{Sender: senderPhone, Text: text})
		messagesHeldCounter.Inc()
		heldQueueDepthGauge.Inc()
		c.logger.InfoContext(ctx, "Receiver not subscribed, message held",
			"sender", senderPhone, "receiver", receiverPhone, "held_for_receiver", len(c.held.messages[receiverPhone]))
		return nil
	}

	c.transmit(ctx, routeDirect, senderPhone, receiverPhone, text)
	return nil
}

// SendBroadcast sends text to every reachable number, the sender's own included.
// The sender is not validated; an unknown sender transmits with an empty number.
func (c *Center) SendBroadcast(ctx context.Context, sender domain.Identifier, text string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	senderPhone, _ := c.directory.resolve(sender)
	recipients := c.reachable.members()
	c.logger.InfoContext(ctx, "Broadcasting message", "sender", senderPhone, "recipients", len(recipients))
	for _, recipient := range recipients {
		c.transmit(ctx, routeBroadcast, senderPhone, recipient, text)
	}
}

// SendGroupMessage sends text once to each reachable number matching any of
// the group's prefixes. Unknown groups are ignored. Like SendBroadcast, the
// sender is not validated.
func (c *Center) SendGroupMessage(ctx context.Context, sender domain.Identifier, group domain.GroupIdentifier, text string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	senderPhone, _ := c.directory.resolve(sender)
	prefixes, ok := c.groups.prefixes(group)
	if !ok {
		c.logger.DebugContext(ctx, "Group message ignored for unknown group", "group", group)
		return
	}

	for _, recipient := range c.reachable.members() {
		prefix, matched := matchPrefix(recipient, prefixes)
		if !matched {
			continue
		}
		c.logger.DebugContext(ctx, "Group pattern matched", "group", group, "recipient", recipient, "prefix", prefix)
		c.transmit(ctx, routeGroup, senderPhone, recipient, text)
	}
}

func (c *Center) transmit(ctx context.Context, route string, from, to domain.PhoneNumber, text string) {
	transmissionsCounter.WithLabelValues(route).Inc()
	c.transport.Send(ctx, from, to, text)
}
