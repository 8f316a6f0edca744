package domain

import "context"

// Identifier is the caller-facing name bound to a phone number by registration.
type Identifier string

// PhoneNumber is the addressable endpoint for transmission. No format is enforced.
type PhoneNumber string

// GroupIdentifier names a group of phone number prefixes.
type GroupIdentifier string

// HeldMessage is a message queued for a registered recipient that was not
// reachable at send time.
type HeldMessage struct {
	Sender PhoneNumber `json:"sender"`
	Text   string      `json:"text"`
}

// Transport performs the actual transmission of an SMS.
// Failures are the transport's own concern; the routing engine never sees them.
type Transport interface {
	Send(ctx context.Context, from, to PhoneNumber, text string)
}

// TransportFunc adapts a plain function to the Transport interface.
type TransportFunc func(ctx context.Context, from, to PhoneNumber, text string)

func (f TransportFunc) Send(ctx context.Context, from, to PhoneNumber, text string) {
	f(ctx, from, to, text)
}
