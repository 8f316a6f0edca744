package app

import (
	"sort"

	"github.com/aradsms/smscenter/internal/smscenter/domain"
)

// Snapshot is a point-in-time copy of a Center's state.
type Snapshot struct {
	Registrations map[domain.Identifier]domain.PhoneNumber    `json:"registrations"`
	Reachable     []domain.PhoneNumber                        `json:"reachable"`
	Groups        map[domain.GroupIdentifier][]string         `json:"groups"`
	Held          map[domain.PhoneNumber][]domain.HeldMessage `json:"held"`
	HeldTotal     int                                         `json:"held_total"`
}

// Snapshot copies the current state. Mutating the result does not affect the Center.
func (c *Center) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Snapshot{
		Registrations: make(map[domain.Identifier]domain.PhoneNumber, len(c.directory.numbers)),
		Reachable:     c.reachable.members(),
		Groups:        make(map[domain.GroupIdentifier][]string, len(c.groups.groups)),
		Held:          make(map[domain.PhoneNumber][]domain.HeldMessage, len(c.held.messages)),
		HeldTotal:     c.held.size(),
	}
	for id, phone := range c.directory.numbers {
		s.Registrations[id] = phone
	}
	for id, prefixes := range c.groups.groups {
		s.Groups[id] = append([]string(nil), prefixes...)
	}
	for phone := range c.held.messages {
		s.Held[phone] = c.held.pending(phone)
	}
	return s
}

// HeldFor returns the messages waiting for phone, oldest first.
func (c *Center) HeldFor(phone domain.PhoneNumber) []domain.HeldMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.held.pending(phone)
}

// IsReachable reports whether phone is currently subscribed.
func (c *Center) IsReachable(phone domain.PhoneNumber) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reachable.contains(phone)
}

// GroupIdentifiers lists the defined groups in ascending order.
func (c *Center) GroupIdentifiers() []domain.GroupIdentifier {
	c.mu.Lock()
	defer c.mu.Unlock()

	ids := make([]domain.GroupIdentifier, 0, len(c.groups.groups))
	for id := range c.groups.groups {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
