package app

import (
	"fmt"

	"github.com/aradsms/smscenter/internal/smscenter/domain"
)

// directory maps identifiers to phone numbers. Entries are never removed or replaced.
type directory struct {
	numbers map[domain.Identifier]domain.PhoneNumber
}

func newDirectory() *directory {
	return &directory{numbers: make(map[domain.Identifier]domain.PhoneNumber)}
}

func (d *directory) register(id domain.Identifier, phone domain.PhoneNumber) error {
	if _, exists := d.numbers[id]; exists {
		return fmt.Errorf("register %q: %w", id, domain.ErrDuplicateIdentifier)
	}
	d.numbers[id] = phone
	return nil
}

func (d *directory) resolve(id domain.Identifier) (domain.PhoneNumber, bool) {
	phone, ok := d.numbers[id]
	return phone, ok
}
