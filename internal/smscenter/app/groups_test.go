package app

import (
	"testing"

	"github.com/aradsms/smscenter/internal/smscenter/domain"
	"github.com/stretchr/testify/assert"
)

func TestGroupRegistry_DefineStripsWildcards(t *testing.T) {
	registry := newGroupRegistry()

	prefixes := registry.define("g", []string{"+369*", "+36123*", "+44", "", "+3*6*"})
	assert.Equal(t, []string{"+369", "+36123", "+44", "", "+36"}, prefixes)

	stored, ok := registry.prefixes("g")
	assert.True(t, ok)
	assert.Equal(t, prefixes, stored)

	_, ok = registry.prefixes("other")
	assert.False(t, ok)
}

func TestMatchPrefix(t *testing.T) {
	testCases := []struct {
		name        string
		phone       domain.PhoneNumber
		prefixes    []string
		expected    string
		expectMatch bool
	}{
		{"First pattern matches", "+36991212321", []string{"+369", "+36"}, "+369", true},
		{"Second pattern matches", "+36123456789", []string{"+369", "+36123"}, "+36123", true},
		{"Broader pattern first wins", "+36991212321", []string{"+36", "+369"}, "+36", true},
		{"No pattern matches", "+3791", []string{"+361", "+362"}, "", false},
		{"Empty prefix matches everything", "+3791", []string{""}, "", true},
		{"No patterns", "+3791", nil, "", false},
		{"Prefix longer than number", "+36", []string{"+3611"}, "", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			prefix, ok := matchPrefix(tc.phone, tc.prefixes)
			assert.Equal(t, tc.expectMatch, ok)
			assert.Equal(t, tc.expected, prefix)
		})
	}
}

func TestHeldQueue_DrainEmptiesRecipient(t *testing.T) {
	q := newHeldQueue()
	q.hold("+1", domain.HeldMessage{Sender: "+2", Text: "a"})
	q.hold("+1", domain.HeldMessage{Sender: "+3", Text: "b"})
	q.hold("+4", domain.HeldMessage{Sender: "+2", Text: "c"})
	assert.Equal(t, 3, q.size())

	drained := q.drain("+1")
	assert.Equal(t, []domain.HeldMessage{{Sender: "+2", Text: "a"}, {Sender: "+3", Text: "b"}}, drained)
	assert.Empty(t, q.drain("+1"))
	assert.Equal(t, 1, q.size())
	assert.Empty(t, q.pending("+1"))
}

func TestReachabilitySet(t *testing.T) {
	r := newReachabilitySet()
	assert.True(t, r.add("+2"))
	assert.False(t, r.add("+2"))
	assert.True(t, r.add("+1"))
	assert.Equal(t, []domain.PhoneNumber{"+1", "+2"}, r.members())

	assert.True(t, r.remove("+2"))
	assert.False(t, r.remove("+2"))
	assert.False(t, r.contains("+2"))
	assert.True(t, r.contains("+1"))
}
