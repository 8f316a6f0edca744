package app

import (
	"strings"

	"github.com/aradsms/smscenter/internal/smscenter/domain"
)

// wildcardMarker is stripped from raw group patterns; what remains is a bare prefix.
const wildcardMarker = "*"

// groupRegistry stores each group's prefixes in the order they were given.
type groupRegistry struct {
	groups map[domain.GroupIdentifier][]string
}

func newGroupRegistry() *groupRegistry {
	return &groupRegistry{groups: make(map[domain.GroupIdentifier][]string)}
}

// define replaces any previous definition of the group.
func (g *groupRegistry) define(id domain.GroupIdentifier, rawPatterns []string) []string {
	prefixes := make([]string, 0, len(rawPatterns))
	for _, raw := range rawPatterns {
		prefixes = append(prefixes, strings.ReplaceAll(raw, wildcardMarker, ""))
	}
	g.groups[id] = prefixes
	return prefixes
}

func (g *groupRegistry) prefixes(id domain.GroupIdentifier) ([]string, bool) {
	prefixes, ok := g.groups[id]
	return prefixes, ok
}

// matchPrefix returns the first prefix, in stored order, that phone starts with.
func matchPrefix(phone domain.PhoneNumber, prefixes []string) (string, bool) {
	for _, prefix := range prefixes {
		if strings.HasPrefix(string(phone), prefix) {
			return prefix, true
		}
	}
	return "", false
}
