// Package core provides lookup, search, and sorting over clock lists.
package core

import (
	"strings"

	"github.com/jmylchreest/tzclock/internal/clock"
)

// LookupByIndex finds a clock by its position (1-based for user-friendliness).
// Returns nil if index is out of bounds.
func LookupByIndex(clocks []clock.Config, index int) *clock.Config {
	idx := index - 1
	if idx < 0 || idx >= len(clocks) {
		return nil
	}
	return &clocks[idx]
}

// LookupByName finds the first clock whose label or timezone equals name,
// case-insensitively. Returns nil if none match.
func LookupByName(clocks []clock.Config, name string) *clock.Config {
	for i := range clocks {
		if strings.EqualFold(clocks[i].Label, name) || strings.EqualFold(clocks[i].TimezoneID, name) {
			return &clocks[i]
		}
	}
	return nil
}

// Search finds clocks matching a term in label or timezone.
// Case-insensitive substring match.
func Search(clocks []clock.Config, term string) []clock.Config {
	if term == "" {
		return clocks
	}

	term = strings.ToLower(term)
	var result []clock.Config

	for _, c := range clocks {
		if strings.Contains(strings.ToLower(c.Label), term) ||
			strings.Contains(strings.ToLower(c.TimezoneID), term) {
			result = append(result, c)
		}
	}

	return result
}
