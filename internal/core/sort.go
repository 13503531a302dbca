package core

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jmylchreest/tzclock/internal/clock"
)

// SortField represents a field to sort by.
type SortField string

const (
	SortByPosition SortField = "position"
	SortByLabel    SortField = "label"
	SortByOffset   SortField = "offset"
)

// SortOrder represents ascending or descending order.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// SortOptions specifies sorting criteria.
type SortOptions struct {
	Field SortField // Field to sort by
	Order SortOrder // Sort order (asc/desc)
	At    time.Time // Instant at which UTC offsets are compared
}

// DefaultSortOptions returns default sort options (configured order).
func DefaultSortOptions() SortOptions {
	return SortOptions{
		Field: SortByPosition,
		Order: SortAsc,
	}
}

// Sort sorts clocks in place. Clocks whose timezone cannot be resolved sort
// after all others when ordering by offset, whatever the order.
func Sort(clocks []clock.Config, opts SortOptions, f *clock.Formatter) {
	if len(clocks) == 0 || opts.Field == SortByPosition {
		if opts.Order == SortDesc {
			for i, j := 0, len(clocks)-1; i < j; i, j = i+1, j-1 {
				clocks[i], clocks[j] = clocks[j], clocks[i]
			}
		}
		return
	}

	offsets := make(map[string]int, len(clocks))
	known := make(map[string]bool, len(clocks))
	if opts.Field == SortByOffset {
		for _, c := range clocks {
			loc, err := f.Resolve(c.TimezoneID)
			if err != nil {
				continue
			}
			_, offsets[c.TimezoneID] = opts.At.In(loc).Zone()
			known[c.TimezoneID] = true
		}
	}

	sort.SliceStable(clocks, func(i, j int) bool {
		a, b := clocks[i], clocks[j]

		if opts.Field == SortByOffset && known[a.TimezoneID] != known[b.TimezoneID] {
			return known[a.TimezoneID]
		}

		var less, equal bool
		switch opts.Field {
		case SortByLabel:
			la, lb := strings.ToLower(a.Label), strings.ToLower(b.Label)
			less, equal = la < lb, la == lb
		case SortByOffset:
			oa, ob := offsets[a.TimezoneID], offsets[b.TimezoneID]
			less, equal = oa < ob, oa == ob
		}

		if equal {
			return false
		}
		if opts.Order == SortDesc {
			return !less
		}
		return less
	})
}

// ParseSortField parses a sort field string.
func ParseSortField(s string) (SortField, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "position", "pos", "p":
		return SortByPosition, nil
	case "label", "name", "l":
		return SortByLabel, nil
	case "offset", "utc", "o":
		return SortByOffset, nil
	default:
		return "", fmt.Errorf("invalid sort field: %q (use position, label, or offset)", s)
	}
}

// ParseSortOrder parses a sort order string.
func ParseSortOrder(s string) (SortOrder, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "asc", "ascending", "a":
		return SortAsc, nil
	case "desc", "descending", "d":
		return SortDesc, nil
	default:
		return "", fmt.Errorf("invalid sort order: %q (use asc or desc)", s)
	}
}
