package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/tzclock/internal/clock"
)

var sortAt = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func timezones(clocks []clock.Config) []string {
	out := make([]string, len(clocks))
	for i, c := range clocks {
		out[i] = c.TimezoneID
	}
	return out
}

func TestSort_Empty(t *testing.T) {
	var clocks []clock.Config
	Sort(clocks, DefaultSortOptions(), clock.NewFormatter(nil))
	assert.Len(t, clocks, 0)
}

func TestSort_Position(t *testing.T) {
	clocks := clock.DefaultConfigs()
	Sort(clocks, DefaultSortOptions(), clock.NewFormatter(nil))
	assert.Equal(t, []string{"Asia/Tokyo", "Asia/Kolkata", "Europe/Berlin"}, timezones(clocks))

	Sort(clocks, SortOptions{Field: SortByPosition, Order: SortDesc}, clock.NewFormatter(nil))
	assert.Equal(t, []string{"Europe/Berlin", "Asia/Kolkata", "Asia/Tokyo"}, timezones(clocks))
}

func TestSort_ByLabel(t *testing.T) {
	clocks := clock.DefaultConfigs()
	Sort(clocks, SortOptions{Field: SortByLabel, Order: SortAsc}, clock.NewFormatter(nil))
	// Germany, India, Japan
	assert.Equal(t, []string{"Europe/Berlin", "Asia/Kolkata", "Asia/Tokyo"}, timezones(clocks))
}

func TestSort_ByOffset(t *testing.T) {
	clocks := append(clock.DefaultConfigs(), clock.Config{TimezoneID: "Not/AZone", Label: "Bad"})

	Sort(clocks, SortOptions{Field: SortByOffset, Order: SortAsc, At: sortAt}, clock.NewFormatter(nil))
	assert.Equal(t, []string{"Europe/Berlin", "Asia/Kolkata", "Asia/Tokyo", "Not/AZone"}, timezones(clocks))

	Sort(clocks, SortOptions{Field: SortByOffset, Order: SortDesc, At: sortAt}, clock.NewFormatter(nil))
	assert.Equal(t, []string{"Asia/Tokyo", "Asia/Kolkata", "Europe/Berlin", "Not/AZone"}, timezones(clocks))
}

func TestParseSortField(t *testing.T) {
	tests := []struct {
		input    string
		expected SortField
		wantErr  bool
	}{
		{"", SortByPosition, false},
		{"position", SortByPosition, false},
		{"Label", SortByLabel, false},
		{"o", SortByOffset, false},
		{"colour", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseSortField(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestParseSortOrder(t *testing.T) {
	got, err := ParseSortOrder("descending")
	require.NoError(t, err)
	assert.Equal(t, SortDesc, got)

	got, err = ParseSortOrder("")
	require.NoError(t, err)
	assert.Equal(t, SortAsc, got)

	_, err = ParseSortOrder("sideways")
	assert.Error(t, err)
}
