package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigs(t *testing.T) {
	configs := DefaultConfigs()
	require.Len(t, configs, 3)

	assert.Equal(t, "Asia/Tokyo", configs[0].TimezoneID)
	assert.Equal(t, "Asia/Kolkata", configs[1].TimezoneID)
	assert.Equal(t, "Europe/Berlin", configs[2].TimezoneID)

	for _, cfg := range configs {
		assert.NoError(t, cfg.Validate())
	}
}

func TestColor_Validate(t *testing.T) {
	assert.NoError(t, Color("#FFE5CC").Validate())
	assert.NoError(t, Color("#00ff00").Validate())
	assert.Error(t, Color("FFE5CC").Validate())
	assert.Error(t, Color("#FFF").Validate())
	assert.Error(t, Color("#GGGGGG").Validate())
	assert.Error(t, Color("").Validate())
}

func TestAppState_Tick(t *testing.T) {
	src := FixedSource(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	state := NewAppState(DefaultConfigs(), nil, src, nil)

	// Nothing rendered before the first tick.
	for _, s := range state.Snapshot() {
		assert.Empty(t, s.Text)
		assert.False(t, s.Valid())
	}

	states := state.Tick()
	require.Len(t, states, 3)
	assert.Equal(t, "09:00:00 AM", states[0].Text)
	assert.Equal(t, "05:30:00 AM", states[1].Text)
	assert.Equal(t, "01:00:00 AM", states[2].Text)
	assert.Equal(t, uint64(1), state.Ticks())
	assert.False(t, state.LastTick().IsZero())
}

func TestAppState_RepeatedTicksWithInvalidTimezone(t *testing.T) {
	configs := DefaultConfigs()
	configs[1].TimezoneID = "Not/AZone"

	state := NewAppState(configs, nil, SystemSource{}, nil)

	for range 100 {
		states := state.Tick()
		require.Len(t, states, 3)

		invalid, valid := 0, 0
		for _, s := range states {
			switch {
			case s.Text == InvalidTimezoneText:
				invalid++
			case timePattern.MatchString(s.Text):
				valid++
			}
		}
		assert.Equal(t, 1, invalid)
		assert.Equal(t, 2, valid)
	}
	assert.Equal(t, uint64(100), state.Ticks())
}

func TestAppState_SnapshotIsCopy(t *testing.T) {
	state := NewAppState(DefaultConfigs(), nil, SystemSource{}, nil)
	states := state.Tick()
	states[0].Text = "tampered"

	assert.NotEqual(t, "tampered", state.Snapshot()[0].Text)
	assert.Equal(t, DefaultConfigs(), state.Configs())
}
