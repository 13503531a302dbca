package audio

import (
	"log/slog"
	"sync"
	"time"
)

// Sounder plays a sound file.
type Sounder interface {
	Play(path string) error
}

// Chime plays a sound when the wall clock of a timezone enters a new hour.
type Chime struct {
	mu       sync.Mutex
	sounder  Sounder
	sound    string
	location *time.Location
	logger   *slog.Logger

	lastHour time.Time
}

// NewChime creates a chime for the given location. A nil location means UTC.
func NewChime(sounder Sounder, sound string, location *time.Location, logger *slog.Logger) *Chime {
	if logger == nil {
		logger = slog.Default()
	}
	if location == nil {
		location = time.UTC
	}
	return &Chime{
		sounder:  sounder,
		sound:    sound,
		location: location,
		logger:   logger,
	}
}

// Observe is called once per tick. The first observation only records the
// current hour; later observations chime when the hour has changed.
// Returns true when a chime was played.
func (c *Chime) Observe(now time.Time) bool {
	// The instant the current local hour began. Subtracting the local
	// minutes keeps half-hour zones right and gives a repeated fall-back
	// hour its own start.
	local := now.In(c.location)
	hour := now.Add(-time.Duration(local.Minute())*time.Minute -
		time.Duration(local.Second())*time.Second -
		time.Duration(local.Nanosecond()))

	c.mu.Lock()
	last := c.lastHour
	c.lastHour = hour
	c.mu.Unlock()

	if last.IsZero() || !hour.After(last) {
		return false
	}

	c.logger.Debug("hourly chime", "hour", hour.In(c.location).Format("15:04"), "timezone", c.location.String())
	if err := c.sounder.Play(c.sound); err != nil {
		c.logger.Warn("failed to play chime", "sound", c.sound, "error", err)
		return false
	}
	return true
}
