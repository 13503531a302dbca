package clock

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Display strings.
const (
	// TimeLayout renders a zero-padded 12-hour clock, e.g. "09:00:00 AM".
	TimeLayout = "03:04:05 PM"
	// InvalidTimezoneText is shown when the timezone is absent or unknown.
	InvalidTimezoneText = "Invalid Timezone"
	// ErrorText is shown for any other failure.
	ErrorText = "Error"
)

var (
	// ErrUnknownTimezone is returned when a timezone identifier is empty or
	// cannot be resolved.
	ErrUnknownTimezone = errors.New("unknown timezone")
	// ErrFormatting covers every other failure while producing a clock string,
	// including time source failures.
	ErrFormatting = errors.New("formatting failed")
)

// Source supplies the current instant.
type Source interface {
	Now() (time.Time, error)
}

// SystemSource reads the system clock.
type SystemSource struct{}

// Now returns time.Now.
func (SystemSource) Now() (time.Time, error) {
	return time.Now(), nil
}

// FixedSource always returns the same instant.
type FixedSource time.Time

// Now returns the fixed instant.
func (s FixedSource) Now() (time.Time, error) {
	return time.Time(s), nil
}

// Formatter converts instants to wall-clock strings for a timezone.
// Resolved locations are cached; a Formatter is safe for concurrent use.
type Formatter struct {
	mu        sync.RWMutex
	locations map[string]*time.Location
	logger    *slog.Logger
}

// NewFormatter creates a new formatter.
func NewFormatter(logger *slog.Logger) *Formatter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Formatter{
		locations: make(map[string]*time.Location),
		logger:    logger,
	}
}

// Resolve looks up a timezone identifier. Errors wrap ErrUnknownTimezone.
func (f *Formatter) Resolve(timezoneID string) (*time.Location, error) {
	if timezoneID == "" {
		return nil, fmt.Errorf("%w: empty identifier", ErrUnknownTimezone)
	}

	f.mu.RLock()
	loc, ok := f.locations[timezoneID]
	f.mu.RUnlock()
	if ok {
		return loc, nil
	}

	loc, err := time.LoadLocation(timezoneID)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrUnknownTimezone, timezoneID, err)
	}

	f.mu.Lock()
	f.locations[timezoneID] = loc
	f.mu.Unlock()

	return loc, nil
}

// Format renders now in the given timezone as "hh:mm:ss AM/PM".
// An empty or unknown timezone yields InvalidTimezoneText; any other failure
// yields ErrorText and is logged. Format never panics.
func (f *Formatter) Format(timezoneID string, now time.Time) string {
	text, err := f.render(timezoneID, FixedSource(now))
	if errors.Is(err, ErrFormatting) {
		f.logger.Warn("failed to format time", "timezone", timezoneID, "error", err)
	}
	return text
}

// Render formats the current instant from src for a configured clock.
// Failures other than an unknown timezone are logged with the clock label.
func (f *Formatter) Render(cfg Config, src Source) string {
	text, err := f.render(cfg.TimezoneID, src)
	if errors.Is(err, ErrFormatting) {
		f.logger.Warn("failed to update clock",
			"label", cfg.Label,
			"timezone", cfg.TimezoneID,
			"error", err,
		)
	}
	return text
}

// render does the work for Format and Render. The timezone is resolved before
// the source is consulted, so an unknown timezone always wins.
func (f *Formatter) render(timezoneID string, src Source) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text = ErrorText
			err = fmt.Errorf("%w: panic: %v", ErrFormatting, r)
		}
	}()

	loc, err := f.Resolve(timezoneID)
	if err != nil {
		return InvalidTimezoneText, err
	}

	if src == nil {
		return ErrorText, fmt.Errorf("%w: no time source", ErrFormatting)
	}

	now, err := src.Now()
	if err != nil {
		return ErrorText, fmt.Errorf("%w: %w", ErrFormatting, err)
	}

	return now.In(loc).Format(TimeLayout), nil
}
