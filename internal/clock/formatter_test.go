package clock

import (
	"bytes"
	"errors"
	"log/slog"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var timePattern = regexp.MustCompile(`^\d{2}:\d{2}:\d{2} (AM|PM)$`)

type failingSource struct{ err error }

func (s failingSource) Now() (time.Time, error) { return time.Time{}, s.err }

type panickingSource struct{}

func (panickingSource) Now() (time.Time, error) { panic("clock source exploded") }

func TestFormat_Tokyo(t *testing.T) {
	f := NewFormatter(nil)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "09:00:00 AM", f.Format("Asia/Tokyo", now))
}

func TestFormat_KnownZones(t *testing.T) {
	f := NewFormatter(nil)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		timezone string
		want     string
	}{
		{"Asia/Kolkata", "05:30:00 AM"},
		{"Europe/Berlin", "01:00:00 AM"},
		{"America/New_York", "07:00:00 PM"},
		{"UTC", "12:00:00 AM"},
	}

	for _, tt := range tests {
		t.Run(tt.timezone, func(t *testing.T) {
			assert.Equal(t, tt.want, f.Format(tt.timezone, now))
		})
	}
}

func TestFormat_MatchesPattern(t *testing.T) {
	f := NewFormatter(nil)
	zones := []string{"Asia/Tokyo", "Asia/Kolkata", "Europe/Berlin", "America/Los_Angeles", "Australia/Sydney", "Pacific/Chatham"}
	instants := []time.Time{
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 31, 1, 30, 0, 0, time.UTC),
		time.Date(2024, 7, 15, 12, 0, 59, 0, time.UTC),
		time.Date(1999, 12, 31, 23, 59, 59, 0, time.UTC),
	}

	for _, tz := range zones {
		for _, now := range instants {
			assert.Regexp(t, timePattern, f.Format(tz, now), "%s at %s", tz, now)
		}
	}
}

func TestFormat_InvalidTimezone(t *testing.T) {
	f := NewFormatter(nil)
	now := time.Now()

	assert.Equal(t, InvalidTimezoneText, f.Format("", now))
	assert.Equal(t, InvalidTimezoneText, f.Format("Not/AZone", now))
}

func TestResolve(t *testing.T) {
	f := NewFormatter(nil)

	loc, err := f.Resolve("Asia/Tokyo")
	require.NoError(t, err)
	assert.Equal(t, "Asia/Tokyo", loc.String())

	// Second lookup is served from the cache.
	again, err := f.Resolve("Asia/Tokyo")
	require.NoError(t, err)
	assert.Same(t, loc, again)

	_, err = f.Resolve("Not/AZone")
	assert.ErrorIs(t, err, ErrUnknownTimezone)

	_, err = f.Resolve("")
	assert.ErrorIs(t, err, ErrUnknownTimezone)
}

func TestRender(t *testing.T) {
	f := NewFormatter(nil)
	fixed := FixedSource(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

	tests := []struct {
		name string
		cfg  Config
		src  Source
		want string
	}{
		{
			name: "valid",
			cfg:  Config{TimezoneID: "Asia/Tokyo", Label: "Japan"},
			src:  fixed,
			want: "09:00:00 AM",
		},
		{
			name: "missing timezone",
			cfg:  Config{Label: "Nowhere"},
			src:  fixed,
			want: InvalidTimezoneText,
		},
		{
			name: "unknown timezone wins over source failure",
			cfg:  Config{TimezoneID: "Not/AZone", Label: "Nowhere"},
			src:  failingSource{err: errors.New("no clock")},
			want: InvalidTimezoneText,
		},
		{
			name: "source failure",
			cfg:  Config{TimezoneID: "Asia/Tokyo", Label: "Japan"},
			src:  failingSource{err: errors.New("no clock")},
			want: ErrorText,
		},
		{
			name: "source panic",
			cfg:  Config{TimezoneID: "Asia/Tokyo", Label: "Japan"},
			src:  panickingSource{},
			want: ErrorText,
		},
		{
			name: "nil source",
			cfg:  Config{TimezoneID: "Asia/Tokyo", Label: "Japan"},
			src:  nil,
			want: ErrorText,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, f.Render(tt.cfg, tt.src))
		})
	}
}

func TestRender_ErrorKinds(t *testing.T) {
	f := NewFormatter(nil)

	_, err := f.render("Not/AZone", SystemSource{})
	assert.ErrorIs(t, err, ErrUnknownTimezone)
	assert.NotErrorIs(t, err, ErrFormatting)

	cause := errors.New("no clock")
	_, err = f.render("Asia/Tokyo", failingSource{err: cause})
	assert.ErrorIs(t, err, ErrFormatting)
	assert.ErrorIs(t, err, cause)
}

func TestRender_LogsFormattingFailure(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(slog.New(slog.NewTextHandler(&buf, nil)))

	text := f.Render(Config{TimezoneID: "Asia/Tokyo", Label: "Japan"}, failingSource{err: errors.New("clock unplugged")})
	require.Equal(t, ErrorText, text)

	out := buf.String()
	assert.Contains(t, out, "failed to update clock")
	assert.Contains(t, out, "label=Japan")
	assert.Contains(t, out, "timezone=Asia/Tokyo")
	assert.Contains(t, out, "clock unplugged")
}

func TestRender_UnknownTimezoneLogsNothing(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(slog.New(slog.NewTextHandler(&buf, nil)))

	assert.Equal(t, InvalidTimezoneText, f.Render(Config{TimezoneID: "Not/AZone", Label: "Nowhere"}, SystemSource{}))
	assert.Equal(t, InvalidTimezoneText, f.Format("", time.Now()))
	assert.Empty(t, buf.String())
}
