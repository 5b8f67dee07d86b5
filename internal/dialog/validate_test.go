package dialog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDeadline_TodayAcceptedInAnyZone(t *testing.T) {
	zones := []*time.Location{
		time.UTC,
		time.FixedZone("UTC-5", -5*3600),
		time.FixedZone("UTC+5", 5*3600),
	}
	for _, loc := range zones {
		now := time.Date(2026, 8, 28, 10, 0, 0, 0, loc)

		deadline, parsed, future := parseDeadline("2026-08-28", now)
		require.True(t, parsed, "zone %s", loc)
		assert.True(t, future, "today's date must be accepted in zone %s", loc)
		assert.Equal(t, time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC), deadline)

		_, parsed, future = parseDeadline("2026-08-27", now)
		assert.True(t, parsed, "zone %s", loc)
		assert.False(t, future, "yesterday must be rejected in zone %s", loc)
	}
}

func TestParseDeadline_BadFormat(t *testing.T) {
	now := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	for _, text := range []string{"tomorrow", "28.08.2026", "2026-13-01", ""} {
		_, parsed, _ := parseDeadline(text, now)
		assert.False(t, parsed, "input %q", text)
	}
}
