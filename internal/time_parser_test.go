package internal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  time.Time
		ok    bool
	}{
		{"rfc3339", "2021-01-05T12:00:00Z", time.Date(2021, 1, 5, 12, 0, 0, 0, time.UTC), true},
		{"rfc3339 with offset", "2021-01-05T12:00:00+02:00", time.Date(2021, 1, 5, 10, 0, 0, 0, time.UTC), true},
		{"zone-less", "2021-01-05T12:00:00", time.Date(2021, 1, 5, 12, 0, 0, 0, time.UTC), true},
		{"date only", "2021-01-05", time.Date(2021, 1, 5, 0, 0, 0, 0, time.UTC), true},
		{"surrounding whitespace", "  2021-01-05T12:00:00Z  ", time.Date(2021, 1, 5, 12, 0, 0, 0, time.UTC), true},
		{"empty", "", time.Time{}, false},
		{"not a date", "yesterday", time.Time{}, false},
		{"epoch seconds are not a layout", "1700000000", time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, ok := ParseTimestamp(tt.value)
			require.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.True(t, parsed.Equal(tt.want), "got %v, want %v", parsed, tt.want)
			}
		})
	}
}

func TestEpochSeconds(t *testing.T) {
	parsed, ok := EpochSeconds("1700000000")
	require.True(t, ok)
	assert.Equal(t, int64(1700000000), parsed.Unix())
	assert.Equal(t, time.UTC, parsed.Location())

	_, ok = EpochSeconds("")
	assert.False(t, ok)

	_, ok = EpochSeconds("soon")
	assert.False(t, ok)
}
