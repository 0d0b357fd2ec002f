// internal/time_parser.go
// ------------------------
// This internal package provides helper functions for parsing the timestamp
// formats the GitHub REST API emits. The API almost always returns RFC 3339
// strings ("2021-01-05T12:00:00Z"), but a few endpoints produce zone-less or
// date-only variants, and rate-limit headers carry epoch seconds.
//
// Functions:
// - ParseTimestamp: Convert an API date-time string into a time.Time.
// - EpochSeconds: Convert an epoch-seconds header value into a time.Time.
package internal

import (
	"strconv"
	"strings"
	"time"
)

// timestampLayouts are tried in order. RFC 3339 covers the vast majority of
// fields; the remaining layouts show up in commit payloads and legacy
// endpoints.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseTimestamp converts an API date-time string into a time.Time.
// The second return value reports whether any known layout matched.
func ParseTimestamp(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}

	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed, true
		}
	}

	return time.Time{}, false
}

// EpochSeconds converts an epoch-seconds string (as found in
// X-RateLimit-Reset) into a time.Time.
func EpochSeconds(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}

	seconds, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return time.Time{}, false
	}

	return time.Unix(seconds, 0).UTC(), true
}
