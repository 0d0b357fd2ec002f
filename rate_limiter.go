// rate_limiter.go
// ---------------
// This file defines the RateLimitTracker, which records the quota headers
// (X-RateLimit-Limit/Remaining/Reset) from each response. The tracker never
// throttles or delays calls; the server stays the authority on quota. It
// exists so callers can inspect the most recent snapshot and so the executor
// can log when the quota is exhausted instead of leaving the caller to
// decode a 403 body.
package githubbridge

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/opengovern/github-bridge/internal"
)

const (
	headerRateLimit     = "X-RateLimit-Limit"
	headerRateRemaining = "X-RateLimit-Remaining"
	headerRateReset     = "X-RateLimit-Reset"
)

type RateLimitTracker struct {
	mu     sync.Mutex
	latest *RateLimitInfo
	seenAt time.Time
}

func NewRateLimitTracker() *RateLimitTracker {
	return &RateLimitTracker{}
}

// Update stores the snapshot taken from a response. Nil snapshots (responses
// without quota headers) leave the previous one in place.
func (t *RateLimitTracker) Update(info *RateLimitInfo) {
	if info == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.latest = info
	t.seenAt = time.Now()
}

// Snapshot returns a copy of the most recent quota info, or nil when no
// response has carried quota headers yet.
func (t *RateLimitTracker) Snapshot() *RateLimitInfo {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.latest == nil {
		return nil
	}
	copied := *t.latest
	return &copied
}

// Exhausted reports whether the last snapshot shows zero remaining requests
// with a reset still in the future, and when the quota comes back.
func (t *RateLimitTracker) Exhausted() (time.Time, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.latest == nil || t.latest.Remaining == nil || *t.latest.Remaining > 0 {
		return time.Time{}, false
	}
	if t.latest.ResetAt == nil {
		return time.Time{}, false
	}
	resetAt := time.Unix(*t.latest.ResetAt, 0).UTC()
	if time.Now().After(resetAt) {
		return time.Time{}, false
	}
	return resetAt, true
}

// rateLimitFromHeaders parses the quota headers of one response. It returns
// nil when none of the three headers is present, so cached or proxied
// responses do not zero out a real snapshot.
func rateLimitFromHeaders(header http.Header) *RateLimitInfo {
	info := &RateLimitInfo{}
	present := false
	if value := header.Get(headerRateLimit); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			info.Limit = &parsed
			present = true
		}
	}
	if value := header.Get(headerRateRemaining); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			info.Remaining = &parsed
			present = true
		}
	}
	if value := header.Get(headerRateReset); value != "" {
		if resetTime, ok := internal.EpochSeconds(value); ok {
			epoch := resetTime.Unix()
			info.ResetAt = &epoch
			present = true
		}
	}
	if !present {
		return nil
	}
	return info
}
