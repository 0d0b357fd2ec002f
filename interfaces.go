package githubbridge

import (
	"time"

	"go.uber.org/zap"
)

// ProgressReporter receives page-by-page updates during a multi-page fetch.
// Update is called once per fetched page; Complete is always called when the
// fetch ends, successfully or not, so indicators never dangle.
type ProgressReporter interface {
	// Update reports the page just fetched. totalPages is 0 when the
	// server paginates with an opaque cursor and the total is unknown.
	Update(activity string, page, totalPages int)
	Complete(activity string)
}

// TelemetryHook observes completed calls. Implementations must be fast and
// must not block; the executor calls them synchronously.
type TelemetryHook interface {
	// RequestDone fires once per logical call, after retries, with the
	// final status code (0 for transport failures), the attempt count,
	// and the wall time including retry sleeps.
	RequestDone(method, url string, statusCode, attempts int, elapsed time.Duration, requestID string)
}

// nopProgressReporter silences progress output. It is the default.
type nopProgressReporter struct{}

func (nopProgressReporter) Update(string, int, int) {}
func (nopProgressReporter) Complete(string)         {}

// nopTelemetryHook drops all telemetry. It is the default.
type nopTelemetryHook struct{}

func (nopTelemetryHook) RequestDone(string, string, int, int, time.Duration, string) {}

// ZapProgressReporter writes progress lines to a zap logger, one Info per
// page and one on completion.
type ZapProgressReporter struct {
	Logger *zap.Logger
}

func (r ZapProgressReporter) Update(activity string, page, totalPages int) {
	if r.Logger == nil {
		return
	}
	if totalPages > 0 {
		r.Logger.Info(activity, zap.Int("page", page), zap.Int("total_pages", totalPages))
		return
	}
	r.Logger.Info(activity, zap.Int("page", page), zap.String("total_pages", "unknown"))
}

func (r ZapProgressReporter) Complete(activity string) {
	if r.Logger == nil {
		return
	}
	r.Logger.Info(activity + ": complete")
}

// ZapTelemetryHook logs one debug line per completed call.
type ZapTelemetryHook struct {
	Logger *zap.Logger
}

func (h ZapTelemetryHook) RequestDone(method, url string, statusCode, attempts int, elapsed time.Duration, requestID string) {
	if h.Logger == nil {
		return
	}
	h.Logger.Debug("request done",
		zap.String("method", method),
		zap.String("url", url),
		zap.Int("status", statusCode),
		zap.Int("attempts", attempts),
		zap.Duration("elapsed", elapsed),
		zap.String("request_id", requestID))
}
