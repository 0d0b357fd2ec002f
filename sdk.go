// sdk.go
// ------
// The sdk.go file contains the core GitHubBridge struct and its methods.
// This is the main entry point of the library for users.
//
// Key functionalities include:
// - Initializing the client with NewGitHubBridge()
// - Making single calls via Execute() / ExecuteExtended()
// - Materializing paginated collections via FetchAll()
// - Mapping repository URLs to (owner, repository) pairs and back
// - Inspecting the most recent rate-limit snapshot
//
// The GitHubBridge wires a RequestExecutor, PageAggregator, ObjectNormalizer
// and RateLimitTracker together over one immutable Config, so every call
// sees the same settings for its whole duration.
package githubbridge

import (
	"net/http"
	"sync"

	"go.uber.org/zap"
)

type GitHubBridge struct {
	mu     sync.Mutex
	config *Config

	logger      *zap.Logger
	normalizer  *ObjectNormalizer
	rateTracker *RateLimitTracker
	executor    *RequestExecutor
	aggregator  *PageAggregator
	progress    ProgressReporter
	telemetry   TelemetryHook
}

// NewGitHubBridge builds a client from config. A nil config or zero fields
// fall back to DefaultConfig; the config is copied and never read again, so
// later mutation by the caller has no effect.
func NewGitHubBridge(config *Config) *GitHubBridge {
	bridge := &GitHubBridge{
		config:      config.withDefaults(),
		logger:      zap.NewNop(),
		rateTracker: NewRateLimitTracker(),
		progress:    nopProgressReporter{},
		telemetry:   nopTelemetryHook{},
	}
	bridge.normalizer = newObjectNormalizer(bridge.logger)
	bridge.executor = NewRequestExecutor(bridge)
	bridge.aggregator = NewPageAggregator(bridge)
	return bridge
}

// SetLogger routes the client's debug and warning output. Passing nil
// silences it again.
func (b *GitHubBridge) SetLogger(logger *zap.Logger) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if logger == nil {
		logger = zap.NewNop()
	}
	b.logger = logger
	b.normalizer = newObjectNormalizer(logger)
}

// SetProgressReporter installs the receiver for multi-page fetch progress.
// Passing nil restores the silent default.
func (b *GitHubBridge) SetProgressReporter(reporter ProgressReporter) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if reporter == nil {
		reporter = nopProgressReporter{}
	}
	b.progress = reporter
}

// SetTelemetryHook installs the observer for completed calls. Passing nil
// restores the no-op default.
func (b *GitHubBridge) SetTelemetryHook(hook TelemetryHook) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if hook == nil {
		hook = nopTelemetryHook{}
	}
	b.telemetry = hook
}

// SetHTTPClient replaces the underlying HTTP client, for callers that need a
// custom transport (proxies, recorded fixtures, mTLS). Passing nil restores
// the default client with the configured timeout.
func (b *GitHubBridge) SetHTTPClient(client *http.Client) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.executor.setClient(client)
}

// Execute runs one call and returns the decoded payload: a value tree for
// JSON responses, the raw text otherwise, nil for empty bodies.
func (b *GitHubBridge) Execute(req *Request) (interface{}, error) {
	response, err := b.executor.Execute(req)
	if err != nil {
		return nil, err
	}
	return response.Payload, nil
}

// ExecuteExtended runs one call and returns the full envelope with status
// code, headers, pagination links and the quota snapshot alongside the
// payload.
func (b *GitHubBridge) ExecuteExtended(req *Request) (*Response, error) {
	return b.executor.Execute(req)
}

// FetchAll follows pagination and returns the complete collection in server
// page order. With singlePage set only the first page is fetched.
func (b *GitHubBridge) FetchAll(req *Request, singlePage bool) ([]interface{}, error) {
	return b.aggregator.FetchAll(req, singlePage)
}

// RateLimitSnapshot returns a copy of the most recent quota headers seen on
// any response, or nil before the first call.
func (b *GitHubBridge) RateLimitSnapshot() *RateLimitInfo {
	return b.rateTracker.Snapshot()
}

// Config returns a copy of the effective settings.
func (b *GitHubBridge) Config() Config {
	return *b.config
}
