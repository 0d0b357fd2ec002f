// request_executor.go
// -------------------
// This file defines the RequestExecutor, which runs exactly one logical call
// against the REST API. A logical call is one or more physical attempts:
// GitHub answers 202 Accepted on endpoints whose result is still being
// computed (statistics, forks), and the executor re-issues such GETs after a
// configured delay until the result arrives or the retry budget runs out.
//
// Everything here is synchronous. The caller's goroutine blocks for the HTTP
// exchange, for 202 retry sleeps, and for the optional settle delay after a
// mutation. Non-202 failures are never retried.
package githubbridge

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
)

const defaultContentType = "application/json; charset=UTF-8"

// RequestExecutor issues requests on behalf of a GitHubBridge, applying its
// retry policy and classifying failures.
type RequestExecutor struct {
	bridge *GitHubBridge
	client *http.Client
}

func NewRequestExecutor(bridge *GitHubBridge) *RequestExecutor {
	return &RequestExecutor{
		bridge: bridge,
		client: &http.Client{Timeout: bridge.config.RequestTimeout},
	}
}

// setClient swaps the HTTP client. Nil restores the default client with the
// configured timeout.
func (re *RequestExecutor) setClient(client *http.Client) {
	if client == nil {
		client = &http.Client{Timeout: re.bridge.config.RequestTimeout}
	}
	re.client = client
}

// rawResponse is one physical attempt's outcome, with the body fully read so
// the connection is returned to the pool before any retry sleep.
type rawResponse struct {
	statusCode int
	status     string
	header     http.Header
	body       []byte
}

// Execute runs one logical call and returns its envelope. Errors are always
// one of ValidationError, TransportError, HTTPError or RetryExhaustedError.
func (re *RequestExecutor) Execute(req *Request) (*Response, error) {
	method, err := validateRequest(req)
	if err != nil {
		return nil, err
	}

	body := req.Body
	if req.InFile != "" {
		body, err = os.ReadFile(req.InFile)
		if err != nil {
			return nil, fmt.Errorf("read upload file: %w", err)
		}
	}

	config := re.bridge.config
	logger := re.bridge.logger
	fullURL := resolveRequestURL(config.Host, req.Path)
	header := re.buildHeader(req, len(body) > 0)

	start := time.Now()
	report := func(statusCode int, requestID string, attempts int) {
		re.bridge.telemetry.RequestDone(method, fullURL, statusCode, attempts, time.Since(start), requestID)
	}

	attempts := 0
	for {
		logger.Debug("issuing request",
			zap.String("method", method),
			zap.String("url", fullURL),
			zap.Int("attempt", attempts+1))

		raw, err := re.attempt(method, fullURL, header, body)
		if err != nil {
			report(0, "", attempts+1)
			return nil, err
		}

		re.observeRateLimit(raw.header)

		if raw.statusCode == http.StatusAccepted {
			if method != http.MethodGet {
				// A 202 from a mutation is its real answer, not a
				// "try again" signal. Repeating the call would repeat
				// the side effect.
				logger.Debug("mutation answered 202, returning as-is",
					zap.String("url", fullURL))
				return re.buildResponse(req, method, raw, attempts+1, report)
			}
			if config.RetryDelay <= 0 {
				logger.Debug("result not ready (202) and retries disabled, returning as-is",
					zap.String("url", fullURL))
				return re.buildResponse(req, method, raw, attempts+1, report)
			}
			if attempts >= config.MaxRetries {
				report(raw.statusCode, raw.header.Get(requestIDHeader), attempts+1)
				return nil, &RetryExhaustedError{
					Attempts: attempts + 1,
					Delay:    config.RetryDelay,
					URL:      fullURL,
				}
			}
			logger.Debug("result not ready (202), waiting before retry",
				zap.String("url", fullURL),
				zap.Duration("delay", config.RetryDelay),
				zap.Int("attempt", attempts+1),
				zap.Int("max_retries", config.MaxRetries))
			time.Sleep(config.RetryDelay)
			attempts++
			continue
		}

		if raw.statusCode >= 400 {
			httpErr := classifyHTTPError(raw.statusCode, raw.status, raw.header, raw.body)
			report(raw.statusCode, httpErr.RequestID, attempts+1)
			return nil, httpErr
		}

		return re.buildResponse(req, method, raw, attempts+1, report)
	}
}

// attempt performs one physical HTTP exchange.
func (re *RequestExecutor) attempt(method, fullURL string, header http.Header, body []byte) (*rawResponse, error) {
	httpReq, err := http.NewRequest(method, fullURL, bytes.NewReader(body))
	if err != nil {
		return nil, &ValidationError{Reason: fmt.Sprintf("cannot build request for %q: %v", fullURL, err)}
	}
	httpReq.Header = header.Clone()

	resp, err := re.client.Do(httpReq)
	if err != nil {
		return nil, &TransportError{URL: fullURL, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{URL: fullURL, Err: err}
	}

	return &rawResponse{
		statusCode: resp.StatusCode,
		status:     resp.Status,
		header:     resp.Header,
		body:       data,
	}, nil
}

// buildHeader assembles the outgoing header set once per logical call.
// Caller-supplied Headers are applied last so conditional-request headers
// (If-None-Match, If-Modified-Since) and overrides win.
func (re *RequestExecutor) buildHeader(req *Request, hasBody bool) http.Header {
	config := re.bridge.config
	header := http.Header{}
	header.Set("Accept", mergeAcceptHeaders(req.AcceptHeader))
	header.Set("User-Agent", config.UserAgent)

	token := req.AuthToken
	if token == "" {
		token = config.AuthToken
	}
	if token != "" {
		header.Set("Authorization", "token "+token)
	}

	if hasBody {
		contentType := req.ContentType
		if contentType == "" && req.InFile != "" {
			contentType = uploadContentType(req.InFile)
		}
		if contentType == "" {
			contentType = defaultContentType
		}
		header.Set("Content-Type", contentType)
	}

	for key, value := range req.Headers {
		header.Set(key, value)
	}
	return header
}

// buildResponse turns the final physical response into the caller-facing
// envelope: save-to-file or decode, normalize, extract pagination and quota
// headers, then apply the settle delay for mutations.
func (re *RequestExecutor) buildResponse(req *Request, method string, raw *rawResponse, attempts int, report func(int, string, int)) (*Response, error) {
	config := re.bridge.config
	logger := re.bridge.logger

	response := &Response{
		StatusCode:   raw.statusCode,
		Headers:      lowercaseHeaders(raw.header),
		RequestID:    raw.header.Get(requestIDHeader),
		Pagination:   parsePageLinks(raw.header.Get("Link")),
		RateLimit:    rateLimitFromHeaders(raw.header),
		ETag:         raw.header.Get("ETag"),
		LastModified: raw.header.Get("Last-Modified"),
	}

	if req.OutFile != "" {
		if err := os.WriteFile(req.OutFile, raw.body, 0o644); err != nil {
			report(raw.statusCode, response.RequestID, attempts)
			return nil, fmt.Errorf("save response body to %s: %w", req.OutFile, err)
		}
		response.SavedTo = req.OutFile
	} else {
		response.Payload = re.decodePayload(raw)
	}

	if method != http.MethodGet && config.StateChangeDelay > 0 {
		logger.Debug("letting mutation settle before returning",
			zap.Duration("delay", config.StateChangeDelay))
		time.Sleep(config.StateChangeDelay)
	}

	report(raw.statusCode, response.RequestID, attempts)
	return response, nil
}

// decodePayload decodes a JSON body into a value tree and normalizes date
// fields. Decode failure is a soft condition: the raw text becomes the
// payload and a log line records why.
func (re *RequestExecutor) decodePayload(raw *rawResponse) interface{} {
	if len(raw.body) == 0 {
		return nil
	}
	if !jsonContentType(raw.header.Get("Content-Type")) {
		return string(raw.body)
	}

	var decoded interface{}
	if err := json.Unmarshal(raw.body, &decoded); err != nil {
		re.bridge.logger.Debug("response body did not decode as JSON, returning raw text",
			zap.Error(err))
		return string(raw.body)
	}
	if re.bridge.config.DisableNormalization {
		return decoded
	}
	return re.bridge.normalizer.Normalize(decoded)
}

// observeRateLimit feeds the tracker and warns once the quota is spent.
func (re *RequestExecutor) observeRateLimit(header http.Header) {
	info := rateLimitFromHeaders(header)
	if info == nil {
		return
	}
	re.bridge.rateTracker.Update(info)
	if resetAt, exhausted := re.bridge.rateTracker.Exhausted(); exhausted {
		re.bridge.logger.Warn("rate limit exhausted",
			zap.Time("resets_at", resetAt))
	}
}

// validateRequest checks descriptor composition rules before any I/O and
// returns the normalized method.
func validateRequest(req *Request) (string, error) {
	method := strings.ToUpper(strings.TrimSpace(req.Method))
	if method == "" {
		method = http.MethodGet
	}
	switch method {
	case http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodPut, http.MethodDelete:
	default:
		return "", &ValidationError{Reason: fmt.Sprintf("unsupported method %q", req.Method)}
	}
	if strings.TrimSpace(req.Path) == "" {
		return "", &ValidationError{Reason: "request path is empty"}
	}
	if len(req.Body) > 0 && method == http.MethodGet {
		return "", &ValidationError{Reason: "a GET request cannot carry a body"}
	}
	if req.InFile != "" {
		if method != http.MethodPost {
			return "", &ValidationError{Reason: "file uploads require POST"}
		}
		if len(req.Body) > 0 {
			return "", &ValidationError{Reason: "InFile and Body are mutually exclusive"}
		}
	}
	return method, nil
}

// uploadContentType infers the Content-Type for a file upload from its
// extension, falling back to text/plain.
func uploadContentType(path string) string {
	if byExtension := mime.TypeByExtension(filepath.Ext(path)); byExtension != "" {
		return byExtension
	}
	return "text/plain"
}

// jsonContentType reports whether a Content-Type names a JSON payload,
// including the vendored variants like application/vnd.github.v3+json.
func jsonContentType(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))
	}
	return strings.HasSuffix(mediaType, "/json") || strings.HasSuffix(mediaType, "+json")
}

// lowercaseHeaders flattens a header map to single values with lowercased
// keys, the shape the Response envelope exposes.
func lowercaseHeaders(header http.Header) map[string]string {
	flattened := make(map[string]string, len(header))
	for key, values := range header {
		if len(values) > 0 {
			flattened[strings.ToLower(key)] = values[0]
		}
	}
	return flattened
}
