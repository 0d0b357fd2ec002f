// errors.go
// ---------
// This file defines the error taxonomy surfaced by the RequestExecutor and
// PageAggregator. Every hard failure is one of four types, each rendering a
// single multi-line diagnostic so callers can display it as-is:
//
//   - ValidationError:     malformed request descriptor, caught before any I/O
//   - TransportError:      no HTTP response at all (DNS, refused, timeout)
//   - HTTPError:           a non-2xx/non-202 response, with the server's
//     structured message when the body carries one
//   - RetryExhaustedError: a 202 "still computing" response retried past the
//     configured limit
//
// All four are immutable after construction and work with errors.As.
package githubbridge

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// requestIDHeader carries GitHub's correlation id for a single API call.
const requestIDHeader = "X-GitHub-Request-Id"

// ValidationError reports a request descriptor that violates the composition
// rules (body on a GET, body and input file together, unknown method).
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid request: " + e.Reason
}

// TransportError reports a failure that produced no HTTP response. These are
// never retried: with no status code there is no evidence a retry is safe.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport failure calling %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ErrorDetail is one entry of the detail array GitHub attaches to validation
// failures. Fields not present in the entry stay empty.
type ErrorDetail struct {
	Resource string `json:"resource"`
	Field    string `json:"field"`
	Code     string `json:"code"`
	Message  string `json:"message"`
}

func (d ErrorDetail) render() string {
	var parts []string
	if d.Resource != "" || d.Field != "" {
		name := d.Resource
		if d.Field != "" {
			name = strings.TrimPrefix(name+"."+d.Field, ".")
		}
		parts = append(parts, name)
	}
	if d.Code != "" {
		parts = append(parts, "("+d.Code+")")
	}
	if d.Message != "" {
		parts = append(parts, d.Message)
	}
	return strings.Join(parts, " ")
}

// HTTPError reports a response with a failing status code. Message,
// DocumentationURL and Details are populated when the body is the standard
// GitHub error shape; otherwise the raw body is kept as the diagnostic.
type HTTPError struct {
	StatusCode       int
	Status           string
	Message          string
	DocumentationURL string
	Details          []ErrorDetail
	RawBody          string
	RequestID        string
}

func (e *HTTPError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "github API request failed: %s", e.Status)
	if e.Message != "" {
		b.WriteString("\n" + e.Message)
		if e.DocumentationURL != "" {
			b.WriteString(" | " + e.DocumentationURL)
		}
	} else if e.RawBody != "" {
		b.WriteString("\n" + e.RawBody)
	}
	for _, detail := range e.Details {
		if rendered := detail.render(); rendered != "" {
			b.WriteString("\n" + rendered)
		}
	}
	if e.StatusCode == http.StatusNotFound {
		b.WriteString("\nA 404 can mean the resource is private: the token may lack the required scopes.")
	}
	if e.RequestID != "" {
		b.WriteString("\nRequest id: " + e.RequestID)
	}
	return b.String()
}

// RetryExhaustedError reports that a GET kept answering 202 Accepted past the
// configured retry budget.
type RetryExhaustedError struct {
	Attempts int
	Delay    time.Duration
	URL      string
}

func (e *RetryExhaustedError) Error() string {
	return fmt.Sprintf("%s still answered 202 (not ready) after %d attempts %v apart; giving up", e.URL, e.Attempts, e.Delay)
}

// githubErrorBody is the wire shape of GitHub's structured error responses.
// Real responses use "errors"; some enterprise proxies emit "details", so
// both are accepted.
type githubErrorBody struct {
	Message          string        `json:"message"`
	DocumentationURL string        `json:"documentation_url"`
	Details          []ErrorDetail `json:"details"`
	Errors           []ErrorDetail `json:"errors"`
}

// classifyHTTPError builds the HTTPError for a failing response. The body is
// decoded as the structured error shape when possible; any other JSON or
// plain text is carried verbatim as the diagnostic trail.
func classifyHTTPError(statusCode int, status string, header http.Header, body []byte) *HTTPError {
	httpErr := &HTTPError{
		StatusCode: statusCode,
		Status:     status,
		RawBody:    string(body),
		RequestID:  header.Get(requestIDHeader),
	}

	var parsed githubErrorBody
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Message != "" {
		httpErr.Message = parsed.Message
		httpErr.DocumentationURL = parsed.DocumentationURL
		httpErr.Details = append(parsed.Details, parsed.Errors...)
	}

	return httpErr
}

// IsNotFound reports whether err is an HTTPError with status 404. Resource
// packages use it to turn "does X exist" probes into explicit found/not-found
// results instead of error control flow.
func IsNotFound(err error) bool {
	var httpErr *HTTPError
	return errors.As(err, &httpErr) && httpErr.StatusCode == http.StatusNotFound
}
