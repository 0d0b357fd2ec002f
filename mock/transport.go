// Package mock provides a scripted http.RoundTripper so the client can be
// exercised without network access. Responses are served in the order they
// were enqueued; every request seen is recorded for assertions.
package mock

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
)

// Response is one scripted exchange.
type Response struct {
	StatusCode int
	Body       string
	Header     http.Header
}

// JSON builds a scripted JSON response.
func JSON(statusCode int, body string) Response {
	header := http.Header{}
	header.Set("Content-Type", "application/json; charset=utf-8")
	return Response{StatusCode: statusCode, Body: body, Header: header}
}

// WithHeader returns a copy of the response with one header added.
func (r Response) WithHeader(key, value string) Response {
	header := r.Header.Clone()
	if header == nil {
		header = http.Header{}
	}
	header.Set(key, value)
	r.Header = header
	return r
}

// RecordedRequest is one request the transport served, with its body drained
// so assertions can inspect it after the exchange.
type RecordedRequest struct {
	Method string
	URL    string
	Header http.Header
	Body   string
}

// Transport replays scripted responses in order. Exhausting the script makes
// further calls fail, which catches code issuing more requests than a test
// expects.
type Transport struct {
	mu        sync.Mutex
	scripted  []Response
	requests  []RecordedRequest
	nextIndex int
}

func NewTransport(responses ...Response) *Transport {
	return &Transport{scripted: responses}
}

// Enqueue appends one more scripted response.
func (t *Transport) Enqueue(response Response) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.scripted = append(t.scripted, response)
}

// Requests returns a copy of every request served so far.
func (t *Transport) Requests() []RecordedRequest {
	t.mu.Lock()
	defer t.mu.Unlock()
	copied := make([]RecordedRequest, len(t.requests))
	copy(copied, t.requests)
	return copied
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	var body []byte
	if req.Body != nil {
		body, _ = io.ReadAll(req.Body)
		req.Body.Close()
		req.Body = io.NopCloser(bytes.NewReader(body))
	}

	t.mu.Lock()
	t.requests = append(t.requests, RecordedRequest{
		Method: req.Method,
		URL:    req.URL.String(),
		Header: req.Header.Clone(),
		Body:   string(body),
	})
	if t.nextIndex >= len(t.scripted) {
		t.mu.Unlock()
		return nil, fmt.Errorf("mock: no scripted response for %s %s", req.Method, req.URL)
	}
	scripted := t.scripted[t.nextIndex]
	t.nextIndex++
	t.mu.Unlock()

	header := scripted.Header.Clone()
	if header == nil {
		header = http.Header{}
	}
	return &http.Response{
		StatusCode: scripted.StatusCode,
		Status:     fmt.Sprintf("%d %s", scripted.StatusCode, http.StatusText(scripted.StatusCode)),
		Header:     header,
		Body:       io.NopCloser(strings.NewReader(scripted.Body)),
		Request:    req,
	}, nil
}
