// page_aggregator.go
// ------------------
// This file defines the PageAggregator, which materializes collection
// endpoints by chasing rel="next" links until the server stops advertising
// one. Pages are fetched strictly one after another and concatenated in
// fetch order; a failure on any page discards everything accumulated so far,
// so callers get the complete collection or an error, never a prefix.
package githubbridge

import "net/http"

// PageAggregator follows pagination for a GitHubBridge.
type PageAggregator struct {
	bridge *GitHubBridge
}

func NewPageAggregator(bridge *GitHubBridge) *PageAggregator {
	return &PageAggregator{bridge: bridge}
}

// FetchAll fetches every page of a collection endpoint and returns the
// concatenated elements. Array payloads are flattened into the result;
// a non-array payload contributes one element. With singlePage set only the
// first page is fetched, still returning the flattened shape.
func (pa *PageAggregator) FetchAll(req *Request, singlePage bool) ([]interface{}, error) {
	descriptor := *req
	activity := descriptor.Description
	if activity == "" {
		activity = "Fetching " + descriptor.Path
	}

	// Complete always fires, so an aborted aggregation never leaves a
	// dangling progress indicator.
	defer pa.bridge.progress.Complete(activity)

	var results []interface{}
	page := 0
	totalPages := 0
	for {
		page++
		response, err := pa.bridge.executor.Execute(&descriptor)
		if err != nil {
			return nil, err
		}

		results = appendPayload(results, response.Payload)
		links := response.Pagination
		if links.LastPage > totalPages {
			totalPages = links.LastPage
		}
		pa.reportProgress(activity, page, totalPages, links.HasNext())

		if singlePage || !links.HasNext() {
			return results, nil
		}

		// Follow-ups always GET the absolute next URL; body and file
		// fields make no sense past the first page.
		descriptor.Path = links.NextURL
		descriptor.Method = http.MethodGet
		descriptor.Body = nil
		descriptor.InFile = ""
		descriptor.OutFile = ""
	}
}

// reportProgress emits one update per fetched page when the fetch is big
// enough to be worth narrating: a known total at or above the configured
// threshold, or an unknown-total cursor crawl (since-style endpoints never
// report a last page). Single-page fetches stay silent.
func (pa *PageAggregator) reportProgress(activity string, page, totalPages int, hasNext bool) {
	switch {
	case totalPages >= pa.bridge.config.ProgressThreshold:
		pa.bridge.progress.Update(activity, page, totalPages)
	case totalPages == 0 && (hasNext || page > 1):
		pa.bridge.progress.Update(activity, page, 0)
	}
}

// appendPayload flattens one page's payload into the accumulator. Empty
// payloads contribute nothing.
func appendPayload(results []interface{}, payload interface{}) []interface{} {
	switch typed := payload.(type) {
	case nil:
		return results
	case []interface{}:
		return append(results, typed...)
	case string:
		if typed == "" {
			return results
		}
		return append(results, typed)
	default:
		return append(results, typed)
	}
}
