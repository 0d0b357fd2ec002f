package githubbridge

// Request describes a single REST call before resolution. Path may be a
// bare fragment ("repos/owner/name"), an absolute API path ("/repos/..."),
// or a fully qualified URL returned by a previous response.
type Request struct {
	Method       string
	Path         string
	Body         []byte
	AcceptHeader string
	ContentType  string
	Headers      map[string]string

	// AuthToken overrides the client-wide token for this call only.
	AuthToken string

	// InFile streams a local file as the request body; mutually exclusive
	// with Body. OutFile writes the raw response body to a local path
	// instead of decoding it.
	InFile  string
	OutFile string

	// Description labels the call in logs and progress output.
	Description string
}

// Response is the envelope for one completed call. Payload holds the decoded
// JSON tree (maps, slices, scalars), the raw body string when decoding was
// not possible, or nil for empty bodies. SavedTo is set only when the request
// asked for OutFile.
type Response struct {
	Payload    interface{}
	SavedTo    string
	StatusCode int
	Headers    map[string]string

	RequestID    string
	Pagination   PageLinks
	RateLimit    *RateLimitInfo
	ETag         string
	LastModified string
}

// RateLimitInfo is the quota snapshot taken from a response's rate-limit
// headers. Fields are nil when the server did not send the header.
type RateLimitInfo struct {
	Limit     *int
	Remaining *int
	ResetAt   *int64
}
