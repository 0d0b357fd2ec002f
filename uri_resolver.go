// uri_resolver.go
// ---------------
// URL handling for the two shapes callers pass around: repository URLs
// (web or API form) that need an (owner, repository) pair extracted, and
// request paths that need resolving against the configured API base.
//
// The public host is special-cased: api.github.com fronts github.com, while
// GitHub Enterprise serves the REST API under https://<host>/api/v3/.
package githubbridge

import (
	"net/url"
	"strings"
)

const publicHost = "github.com"

// SplitRepositoryURL extracts the owner and repository names from a
// repository URL in either the web form https://<host>/<owner>/<repo> or the
// API form https://api.<host>/repos/<owner>/<repo>. A www. prefix and any
// trailing path are tolerated. When the URL matches neither form both return
// values are empty; callers decide whether that is an error.
func SplitRepositoryURL(rawURL string) (owner, repository string) {
	parsed, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || parsed.Host == "" {
		return "", ""
	}
	if scheme := strings.ToLower(parsed.Scheme); scheme != "http" && scheme != "https" {
		return "", ""
	}

	host := strings.TrimPrefix(strings.ToLower(parsed.Hostname()), "www.")
	segments := splitPathSegments(parsed.EscapedPath())

	// API forms carry a "repos" prefix: api.<host>/repos/<owner>/<repo>
	// on the public host, <host>/api/v3/repos/<owner>/<repo> on
	// enterprise installs.
	if strings.HasPrefix(host, "api.") {
		segments = trimSegmentPrefix(segments, "repos")
	} else if len(segments) >= 3 && segments[0] == "api" && segments[1] == "v3" {
		segments = trimSegmentPrefix(segments[2:], "repos")
	}

	if len(segments) < 2 {
		return "", ""
	}
	return segments[0], segments[1]
}

// JoinRepositoryURL composes the canonical web URL for a repository on the
// configured host, regardless of which URL form the pair came from.
func (b *GitHubBridge) JoinRepositoryURL(owner, repository string) string {
	return "https://" + b.config.Host + "/" + owner + "/" + repository
}

// SplitRepositoryURL is the method form of the package-level splitter, kept
// so both directions of the mapping live on the client.
func (b *GitHubBridge) SplitRepositoryURL(rawURL string) (owner, repository string) {
	return SplitRepositoryURL(rawURL)
}

// resolveRequestURL turns a request path into the absolute URL to call. A
// path that already carries an http(s) scheme is used verbatim, which is how
// Link-header follow-ups resolve; anything else is joined to the API base
// for the configured host.
func resolveRequestURL(host, pathOrURL string) string {
	if hasURLScheme(pathOrURL) {
		return pathOrURL
	}
	return apiBaseURL(host) + strings.Trim(pathOrURL, "/")
}

// apiBaseURL computes the REST v3 root for a host. An empty host means the
// public service.
func apiBaseURL(host string) string {
	host = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(host)), "www.")
	if host == "" || host == publicHost {
		return "https://api." + publicHost + "/"
	}
	return "https://" + host + "/api/v3/"
}

func hasURLScheme(pathOrURL string) bool {
	lower := strings.ToLower(pathOrURL)
	return strings.HasPrefix(lower, "https://") || strings.HasPrefix(lower, "http://")
}

func splitPathSegments(escapedPath string) []string {
	var segments []string
	for _, segment := range strings.Split(escapedPath, "/") {
		if segment != "" {
			segments = append(segments, segment)
		}
	}
	return segments
}

// trimSegmentPrefix drops the expected leading segment, or returns nil when
// it is missing so the caller reports a non-match instead of misreading the
// path.
func trimSegmentPrefix(segments []string, prefix string) []string {
	if len(segments) == 0 || segments[0] != prefix {
		return nil
	}
	return segments[1:]
}
