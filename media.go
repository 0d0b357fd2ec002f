// media.go
// --------
// Accept header values for the REST v3 API. Most endpoints take the plain v3
// media type; a few still require an opt-in preview type, and raw/object
// variants select alternate content renderings.
package githubbridge

import "strings"

const (
	// MediaTypeV3 is the default accept header for every call.
	MediaTypeV3 = "application/vnd.github.v3+json"

	// MediaTypeRaw and MediaTypeObject select content renderings for the
	// repository contents endpoints.
	MediaTypeRaw    = "application/vnd.github.v3.raw"
	MediaTypeObject = "application/vnd.github.v3.object"

	// Preview media types for endpoints not yet in the stable surface.
	MediaTypeReactionsPreview = "application/vnd.github.squirrel-girl-preview+json"
	MediaTypeProjectsPreview  = "application/vnd.github.inertia-preview+json"
	MediaTypeTopicsPreview    = "application/vnd.github.mercy-preview+json"
)

// mergeAcceptHeaders combines the caller's accept values with the v3 default,
// deduplicating while preserving order. The default always comes last so a
// preview type stays the primary choice.
func mergeAcceptHeaders(values ...string) string {
	seen := make(map[string]bool, len(values)+1)
	var merged []string
	for _, value := range append(values, MediaTypeV3) {
		for _, part := range strings.Split(value, ",") {
			part = strings.TrimSpace(part)
			if part == "" || seen[part] {
				continue
			}
			seen[part] = true
			merged = append(merged, part)
		}
	}
	return strings.Join(merged, ", ")
}
