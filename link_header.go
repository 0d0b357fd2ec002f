// link_header.go
// --------------
// Parsing for the RFC 5988 Link header GitHub uses for pagination. The API
// has two cursor styles: most list endpoints use ?page=N and advertise a
// rel="last", while a few (public events, all-users) use an opaque ?since=
// cursor and never report a last page. Both styles are followed the same way,
// by chasing rel="next" URLs until the header disappears.
package githubbridge

import (
	"net/url"
	"strconv"
	"strings"
)

// PageLinks is the parsed pagination state of one response. URL fields are
// empty and page numbers zero when the corresponding relation was absent.
type PageLinks struct {
	NextURL  string
	PrevURL  string
	FirstURL string
	LastURL  string

	// NextPage and LastPage come from the page= query value of the
	// relation URLs. LastPage stays 0 for since-style cursors, which never
	// report how many pages remain.
	NextPage int
	LastPage int
}

// HasNext reports whether the server advertised a further page.
func (p PageLinks) HasNext() bool {
	return p.NextURL != ""
}

// parsePageLinks splits a Link header into its relations. Malformed segments
// are skipped rather than failing the response that carried them.
func parsePageLinks(header string) PageLinks {
	var links PageLinks
	for _, segment := range strings.Split(header, ",") {
		var linkURL, rel string
		for _, part := range strings.Split(segment, ";") {
			part = strings.TrimSpace(part)
			if strings.HasPrefix(part, "<") && strings.HasSuffix(part, ">") {
				linkURL = strings.Trim(part, "<>")
				continue
			}
			if idx := strings.Index(part, "="); idx != -1 && strings.EqualFold(part[:idx], "rel") {
				rel = strings.Trim(part[idx+1:], `"`)
			}
		}
		if linkURL == "" {
			continue
		}
		switch rel {
		case "next":
			links.NextURL = linkURL
			links.NextPage = pageNumberOf(linkURL)
		case "prev":
			links.PrevURL = linkURL
		case "first":
			links.FirstURL = linkURL
		case "last":
			links.LastURL = linkURL
			links.LastPage = pageNumberOf(linkURL)
		}
	}
	return links
}

// pageNumberOf extracts the page= query value of a relation URL, or 0 when
// the URL does not parse or paginates by since= cursor instead.
func pageNumberOf(rawURL string) int {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return 0
	}
	page, err := strconv.Atoi(parsed.Query().Get("page"))
	if err != nil || page < 0 {
		return 0
	}
	return page
}
