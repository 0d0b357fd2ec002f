package resources

import (
	"fmt"
	"net/url"
	"time"

	githubbridge "github.com/opengovern/github-bridge"
)

// PackagesService reads GitHub Packages, including the container packages
// behind ghcr.io.
type PackagesService struct {
	bridge *githubbridge.GitHubBridge
}

type Package struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	PackageType string    `json:"package_type"`
	Visibility  string    `json:"visibility"`
	HTMLURL     string    `json:"html_url"`
	URL         string    `json:"url"`
	Owner       *User     `json:"owner"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type PackageVersion struct {
	ID             int64             `json:"id"`
	Name           string            `json:"name"`
	URL            string            `json:"url"`
	PackageHTMLURL string            `json:"package_html_url"`
	HTMLURL        string            `json:"html_url"`
	Metadata       ContainerMetadata `json:"metadata"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

// ContainerMetadata carries the tags of a container package version.
type ContainerMetadata struct {
	PackageType string `json:"package_type"`
	Container   struct {
		Tags []string `json:"tags"`
	} `json:"container"`
}

// ListForOrg lists an organization's packages of one type ("container",
// "npm", "maven", ...).
func (s *PackagesService) ListForOrg(org, packageType string) ([]Package, error) {
	pages, err := s.bridge.FetchAll(&githubbridge.Request{
		Path:        fmt.Sprintf("orgs/%s/packages?package_type=%s", org, url.QueryEscape(packageType)),
		Description: fmt.Sprintf("Getting %s packages for %s", packageType, org),
	}, false)
	if err != nil {
		return nil, err
	}
	var packages []Package
	if err := decodeValue(pages, &packages); err != nil {
		return nil, err
	}
	return packages, nil
}

// ListVersions lists every version of one package. Package names may contain
// slashes (nested container paths) and are escaped segment by segment.
func (s *PackagesService) ListVersions(org, packageType, packageName string) ([]PackageVersion, error) {
	pages, err := s.bridge.FetchAll(&githubbridge.Request{
		Path: fmt.Sprintf("orgs/%s/packages/%s/%s/versions",
			org, url.PathEscape(packageType), url.PathEscape(packageName)),
		Description: fmt.Sprintf("Getting versions of %s/%s", org, packageName),
	}, false)
	if err != nil {
		return nil, err
	}
	var versions []PackageVersion
	if err := decodeValue(pages, &versions); err != nil {
		return nil, err
	}
	return versions, nil
}
