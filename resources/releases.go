package resources

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	githubbridge "github.com/opengovern/github-bridge"
)

// ReleasesService manages releases and their binary assets. Asset uploads go
// to the dedicated uploads host GitHub advertises through the release's
// hypermedia upload_url.
type ReleasesService struct {
	bridge *githubbridge.GitHubBridge
}

type Release struct {
	ID          int64     `json:"id"`
	TagName     string    `json:"tag_name"`
	Name        string    `json:"name"`
	Body        string    `json:"body"`
	Draft       bool      `json:"draft"`
	Prerelease  bool      `json:"prerelease"`
	HTMLURL     string    `json:"html_url"`
	UploadURL   string    `json:"upload_url"`
	Author      *User     `json:"author"`
	CreatedAt   time.Time `json:"created_at"`
	PublishedAt time.Time `json:"published_at"`
}

type ReleaseAsset struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Label         string    `json:"label"`
	State         string    `json:"state"`
	ContentType   string    `json:"content_type"`
	Size          int       `json:"size"`
	DownloadCount int       `json:"download_count"`
	URL           string    `json:"url"`
	CreatedAt     time.Time `json:"created_at"`
}

// ReleaseRequest is the body for release creation and update.
type ReleaseRequest struct {
	TagName         string `json:"tag_name"`
	TargetCommitish string `json:"target_commitish,omitempty"`
	Name            string `json:"name,omitempty"`
	Body            string `json:"body,omitempty"`
	Draft           bool   `json:"draft"`
	Prerelease      bool   `json:"prerelease"`
}

func (s *ReleasesService) List(owner, repo string) ([]Release, error) {
	pages, err := s.bridge.FetchAll(&githubbridge.Request{
		Path:        fmt.Sprintf("repos/%s/%s/releases", owner, repo),
		Description: fmt.Sprintf("Getting releases for %s/%s", owner, repo),
	}, false)
	if err != nil {
		return nil, err
	}
	var releases []Release
	if err := decodeValue(pages, &releases); err != nil {
		return nil, err
	}
	return releases, nil
}

func (s *ReleasesService) Get(owner, repo string, id int64) (*Release, error) {
	return s.get(fmt.Sprintf("repos/%s/%s/releases/%d", owner, repo, id),
		fmt.Sprintf("Getting release %d of %s/%s", id, owner, repo))
}

// GetLatest returns the newest published full release, skipping drafts and
// prereleases.
func (s *ReleasesService) GetLatest(owner, repo string) (*Release, error) {
	return s.get(fmt.Sprintf("repos/%s/%s/releases/latest", owner, repo),
		fmt.Sprintf("Getting latest release of %s/%s", owner, repo))
}

func (s *ReleasesService) get(path, activity string) (*Release, error) {
	payload, err := s.bridge.Execute(&githubbridge.Request{Path: path, Description: activity})
	if err != nil {
		return nil, err
	}
	var release Release
	if err := decodeValue(payload, &release); err != nil {
		return nil, err
	}
	return &release, nil
}

func (s *ReleasesService) Create(owner, repo string, request *ReleaseRequest) (*Release, error) {
	body, err := json.Marshal(request)
	if err != nil {
		return nil, err
	}
	payload, err := s.bridge.Execute(&githubbridge.Request{
		Method:      "POST",
		Path:        fmt.Sprintf("repos/%s/%s/releases", owner, repo),
		Body:        body,
		Description: fmt.Sprintf("Creating release %s in %s/%s", request.TagName, owner, repo),
	})
	if err != nil {
		return nil, err
	}
	var release Release
	if err := decodeValue(payload, &release); err != nil {
		return nil, err
	}
	return &release, nil
}

func (s *ReleasesService) Update(owner, repo string, id int64, request *ReleaseRequest) (*Release, error) {
	body, err := json.Marshal(request)
	if err != nil {
		return nil, err
	}
	payload, err := s.bridge.Execute(&githubbridge.Request{
		Method:      "PATCH",
		Path:        fmt.Sprintf("repos/%s/%s/releases/%d", owner, repo, id),
		Body:        body,
		Description: fmt.Sprintf("Updating release %d of %s/%s", id, owner, repo),
	})
	if err != nil {
		return nil, err
	}
	var release Release
	if err := decodeValue(payload, &release); err != nil {
		return nil, err
	}
	return &release, nil
}

func (s *ReleasesService) Delete(owner, repo string, id int64) error {
	_, err := s.bridge.Execute(&githubbridge.Request{
		Method:      "DELETE",
		Path:        fmt.Sprintf("repos/%s/%s/releases/%d", owner, repo, id),
		Description: fmt.Sprintf("Deleting release %d of %s/%s", id, owner, repo),
	})
	return err
}

func (s *ReleasesService) ListAssets(owner, repo string, id int64) ([]ReleaseAsset, error) {
	pages, err := s.bridge.FetchAll(&githubbridge.Request{
		Path:        fmt.Sprintf("repos/%s/%s/releases/%d/assets", owner, repo, id),
		Description: fmt.Sprintf("Getting assets of release %d in %s/%s", id, owner, repo),
	}, false)
	if err != nil {
		return nil, err
	}
	var assets []ReleaseAsset
	if err := decodeValue(pages, &assets); err != nil {
		return nil, err
	}
	return assets, nil
}

// UploadAsset streams a local file to the release's upload URL. The asset
// name defaults to the file's base name; the content type is inferred from
// the extension.
func (s *ReleasesService) UploadAsset(release *Release, assetName, filePath string) (*ReleaseAsset, error) {
	uploadURL := expandUploadURL(release.UploadURL, assetName)
	if uploadURL == "" {
		return nil, fmt.Errorf("release %d carries no upload URL", release.ID)
	}
	payload, err := s.bridge.Execute(&githubbridge.Request{
		Method:      "POST",
		Path:        uploadURL,
		InFile:      filePath,
		Description: "Uploading release asset " + assetName,
	})
	if err != nil {
		return nil, err
	}
	var asset ReleaseAsset
	if err := decodeValue(payload, &asset); err != nil {
		return nil, err
	}
	return &asset, nil
}

// DownloadAsset saves an asset's binary content to destPath and returns the
// path written.
func (s *ReleasesService) DownloadAsset(asset *ReleaseAsset, destPath string) (string, error) {
	response, err := s.bridge.ExecuteExtended(&githubbridge.Request{
		Path:         asset.URL,
		AcceptHeader: "application/octet-stream",
		OutFile:      destPath,
		Description:  "Downloading release asset " + asset.Name,
	})
	if err != nil {
		return "", err
	}
	return response.SavedTo, nil
}

// expandUploadURL resolves the {?name,label} URI template GitHub embeds in
// upload_url into a concrete URL for one asset name.
func expandUploadURL(templated, assetName string) string {
	if templated == "" || assetName == "" {
		return ""
	}
	base := templated
	if idx := strings.Index(base, "{"); idx != -1 {
		base = base[:idx]
	}
	return base + "?name=" + url.QueryEscape(assetName)
}
