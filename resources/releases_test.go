package resources

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opengovern/github-bridge/mock"
)

func TestReleasesGetLatest(t *testing.T) {
	body := `{
		"id": 1,
		"tag_name": "v1.0.0",
		"name": "v1.0.0",
		"draft": false,
		"prerelease": false,
		"upload_url": "https://uploads.github.com/repos/o/r/releases/1/assets{?name,label}",
		"created_at": "2021-02-27T19:35:32Z",
		"published_at": "2021-02-27T19:35:32Z"
	}`
	client, transport := newTestClient(t, mock.JSON(200, body))

	release, err := client.Releases.GetLatest("o", "r")
	require.NoError(t, err)

	assert.Equal(t, "v1.0.0", release.TagName)
	assert.Equal(t, "https://uploads.github.com/repos/o/r/releases/1/assets{?name,label}", release.UploadURL)
	assert.Equal(t, "https://api.github.com/repos/o/r/releases/latest", transport.Requests()[0].URL)
}

func TestReleasesUploadAsset(t *testing.T) {
	source := filepath.Join(t.TempDir(), "binary.txt")
	require.NoError(t, os.WriteFile(source, []byte("release bytes"), 0o644))

	assetBody := `{"id": 7, "name": "binary.txt", "state": "uploaded", "created_at": "2021-02-27T19:35:32Z"}`
	client, transport := newTestClient(t, mock.JSON(201, assetBody))

	release := &Release{
		ID:        1,
		UploadURL: "https://uploads.github.com/repos/o/r/releases/1/assets{?name,label}",
	}
	asset, err := client.Releases.UploadAsset(release, "binary.txt", source)
	require.NoError(t, err)
	assert.Equal(t, int64(7), asset.ID)

	requests := transport.Requests()
	require.Len(t, requests, 1)
	assert.Equal(t, "POST", requests[0].Method)
	assert.Equal(t, "https://uploads.github.com/repos/o/r/releases/1/assets?name=binary.txt", requests[0].URL)
	assert.Equal(t, "release bytes", requests[0].Body)
	assert.Contains(t, requests[0].Header.Get("Content-Type"), "text/plain")
}

func TestReleasesUploadAssetWithoutUploadURL(t *testing.T) {
	client, transport := newTestClient(t)

	_, err := client.Releases.UploadAsset(&Release{ID: 9}, "binary.txt", "ignored")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no upload URL")
	assert.Empty(t, transport.Requests())
}

func TestReleasesDownloadAsset(t *testing.T) {
	client, transport := newTestClient(t, mock.Response{StatusCode: 200, Body: "asset-bytes"})

	destination := filepath.Join(t.TempDir(), "binary.bin")
	asset := &ReleaseAsset{
		ID:   7,
		Name: "binary.bin",
		URL:  "https://api.github.com/repos/o/r/releases/assets/7",
	}
	saved, err := client.Releases.DownloadAsset(asset, destination)
	require.NoError(t, err)
	assert.Equal(t, destination, saved)

	written, err := os.ReadFile(destination)
	require.NoError(t, err)
	assert.Equal(t, "asset-bytes", string(written))

	requests := transport.Requests()
	require.Len(t, requests, 1)
	assert.Equal(t, "application/octet-stream, application/vnd.github.v3+json", requests[0].Header.Get("Accept"))
}

func TestExpandUploadURL(t *testing.T) {
	tests := []struct {
		name      string
		templated string
		assetName string
		want      string
	}{
		{
			name:      "hypermedia template",
			templated: "https://uploads.github.com/repos/o/r/releases/1/assets{?name,label}",
			assetName: "app.tgz",
			want:      "https://uploads.github.com/repos/o/r/releases/1/assets?name=app.tgz",
		},
		{
			name:      "no template suffix",
			templated: "https://uploads.github.com/repos/o/r/releases/1/assets",
			assetName: "app.tgz",
			want:      "https://uploads.github.com/repos/o/r/releases/1/assets?name=app.tgz",
		},
		{
			name:      "asset name is query escaped",
			templated: "https://uploads.github.com/x{?name,label}",
			assetName: "two words.txt",
			want:      "https://uploads.github.com/x?name=two+words.txt",
		},
		{"empty template", "", "app.tgz", ""},
		{"empty asset name", "https://uploads.github.com/x", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, expandUploadURL(tt.templated, tt.assetName))
		})
	}
}
