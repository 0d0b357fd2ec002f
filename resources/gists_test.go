package resources

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opengovern/github-bridge/mock"
)

func TestGistsIsStarred(t *testing.T) {
	t.Run("starred", func(t *testing.T) {
		client, _ := newTestClient(t, mock.Response{StatusCode: http.StatusNoContent})

		starred, err := client.Gists.IsStarred("aa5a315d61ae9438b18d")
		require.NoError(t, err)
		assert.True(t, starred)
	})

	t.Run("not starred answers 404", func(t *testing.T) {
		client, _ := newTestClient(t, mock.JSON(404, `{"message": "Not Found"}`))

		starred, err := client.Gists.IsStarred("aa5a315d61ae9438b18d")
		require.NoError(t, err, "a 404 on the star probe is an answer, not a failure")
		assert.False(t, starred)
	})

	t.Run("other failures propagate", func(t *testing.T) {
		client, _ := newTestClient(t, mock.JSON(500, `{"message": "boom"}`))

		_, err := client.Gists.IsStarred("aa5a315d61ae9438b18d")
		require.Error(t, err)
	})
}

func TestGistsCreate(t *testing.T) {
	responseBody := `{
		"id": "aa5a315d61ae9438b18d",
		"description": "Hello World Examples",
		"public": true,
		"files": {"hello.go": {"filename": "hello.go", "language": "Go", "size": 78}},
		"created_at": "2021-04-14T02:15:15Z",
		"updated_at": "2021-04-14T02:15:15Z"
	}`
	client, transport := newTestClient(t, mock.JSON(201, responseBody))

	gist, err := client.Gists.Create(&GistRequest{
		Description: "Hello World Examples",
		Public:      true,
		Files:       map[string]*GistFile{"hello.go": {Content: "package main"}},
	})
	require.NoError(t, err)

	assert.Equal(t, "aa5a315d61ae9438b18d", gist.ID)
	require.Contains(t, gist.Files, "hello.go")
	assert.Equal(t, "Go", gist.Files["hello.go"].Language)
	assert.False(t, gist.CreatedAt.IsZero())

	requests := transport.Requests()
	require.Len(t, requests, 1)
	assert.Equal(t, "POST", requests[0].Method)
	assert.Equal(t, "https://api.github.com/gists", requests[0].URL)
	assert.Contains(t, requests[0].Body, `"package main"`)
}

func TestGistsStarUnstar(t *testing.T) {
	client, transport := newTestClient(t,
		mock.Response{StatusCode: http.StatusNoContent},
		mock.Response{StatusCode: http.StatusNoContent})

	require.NoError(t, client.Gists.Star("aa5a315d61ae9438b18d"))
	require.NoError(t, client.Gists.Unstar("aa5a315d61ae9438b18d"))

	requests := transport.Requests()
	require.Len(t, requests, 2)
	assert.Equal(t, http.MethodPut, requests[0].Method)
	assert.Equal(t, http.MethodDelete, requests[1].Method)
	assert.Equal(t, "https://api.github.com/gists/aa5a315d61ae9438b18d/star", requests[0].URL)
}
