package resources

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opengovern/github-bridge/mock"
)

func TestLabelsGetEscapesName(t *testing.T) {
	client, transport := newTestClient(t, mock.JSON(200, `{"id": 1, "name": "help wanted", "color": "008672"}`))

	label, err := client.Labels.Get("opengovern", "github-bridge", "help wanted")
	require.NoError(t, err)
	assert.Equal(t, "help wanted", label.Name)

	assert.Equal(t,
		"https://api.github.com/repos/opengovern/github-bridge/labels/help%20wanted",
		transport.Requests()[0].URL)
}

func TestLabelsAddToIssue(t *testing.T) {
	client, transport := newTestClient(t, mock.JSON(200, `[{"id": 1, "name": "bug"}, {"id": 2, "name": "p1"}]`))

	labels, err := client.Labels.AddToIssue("opengovern", "github-bridge", 7, []string{"bug", "p1"})
	require.NoError(t, err)
	require.Len(t, labels, 2)
	assert.Equal(t, "p1", labels[1].Name)

	requests := transport.Requests()
	require.Len(t, requests, 1)
	assert.Equal(t, "POST", requests[0].Method)
	assert.JSONEq(t, `{"labels": ["bug", "p1"]}`, requests[0].Body)
}

func TestLabelsSetForIssue(t *testing.T) {
	client, transport := newTestClient(t, mock.JSON(200, `[{"id": 1, "name": "triage"}]`))

	labels, err := client.Labels.SetForIssue("opengovern", "github-bridge", 7, []string{"triage"})
	require.NoError(t, err)
	require.Len(t, labels, 1)
	assert.Equal(t, "triage", labels[0].Name)

	requests := transport.Requests()
	require.Len(t, requests, 1)
	assert.Equal(t, "PUT", requests[0].Method)
	assert.Equal(t, "https://api.github.com/repos/opengovern/github-bridge/issues/7/labels", requests[0].URL)
	assert.JSONEq(t, `{"labels": ["triage"]}`, requests[0].Body)
}

func TestLabelsRemoveFromIssue(t *testing.T) {
	client, transport := newTestClient(t, mock.JSON(200, `[]`))

	err := client.Labels.RemoveFromIssue("opengovern", "github-bridge", 7, "help wanted")
	require.NoError(t, err)

	requests := transport.Requests()
	require.Len(t, requests, 1)
	assert.Equal(t, "DELETE", requests[0].Method)
	assert.Equal(t,
		"https://api.github.com/repos/opengovern/github-bridge/issues/7/labels/help%20wanted",
		requests[0].URL)
}
