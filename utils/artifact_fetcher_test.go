package utils

import (
	"context"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCredentialFunc(t *testing.T) {
	encoded := base64.StdEncoding.EncodeToString([]byte("octocat:ghp_token"))
	resolve := credentialFunc(map[string]string{"ghcr.io": encoded})

	t.Run("known host", func(t *testing.T) {
		credential, err := resolve(context.Background(), "ghcr.io")
		require.NoError(t, err)
		assert.Equal(t, "octocat", credential.Username)
		assert.Equal(t, "ghp_token", credential.Password)
	})

	t.Run("unknown host is anonymous", func(t *testing.T) {
		credential, err := resolve(context.Background(), "docker.io")
		require.NoError(t, err)
		assert.Empty(t, credential.Username)
		assert.Empty(t, credential.Password)
	})

	t.Run("broken base64", func(t *testing.T) {
		resolve := credentialFunc(map[string]string{"ghcr.io": "%%%not-base64%%%"})
		_, err := resolve(context.Background(), "ghcr.io")
		require.Error(t, err)
	})

	t.Run("missing separator", func(t *testing.T) {
		resolve := credentialFunc(map[string]string{
			"ghcr.io": base64.StdEncoding.EncodeToString([]byte("no-colon-here")),
		})
		_, err := resolve(context.Background(), "ghcr.io")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "username:password")
	})
}

func TestPullArtifactValidatesArguments(t *testing.T) {
	ctx := context.Background()

	_, err := PullArtifact(ctx, "", nil, t.TempDir())
	require.Error(t, err)

	_, err = PullArtifact(ctx, "ghcr.io/org/pkg:latest", nil, "")
	require.Error(t, err)

	_, err = PullArtifact(ctx, "not a valid reference", nil, t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid artifact reference")
}

func TestResolveImageDescriptorRejectsBadReference(t *testing.T) {
	_, err := ResolveImageDescriptor("UPPERCASE/Not/Allowed::", "", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse image reference")
}
