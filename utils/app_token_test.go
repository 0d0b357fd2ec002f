package utils

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	githubbridge "github.com/opengovern/github-bridge"
	"github.com/opengovern/github-bridge/mock"
)

func generateTestKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return key
}

func newAppTestBridge(t *testing.T, responses ...mock.Response) (*githubbridge.GitHubBridge, *mock.Transport) {
	t.Helper()
	transport := mock.NewTransport(responses...)
	bridge := githubbridge.NewGitHubBridge(&githubbridge.Config{AuthToken: "client-token"})
	bridge.SetHTTPClient(&http.Client{Transport: transport})
	return bridge, transport
}

func TestMintAppJWT(t *testing.T) {
	key := generateTestKey(t)

	signed, err := MintAppJWT("12345", key)
	require.NoError(t, err)

	parsed, err := jwt.Parse(signed, func(token *jwt.Token) (interface{}, error) {
		return &key.PublicKey, nil
	}, jwt.WithValidMethods([]string{"RS256"}))
	require.NoError(t, err)
	require.True(t, parsed.Valid)

	claims, ok := parsed.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, "12345", claims["iss"])

	issuedAt := int64(claims["iat"].(float64))
	expiresAt := int64(claims["exp"].(float64))
	assert.Equal(t, int64(10*60), expiresAt-issuedAt, "backdated iat plus nine minute lifetime")
	assert.LessOrEqual(t, issuedAt, time.Now().Unix())
}

func TestMintAppJWTValidatesInputs(t *testing.T) {
	key := generateTestKey(t)

	_, err := MintAppJWT("", key)
	require.Error(t, err)

	_, err = MintAppJWT("12345", nil)
	require.Error(t, err)
}

func TestLoadAppPrivateKey(t *testing.T) {
	t.Run("PEM file", func(t *testing.T) {
		key := generateTestKey(t)
		pemBytes := pem.EncodeToMemory(&pem.Block{
			Type:  "RSA PRIVATE KEY",
			Bytes: x509.MarshalPKCS1PrivateKey(key),
		})
		path := filepath.Join(t.TempDir(), "app.pem")
		require.NoError(t, os.WriteFile(path, pemBytes, 0o600))

		loaded, err := LoadAppPrivateKey(path, "")
		require.NoError(t, err)
		assert.Equal(t, key.N, loaded.N)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadAppPrivateKey(filepath.Join(t.TempDir(), "absent.pem"), "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "read app key")
	})

	t.Run("unusable content", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "junk.pem")
		require.NoError(t, os.WriteFile(path, []byte("not a key at all"), 0o600))

		_, err := LoadAppPrivateKey(path, "")
		require.Error(t, err)
	})
}

func TestFetchInstallationToken(t *testing.T) {
	key := generateTestKey(t)
	expiresAt := time.Now().Add(time.Hour).UTC().Truncate(time.Second)
	body := fmt.Sprintf(`{"token": "ghs_installation", "expires_at": "%s"}`, expiresAt.Format(time.RFC3339))
	bridge, transport := newAppTestBridge(t, mock.JSON(201, body))

	token, expiry, err := FetchInstallationToken(bridge, "12345", 42, key)
	require.NoError(t, err)
	assert.Equal(t, "ghs_installation", token)
	assert.True(t, expiry.Equal(expiresAt))

	requests := transport.Requests()
	require.Len(t, requests, 1)
	assert.Equal(t, http.MethodPost, requests[0].Method)
	assert.Equal(t, "https://api.github.com/app/installations/42/access_tokens", requests[0].URL)

	// The App JWT must ride as Bearer, beating the client-wide token scheme.
	authorization := requests[0].Header.Get("Authorization")
	require.True(t, strings.HasPrefix(authorization, "Bearer "), "got %q", authorization)

	appJWT := strings.TrimPrefix(authorization, "Bearer ")
	parsed, err := jwt.Parse(appJWT, func(token *jwt.Token) (interface{}, error) {
		return &key.PublicKey, nil
	}, jwt.WithValidMethods([]string{"RS256"}))
	require.NoError(t, err)
	claims := parsed.Claims.(jwt.MapClaims)
	assert.Equal(t, "12345", claims["iss"])
}

func TestFetchInstallationTokenRejectsEmptyToken(t *testing.T) {
	key := generateTestKey(t)
	bridge, _ := newAppTestBridge(t, mock.JSON(201, `{"expires_at": "2030-01-01T00:00:00Z"}`))

	_, _, err := FetchInstallationToken(bridge, "12345", 42, key)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "carried no token")
}

func TestInstallationTokenSourceCachesTokens(t *testing.T) {
	key := generateTestKey(t)
	expiresAt := time.Now().Add(time.Hour).UTC().Truncate(time.Second)
	body := fmt.Sprintf(`{"token": "ghs_installation", "expires_at": "%s"}`, expiresAt.Format(time.RFC3339))
	bridge, transport := newAppTestBridge(t, mock.JSON(201, body))

	source := NewInstallationTokenSource(bridge, "12345", 42, key)

	first, err := source.Token()
	require.NoError(t, err)
	assert.Equal(t, "ghs_installation", first.AccessToken)
	assert.Equal(t, "token", first.TokenType)
	assert.True(t, first.Expiry.Equal(expiresAt.Add(-time.Minute)))

	second, err := source.Token()
	require.NoError(t, err)
	assert.Equal(t, first.AccessToken, second.AccessToken)
	assert.Len(t, transport.Requests(), 1, "a live token must be reused, not re-minted")
}
