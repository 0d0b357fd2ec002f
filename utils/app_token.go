// app_token.go
//
// Package utils provides helpers around the core client: GitHub App
// authentication, container-registry credentials derived from GitHub tokens,
// and OCI artifact retrieval from GHCR.
//
// This file implements the GitHub App flow. Apps authenticate with a
// short-lived RS256 JWT signed by the App's private key; that JWT is then
// exchanged for an installation token scoped to one installation, which is
// what actual API calls use. The exchange itself goes through a GitHubBridge
// so it shares the retry and error classification of every other call.
package utils

import (
	"crypto/rsa"
	"encoding/pem"
	"fmt"
	"os"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/pkcs12"
	"golang.org/x/oauth2"

	githubbridge "github.com/opengovern/github-bridge"
)

// appJWTLifetime stays under GitHub's 10 minute maximum for App JWTs.
const appJWTLifetime = 9 * time.Minute

// LoadAppPrivateKey reads a GitHub App's RSA private key. PEM files are the
// format GitHub hands out; PKCS#12 containers (.pfx/.p12, with password) are
// accepted for keys exported from enterprise certificate stores.
func LoadAppPrivateKey(path, password string) (*rsa.PrivateKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read app key %s: %w", path, err)
	}

	if block, _ := pem.Decode(data); block != nil {
		key, err := jwt.ParseRSAPrivateKeyFromPEM(data)
		if err != nil {
			return nil, fmt.Errorf("parse PEM app key %s: %w", path, err)
		}
		return key, nil
	}

	privateKey, _, err := pkcs12.Decode(data, password)
	if err != nil {
		return nil, fmt.Errorf("decode PKCS#12 app key %s: %w", path, err)
	}
	rsaKey, ok := privateKey.(*rsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("app key %s is not RSA", path)
	}
	return rsaKey, nil
}

// MintAppJWT signs the App-level JWT GitHub requires on app endpoints. The
// issued-at is backdated a minute to absorb clock skew.
func MintAppJWT(appID string, key *rsa.PrivateKey) (string, error) {
	if appID == "" {
		return "", fmt.Errorf("app id is required")
	}
	if key == nil {
		return "", fmt.Errorf("private key is required")
	}
	now := time.Now()
	claims := jwt.MapClaims{
		"iat": now.Add(-time.Minute).Unix(),
		"exp": now.Add(appJWTLifetime).Unix(),
		"iss": appID,
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(key)
	if err != nil {
		return "", fmt.Errorf("sign app JWT: %w", err)
	}
	return signed, nil
}

// FetchInstallationToken exchanges an App JWT for an installation token. The
// bridge's configured token is bypassed for this one call; the App JWT rides
// in a caller-supplied Authorization header because app endpoints take
// "Bearer", not "token".
func FetchInstallationToken(bridge *githubbridge.GitHubBridge, appID string, installationID int64, key *rsa.PrivateKey) (string, time.Time, error) {
	appJWT, err := MintAppJWT(appID, key)
	if err != nil {
		return "", time.Time{}, err
	}

	payload, err := bridge.Execute(&githubbridge.Request{
		Method:      "POST",
		Path:        fmt.Sprintf("app/installations/%d/access_tokens", installationID),
		Headers:     map[string]string{"Authorization": "Bearer " + appJWT},
		Description: fmt.Sprintf("Minting token for installation %d", installationID),
	})
	if err != nil {
		return "", time.Time{}, fmt.Errorf("mint installation token: %w", err)
	}

	var minted struct {
		Token     string    `json:"token"`
		ExpiresAt time.Time `json:"expires_at"`
	}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:     &minted,
		TagName:    "json",
		DecodeHook: mapstructure.StringToTimeHookFunc(time.RFC3339),
	})
	if err != nil {
		return "", time.Time{}, err
	}
	if err := decoder.Decode(payload); err != nil {
		return "", time.Time{}, fmt.Errorf("decode installation token response: %w", err)
	}
	if minted.Token == "" {
		return "", time.Time{}, fmt.Errorf("installation token response carried no token")
	}
	return minted.Token, minted.ExpiresAt, nil
}

// installationTokenSource implements oauth2.TokenSource over the App flow.
type installationTokenSource struct {
	bridge         *githubbridge.GitHubBridge
	appID          string
	installationID int64
	key            *rsa.PrivateKey
}

// NewInstallationTokenSource returns a cached oauth2.TokenSource that mints
// installation tokens on demand and reuses them until shortly before expiry.
func NewInstallationTokenSource(bridge *githubbridge.GitHubBridge, appID string, installationID int64, key *rsa.PrivateKey) oauth2.TokenSource {
	return oauth2.ReuseTokenSource(nil, &installationTokenSource{
		bridge:         bridge,
		appID:          appID,
		installationID: installationID,
		key:            key,
	})
}

func (s *installationTokenSource) Token() (*oauth2.Token, error) {
	token, expiresAt, err := FetchInstallationToken(s.bridge, s.appID, s.installationID, s.key)
	if err != nil {
		return nil, err
	}
	// Hand the token back a minute short so callers never race expiry.
	if !expiresAt.IsZero() {
		expiresAt = expiresAt.Add(-time.Minute)
	}
	return &oauth2.Token{AccessToken: token, Expiry: expiresAt, TokenType: "token"}, nil
}
