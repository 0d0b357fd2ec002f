// ghcr_credentials.go
//
// This file derives OCI registry credentials for the GitHub Container
// Registry from a GitHub login and token. The returned map is keyed by
// registry host with base64-encoded "username:token" values, the shape a
// Docker config.json auths section and PullArtifact both consume.
package utils

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// ghcrPublicHost is the registry fronting github.com packages.
const ghcrPublicHost = "ghcr.io"

// GHCRCredentials builds pull/push credentials for ghcr.io.
func GHCRCredentials(username, token string) (map[string]string, error) {
	return GHCRCredentialsForHost("", username, token)
}

// GHCRCredentialsForHost builds credentials for a GitHub instance's container
// registry. An empty or public host selects ghcr.io; a GitHub Enterprise host
// maps to its containers.<host> registry.
func GHCRCredentialsForHost(host, username, token string) (map[string]string, error) {
	if username == "" || token == "" {
		return nil, fmt.Errorf("both username and token are required for registry credentials")
	}
	host = strings.TrimPrefix(host, "www.")
	registry := ghcrPublicHost
	if host != "" && host != "github.com" {
		registry = "containers." + host
	}
	encoded := base64.StdEncoding.EncodeToString([]byte(username + ":" + token))
	return map[string]string{registry: encoded}, nil
}
