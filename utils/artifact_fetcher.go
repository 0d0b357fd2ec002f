// artifact_fetcher.go
//
// Retrieval helpers for packages stored in the GitHub Container Registry.
// PullArtifact downloads a full OCI artifact to a local directory through
// ORAS; ResolveImageDescriptor inspects a tagged image's manifest without
// pulling layers, which is how package listings are enriched with digest and
// size information.
package utils

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/go-containerregistry/pkg/authn"
	"github.com/google/go-containerregistry/pkg/name"
	"github.com/google/go-containerregistry/pkg/v1/remote"
	"oras.land/oras-go/v2"
	"oras.land/oras-go/v2/content/file"
	"oras.land/oras-go/v2/registry"
	remoteregistry "oras.land/oras-go/v2/registry/remote"
	"oras.land/oras-go/v2/registry/remote/auth"
)

// PullArtifact pulls an OCI artifact (for example ghcr.io/org/pkg:tag) into
// outputDir and returns the digest of the manifest that was fetched. The
// creds map is keyed by registry host with base64 "username:password"
// values, as produced by GHCRCredentials.
func PullArtifact(ctx context.Context, artifactRef string, creds map[string]string, outputDir string) (string, error) {
	if artifactRef == "" {
		return "", errors.New("artifact reference cannot be empty")
	}
	if outputDir == "" {
		return "", errors.New("output directory cannot be empty")
	}

	ref, err := registry.ParseReference(artifactRef)
	if err != nil {
		return "", fmt.Errorf("invalid artifact reference %q: %w", artifactRef, err)
	}

	repo, err := remoteregistry.NewRepository(ref.String())
	if err != nil {
		return "", fmt.Errorf("open repository %s: %w", ref.String(), err)
	}
	repo.Client = &auth.Client{Credential: credentialFunc(creds)}

	if err := os.MkdirAll(filepath.Clean(outputDir), 0o755); err != nil {
		return "", fmt.Errorf("create output directory %q: %w", outputDir, err)
	}
	store, err := file.New(outputDir)
	if err != nil {
		return "", fmt.Errorf("create file store at %q: %w", outputDir, err)
	}
	defer store.Close()

	descriptor, err := oras.Copy(ctx, repo, ref.Reference, store, "", oras.DefaultCopyOptions)
	if err != nil {
		return "", fmt.Errorf("pull %s: %w", artifactRef, err)
	}
	return descriptor.Digest.String(), nil
}

// credentialFunc adapts a host-keyed credentials map to the ORAS auth
// callback. Hosts without an entry proceed anonymously.
func credentialFunc(creds map[string]string) auth.CredentialFunc {
	return func(ctx context.Context, host string) (auth.Credential, error) {
		encoded, ok := creds[host]
		if !ok {
			return auth.Credential{}, nil
		}
		decoded, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			return auth.Credential{}, fmt.Errorf("decode auth for %s: %w", host, err)
		}
		parts := strings.SplitN(string(decoded), ":", 2)
		if len(parts) != 2 {
			return auth.Credential{}, fmt.Errorf("auth for %s is not username:password", host)
		}
		return auth.Credential{Username: parts[0], Password: parts[1]}, nil
	}
}

// ImageDescriptor summarizes one tagged image's manifest.
type ImageDescriptor struct {
	Reference string
	Digest    string
	MediaType string
	TotalSize int64
}

// ResolveImageDescriptor fetches the manifest behind an image reference and
// totals its config and layer sizes. The token is a GitHub token with
// read:packages scope; GHCR accepts any non-empty username alongside it.
func ResolveImageDescriptor(imageRef, username, token string) (*ImageDescriptor, error) {
	ref, err := name.ParseReference(imageRef)
	if err != nil {
		return nil, fmt.Errorf("parse image reference %q: %w", imageRef, err)
	}

	options := []remote.Option{}
	if token != "" {
		if username == "" {
			username = "github"
		}
		options = append(options, remote.WithAuth(&authn.Basic{Username: username, Password: token}))
	}

	descriptor, err := remote.Get(ref, options...)
	if err != nil {
		return nil, fmt.Errorf("fetch manifest for %s: %w", imageRef, err)
	}

	var manifest struct {
		Config struct {
			Size int64 `json:"size"`
		} `json:"config"`
		Layers []struct {
			Size int64 `json:"size"`
		} `json:"layers"`
	}
	if err := json.Unmarshal(descriptor.Manifest, &manifest); err != nil {
		return nil, fmt.Errorf("decode manifest for %s: %w", imageRef, err)
	}
	totalSize := manifest.Config.Size
	for _, layer := range manifest.Layers {
		totalSize += layer.Size
	}

	return &ImageDescriptor{
		Reference: imageRef,
		Digest:    descriptor.Digest.String(),
		MediaType: string(descriptor.MediaType),
		TotalSize: totalSize,
	}, nil
}
