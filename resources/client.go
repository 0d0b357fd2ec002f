// Package resources provides typed access to the REST resources the bridge
// is most often used for. Every service composes paths, runs them through a
// GitHubBridge, and decodes the payload onto plain structs; the retry,
// pagination and error behavior all come from the bridge itself.
package resources

import (
	githubbridge "github.com/opengovern/github-bridge"
)

// Client groups the resource services over one bridge.
type Client struct {
	Repositories *RepositoriesService
	Branches     *BranchesService
	Issues       *IssuesService
	Labels       *LabelsService
	Releases     *ReleasesService
	Gists        *GistsService
	Teams        *TeamsService
	Reactions    *ReactionsService
	Users        *UsersService
	ProjectCards *ProjectCardsService
	Packages     *PackagesService
}

func NewClient(bridge *githubbridge.GitHubBridge) *Client {
	return &Client{
		Repositories: &RepositoriesService{bridge: bridge},
		Branches:     &BranchesService{bridge: bridge},
		Issues:       &IssuesService{bridge: bridge},
		Labels:       &LabelsService{bridge: bridge},
		Releases:     &ReleasesService{bridge: bridge},
		Gists:        &GistsService{bridge: bridge},
		Teams:        &TeamsService{bridge: bridge},
		Reactions:    &ReactionsService{bridge: bridge},
		Users:        &UsersService{bridge: bridge},
		ProjectCards: &ProjectCardsService{bridge: bridge},
		Packages:     &PackagesService{bridge: bridge},
	}
}
