package resources

import (
	"encoding/json"
	"fmt"
	"net/url"

	githubbridge "github.com/opengovern/github-bridge"
)

// RepositoriesService reads and mutates repositories.
type RepositoriesService struct {
	bridge *githubbridge.GitHubBridge
}

// RepositoryListOptions narrows repository listings. Zero fields are
// omitted from the query.
type RepositoryListOptions struct {
	Type      string
	Sort      string
	Direction string
	PerPage   int
}

func (o *RepositoryListOptions) query() string {
	if o == nil {
		return ""
	}
	values := url.Values{}
	if o.Type != "" {
		values.Set("type", o.Type)
	}
	if o.Sort != "" {
		values.Set("sort", o.Sort)
	}
	if o.Direction != "" {
		values.Set("direction", o.Direction)
	}
	if o.PerPage > 0 {
		values.Set("per_page", fmt.Sprintf("%d", o.PerPage))
	}
	return values.Encode()
}

// CreateRepositoryRequest is the body for repository creation.
type CreateRepositoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Homepage    string `json:"homepage,omitempty"`
	Private     bool   `json:"private"`
	HasIssues   *bool  `json:"has_issues,omitempty"`
	HasWiki     *bool  `json:"has_wiki,omitempty"`
	AutoInit    bool   `json:"auto_init,omitempty"`
}

func (s *RepositoriesService) Get(owner, name string) (*Repository, error) {
	payload, err := s.bridge.Execute(&githubbridge.Request{
		Path:        fmt.Sprintf("repos/%s/%s", owner, name),
		Description: fmt.Sprintf("Getting repository %s/%s", owner, name),
	})
	if err != nil {
		return nil, err
	}
	var repository Repository
	if err := decodeValue(payload, &repository); err != nil {
		return nil, err
	}
	return &repository, nil
}

// GetByURL accepts a repository URL in web or API form.
func (s *RepositoriesService) GetByURL(rawURL string) (*Repository, error) {
	owner, name := githubbridge.SplitRepositoryURL(rawURL)
	if owner == "" || name == "" {
		return nil, fmt.Errorf("cannot extract owner and repository from %q", rawURL)
	}
	return s.Get(owner, name)
}

// ListForUser lists a user's repositories across all pages.
func (s *RepositoriesService) ListForUser(login string, opts *RepositoryListOptions) ([]Repository, error) {
	return s.list("users/"+login+"/repos", opts, "Getting repositories for "+login)
}

// ListForOrg lists an organization's repositories across all pages.
func (s *RepositoriesService) ListForOrg(org string, opts *RepositoryListOptions) ([]Repository, error) {
	return s.list("orgs/"+org+"/repos", opts, "Getting repositories for "+org)
}

// ListForAuthenticatedUser lists the token owner's repositories.
func (s *RepositoriesService) ListForAuthenticatedUser(opts *RepositoryListOptions) ([]Repository, error) {
	return s.list("user/repos", opts, "Getting your repositories")
}

func (s *RepositoriesService) list(path string, opts *RepositoryListOptions, activity string) ([]Repository, error) {
	if query := opts.query(); query != "" {
		path += "?" + query
	}
	pages, err := s.bridge.FetchAll(&githubbridge.Request{Path: path, Description: activity}, false)
	if err != nil {
		return nil, err
	}
	var repositories []Repository
	if err := decodeValue(pages, &repositories); err != nil {
		return nil, err
	}
	return repositories, nil
}

// Create creates a repository for the authenticated user, or under org when
// it is non-empty.
func (s *RepositoriesService) Create(org string, request *CreateRepositoryRequest) (*Repository, error) {
	body, err := json.Marshal(request)
	if err != nil {
		return nil, err
	}
	path := "user/repos"
	if org != "" {
		path = "orgs/" + org + "/repos"
	}
	payload, err := s.bridge.Execute(&githubbridge.Request{
		Method:      "POST",
		Path:        path,
		Body:        body,
		Description: "Creating repository " + request.Name,
	})
	if err != nil {
		return nil, err
	}
	var repository Repository
	if err := decodeValue(payload, &repository); err != nil {
		return nil, err
	}
	return &repository, nil
}

func (s *RepositoriesService) Delete(owner, name string) error {
	_, err := s.bridge.Execute(&githubbridge.Request{
		Method:      "DELETE",
		Path:        fmt.Sprintf("repos/%s/%s", owner, name),
		Description: fmt.Sprintf("Deleting repository %s/%s", owner, name),
	})
	return err
}

// ListLanguages reports bytes of code per language in the default branch.
func (s *RepositoriesService) ListLanguages(owner, name string) (map[string]int, error) {
	payload, err := s.bridge.Execute(&githubbridge.Request{
		Path:        fmt.Sprintf("repos/%s/%s/languages", owner, name),
		Description: fmt.Sprintf("Getting languages for %s/%s", owner, name),
	})
	if err != nil {
		return nil, err
	}
	languages := make(map[string]int)
	if err := decodeValue(payload, &languages); err != nil {
		return nil, err
	}
	return languages, nil
}

// ListTopics returns the repository's topic names. The endpoint is still
// behind the mercy preview media type.
func (s *RepositoriesService) ListTopics(owner, name string) ([]string, error) {
	payload, err := s.bridge.Execute(&githubbridge.Request{
		Path:         fmt.Sprintf("repos/%s/%s/topics", owner, name),
		AcceptHeader: githubbridge.MediaTypeTopicsPreview,
		Description:  fmt.Sprintf("Getting topics for %s/%s", owner, name),
	})
	if err != nil {
		return nil, err
	}
	var topics struct {
		Names []string `json:"names"`
	}
	if err := decodeValue(payload, &topics); err != nil {
		return nil, err
	}
	return topics.Names, nil
}

// ReplaceTopics sets the repository's full topic list.
func (s *RepositoriesService) ReplaceTopics(owner, name string, topics []string) error {
	body, err := json.Marshal(map[string][]string{"names": topics})
	if err != nil {
		return err
	}
	_, err = s.bridge.Execute(&githubbridge.Request{
		Method:       "PUT",
		Path:         fmt.Sprintf("repos/%s/%s/topics", owner, name),
		Body:         body,
		AcceptHeader: githubbridge.MediaTypeTopicsPreview,
		Description:  fmt.Sprintf("Replacing topics for %s/%s", owner, name),
	})
	return err
}

// ContributorStats is one contributor's weekly activity breakdown.
type ContributorStats struct {
	Author *User  `json:"author"`
	Total  int    `json:"total"`
	Weeks  []Week `json:"weeks"`
}

// Week is one week of a contributor's stats. The start is epoch seconds.
type Week struct {
	Start     int64 `json:"w"`
	Additions int   `json:"a"`
	Deletions int   `json:"d"`
	Commits   int   `json:"c"`
}

// GetContributorStats fetches per-contributor commit activity. GitHub
// computes these on demand and answers 202 until ready, so this call may
// block for several retry rounds on cold caches.
func (s *RepositoriesService) GetContributorStats(owner, name string) ([]ContributorStats, error) {
	payload, err := s.bridge.Execute(&githubbridge.Request{
		Path:        fmt.Sprintf("repos/%s/%s/stats/contributors", owner, name),
		Description: fmt.Sprintf("Getting contributor statistics for %s/%s", owner, name),
	})
	if err != nil {
		return nil, err
	}
	var stats []ContributorStats
	if err := decodeValue(payload, &stats); err != nil {
		return nil, err
	}
	return stats, nil
}
