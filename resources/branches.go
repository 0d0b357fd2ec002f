package resources

import (
	"encoding/json"
	"fmt"

	githubbridge "github.com/opengovern/github-bridge"
)

// BranchesService reads and renames branches.
type BranchesService struct {
	bridge *githubbridge.GitHubBridge
}

type Branch struct {
	Name      string `json:"name"`
	Protected bool   `json:"protected"`
	Commit    struct {
		SHA string `json:"sha"`
		URL string `json:"url"`
	} `json:"commit"`
}

// BranchListOptions narrows branch listings. A nil Protected returns both
// protected and unprotected branches.
type BranchListOptions struct {
	Protected *bool
}

func (o *BranchListOptions) query() string {
	if o == nil || o.Protected == nil {
		return ""
	}
	return fmt.Sprintf("protected=%t", *o.Protected)
}

func (s *BranchesService) List(owner, repo string, opts *BranchListOptions) ([]Branch, error) {
	path := fmt.Sprintf("repos/%s/%s/branches", owner, repo)
	if query := opts.query(); query != "" {
		path += "?" + query
	}
	pages, err := s.bridge.FetchAll(&githubbridge.Request{
		Path:        path,
		Description: fmt.Sprintf("Getting branches for %s/%s", owner, repo),
	}, false)
	if err != nil {
		return nil, err
	}
	var branches []Branch
	if err := decodeValue(pages, &branches); err != nil {
		return nil, err
	}
	return branches, nil
}

func (s *BranchesService) Get(owner, repo, branch string) (*Branch, error) {
	payload, err := s.bridge.Execute(&githubbridge.Request{
		Path:        fmt.Sprintf("repos/%s/%s/branches/%s", owner, repo, branch),
		Description: fmt.Sprintf("Getting branch %s of %s/%s", branch, owner, repo),
	})
	if err != nil {
		return nil, err
	}
	var result Branch
	if err := decodeValue(payload, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Rename renames a branch, updating the default branch and open pull
// requests server-side.
func (s *BranchesService) Rename(owner, repo, branch, newName string) (*Branch, error) {
	body, err := json.Marshal(map[string]string{"new_name": newName})
	if err != nil {
		return nil, err
	}
	payload, err := s.bridge.Execute(&githubbridge.Request{
		Method:      "POST",
		Path:        fmt.Sprintf("repos/%s/%s/branches/%s/rename", owner, repo, branch),
		Body:        body,
		Description: fmt.Sprintf("Renaming branch %s to %s in %s/%s", branch, newName, owner, repo),
	})
	if err != nil {
		return nil, err
	}
	var renamed Branch
	if err := decodeValue(payload, &renamed); err != nil {
		return nil, err
	}
	return &renamed, nil
}
