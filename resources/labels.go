package resources

import (
	"encoding/json"
	"fmt"
	"net/url"

	githubbridge "github.com/opengovern/github-bridge"
)

// LabelsService manages repository labels and their assignment to issues.
type LabelsService struct {
	bridge *githubbridge.GitHubBridge
}

// LabelRequest is the body for label creation and update.
type LabelRequest struct {
	Name        string `json:"name"`
	Color       string `json:"color,omitempty"`
	Description string `json:"description,omitempty"`
}

func (s *LabelsService) ListForRepo(owner, repo string) ([]Label, error) {
	pages, err := s.bridge.FetchAll(&githubbridge.Request{
		Path:        fmt.Sprintf("repos/%s/%s/labels", owner, repo),
		Description: fmt.Sprintf("Getting labels for %s/%s", owner, repo),
	}, false)
	if err != nil {
		return nil, err
	}
	var labels []Label
	if err := decodeValue(pages, &labels); err != nil {
		return nil, err
	}
	return labels, nil
}

func (s *LabelsService) Get(owner, repo, name string) (*Label, error) {
	payload, err := s.bridge.Execute(&githubbridge.Request{
		Path:        fmt.Sprintf("repos/%s/%s/labels/%s", owner, repo, url.PathEscape(name)),
		Description: fmt.Sprintf("Getting label %q in %s/%s", name, owner, repo),
	})
	if err != nil {
		return nil, err
	}
	var label Label
	if err := decodeValue(payload, &label); err != nil {
		return nil, err
	}
	return &label, nil
}

func (s *LabelsService) Create(owner, repo string, request *LabelRequest) (*Label, error) {
	body, err := json.Marshal(request)
	if err != nil {
		return nil, err
	}
	payload, err := s.bridge.Execute(&githubbridge.Request{
		Method:      "POST",
		Path:        fmt.Sprintf("repos/%s/%s/labels", owner, repo),
		Body:        body,
		Description: fmt.Sprintf("Creating label %q in %s/%s", request.Name, owner, repo),
	})
	if err != nil {
		return nil, err
	}
	var label Label
	if err := decodeValue(payload, &label); err != nil {
		return nil, err
	}
	return &label, nil
}

func (s *LabelsService) Update(owner, repo, name string, request *LabelRequest) (*Label, error) {
	body, err := json.Marshal(request)
	if err != nil {
		return nil, err
	}
	payload, err := s.bridge.Execute(&githubbridge.Request{
		Method:      "PATCH",
		Path:        fmt.Sprintf("repos/%s/%s/labels/%s", owner, repo, url.PathEscape(name)),
		Body:        body,
		Description: fmt.Sprintf("Updating label %q in %s/%s", name, owner, repo),
	})
	if err != nil {
		return nil, err
	}
	var label Label
	if err := decodeValue(payload, &label); err != nil {
		return nil, err
	}
	return &label, nil
}

func (s *LabelsService) Delete(owner, repo, name string) error {
	_, err := s.bridge.Execute(&githubbridge.Request{
		Method:      "DELETE",
		Path:        fmt.Sprintf("repos/%s/%s/labels/%s", owner, repo, url.PathEscape(name)),
		Description: fmt.Sprintf("Deleting label %q in %s/%s", name, owner, repo),
	})
	return err
}

// AddToIssue attaches labels to an issue, creating repo labels that do not
// exist yet.
func (s *LabelsService) AddToIssue(owner, repo string, number int, names []string) ([]Label, error) {
	body, err := json.Marshal(map[string][]string{"labels": names})
	if err != nil {
		return nil, err
	}
	payload, err := s.bridge.Execute(&githubbridge.Request{
		Method:      "POST",
		Path:        fmt.Sprintf("repos/%s/%s/issues/%d/labels", owner, repo, number),
		Body:        body,
		Description: fmt.Sprintf("Adding labels to %s/%s#%d", owner, repo, number),
	})
	if err != nil {
		return nil, err
	}
	var labels []Label
	if err := decodeValue(payload, &labels); err != nil {
		return nil, err
	}
	return labels, nil
}

// SetForIssue replaces every label on the issue with the given set. An empty
// set clears the issue.
func (s *LabelsService) SetForIssue(owner, repo string, number int, names []string) ([]Label, error) {
	body, err := json.Marshal(map[string][]string{"labels": names})
	if err != nil {
		return nil, err
	}
	payload, err := s.bridge.Execute(&githubbridge.Request{
		Method:      "PUT",
		Path:        fmt.Sprintf("repos/%s/%s/issues/%d/labels", owner, repo, number),
		Body:        body,
		Description: fmt.Sprintf("Setting labels on %s/%s#%d", owner, repo, number),
	})
	if err != nil {
		return nil, err
	}
	var labels []Label
	if err := decodeValue(payload, &labels); err != nil {
		return nil, err
	}
	return labels, nil
}

func (s *LabelsService) RemoveFromIssue(owner, repo string, number int, name string) error {
	_, err := s.bridge.Execute(&githubbridge.Request{
		Method:      "DELETE",
		Path:        fmt.Sprintf("repos/%s/%s/issues/%d/labels/%s", owner, repo, number, url.PathEscape(name)),
		Description: fmt.Sprintf("Removing label %q from %s/%s#%d", name, owner, repo, number),
	})
	return err
}
