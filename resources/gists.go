package resources

import (
	"encoding/json"
	"fmt"
	"time"

	githubbridge "github.com/opengovern/github-bridge"
)

// GistsService manages gists and their stars.
type GistsService struct {
	bridge *githubbridge.GitHubBridge
}

type Gist struct {
	ID          string              `json:"id"`
	Description string              `json:"description"`
	Public      bool                `json:"public"`
	HTMLURL     string              `json:"html_url"`
	Owner       *User               `json:"owner"`
	Files       map[string]GistFile `json:"files"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

type GistFile struct {
	Filename string `json:"filename"`
	Type     string `json:"type"`
	Language string `json:"language"`
	Size     int    `json:"size"`
	RawURL   string `json:"raw_url"`
	Content  string `json:"content"`
}

// GistRequest is the body for gist creation and update. File keys are
// filenames; a nil file value deletes that file on update.
type GistRequest struct {
	Description string               `json:"description,omitempty"`
	Public      bool                 `json:"public"`
	Files       map[string]*GistFile `json:"files"`
}

func (s *GistsService) Get(id string) (*Gist, error) {
	payload, err := s.bridge.Execute(&githubbridge.Request{
		Path:        "gists/" + id,
		Description: "Getting gist " + id,
	})
	if err != nil {
		return nil, err
	}
	var gist Gist
	if err := decodeValue(payload, &gist); err != nil {
		return nil, err
	}
	return &gist, nil
}

// List returns the authenticated user's gists.
func (s *GistsService) List() ([]Gist, error) {
	pages, err := s.bridge.FetchAll(&githubbridge.Request{
		Path:        "gists",
		Description: "Getting your gists",
	}, false)
	if err != nil {
		return nil, err
	}
	var gists []Gist
	if err := decodeValue(pages, &gists); err != nil {
		return nil, err
	}
	return gists, nil
}

// ListForUser returns another user's public gists.
func (s *GistsService) ListForUser(login string) ([]Gist, error) {
	pages, err := s.bridge.FetchAll(&githubbridge.Request{
		Path:        fmt.Sprintf("users/%s/gists", login),
		Description: "Getting gists of " + login,
	}, false)
	if err != nil {
		return nil, err
	}
	var gists []Gist
	if err := decodeValue(pages, &gists); err != nil {
		return nil, err
	}
	return gists, nil
}

func (s *GistsService) Create(request *GistRequest) (*Gist, error) {
	return s.write("POST", "gists", request, "Creating gist")
}

func (s *GistsService) Update(id string, request *GistRequest) (*Gist, error) {
	return s.write("PATCH", "gists/"+id, request, "Updating gist "+id)
}

func (s *GistsService) write(method, path string, request *GistRequest, activity string) (*Gist, error) {
	body, err := json.Marshal(request)
	if err != nil {
		return nil, err
	}
	payload, err := s.bridge.Execute(&githubbridge.Request{
		Method:      method,
		Path:        path,
		Body:        body,
		Description: activity,
	})
	if err != nil {
		return nil, err
	}
	var gist Gist
	if err := decodeValue(payload, &gist); err != nil {
		return nil, err
	}
	return &gist, nil
}

func (s *GistsService) Delete(id string) error {
	_, err := s.bridge.Execute(&githubbridge.Request{
		Method:      "DELETE",
		Path:        "gists/" + id,
		Description: "Deleting gist " + id,
	})
	return err
}

func (s *GistsService) Star(id string) error {
	_, err := s.bridge.Execute(&githubbridge.Request{
		Method:      "PUT",
		Path:        fmt.Sprintf("gists/%s/star", id),
		Description: "Starring gist " + id,
	})
	return err
}

func (s *GistsService) Unstar(id string) error {
	_, err := s.bridge.Execute(&githubbridge.Request{
		Method:      "DELETE",
		Path:        fmt.Sprintf("gists/%s/star", id),
		Description: "Unstarring gist " + id,
	})
	return err
}

// IsStarred probes the star state. The API answers 204 when starred and 404
// when not, so a 404 here is an answer, not a failure.
func (s *GistsService) IsStarred(id string) (bool, error) {
	_, err := s.bridge.Execute(&githubbridge.Request{
		Path:        fmt.Sprintf("gists/%s/star", id),
		Description: "Checking star on gist " + id,
	})
	if err != nil {
		if githubbridge.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
