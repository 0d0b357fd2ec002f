package resources

import (
	"encoding/json"
	"fmt"

	githubbridge "github.com/opengovern/github-bridge"
)

// TeamsService manages organization teams and reads their membership.
type TeamsService struct {
	bridge *githubbridge.GitHubBridge
}

type Team struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Privacy     string `json:"privacy"`
	Permission  string `json:"permission"`
	MembersURL  string `json:"members_url"`
	HTMLURL     string `json:"html_url"`
}

// TeamRequest is the body for team creation and update.
type TeamRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Privacy     string   `json:"privacy,omitempty"`
	Maintainers []string `json:"maintainers,omitempty"`
}

func (s *TeamsService) ListForOrg(org string) ([]Team, error) {
	pages, err := s.bridge.FetchAll(&githubbridge.Request{
		Path:        fmt.Sprintf("orgs/%s/teams", org),
		Description: "Getting teams for " + org,
	}, false)
	if err != nil {
		return nil, err
	}
	var teams []Team
	if err := decodeValue(pages, &teams); err != nil {
		return nil, err
	}
	return teams, nil
}

func (s *TeamsService) GetBySlug(org, slug string) (*Team, error) {
	payload, err := s.bridge.Execute(&githubbridge.Request{
		Path:        fmt.Sprintf("orgs/%s/teams/%s", org, slug),
		Description: fmt.Sprintf("Getting team %s in %s", slug, org),
	})
	if err != nil {
		return nil, err
	}
	var team Team
	if err := decodeValue(payload, &team); err != nil {
		return nil, err
	}
	return &team, nil
}

func (s *TeamsService) Create(org string, request *TeamRequest) (*Team, error) {
	return s.write("POST", fmt.Sprintf("orgs/%s/teams", org), request,
		fmt.Sprintf("Creating team %s in %s", request.Name, org))
}

func (s *TeamsService) Update(org, slug string, request *TeamRequest) (*Team, error) {
	return s.write("PATCH", fmt.Sprintf("orgs/%s/teams/%s", org, slug), request,
		fmt.Sprintf("Updating team %s in %s", slug, org))
}

func (s *TeamsService) write(method, path string, request *TeamRequest, activity string) (*Team, error) {
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
	var team Team
	if err := decodeValue(payload, &team); err != nil {
		return nil, err
	}
	return &team, nil
}

func (s *TeamsService) Delete(org, slug string) error {
	_, err := s.bridge.Execute(&githubbridge.Request{
		Method:      "DELETE",
		Path:        fmt.Sprintf("orgs/%s/teams/%s", org, slug),
		Description: fmt.Sprintf("Deleting team %s in %s", slug, org),
	})
	return err
}

func (s *TeamsService) ListMembers(org, slug string) ([]User, error) {
	pages, err := s.bridge.FetchAll(&githubbridge.Request{
		Path:        fmt.Sprintf("orgs/%s/teams/%s/members", org, slug),
		Description: fmt.Sprintf("Getting members of team %s in %s", slug, org),
	}, false)
	if err != nil {
		return nil, err
	}
	var members []User
	if err := decodeValue(pages, &members); err != nil {
		return nil, err
	}
	return members, nil
}
