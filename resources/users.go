package resources

import (
	"fmt"

	githubbridge "github.com/opengovern/github-bridge"
)

// UsersService reads user profiles and user listings.
type UsersService struct {
	bridge *githubbridge.GitHubBridge
}

// Current returns the profile behind the configured token.
func (s *UsersService) Current() (*User, error) {
	return s.get("user", "Getting the authenticated user")
}

func (s *UsersService) Get(login string) (*User, error) {
	return s.get("users/"+login, "Getting user "+login)
}

func (s *UsersService) get(path, activity string) (*User, error) {
	payload, err := s.bridge.Execute(&githubbridge.Request{Path: path, Description: activity})
	if err != nil {
		return nil, err
	}
	var user User
	if err := decodeValue(payload, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ListAll enumerates every account in creation order starting after the
// given user id. The endpoint paginates with an opaque since= cursor and
// never reports a total, so progress shows pages without a denominator.
func (s *UsersService) ListAll(since int64) ([]User, error) {
	path := "users"
	if since > 0 {
		path = fmt.Sprintf("users?since=%d", since)
	}
	pages, err := s.bridge.FetchAll(&githubbridge.Request{
		Path:        path,
		Description: "Enumerating users",
	}, false)
	if err != nil {
		return nil, err
	}
	var users []User
	if err := decodeValue(pages, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *UsersService) ListFollowers(login string) ([]User, error) {
	pages, err := s.bridge.FetchAll(&githubbridge.Request{
		Path:        fmt.Sprintf("users/%s/followers", login),
		Description: "Getting followers of " + login,
	}, false)
	if err != nil {
		return nil, err
	}
	var followers []User
	if err := decodeValue(pages, &followers); err != nil {
		return nil, err
	}
	return followers, nil
}
