package resources

import (
	"encoding/json"
	"fmt"
	"time"

	githubbridge "github.com/opengovern/github-bridge"
)

// ReactionsService manages emoji reactions on issues and comments. The
// endpoints still require the squirrel-girl preview media type.
type ReactionsService struct {
	bridge *githubbridge.GitHubBridge
}

type Reaction struct {
	ID        int64     `json:"id"`
	Content   string    `json:"content"`
	User      *User     `json:"user"`
	CreatedAt time.Time `json:"created_at"`
}

func (s *ReactionsService) ListForIssue(owner, repo string, number int) ([]Reaction, error) {
	return s.list(fmt.Sprintf("repos/%s/%s/issues/%d/reactions", owner, repo, number),
		fmt.Sprintf("Getting reactions on %s/%s#%d", owner, repo, number))
}

func (s *ReactionsService) ListForIssueComment(owner, repo string, commentID int64) ([]Reaction, error) {
	return s.list(fmt.Sprintf("repos/%s/%s/issues/comments/%d/reactions", owner, repo, commentID),
		fmt.Sprintf("Getting reactions on comment %d in %s/%s", commentID, owner, repo))
}

func (s *ReactionsService) list(path, activity string) ([]Reaction, error) {
	pages, err := s.bridge.FetchAll(&githubbridge.Request{
		Path:         path,
		AcceptHeader: githubbridge.MediaTypeReactionsPreview,
		Description:  activity,
	}, false)
	if err != nil {
		return nil, err
	}
	var reactions []Reaction
	if err := decodeValue(pages, &reactions); err != nil {
		return nil, err
	}
	return reactions, nil
}

// CreateForIssue adds a reaction such as "+1", "heart" or "rocket".
func (s *ReactionsService) CreateForIssue(owner, repo string, number int, content string) (*Reaction, error) {
	return s.create(fmt.Sprintf("repos/%s/%s/issues/%d/reactions", owner, repo, number), content,
		fmt.Sprintf("Reacting to %s/%s#%d", owner, repo, number))
}

func (s *ReactionsService) CreateForIssueComment(owner, repo string, commentID int64, content string) (*Reaction, error) {
	return s.create(fmt.Sprintf("repos/%s/%s/issues/comments/%d/reactions", owner, repo, commentID), content,
		fmt.Sprintf("Reacting to comment %d in %s/%s", commentID, owner, repo))
}

// Delete removes a reaction by id. The legacy delete endpoint is flat, not
// nested under the reacted resource.
func (s *ReactionsService) Delete(reactionID int64) error {
	_, err := s.bridge.Execute(&githubbridge.Request{
		Method:       "DELETE",
		Path:         fmt.Sprintf("reactions/%d", reactionID),
		AcceptHeader: githubbridge.MediaTypeReactionsPreview,
		Description:  fmt.Sprintf("Deleting reaction %d", reactionID),
	})
	return err
}

func (s *ReactionsService) create(path, content, activity string) (*Reaction, error) {
	body, err := json.Marshal(map[string]string{"content": content})
	if err != nil {
		return nil, err
	}
	payload, err := s.bridge.Execute(&githubbridge.Request{
		Method:       "POST",
		Path:         path,
		Body:         body,
		AcceptHeader: githubbridge.MediaTypeReactionsPreview,
		Description:  activity,
	})
	if err != nil {
		return nil, err
	}
	var reaction Reaction
	if err := decodeValue(payload, &reaction); err != nil {
		return nil, err
	}
	return &reaction, nil
}
