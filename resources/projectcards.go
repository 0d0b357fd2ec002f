package resources

import (
	"encoding/json"
	"fmt"
	"time"

	githubbridge "github.com/opengovern/github-bridge"
)

// ProjectCardsService manages classic project cards. The endpoints sit
// behind the inertia preview media type.
type ProjectCardsService struct {
	bridge *githubbridge.GitHubBridge
}

type ProjectCard struct {
	ID         int64     `json:"id"`
	Note       string    `json:"note"`
	ColumnURL  string    `json:"column_url"`
	ContentURL string    `json:"content_url"`
	Archived   bool      `json:"archived"`
	Creator    *User     `json:"creator"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ProjectCardRequest creates a card from either a free-text note or an
// existing issue (ContentID plus ContentType "Issue").
type ProjectCardRequest struct {
	Note        string `json:"note,omitempty"`
	ContentID   int64  `json:"content_id,omitempty"`
	ContentType string `json:"content_type,omitempty"`
}

func (s *ProjectCardsService) ListForColumn(columnID int64) ([]ProjectCard, error) {
	pages, err := s.bridge.FetchAll(&githubbridge.Request{
		Path:         fmt.Sprintf("projects/columns/%d/cards", columnID),
		AcceptHeader: githubbridge.MediaTypeProjectsPreview,
		Description:  fmt.Sprintf("Getting cards in column %d", columnID),
	}, false)
	if err != nil {
		return nil, err
	}
	var cards []ProjectCard
	if err := decodeValue(pages, &cards); err != nil {
		return nil, err
	}
	return cards, nil
}

func (s *ProjectCardsService) Get(cardID int64) (*ProjectCard, error) {
	payload, err := s.bridge.Execute(&githubbridge.Request{
		Path:         fmt.Sprintf("projects/columns/cards/%d", cardID),
		AcceptHeader: githubbridge.MediaTypeProjectsPreview,
		Description:  fmt.Sprintf("Getting project card %d", cardID),
	})
	if err != nil {
		return nil, err
	}
	var card ProjectCard
	if err := decodeValue(payload, &card); err != nil {
		return nil, err
	}
	return &card, nil
}

func (s *ProjectCardsService) Create(columnID int64, request *ProjectCardRequest) (*ProjectCard, error) {
	body, err := json.Marshal(request)
	if err != nil {
		return nil, err
	}
	payload, err := s.bridge.Execute(&githubbridge.Request{
		Method:       "POST",
		Path:         fmt.Sprintf("projects/columns/%d/cards", columnID),
		Body:         body,
		AcceptHeader: githubbridge.MediaTypeProjectsPreview,
		Description:  fmt.Sprintf("Creating card in column %d", columnID),
	})
	if err != nil {
		return nil, err
	}
	var card ProjectCard
	if err := decodeValue(payload, &card); err != nil {
		return nil, err
	}
	return &card, nil
}

// Move repositions a card. Position is "top", "bottom" or "after:<cardID>";
// a non-zero columnID moves it across columns.
func (s *ProjectCardsService) Move(cardID int64, position string, columnID int64) error {
	request := map[string]interface{}{"position": position}
	if columnID > 0 {
		request["column_id"] = columnID
	}
	body, err := json.Marshal(request)
	if err != nil {
		return err
	}
	_, err = s.bridge.Execute(&githubbridge.Request{
		Method:       "POST",
		Path:         fmt.Sprintf("projects/columns/cards/%d/moves", cardID),
		Body:         body,
		AcceptHeader: githubbridge.MediaTypeProjectsPreview,
		Description:  fmt.Sprintf("Moving project card %d", cardID),
	})
	return err
}

func (s *ProjectCardsService) Delete(cardID int64) error {
	_, err := s.bridge.Execute(&githubbridge.Request{
		Method:       "DELETE",
		Path:         fmt.Sprintf("projects/columns/cards/%d", cardID),
		AcceptHeader: githubbridge.MediaTypeProjectsPreview,
		Description:  fmt.Sprintf("Deleting project card %d", cardID),
	})
	return err
}
