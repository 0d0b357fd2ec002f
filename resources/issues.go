package resources

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	githubbridge "github.com/opengovern/github-bridge"
)

// IssuesService reads and mutates issues and their comments.
type IssuesService struct {
	bridge *githubbridge.GitHubBridge
}

type Issue struct {
	ID        int64      `json:"id"`
	Number    int        `json:"number"`
	State     string     `json:"state"`
	Title     string     `json:"title"`
	Body      string     `json:"body"`
	User      *User      `json:"user"`
	Labels    []Label    `json:"labels"`
	Assignees []User     `json:"assignees"`
	Milestone *Milestone `json:"milestone"`
	Comments  int        `json:"comments"`
	HTMLURL   string     `json:"html_url"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	ClosedAt  time.Time  `json:"closed_at"`
}

type IssueComment struct {
	ID        int64     `json:"id"`
	Body      string    `json:"body"`
	User      *User     `json:"user"`
	HTMLURL   string    `json:"html_url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IssueRequest carries the mutable fields for create and update. Nil fields
// are left untouched by updates.
type IssueRequest struct {
	Title     *string   `json:"title,omitempty"`
	Body      *string   `json:"body,omitempty"`
	State     *string   `json:"state,omitempty"`
	Assignees *[]string `json:"assignees,omitempty"`
	Labels    *[]string `json:"labels,omitempty"`
	Milestone *int      `json:"milestone,omitempty"`
}

// IssueListOptions narrows issue listings. Zero fields are omitted.
type IssueListOptions struct {
	State    string
	Labels   []string
	Assignee string
	Creator  string
	Since    time.Time
	PerPage  int
}

func (o *IssueListOptions) query() string {
	if o == nil {
		return ""
	}
	values := url.Values{}
	if o.State != "" {
		values.Set("state", o.State)
	}
	if len(o.Labels) > 0 {
		values.Set("labels", strings.Join(o.Labels, ","))
	}
	if o.Assignee != "" {
		values.Set("assignee", o.Assignee)
	}
	if o.Creator != "" {
		values.Set("creator", o.Creator)
	}
	if !o.Since.IsZero() {
		values.Set("since", o.Since.UTC().Format(time.RFC3339))
	}
	if o.PerPage > 0 {
		values.Set("per_page", fmt.Sprintf("%d", o.PerPage))
	}
	return values.Encode()
}

func (s *IssuesService) Get(owner, repo string, number int) (*Issue, error) {
	payload, err := s.bridge.Execute(&githubbridge.Request{
		Path:        fmt.Sprintf("repos/%s/%s/issues/%d", owner, repo, number),
		Description: fmt.Sprintf("Getting issue %s/%s#%d", owner, repo, number),
	})
	if err != nil {
		return nil, err
	}
	var issue Issue
	if err := decodeValue(payload, &issue); err != nil {
		return nil, err
	}
	return &issue, nil
}

func (s *IssuesService) ListForRepo(owner, repo string, opts *IssueListOptions) ([]Issue, error) {
	path := fmt.Sprintf("repos/%s/%s/issues", owner, repo)
	if query := opts.query(); query != "" {
		path += "?" + query
	}
	pages, err := s.bridge.FetchAll(&githubbridge.Request{
		Path:        path,
		Description: fmt.Sprintf("Getting issues for %s/%s", owner, repo),
	}, false)
	if err != nil {
		return nil, err
	}
	var issues []Issue
	if err := decodeValue(pages, &issues); err != nil {
		return nil, err
	}
	return issues, nil
}

func (s *IssuesService) Create(owner, repo string, request *IssueRequest) (*Issue, error) {
	return s.write("POST", fmt.Sprintf("repos/%s/%s/issues", owner, repo), request,
		fmt.Sprintf("Creating issue in %s/%s", owner, repo))
}

func (s *IssuesService) Update(owner, repo string, number int, request *IssueRequest) (*Issue, error) {
	return s.write("PATCH", fmt.Sprintf("repos/%s/%s/issues/%d", owner, repo, number), request,
		fmt.Sprintf("Updating issue %s/%s#%d", owner, repo, number))
}

// Close is Update with state fixed to closed.
func (s *IssuesService) Close(owner, repo string, number int) (*Issue, error) {
	closed := "closed"
	return s.Update(owner, repo, number, &IssueRequest{State: &closed})
}

func (s *IssuesService) write(method, path string, request *IssueRequest, activity string) (*Issue, error) {
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
	var issue Issue
	if err := decodeValue(payload, &issue); err != nil {
		return nil, err
	}
	return &issue, nil
}

// CommentListOptions selects the rendered form of comment bodies. Formats
// are raw, text, html and full; empty keeps the server default.
type CommentListOptions struct {
	BodyFormat string
}

func (o *CommentListOptions) accept() string {
	if o == nil || o.BodyFormat == "" {
		return ""
	}
	return fmt.Sprintf("application/vnd.github.v3.%s+json", o.BodyFormat)
}

func (s *IssuesService) ListComments(owner, repo string, number int, opts *CommentListOptions) ([]IssueComment, error) {
	pages, err := s.bridge.FetchAll(&githubbridge.Request{
		Path:         fmt.Sprintf("repos/%s/%s/issues/%d/comments", owner, repo, number),
		AcceptHeader: opts.accept(),
		Description:  fmt.Sprintf("Getting comments on %s/%s#%d", owner, repo, number),
	}, false)
	if err != nil {
		return nil, err
	}
	var comments []IssueComment
	if err := decodeValue(pages, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

func (s *IssuesService) CreateComment(owner, repo string, number int, text string) (*IssueComment, error) {
	body, err := json.Marshal(map[string]string{"body": text})
	if err != nil {
		return nil, err
	}
	payload, err := s.bridge.Execute(&githubbridge.Request{
		Method:      "POST",
		Path:        fmt.Sprintf("repos/%s/%s/issues/%d/comments", owner, repo, number),
		Body:        body,
		Description: fmt.Sprintf("Commenting on %s/%s#%d", owner, repo, number),
	})
	if err != nil {
		return nil, err
	}
	var comment IssueComment
	if err := decodeValue(payload, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

func (s *IssuesService) UpdateComment(owner, repo string, commentID int64, text string) (*IssueComment, error) {
	body, err := json.Marshal(map[string]string{"body": text})
	if err != nil {
		return nil, err
	}
	payload, err := s.bridge.Execute(&githubbridge.Request{
		Method:      "PATCH",
		Path:        fmt.Sprintf("repos/%s/%s/issues/comments/%d", owner, repo, commentID),
		Body:        body,
		Description: fmt.Sprintf("Updating comment %d in %s/%s", commentID, owner, repo),
	})
	if err != nil {
		return nil, err
	}
	var comment IssueComment
	if err := decodeValue(payload, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

func (s *IssuesService) DeleteComment(owner, repo string, commentID int64) error {
	_, err := s.bridge.Execute(&githubbridge.Request{
		Method:      "DELETE",
		Path:        fmt.Sprintf("repos/%s/%s/issues/comments/%d", owner, repo, commentID),
		Description: fmt.Sprintf("Deleting comment %d in %s/%s", commentID, owner, repo),
	})
	return err
}
