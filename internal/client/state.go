package client

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/sumire/projectmanager/internal/domain"
)

// Generic messages shown when the API gives no usable message.
const (
	MsgFetchFailed  = "Failed to fetch projects"
	MsgAddFailed    = "Failed to add project"
	MsgDeleteFailed = "Failed to delete project"
)

// State is the client's cached view of the API plus the form input.
type State struct {
	Projects       []domain.Project
	ProjectCount   int
	NewProjectName string
	Error          string
}

// FetchResult is the outcome of fetching the list and then the count.
// Projects is nil when the list fetch failed, in which case the count was
// never requested.
type FetchResult struct {
	Projects []domain.Project
	ListErr  error
	Count    int
	CountErr error
}

// ApplyFetch folds a fetch result into the state. A failed list fetch
// leaves the state untouched apart from the error message; a failed count
// fetch still applies the list.
func (s *State) ApplyFetch(r FetchResult) {
	if r.ListErr != nil {
		s.Error = MsgFetchFailed
		return
	}
	s.Projects = r.Projects
	if r.CountErr != nil {
		s.Error = MsgFetchFailed
		return
	}
	s.ProjectCount = r.Count
}

// ApplyCreate records the outcome of a create. It reports whether the
// caller should re-fetch.
func (s *State) ApplyCreate(err error) bool {
	if err != nil {
		s.Error = UserMessage(err, MsgAddFailed)
		return false
	}
	s.NewProjectName = ""
	return true
}

// ApplyDelete records the outcome of a delete. It reports whether the
// caller should re-fetch.
func (s *State) ApplyDelete(err error) bool {
	if err != nil {
		s.Error = UserMessage(err, MsgDeleteFailed)
		return false
	}
	return true
}

// UserMessage returns the API's own message for err when there is one,
// and fallback otherwise.
func UserMessage(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

// Session runs client operations against the API and logs failures in
// full; State only ever sees the short user-facing message.
type Session struct {
	client *Client
	logger *zap.Logger
}

// NewSession creates a Session.
func NewSession(c *Client, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{client: c, logger: logger}
}

// Client returns the underlying API client.
func (s *Session) Client() *Client {
	return s.client
}

// Fetch requests the list and then the count.
func (s *Session) Fetch(ctx context.Context) FetchResult {
	projects, err := s.client.ListProjects(ctx)
	if err != nil {
		s.logger.Error("fetch projects failed", zap.Error(err))
		return FetchResult{ListErr: err}
	}

	count, err := s.client.CountProjects(ctx)
	if err != nil {
		s.logger.Error("fetch project count failed", zap.Error(err))
		return FetchResult{Projects: projects, CountErr: err}
	}

	return FetchResult{Projects: projects, Count: count}
}

// Create submits a new project.
func (s *Session) Create(ctx context.Context, name string) error {
	if _, err := s.client.CreateProject(ctx, name); err != nil {
		s.logger.Error("add project failed", zap.String("name", name), zap.Error(err))
		return err
	}
	return nil
}

// Delete removes a project.
func (s *Session) Delete(ctx context.Context, id int64) error {
	if _, err := s.client.DeleteProject(ctx, id); err != nil {
		s.logger.Error("delete project failed", zap.Int64("project_id", id), zap.Error(err))
		return err
	}
	return nil
}

// Load fetches into st.
func (s *Session) Load(ctx context.Context, st *State) {
	st.ApplyFetch(s.Fetch(ctx))
}

// Refresh clears the error and fetches into st.
func (s *Session) Refresh(ctx context.Context, st *State) {
	st.Error = ""
	s.Load(ctx, st)
}

// Add submits st.NewProjectName and re-fetches on success.
func (s *Session) Add(ctx context.Context, st *State) {
	st.Error = ""
	if st.ApplyCreate(s.Create(ctx, st.NewProjectName)) {
		s.Load(ctx, st)
	}
}

// Remove deletes the project with id and re-fetches on success.
func (s *Session) Remove(ctx context.Context, st *State, id int64) {
	st.Error = ""
	if st.ApplyDelete(s.Delete(ctx, id)) {
		s.Load(ctx, st)
	}
}
