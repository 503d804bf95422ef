// Package client talks to the project API and holds the client-side view of
// its data.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/sumire/projectmanager/internal/domain"
)

// DefaultBaseURL is where the API listens by default.
const DefaultBaseURL = "http://localhost:5000"

// APIError is a failure reported by the API, either as a non-2xx status or
// as a {"status":"error"} body.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (status %d): %s", e.StatusCode, e.Message)
}

// envelope matches the server's mutation and error body.
type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Project *domain.Project `json:"project"`
}

type countResponse struct {
	Count int `json:"count"`
}

type projectRequest struct {
	Name string `json:"name"`
}

// Client is a typed HTTP client for the project API.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout sets the per-request timeout of the default http.Client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// WithLogger sets the logger used for request tracing.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// New creates a Client for the API at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the API root the client sends requests to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// CloseIdleConnections releases pooled keep-alive connections.
func (c *Client) CloseIdleConnections() {
	c.http.CloseIdleConnections()
}

// ListProjects fetches all projects.
func (c *Client) ListProjects(ctx context.Context) ([]domain.Project, error) {
	projects := []domain.Project{}
	if err := c.do(ctx, http.MethodGet, "/api/projects", nil, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// CountProjects fetches the number of projects.
func (c *Client) CountProjects(ctx context.Context) (int, error) {
	var resp countResponse
	if err := c.do(ctx, http.MethodGet, "/api/projects/count", nil, &resp); err != nil {
		return 0, err
	}
	return resp.Count, nil
}

// GetProject fetches a single project.
func (c *Client) GetProject(ctx context.Context, id int64) (*domain.Project, error) {
	var project domain.Project
	if err := c.do(ctx, http.MethodGet, projectPath(id), nil, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// CreateProject creates a project named name.
func (c *Client) CreateProject(ctx context.Context, name string) (*domain.Project, error) {
	return c.mutate(ctx, http.MethodPost, "/api/projects", &projectRequest{Name: name})
}

// UpdateProject renames the project with the given id.
func (c *Client) UpdateProject(ctx context.Context, id int64, name string) (*domain.Project, error) {
	return c.mutate(ctx, http.MethodPut, projectPath(id), &projectRequest{Name: name})
}

// DeleteProject deletes the project with the given id and returns it.
func (c *Client) DeleteProject(ctx context.Context, id int64) (*domain.Project, error) {
	return c.mutate(ctx, http.MethodDelete, projectPath(id), nil)
}

func (c *Client) mutate(ctx context.Context, method, path string, body any) (*domain.Project, error) {
	var env envelope
	if err := c.do(ctx, method, path, body, &env); err != nil {
		return nil, err
	}
	if env.Status == "error" {
		return nil, &APIError{StatusCode: http.StatusOK, Message: env.Message}
	}
	if env.Project == nil {
		return nil, fmt.Errorf("%s %s: response carried no project", method, path)
	}
	return env.Project, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("api request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var env envelope
		if json.Unmarshal(data, &env) == nil {
			apiErr.Message = env.Message
		}
		return apiErr
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func projectPath(id int64) string {
	return "/api/projects/" + strconv.FormatInt(id, 10)
}
