package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/sumire/projectmanager/internal/domain"
	"github.com/sumire/projectmanager/internal/service"
)

// WelcomeMessage is served at GET /.
const WelcomeMessage = "Welcome to the Project Manager API! Use /api/projects to interact with projects."

type projectRequest struct {
	Name string `json:"name" validate:"required,min=3"`
}

// ProjectHandler handles the /api/projects endpoints.
type ProjectHandler struct {
	projects *service.ProjectService
	metrics  *Metrics
}

// NewProjectHandler creates a new ProjectHandler. metrics may be nil.
func NewProjectHandler(projects *service.ProjectService, metrics *Metrics) *ProjectHandler {
	return &ProjectHandler{projects: projects, metrics: metrics}
}

// List handles GET /api/projects.
func (h *ProjectHandler) List(c echo.Context) error {
	projects, err := h.projects.ListProjects(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, projects)
}

// Count handles GET /api/projects/count.
func (h *ProjectHandler) Count(c echo.Context) error {
	n, err := h.projects.CountProjects(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, CountResponse{Count: n})
}

// Get handles GET /api/projects/:id.
func (h *ProjectHandler) Get(c echo.Context) error {
	id, err := projectID(c)
	if err != nil {
		return err
	}

	project, err := h.projects.GetProject(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, project)
}

// Create handles POST /api/projects.
func (h *ProjectHandler) Create(c echo.Context) error {
	req, err := bindProject(c)
	if err != nil {
		return err
	}

	project, err := h.projects.CreateProject(c.Request().Context(), req.Name)
	h.metrics.ObserveMutation("create", err)
	if err != nil {
		return err
	}
	return Success(c, http.StatusCreated, project)
}

// Update handles PUT /api/projects/:id. The body is validated before the
// id is looked up.
func (h *ProjectHandler) Update(c echo.Context) error {
	req, err := bindProject(c)
	if err != nil {
		return err
	}

	id, err := projectID(c)
	if err != nil {
		return err
	}

	project, err := h.projects.UpdateProject(c.Request().Context(), id, req.Name)
	h.metrics.ObserveMutation("update", err)
	if err != nil {
		return err
	}
	return Success(c, http.StatusOK, project)
}

// Delete handles DELETE /api/projects/:id.
func (h *ProjectHandler) Delete(c echo.Context) error {
	id, err := projectID(c)
	if err != nil {
		return err
	}

	project, err := h.projects.DeleteProject(c.Request().Context(), id)
	h.metrics.ObserveMutation("delete", err)
	if err != nil {
		return err
	}
	return Success(c, http.StatusOK, project)
}

// projectID parses the :id path parameter. An id that is not a number can
// never match a project, so it is reported as not found.
func projectID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, domain.ErrNotFound
	}
	return id, nil
}

// bindProject decodes and validates a {name} body. An empty body is treated
// as a missing name.
func bindProject(c echo.Context) (projectRequest, error) {
	var req projectRequest
	if err := json.NewDecoder(c.Request().Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		return req, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if err := c.Validate(&req); err != nil {
		return req, err
	}
	return req, nil
}
