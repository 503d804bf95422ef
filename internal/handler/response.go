package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/sumire/projectmanager/internal/domain"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Client-facing messages.
const (
	MsgProjectNotFound     = "Project not found"
	MsgProjectNameExists   = "Project name already exists"
	MsgInvalidRequestBody  = "Invalid request body"
	MsgInternalServerError = "Internal server error"
)

// Envelope is the response body for mutations and errors.
type Envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message,omitempty"`
	Project *domain.Project `json:"project,omitempty"`
}

// CountResponse is the response body for GET /api/projects/count.
type CountResponse struct {
	Count int `json:"count"`
}

// Success writes a success envelope carrying project.
func Success(c echo.Context, status int, project *domain.Project) error {
	return c.JSON(status, Envelope{Status: StatusSuccess, Project: project})
}

// NewHTTPErrorHandler returns the global error handler for echo.
func NewHTTPErrorHandler(logger *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, message := mapError(err)
		if status == http.StatusInternalServerError {
			logger.Error("unhandled error",
				zap.Error(err),
				zap.String("path", c.Request().URL.Path),
				zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
			)
		}

		if jsonErr := c.JSON(status, Envelope{Status: StatusError, Message: message}); jsonErr != nil {
			logger.Error("failed to send error response", zap.Error(jsonErr))
		}
	}
}

func mapError(err error) (int, string) {
	// Handle echo's own HTTP errors (404, 405, 429, etc.)
	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		msg, _ := echoErr.Message.(string)
		if msg == "" {
			msg = http.StatusText(echoErr.Code)
		}
		return echoErr.Code, msg
	}

	var validationErr *domain.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest, validationErr.Message
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, MsgProjectNotFound
	case errors.Is(err, domain.ErrDuplicateName):
		return http.StatusBadRequest, MsgProjectNameExists
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, MsgInvalidRequestBody
	default:
		return http.StatusInternalServerError, MsgInternalServerError
	}
}

// statusOf reports the status a request will end with once err, if any,
// has gone through the error handler.
func statusOf(c echo.Context, err error) int {
	if err != nil && !c.Response().Committed {
		status, _ := mapError(err)
		return status
	}
	return c.Response().Status
}
