// Package handlers implements the HTTP endpoints of the contact API.
//
// Every response uses one of two envelopes:
//
//	{"status": "success", ...}
//	{"status": "error", "code": "...", "message": "...", "request_id": "...", "errors": [...]}
//
// Handlers translate service errors into these envelopes with
// failFromError so that status mapping lives in one place.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/renacod/backend/internal/http/middleware"
	"github.com/renacod/backend/internal/services"
	"github.com/renacod/backend/internal/validation"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

// ErrorResponse is the error envelope returned by all endpoints.
type ErrorResponse struct {
	Status string `json:"status" example:"error"`
	// Stable, machine-readable code (see errors.go)
	Code string `json:"code" example:"not_found"`
	// Human-readable message, safe to show to users
	Message   string `json:"message" example:"Contact not found"`
	RequestID string `json:"request_id,omitempty" example:"123e4567-e89b-12d3-a456-426614174000"`
	// Per-field rejections, only for validation failures
	Errors validation.FieldErrors `json:"errors,omitempty"`
}

// MessageResponse is a success envelope carrying only a message.
type MessageResponse struct {
	Status  string `json:"status" example:"success"`
	Message string `json:"message" example:"Contact deleted successfully"`
}

// fail aborts with the error envelope. 5xx responses are logged with the
// request-scoped logger.
func fail(c *gin.Context, status int, code, msg string) {
	failWith(c, status, ErrorResponse{Code: code, Message: msg})
}

func failWith(c *gin.Context, status int, resp ErrorResponse) {
	resp.Status = statusError
	resp.RequestID = middleware.RequestIDFrom(c)
	if status >= http.StatusInternalServerError {
		lg := middleware.LoggerFrom(c)
		ev := lg.Error().Int("status", status).Str("code", resp.Code)
		if len(c.Errors) > 0 {
			ev = ev.Str("cause", c.Errors.Last().Error())
		}
		ev.Msg(resp.Message)
	}
	c.AbortWithStatusJSON(status, resp)
}

// Fail is the exported variant of fail for router-level fallbacks.
func Fail(c *gin.Context, status int, code, msg string) { fail(c, status, code, msg) }

// failFromError maps a service error to its response. Unknown errors become
// a generic 500; the cause is logged but never sent to the client.
func failFromError(c *gin.Context, err error) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		failWith(c, http.StatusBadRequest, ErrorResponse{
			Code:    ErrCodeValidation,
			Message: "Validation failed",
			Errors:  verr.Fields,
		})
	case errors.Is(err, services.ErrContactNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "Contact not found")
	case errors.Is(err, services.ErrNoContactIDs):
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "Contact IDs array is required")
	case errors.Is(err, services.ErrNoValidUpdates):
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "No valid updates provided")
	case errors.Is(err, services.ErrBadRequest):
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
	default:
		_ = c.Error(err)
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "Something went wrong, please try again later")
	}
}

func ok(c *gin.Context, status int, body any) {
	c.JSON(status, body)
}
