package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skillpulse/skillpulse/internal/engine"
	"github.com/skillpulse/skillpulse/internal/profile"
	"github.com/skillpulse/skillpulse/internal/store"
)

// APIError is the body of every error response.
type APIError struct {
	Message string               `json:"message"`
	Code    string               `json:"code,omitempty"`
	Fields  []profile.FieldError `json:"fields,omitempty"`
}

// ErrorEnvelope wraps APIError.
type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

// Error codes.
const (
	CodeInvalid  = "invalid_request"
	CodeNotFound = "not_found"
	CodeInternal = "internal"
)

// RespondError writes an error envelope with the given status.
func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	apiErr := APIError{Message: msg, Code: code}
	var perr *profile.ValidationError
	if errors.As(err, &perr) {
		apiErr.Fields = perr.Fields
	}
	c.JSON(status, ErrorEnvelope{Error: apiErr})
}

// RespondOK writes payload as a 200 JSON response.
func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

// statusFor maps an engine error onto an HTTP status and code.
func statusFor(err error) (int, string) {
	switch {
	case engine.IsValidation(err):
		return http.StatusBadRequest, CodeInvalid
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound, CodeNotFound
	default:
		return http.StatusInternalServerError, CodeInternal
	}
}
