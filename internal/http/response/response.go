package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/getcarekorea/content-engine/internal/platform/apierr"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

// RespondFromError maps service errors onto the wire. apierr values carry
// their own status and code; anything else is a 500.
func RespondFromError(c *gin.Context, err error) {
	var apiErr *apierr.Error
	if errors.As(err, &apiErr) {
		RespondError(c, apiErr.Status, apiErr.Code, apiErr)
		return
	}
	RespondError(c, http.StatusInternalServerError, "internal_error", err)
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

type DataEnvelope struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

// RespondData wraps payload in the {success, data} envelope the admin
// frontend consumes.
func RespondData(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, DataEnvelope{Success: true, Data: payload})
}

func RespondCreated(c *gin.Context, payload any) {
	c.JSON(http.StatusCreated, payload)
}
