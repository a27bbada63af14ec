package httputil

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/zerefharsh/amp-csr-portal/pkg/apperror"
)

// Response wraps all API responses
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *Error      `json:"error,omitempty"`
}

// Error represents an API error
type Error struct {
	Category string `json:"category"`
	Message  string `json:"message"`
}

// RespondWithSuccess sends a success response
func RespondWithSuccess(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    data,
	})
}

// RespondWithCreated sends a 201 response
func RespondWithCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Success: true,
		Data:    data,
	})
}

// RespondWithError maps an application error category to an HTTP status.
// Store errors come back as 503 so the UI can offer a retry without
// implying the input was wrong.
func RespondWithError(c *gin.Context, err error) {
	var appErr *apperror.Error
	if !errors.As(err, &appErr) {
		appErr = apperror.Store("internal error", err)
	}

	status := http.StatusInternalServerError
	switch appErr.Category {
	case apperror.CategoryValidation:
		status = http.StatusBadRequest
	case apperror.CategoryNotFound:
		status = http.StatusNotFound
	case apperror.CategoryStore:
		status = http.StatusServiceUnavailable
	}

	c.Error(err)
	c.JSON(status, Response{
		Success: false,
		Error: &Error{
			Category: string(appErr.Category),
			Message:  appErr.Message,
		},
	})
}

// RespondWithBindError converts a gin binding failure into a validation
// error response with readable field messages.
func RespondWithBindError(c *gin.Context, err error) {
	msg := "invalid request body"

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		msg = "invalid value for field " + verrs[0].Field()
	}

	RespondWithError(c, apperror.Validationf("%s", msg))
}
