package handler

import (
	"errors"
	"net/http"

	"github.com/Mehboob-alam1/mahir-backend/internal/dto"
	"github.com/Mehboob-alam1/mahir-backend/internal/service"
	"github.com/gin-gonic/gin"
)

// respondError maps the service error taxonomy to HTTP statuses. Unexpected
// errors become a generic 500 so storage and signing details never leak.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := "internal server error"

	switch {
	case errors.Is(err, service.ErrDuplicateEmail):
		status = http.StatusConflict
		message = err.Error()
	case errors.Is(err, service.ErrUnauthorized):
		status = http.StatusUnauthorized
		message = err.Error()
	case errors.Is(err, service.ErrNotFound):
		status = http.StatusNotFound
		message = err.Error()
	case errors.Is(err, service.ErrInvalidInput):
		status = http.StatusBadRequest
		message = err.Error()
	}

	c.JSON(status, dto.ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
	})
}

// respondBindingError reports a request that failed validation binding
func respondBindingError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error:   "Validation failed",
		Message: err.Error(),
	})
}
