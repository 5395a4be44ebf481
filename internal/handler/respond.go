package handler

import (
	"log/slog"
	"net/http"

	"campbook/internal/model"
	"campbook/internal/service"

	"github.com/gin-gonic/gin"
)

// statusFor maps a service error kind to an HTTP status code.
func statusFor(err error) int {
	switch service.KindOf(err) {
	case service.KindInvalidInput:
		return http.StatusBadRequest
	case service.KindUnauthenticated:
		return http.StatusUnauthorized
	case service.KindForbidden:
		return http.StatusForbidden
	case service.KindNotFound:
		return http.StatusNotFound
	case service.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// abortWithError writes the failure envelope for a service error. Internal
// errors are logged and replaced with a generic message.
func abortWithError(c *gin.Context, err error) {
	status := statusFor(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		slog.Error("request failed",
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.String("error", err.Error()),
		)
		message = "Something went wrong"
	}
	c.AbortWithStatusJSON(status, model.NewErrorResponse(message))
}

// abortWithBindingError writes a 400 for a request body that failed binding.
func abortWithBindingError(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, model.NewErrorResponse(err.Error()))
}
