package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	apperrors "pausepad/internal/errors"
	"pausepad/internal/middleware"
)

func writeError(c *gin.Context, apiErr *apperrors.APIError) {
	if apiErr == nil {
		apiErr = apperrors.Internal("")
	}
	c.JSON(apiErr.Status, gin.H{"error": apiErr})
}

// bindJSON decodes the body into req and writes a 400 when that fails.
// Binding tag violations are reported per field.
func bindJSON(c *gin.Context, req any) bool {
	err := c.ShouldBindJSON(req)
	if err == nil {
		return true
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		fields := make(map[string]string, len(fieldErrs))
		for _, fe := range fieldErrs {
			fields[fe.Field()] = fe.Tag()
		}
		writeError(c, apperrors.BadRequest("invalid_request", "request validation failed").WithDetails(fields))
		return false
	}
	writeError(c, apperrors.InvalidJSON(nil))
	return false
}

// requireUser returns the authenticated user id or writes a 401.
func requireUser(c *gin.Context) (string, bool) {
	userID := middleware.UserID(c)
	if userID == "" {
		writeError(c, apperrors.Unauthorized(""))
		return "", false
	}
	return userID, true
}

func respond[T any](c *gin.Context, status int, value T, apiErr *apperrors.APIError) {
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(status, value)
}

func ok[T any](c *gin.Context, value T, apiErr *apperrors.APIError) {
	respond(c, http.StatusOK, value, apiErr)
}
