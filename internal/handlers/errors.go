package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/kennywood/park-api/internal/models"
	"github.com/sirupsen/logrus"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// unauthorizedErrors are surfaced to the client with their own message
var unauthorizedErrors = []error{
	models.ErrUnauthenticated,
	models.ErrInvalidCredentials,
	models.ErrInvalidToken,
}

// respondError translates err into a status code and an ErrorResponse.
// Unrecognised errors are logged and reported as a generic 500.
func respondError(c *gin.Context, err error) {
	_ = c.Error(err)

	var (
		validation *models.ValidationError
		notFound   *models.NotFoundError
		conflict   *models.ConflictError
	)

	switch {
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: validation.Error(),
		})
		return
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error:   "not_found",
			Message: notFound.Error(),
		})
		return
	case errors.As(err, &conflict):
		c.JSON(http.StatusConflict, ErrorResponse{
			Error:   "conflict",
			Message: conflict.Error(),
		})
		return
	}

	for _, sentinel := range unauthorizedErrors {
		if errors.Is(err, sentinel) {
			c.JSON(http.StatusUnauthorized, ErrorResponse{
				Error:   "unauthorized",
				Message: sentinel.Error(),
			})
			return
		}
	}

	logrus.WithError(err).WithFields(logrus.Fields{
		"method": c.Request.Method,
		"path":   c.Request.URL.Path,
	}).Error("Request failed")

	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Error:   "internal_error",
		Message: "internal server error",
	})
}

// bindJSON decodes the request body, reporting malformed input as a validation error
func bindJSON(c *gin.Context, dest interface{}) error {
	if err := c.ShouldBindJSON(dest); err != nil {
		return &models.ValidationError{Message: "Invalid request body: " + err.Error()}
	}
	return nil
}

// pathID parses the :id route parameter
func pathID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, &models.ValidationError{Field: "id", Message: "A valid integer is required."}
	}
	return id, nil
}
