package handlers

import (
	"net/http"

	apperrors "facility-cleaning-backend/internal/errors"

	"github.com/gin-gonic/gin"
)

// respondError maps domain error classes to HTTP status codes. Unclassified
// errors are reported as internal without leaking the underlying message.
func respondError(c *gin.Context, err error) {
	switch {
	case apperrors.IsValidation(err), apperrors.IsConfiguration(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case apperrors.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case apperrors.IsAlreadyExists(err):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case apperrors.IsPrecondition(err):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
