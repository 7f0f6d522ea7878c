package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/planloop/planloop/internal/domain/common/errorz"
)

// abortWithError maps domain errors onto HTTP status codes.
func abortWithError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, errorz.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, errorz.ErrNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		status = http.StatusNotFound
	case errors.Is(err, errorz.ErrInvalidCredentials), errors.Is(err, errorz.ErrInvalidToken):
		status = http.StatusUnauthorized
	case errors.Is(err, errorz.ErrInvalidCode):
		status = http.StatusBadRequest
	case errors.Is(err, errorz.ErrConnectionExists):
		status = http.StatusConflict
	}
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}

func abortWithValidation(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": message})
}
