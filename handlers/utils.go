package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// generateUUID generates a new UUID
func generateUUID() string {
	return uuid.New().String()
}

// requestLogger returns the logger tagged with this request's id.
func requestLogger(c *gin.Context) *zap.Logger {
	if id := c.GetString(requestIDKey); id != "" {
		return Logger.With(zap.String("request_id", id))
	}
	return Logger
}

// internalError logs err and answers with a generic message.
func internalError(c *gin.Context, msg string, err error) {
	requestLogger(c).Error(msg, zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
}

// bodyTooLarge reports whether err came from the body limit middleware.
func bodyTooLarge(err error) bool {
	var mbe *http.MaxBytesError
	return errors.As(err, &mbe)
}
