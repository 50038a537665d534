package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetPosts handles GET /api/posts
func GetPosts(c *gin.Context) {
	posts, err := Posts.ListPosts(c.Request.Context())
	if err != nil {
		internalError(c, "Failed to load posts", err)
		return
	}
	c.JSON(http.StatusOK, posts)
}
