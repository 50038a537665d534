package handlers

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AdminMiddleware guards the admin API with HTTP Basic credentials. The
// configured password may be plain text or a bcrypt hash.
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Basic ") {
			c.Header("WWW-Authenticate", "Basic")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Auth required"})
			return
		}

		user, pass, ok := c.Request.BasicAuth()
		if !ok || !checkAdmin(user, pass) {
			requestLogger(c).Warn("admin login rejected", zap.String("user", user))
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			return
		}

		c.Next()
	}
}

func checkAdmin(user, pass string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(user), []byte(adminUser)) == 1
	return userOK && checkPassword(pass)
}

func checkPassword(pass string) bool {
	if isBcryptHash(adminPass) {
		return bcrypt.CompareHashAndPassword([]byte(adminPass), []byte(pass)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(pass), []byte(adminPass)) == 1
}

func isBcryptHash(s string) bool {
	_, err := bcrypt.Cost([]byte(s))
	return err == nil
}
