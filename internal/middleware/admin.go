package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pradeepgv/gita-attendance-tracker/internal/auth"
)

// AdminPasswordHeader carries the shared admin secret on report/alert routes
const AdminPasswordHeader = "x-admin-password"

// RequireAdmin validates the admin password header and rejects mismatches
func RequireAdmin(verifier auth.Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		password := c.GetHeader(AdminPasswordHeader)
		if password == "" || !verifier.Verify(password) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}

		c.Next()
	}
}
