package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"inkbook/utils"

	"github.com/gin-gonic/gin"
)

// AdminAuth gates a route group behind the shared admin secret. The secret is read
// from the "password" query parameter or an "Authorization: Bearer" header.
// An empty configured secret rejects everything.
func AdminAuth(secret string) gin.HandlerFunc {
	want := []byte(secret)
	return func(c *gin.Context) {
		supplied := c.Query("password")
		if supplied == "" {
			if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
				supplied = strings.TrimPrefix(h, "Bearer ")
			}
		}

		if len(want) == 0 || subtle.ConstantTimeCompare([]byte(supplied), want) != 1 {
			utils.JSONError(c, http.StatusUnauthorized, utils.CodeUnauthorized, "Unauthorized", "")
			return
		}
		c.Set("isAdmin", true)
		c.Next()
	}
}
