package middleware

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
)

// CronSecret gates cron trigger endpoints behind the X-Cron-Secret header.
// When CRON_SECRET is not configured the check is skipped, which keeps local
// and manual invocations possible.
func CronSecret() gin.HandlerFunc {
	return func(c *gin.Context) {
		secret := os.Getenv("CRON_SECRET")
		if secret != "" && c.GetHeader("X-Cron-Secret") != secret {
			c.JSON(http.StatusUnauthorized, gin.H{
				"ok":      false,
				"message": "Unauthorized",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
