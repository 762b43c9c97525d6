package middleware

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
)

// Timeout đặt deadline cho request context.
// Mọi storage call nhận context này nên một call bị treo sẽ fail thay vì chờ mãi.
func Timeout(d time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if d <= 0 {
			c.Next()
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), d)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
