package handlers

import (
	"context"
	"net/http"

	"tourhub/utils"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports whether the backing stores answer.
func HealthHandler(check func(ctx context.Context) utils.HealthStatus) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := check(c.Request.Context())
		code := http.StatusOK
		if !status.Healthy() {
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, status)
	}
}
