package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/oninepa/k-yayo-backend/internal/common"
)

// GatewayKeyAuth authenticates the auth gateway using a shared API key.
// Checks X-API-Key header or api_key query parameter. Used on the session
// endpoint so only the gateway can exchange identities for tokens.
func GatewayKeyAuth(gatewayKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if gatewayKey == "" {
			common.ErrorResponse(c, http.StatusServiceUnavailable, "게이트웨이 키가 설정되지 않았습니다", nil)
			c.Abort()
			return
		}

		key := c.GetHeader("X-API-Key")
		if key == "" {
			key = c.Query("api_key")
		}
		if key == "" {
			common.ErrorResponse(c, http.StatusUnauthorized, "API key required", nil)
			c.Abort()
			return
		}

		if subtle.ConstantTimeCompare([]byte(key), []byte(gatewayKey)) != 1 {
			common.ErrorResponse(c, http.StatusUnauthorized, "Invalid API key", nil)
			c.Abort()
			return
		}

		c.Next()
	}
}
