package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/oninepa/k-yayo-backend/internal/common"
)

// RequireUserManagement checks that the authenticated user may manage member
// accounts (OWNER or ADMIN).
func RequireUserManagement() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !GetRole(c).CanManageUsers() {
			common.ErrorResponse(c, http.StatusForbidden, "관리자 권한이 필요합니다", common.PermissionDenied(common.RuleUserManagement))
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireContentManagement checks that the authenticated user holds any
// moderation role (everyone above MEMBER).
func RequireContentManagement() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !GetRole(c).CanManageContent() {
			common.ErrorResponse(c, http.StatusForbidden, "운영진 권한이 필요합니다", common.ErrForbidden)
			c.Abort()
			return
		}
		c.Next()
	}
}
