package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/oninepa/k-yayo-backend/internal/common"
	"github.com/oninepa/k-yayo-backend/internal/domain"
)

// AreaWriteChecker decides the content-write gate for an area.
// This avoids a circular dependency with the service package.
type AreaWriteChecker interface {
	CanWrite(role domain.Role, area domain.AreaID) bool
}

// AreaWritePermission returns a middleware that gates writes to a content
// area. It requires JWTAuth to be applied first; the target area comes from
// the `area` query or form field.
func AreaWritePermission(checker AreaWriteChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		areaID := c.Query("area")
		if areaID == "" {
			areaID = c.PostForm("area")
		}
		if areaID == "" {
			common.ErrorResponse(c, http.StatusBadRequest, "영역 ID가 필요합니다", common.ErrInvalidInput)
			c.Abort()
			return
		}

		if _, err := domain.ParseArea(domain.AreaID(areaID)); err != nil {
			common.ErrorResponse(c, http.StatusBadRequest, "잘못된 영역 ID입니다", err)
			c.Abort()
			return
		}

		role := GetRole(c)
		if !checker.CanWrite(role, domain.AreaID(areaID)) {
			common.ErrorResponse(c, http.StatusForbidden, "이 영역에 글을 쓸 권한이 없습니다",
				common.PermissionDenied(common.RuleAreaWriteForbidden))
			c.Abort()
			return
		}

		c.Set("area_id", areaID)
		c.Next()
	}
}

// OpenAreaChecker implements AreaWriteChecker over the configured open areas.
type OpenAreaChecker struct {
	openAreas []domain.AreaID
}

// NewOpenAreaChecker creates a checker allowing OWNER/ADMIN everywhere and any
// authenticated role on the configured open leaf areas.
func NewOpenAreaChecker(openAreas []domain.AreaID) *OpenAreaChecker {
	return &OpenAreaChecker{openAreas: openAreas}
}

func (ch *OpenAreaChecker) CanWrite(role domain.Role, area domain.AreaID) bool {
	return role.CanWriteToArea(area, ch.openAreas)
}
