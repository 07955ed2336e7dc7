package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/oninepa/k-yayo-backend/internal/common"
	"github.com/oninepa/k-yayo-backend/internal/domain"
	"github.com/oninepa/k-yayo-backend/internal/service"
)

// NavigationHandler handles navigation catalog endpoints
type NavigationHandler struct {
	navService service.NavigationService
}

// NewNavigationHandler creates a new NavigationHandler
func NewNavigationHandler(navService service.NavigationService) *NavigationHandler {
	return &NavigationHandler{navService: navService}
}

// GetCatalog godoc
// @Summary      네비게이션 카탈로그 조회
// @Tags         navigation
// @Success      200 {object} common.APIResponse
// @Router       /navigation [get]
func (h *NavigationHandler) GetCatalog(c *gin.Context) {
	common.SuccessResponse(c, h.navService.Catalog(), nil)
}

// ResolveArea godoc
// @Summary      영역 ID를 사람이 읽을 수 있는 이름으로 변환
// @Tags         navigation
// @Param        id query string true "영역 ID (nav[/channel[/board]])"
// @Success      200 {object} common.APIResponse
// @Router       /navigation/resolve [get]
func (h *NavigationHandler) ResolveArea(c *gin.Context) {
	id := c.Query("id")
	if id == "" {
		common.ErrorResponse(c, http.StatusBadRequest, "영역 ID가 필요합니다", common.ErrInvalidInput)
		return
	}
	if _, err := domain.ParseArea(domain.AreaID(id)); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "잘못된 영역 ID입니다", err)
		return
	}
	common.SuccessResponse(c, gin.H{
		"id":           id,
		"display_name": h.navService.DisplayName(domain.AreaID(id)),
	}, nil)
}
