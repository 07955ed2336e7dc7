package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/oninepa/k-yayo-backend/internal/common"
	"github.com/oninepa/k-yayo-backend/internal/middleware"
	"github.com/oninepa/k-yayo-backend/internal/service"
)

// MemberHandler handles member-related endpoints
type MemberHandler struct {
	memberService service.MemberService
	pointService  service.PointService
}

// NewMemberHandler creates a new MemberHandler
func NewMemberHandler(memberService service.MemberService, pointService service.PointService) *MemberHandler {
	return &MemberHandler{
		memberService: memberService,
		pointService:  pointService,
	}
}

// GetMe godoc
// @Summary      내 정보 조회
// @Tags         members
// @Security     BearerAuth
// @Success      200 {object} common.APIResponse
// @Router       /members/me [get]
func (h *MemberHandler) GetMe(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		common.ErrorResponse(c, http.StatusUnauthorized, "인증이 필요합니다", common.ErrUnauthorized)
		return
	}

	member, err := h.memberService.GetByUserID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "멤버 조회에 실패했습니다")
		return
	}
	common.SuccessResponse(c, member.ToResponse(), nil)
}

// GetProfile godoc
// @Summary      멤버 공개 프로필 조회
// @Tags         members
// @Param        user_id path string true "멤버 ID"
// @Success      200 {object} common.APIResponse
// @Router       /profiles/{user_id} [get]
func (h *MemberHandler) GetProfile(c *gin.Context) {
	targetID := c.Param("user_id")
	member, err := h.memberService.GetByUserID(c.Request.Context(), targetID)
	if err != nil {
		respondError(c, err, "멤버 조회에 실패했습니다")
		return
	}
	common.SuccessResponse(c, member.ToProfileResponse(), nil)
}

type changeNicknameRequest struct {
	Nickname string `json:"nickname" binding:"required"`
}

// ChangeNickname godoc
// @Summary      닉네임 변경 (최초 1회 무료, 이후 포인트 차감)
// @Tags         members
// @Security     BearerAuth
// @Param        request body changeNicknameRequest true "새 닉네임"
// @Success      200 {object} common.APIResponse
// @Failure      402 {object} common.APIResponse "포인트 부족"
// @Router       /members/me/nickname [post]
func (h *MemberHandler) ChangeNickname(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		common.ErrorResponse(c, http.StatusUnauthorized, "인증이 필요합니다", common.ErrUnauthorized)
		return
	}

	var req changeNicknameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "닉네임이 필요합니다", err)
		return
	}

	member, err := h.memberService.GetByUserID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "멤버 조회에 실패했습니다")
		return
	}

	updated, err := h.pointService.ChangeNickname(member.ID, req.Nickname)
	if err != nil {
		respondError(c, err, "닉네임 변경에 실패했습니다")
		return
	}
	common.SuccessResponse(c, updated.ToResponse(), nil)
}
