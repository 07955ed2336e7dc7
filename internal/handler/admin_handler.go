package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/oninepa/k-yayo-backend/internal/common"
	"github.com/oninepa/k-yayo-backend/internal/domain"
	"github.com/oninepa/k-yayo-backend/internal/middleware"
	"github.com/oninepa/k-yayo-backend/internal/service"
)

// AdminHandler handles admin console endpoints
type AdminHandler struct {
	memberService service.MemberService
	pointService  service.PointService
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(memberService service.MemberService, pointService service.PointService) *AdminHandler {
	return &AdminHandler{
		memberService: memberService,
		pointService:  pointService,
	}
}

// actor loads the acting admin's member row. RBAC decisions always read the
// stored role, not the token claim.
func (h *AdminHandler) actor(c *gin.Context) (*domain.Member, bool) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		common.ErrorResponse(c, http.StatusUnauthorized, "인증이 필요합니다", common.ErrUnauthorized)
		return nil, false
	}
	member, err := h.memberService.GetByUserID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "멤버 조회에 실패했습니다")
		return nil, false
	}
	return member, true
}

// ListMembers godoc
// @Summary      멤버 목록 조회
// @Tags         admin
// @Security     BearerAuth
// @Param        page  query int false "페이지" default(1)
// @Param        limit query int false "페이지 크기" default(20)
// @Success      200 {object} common.APIResponse
// @Router       /admin/members [get]
func (h *AdminHandler) ListMembers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	members, total, err := h.memberService.List(page, limit)
	if err != nil {
		respondError(c, err, "멤버 목록 조회에 실패했습니다")
		return
	}

	responses := make([]*domain.MemberResponse, len(members))
	for i := range members {
		responses[i] = members[i].ToResponse()
	}
	common.SuccessResponse(c, responses, &common.Meta{Page: page, Limit: limit, Total: total})
}

type assignRoleRequest struct {
	Role       string `json:"role" binding:"required"`
	Navigation string `json:"navigation"`
	Channel    string `json:"channel"`
	Board      string `json:"board"`
}

// AssignRole godoc
// @Summary      멤버 역할 변경 (담당 구역 포함)
// @Tags         admin
// @Security     BearerAuth
// @Param        user_id path string true "대상 멤버 ID"
// @Param        request body assignRoleRequest true "역할과 담당 구역"
// @Success      200 {object} common.APIResponse
// @Failure      400 {object} common.APIResponse "담당 구역 미선택"
// @Failure      403 {object} common.APIResponse "권한 부족"
// @Router       /admin/members/{user_id}/role [post]
func (h *AdminHandler) AssignRole(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	target, err := h.memberService.GetByUserID(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		respondError(c, err, "대상 멤버 조회에 실패했습니다")
		return
	}

	var req assignRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "역할이 필요합니다", err)
		return
	}

	updated, err := h.memberService.AssignRole(actor, target.ID, req.Role, service.AreaSelection{
		Navigation: req.Navigation,
		Channel:    req.Channel,
		Board:      req.Board,
	})
	if err != nil {
		respondError(c, err, "역할 변경에 실패했습니다")
		return
	}
	common.SuccessResponse(c, updated.ToResponse(), nil)
}

type adjustPointsRequest struct {
	Amount      float64 `json:"amount" binding:"required"` // 음수면 차감
	Description string  `json:"description"`
}

// AdjustPoints godoc
// @Summary      포인트 지급/차감 (차감은 잔액 하한 없음)
// @Tags         admin
// @Security     BearerAuth
// @Param        user_id path string true "대상 멤버 ID"
// @Param        request body adjustPointsRequest true "부호 있는 포인트"
// @Success      200 {object} common.APIResponse
// @Router       /admin/members/{user_id}/points [post]
func (h *AdminHandler) AdjustPoints(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	target, err := h.memberService.GetByUserID(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		respondError(c, err, "대상 멤버 조회에 실패했습니다")
		return
	}

	var req adjustPointsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "포인트 값이 필요합니다", err)
		return
	}

	if err := h.pointService.AdminAdjust(actor, target.ID, req.Amount, req.Description); err != nil {
		respondError(c, err, "포인트 조정에 실패했습니다")
		return
	}

	reason := domain.ReasonAdminGrant
	txType := domain.TxEarn
	if req.Amount < 0 {
		reason = domain.ReasonAdminDeduct
		txType = domain.TxSpend
	}
	middleware.CountPointTransaction(string(txType), string(reason))
	common.SuccessResponse(c, gin.H{"adjusted": req.Amount}, nil)
}

type setHonoraryRequest struct {
	Honorary *bool `json:"honorary" binding:"required"`
}

// SetHonorary godoc
// @Summary      감사멤버 지정/해제
// @Tags         admin
// @Security     BearerAuth
// @Param        user_id path string true "대상 멤버 ID"
// @Param        request body setHonoraryRequest true "감사멤버 여부"
// @Success      200 {object} common.APIResponse
// @Router       /admin/members/{user_id}/honorary [post]
func (h *AdminHandler) SetHonorary(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	target, err := h.memberService.GetByUserID(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		respondError(c, err, "대상 멤버 조회에 실패했습니다")
		return
	}

	var req setHonoraryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "감사멤버 여부가 필요합니다", err)
		return
	}

	if err := h.memberService.SetHonorary(actor, target.ID, *req.Honorary); err != nil {
		respondError(c, err, "감사멤버 설정에 실패했습니다")
		return
	}
	common.SuccessResponse(c, gin.H{"honorary": *req.Honorary}, nil)
}
