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

// PointHandler handles point-related endpoints
type PointHandler struct {
	pointService  service.PointService
	memberService service.MemberService
}

// NewPointHandler creates a new PointHandler
func NewPointHandler(pointService service.PointService, memberService service.MemberService) *PointHandler {
	return &PointHandler{
		pointService:  pointService,
		memberService: memberService,
	}
}

// currentMember loads the member row for the authenticated identity.
func (h *PointHandler) currentMember(c *gin.Context) (*domain.Member, bool) {
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

// GetSummary godoc
// @Summary      내 포인트 요약 (잔액 + 레벨)
// @Tags         points
// @Security     BearerAuth
// @Success      200 {object} common.APIResponse
// @Router       /members/me/points [get]
func (h *PointHandler) GetSummary(c *gin.Context) {
	member, ok := h.currentMember(c)
	if !ok {
		return
	}

	summary, err := h.pointService.Summary(c.Request.Context(), member.ID)
	if err != nil {
		respondError(c, err, "포인트 조회에 실패했습니다")
		return
	}
	common.SuccessResponse(c, summary, nil)
}

// GetHistory godoc
// @Summary      내 포인트 내역
// @Tags         points
// @Security     BearerAuth
// @Param        page  query int false "페이지" default(1)
// @Param        limit query int false "페이지 크기" default(20)
// @Success      200 {object} common.APIResponse
// @Router       /members/me/points/history [get]
func (h *PointHandler) GetHistory(c *gin.Context) {
	member, ok := h.currentMember(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	txs, total, err := h.pointService.History(member.ID, page, limit)
	if err != nil {
		respondError(c, err, "포인트 내역 조회에 실패했습니다")
		return
	}
	common.SuccessResponse(c, txs, &common.Meta{Page: page, Limit: limit, Total: total})
}

// GetLevels godoc
// @Summary      레벨 테이블 조회
// @Tags         points
// @Success      200 {object} common.APIResponse
// @Router       /levels [get]
func (h *PointHandler) GetLevels(c *gin.Context) {
	common.SuccessResponse(c, domain.Levels(), nil)
}

type pointEventRequest struct {
	Event     string `json:"event" binding:"required"` // post|comment|reply|reaction
	PostID    uint64 `json:"post_id"`
	CommentID uint64 `json:"comment_id"`
	// reaction 이벤트 전용
	AuthorUserID string `json:"author_user_id"`
	Direction    string `json:"direction"` // like|dislike
	OldCount     int    `json:"old_count"`
	NewCount     int    `json:"new_count"`
}

// PostEvent godoc
// @Summary      포인트 적립 이벤트 수신 (게시글/댓글/답글 작성, 반응 임계값)
// @Tags         points
// @Security     BearerAuth
// @Param        request body pointEventRequest true "이벤트"
// @Success      200 {object} common.APIResponse
// @Router       /points/events [post]
func (h *PointHandler) PostEvent(c *gin.Context) {
	member, ok := h.currentMember(c)
	if !ok {
		return
	}

	var req pointEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "잘못된 이벤트 형식입니다", err)
		return
	}

	switch req.Event {
	case "post", "comment", "reply":
		refs := domain.TxRefs{PostID: req.PostID, CommentID: req.CommentID}
		amount, err := h.pointService.AccrueForActivity(member.ID, domain.PointReason(req.Event), refs)
		if err != nil {
			respondError(c, err, "포인트 적립에 실패했습니다")
			return
		}
		middleware.CountPointTransaction(string(domain.TxEarn), req.Event)
		common.SuccessResponse(c, gin.H{"awarded": amount}, nil)

	case "reaction":
		direction := domain.ReactionDirection(req.Direction)
		if direction != domain.ReactionLike && direction != domain.ReactionDislike {
			common.ErrorResponse(c, http.StatusBadRequest, "잘못된 반응 방향입니다", common.ErrInvalidInput)
			return
		}
		author, err := h.memberService.GetByUserID(c.Request.Context(), req.AuthorUserID)
		if err != nil {
			respondError(c, err, "작성자 조회에 실패했습니다")
			return
		}
		awarded, err := h.pointService.OnReactionCountChanged(req.PostID, author.ID, direction, req.OldCount, req.NewCount)
		if err != nil {
			respondError(c, err, "반응 보상 처리에 실패했습니다")
			return
		}
		if awarded {
			middleware.CountPointTransaction(string(domain.TxEarn), string(direction))
		}
		common.SuccessResponse(c, gin.H{"awarded": awarded}, nil)

	default:
		common.ErrorResponse(c, http.StatusBadRequest, "알 수 없는 이벤트입니다", common.ErrInvalidInput)
	}
}
