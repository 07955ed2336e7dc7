package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/oninepa/k-yayo-backend/internal/common"
	"github.com/oninepa/k-yayo-backend/internal/service"
	"github.com/oninepa/k-yayo-backend/pkg/jwt"
)

// AuthHandler exchanges an upstream-verified identity for an API token.
// Authentication itself is external; this endpoint trusts the identity the
// auth gateway already verified and provisions the member row on first login.
type AuthHandler struct {
	memberService service.MemberService
	jwtManager    *jwt.Manager
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(memberService service.MemberService, jwtManager *jwt.Manager) *AuthHandler {
	return &AuthHandler{
		memberService: memberService,
		jwtManager:    jwtManager,
	}
}

type sessionRequest struct {
	UserID   string `json:"user_id" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Nickname string `json:"nickname"`
}

// CreateSession godoc
// @Summary      세션 생성 (최초 로그인 시 멤버 프로비저닝)
// @Tags         auth
// @Param        request body sessionRequest true "인증된 신원"
// @Success      200 {object} common.APIResponse
// @Router       /auth/session [post]
func (h *AuthHandler) CreateSession(c *gin.Context) {
	var req sessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "신원 정보가 필요합니다", err)
		return
	}

	nickname := req.Nickname
	if nickname == "" {
		nickname = req.UserID
	}

	member, err := h.memberService.Provision(req.UserID, req.Email, nickname)
	if err != nil {
		respondError(c, err, "멤버 프로비저닝에 실패했습니다")
		return
	}

	token, err := h.jwtManager.GenerateToken(member.UserID, member.Email, member.Nickname, string(member.Role))
	if err != nil {
		respondError(c, err, "토큰 발급에 실패했습니다")
		return
	}

	common.SuccessResponse(c, gin.H{
		"token":  token,
		"member": member.ToResponse(),
	}, nil)
}
