package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/oninepa/k-yayo-backend/internal/handler"
	"github.com/oninepa/k-yayo-backend/internal/middleware"
	"github.com/oninepa/k-yayo-backend/pkg/jwt"
)

// Handlers groups everything route registration needs.
type Handlers struct {
	Auth       *handler.AuthHandler
	Member     *handler.MemberHandler
	Point      *handler.PointHandler
	Admin      *handler.AdminHandler
	Navigation *handler.NavigationHandler
}

// Setup registers all API routes.
func Setup(router *gin.Engine, h *Handlers, jwtManager *jwt.Manager, gatewayKey string, areaChecker middleware.AreaWriteChecker) {
	v1 := router.Group("/api/v1")

	// 공개 엔드포인트
	v1.GET("/navigation", h.Navigation.GetCatalog)
	v1.GET("/navigation/resolve", h.Navigation.ResolveArea)
	v1.GET("/levels", h.Point.GetLevels)
	v1.GET("/profiles/:user_id", h.Member.GetProfile)

	// 인증 게이트웨이 전용
	v1.POST("/auth/session", middleware.GatewayKeyAuth(gatewayKey), h.Auth.CreateSession)

	// 로그인 멤버 전용
	authed := v1.Group("")
	authed.Use(middleware.JWTAuth(jwtManager))
	{
		authed.GET("/members/me", h.Member.GetMe)
		authed.POST("/members/me/nickname", h.Member.ChangeNickname)
		authed.GET("/members/me/points", h.Point.GetSummary)
		authed.GET("/members/me/points/history", h.Point.GetHistory)
		authed.POST("/points/events", h.Point.PostEvent)
	}

	// 블로그형 영역 글쓰기 게이트 (작성 자체는 외부 컨텐츠 서비스 담당)
	writeGate := v1.Group("")
	writeGate.Use(middleware.JWTAuth(jwtManager), middleware.AreaWritePermission(areaChecker))
	{
		writeGate.POST("/areas/write-check", func(c *gin.Context) {
			c.JSON(200, gin.H{"data": gin.H{"allowed": true, "area": c.GetString("area_id")}})
		})
	}

	// 관리자 콘솔
	admin := v1.Group("/admin")
	admin.Use(middleware.JWTAuth(jwtManager), middleware.RequireUserManagement())
	{
		admin.GET("/members", h.Admin.ListMembers)
		admin.POST("/members/:user_id/role", h.Admin.AssignRole)
		admin.POST("/members/:user_id/points", h.Admin.AdjustPoints)
		admin.POST("/members/:user_id/honorary", h.Admin.SetHonorary)
	}
}
