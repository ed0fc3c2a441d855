package auth

import (
	"github.com/VonnAirone/leave-management-system/internal/middleware"
	"github.com/VonnAirone/leave-management-system/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService rbac.Service, loginLimiter *middleware.IPRateLimiter) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/login", middleware.RateLimitByIP(loginLimiter), handler.Login)
		authGroup.POST("/refresh", handler.Refresh)

		authGroup.POST("/register",
			middleware.AuthMiddleware(),
			middleware.RBACAuthorize(rbacService, "employee", "manage"),
			handler.Register,
		)
		authGroup.POST("/register/bulk",
			middleware.AuthMiddleware(),
			middleware.RBACAuthorize(rbacService, "employee", "manage"),
			handler.BulkProvision,
		)
		authGroup.GET("/me", middleware.AuthMiddleware(), handler.GetMe)
	}
}
