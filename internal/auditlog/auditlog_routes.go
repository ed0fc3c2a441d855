package auditlog

import (
	"github.com/VonnAirone/leave-management-system/internal/middleware"
	"github.com/VonnAirone/leave-management-system/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService rbac.Service) {
	logs := r.Group("/audit-logs")
	logs.Use(middleware.AuthMiddleware())
	{
		logs.GET("", middleware.RBACAuthorize(rbacService, "auditlog", "read"), handler.GetAll)
	}
}
