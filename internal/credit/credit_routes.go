package credit

import (
	"github.com/VonnAirone/leave-management-system/internal/middleware"
	"github.com/VonnAirone/leave-management-system/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService rbac.Service) {
	credits := r.Group("/credits")
	credits.Use(middleware.AuthMiddleware())
	{
		credits.GET("/me", handler.GetMine)
		credits.GET("/employee/:employeeId", middleware.RBACAuthorize(rbacService, "credit", "write"), handler.GetByEmployee)
		credits.POST("", middleware.RBACAuthorize(rbacService, "credit", "write"), handler.Set)
		credits.POST("/adjust", middleware.RBACAuthorize(rbacService, "credit", "write"), handler.Adjust)
	}
}
