package profile

import (
	"github.com/VonnAirone/leave-management-system/internal/middleware"
	"github.com/VonnAirone/leave-management-system/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService rbac.Service) {
	employees := r.Group("/employees")
	employees.Use(middleware.AuthMiddleware())
	{
		employees.GET("/me", handler.GetMe)

		manage := employees.Group("")
		manage.Use(middleware.RBACAuthorize(rbacService, "employee", "manage"))
		{
			manage.POST("", handler.Create)
			manage.GET("", handler.List)
			manage.GET("/:id", handler.GetByID)
			manage.PATCH("/:id", handler.Update)
			manage.DELETE("/:id", handler.Deactivate)
		}
	}
}
