package cosworker

import (
	"github.com/VonnAirone/leave-management-system/internal/middleware"
	"github.com/VonnAirone/leave-management-system/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService rbac.Service) {
	workers := r.Group("/workers")
	workers.Use(middleware.AuthMiddleware())
	workers.Use(middleware.RBACAuthorize(rbacService, "worker", "manage"))
	{
		workers.POST("", handler.Create)
		workers.POST("/import", handler.Import)
		workers.GET("", handler.List)
		workers.GET("/stats", handler.Stats)
		workers.GET("/history", handler.History)
		workers.GET("/:id", handler.GetByID)
		workers.PATCH("/:id", handler.Update)
		workers.DELETE("/:id", handler.Delete)
	}
}
