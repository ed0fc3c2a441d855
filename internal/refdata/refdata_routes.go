package refdata

import (
	"github.com/VonnAirone/leave-management-system/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	refdata := r.Group("/refdata")
	refdata.Use(middleware.AuthMiddleware())
	{
		refdata.GET("", handler.GetAll)
	}
}
