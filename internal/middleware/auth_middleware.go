package middleware

import (
	"net/http"
	"strings"

	"github.com/VonnAirone/leave-management-system/internal/shared/apperror"
	"github.com/VonnAirone/leave-management-system/internal/shared/contextutil"
	"github.com/VonnAirone/leave-management-system/internal/shared/response"
	"github.com/VonnAirone/leave-management-system/internal/shared/token"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware validates the bearer token (with a cookie fallback for the
// browser client) and stores the identity on the gin context.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := bearerToken(c)
		if raw == "" {
			response.Error(c, http.StatusUnauthorized, apperror.CodeUnauthorized, "authentication is required", nil)
			c.Abort()
			return
		}

		claims, err := token.Parse(raw)
		if err != nil || claims.TokenUse != token.UseAccess {
			response.Error(c, http.StatusUnauthorized, apperror.CodeUnauthorized, "invalid or expired token", nil)
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("employee_id", claims.EmployeeID)
		c.Set("role", claims.Role)

		ctx := contextutil.WithActorID(c.Request.Context(), claims.EmployeeID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	if cookie, err := c.Cookie("access_token"); err == nil {
		return cookie
	}
	return ""
}
