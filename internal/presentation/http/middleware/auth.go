package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/restopos/backoffice/internal/application/service"
	"github.com/restopos/backoffice/internal/domain/enum"
	"github.com/restopos/backoffice/internal/presentation/http/dto/response"
	"github.com/restopos/backoffice/pkg/utils"
)

// AuthMiddleware creates a JWT authentication middleware. The
// authenticated operator is stored both in the Gin context and in the
// request context consumed by the service layer.
func AuthMiddleware(jwtManager *utils.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "Authorization header is required")
			c.Abort()
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			response.Unauthorized(c, "Invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := jwtManager.ValidateAccessToken(parts[1])
		if err != nil {
			response.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		op := service.Operator{
			ID:       claims.UserID,
			Username: claims.Username,
			Role:     enum.Role(claims.Role),
		}
		c.Set("operator", op)
		c.Request = c.Request.WithContext(service.WithOperator(c.Request.Context(), op))

		c.Next()
	}
}

// RequireAdmin rejects requests from non-admin operators
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		opVal, exists := c.Get("operator")
		if !exists {
			response.Forbidden(c, "Access denied")
			c.Abort()
			return
		}
		op, ok := opVal.(service.Operator)
		if !ok || !op.IsAdmin() {
			response.Forbidden(c, "Insufficient role privileges")
			c.Abort()
			return
		}
		c.Next()
	}
}
