// internal/middleware/auth_middleware.go
package middleware

import (
	"net/http"

	"rentaldesk-service/internal/pkg/response"
	"rentaldesk-service/internal/pkg/token"

	"github.com/gin-gonic/gin"
)

type AuthMiddleware struct {
	tokens *token.Manager
}

func NewAuthMiddleware(tokens *token.Manager) *AuthMiddleware {
	return &AuthMiddleware{
		tokens: tokens,
	}
}

// Auth validates the operator session token and stores the username on the
// request context.
func (m *AuthMiddleware) Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := token.ExtractFromHeader(c.GetHeader("Authorization"))
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "missing authorization token", nil)
			return
		}

		claims, err := m.tokens.Verify(raw)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "invalid or expired token", err)
			return
		}

		c.Set("operator", claims.Username)
		c.Next()
	}
}

// GetOperator gets the signed-in operator username from context
func GetOperator(c *gin.Context) (string, bool) {
	v, exists := c.Get("operator")
	if !exists {
		return "", false
	}
	username, ok := v.(string)
	return username, ok
}
