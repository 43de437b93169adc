package handler

import (
	"github.com/Mehboob-alam1/mahir-backend/internal/domain"
	"github.com/Mehboob-alam1/mahir-backend/internal/utils"
	"github.com/gin-gonic/gin"
)

// PrincipalMiddleware attaches the authenticated principal to the request
// context when a valid access token is presented. Requests without one, or
// with a bad token, continue anonymously; the endpoints that need a
// credential enforce it themselves.
func PrincipalMiddleware(jwtManager *utils.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.Next()
			return
		}

		claims, err := jwtManager.ParseToken(token)
		if err != nil || claims.TokenType != domain.TokenTypeAccess {
			c.Next()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("email", claims.Email)

		c.Next()
	}
}
