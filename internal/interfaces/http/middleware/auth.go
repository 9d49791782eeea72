package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"keyforge/internal/infrastructure/auth"
	"keyforge/internal/shared/constants"
	"keyforge/internal/shared/logger"
	"keyforge/internal/shared/utils"
)

// AuthMiddleware verifies bearer tokens and scopes routes to a
// principal role. Owner and reseller tokens are not interchangeable.
type AuthMiddleware struct {
	jwtService *auth.JWTService
	logger     logger.Interface
}

func NewAuthMiddleware(jwtService *auth.JWTService, logger logger.Interface) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		logger:     logger,
	}
}

// RequireOwner admits owner access tokens and stores the owner ID in
// the context.
func (m *AuthMiddleware) RequireOwner() gin.HandlerFunc {
	return m.require(constants.RoleOwner, constants.ContextKeyUserID)
}

// RequireReseller admits reseller access tokens and stores the reseller
// ID in the context.
func (m *AuthMiddleware) RequireReseller() gin.HandlerFunc {
	return m.require(constants.RoleReseller, constants.ContextKeyResellerID)
}

func (m *AuthMiddleware) require(role, contextKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			utils.ErrorResponse(c, http.StatusUnauthorized, "missing authorization token")
			c.Abort()
			return
		}

		claims, err := m.jwtService.Verify(token)
		if err != nil {
			m.logger.Warnw("failed to verify token", "error", err)
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid or expired token")
			c.Abort()
			return
		}
		if claims.TokenType != auth.TokenTypeAccess {
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid token type")
			c.Abort()
			return
		}
		if claims.Role != role {
			utils.ErrorResponse(c, http.StatusForbidden, "insufficient permissions")
			c.Abort()
			return
		}

		c.Set(contextKey, claims.SubjectID)
		c.Set(constants.ContextKeyRole, claims.Role)

		c.Next()
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
