package middleware

import (
	"strings"

	"travelhub/apperr"
	"travelhub/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequireAccess admits requests whose bearer token grants permission on
// service. When roles are given the token's role must be one of them.
func RequireAccess(issuer *utils.TokenIssuer, service, permission string, roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := zap.L()

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			utils.RespondError(c, logger, apperr.New(apperr.KindUnauthorized, "missing or invalid Authorization header"))
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		claims, err := issuer.ValidateToken(tokenString)
		if err != nil {
			logger.Debug("Token rejected", zap.Error(err))
			utils.RespondError(c, logger, apperr.New(apperr.KindUnauthorized, "invalid token"))
			return
		}

		if !grants(claims.Services, service) || !grants(claims.Permissions, permission) {
			utils.RespondError(c, logger, apperr.New(apperr.KindForbidden, "access to "+service+" denied"))
			return
		}
		if len(roles) > 0 && !contains(roles, claims.Role) {
			utils.RespondError(c, logger, apperr.New(apperr.KindForbidden, "role "+claims.Role+" may not "+permission+" "+service))
			return
		}

		c.Set(utils.PrincipalIDKey, claims.Subject)
		c.Set(utils.RoleKey, claims.Role)
		c.Next()
	}
}

// grants reports whether list holds want or the "*" wildcard.
func grants(list []string, want string) bool {
	return contains(list, want) || contains(list, "*")
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
