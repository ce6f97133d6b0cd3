package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"kunstcollectie/internal/core/auth"
	"kunstcollectie/internal/domain"
	"kunstcollectie/internal/transport/http/ez"
)

// AuthJWT 校验 Bearer token；requireRole 为空表示任意已登录角色
func AuthJWT(j *auth.JWTer, requireRole domain.Role, l *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ah := c.GetHeader("Authorization")
		if !strings.HasPrefix(ah, "Bearer ") {
			ez.Fail(c, l, domain.ErrUnauthenticated)
			return
		}
		claims, err := j.Verify(c.Request.Context(), strings.TrimSpace(strings.TrimPrefix(ah, "Bearer ")))
		if err != nil {
			ez.Fail(c, l, err)
			return
		}
		if !auth.Authorize(claims, requireRole) {
			ez.Fail(c, l, domain.ErrForbidden)
			return
		}
		c.Set(ez.KeyClaims, claims)
		c.Set(ez.KeyUserID, claims.UID)
		c.Set(ez.KeyRole, string(claims.Role))
		c.Next()
	}
}
