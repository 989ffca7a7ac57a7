package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"go-user-center/internal/core/auth"
	resp "go-user-center/internal/transport/http/response"
)

// AuthJWT 管理端 Bearer 鉴权
func AuthJWT(j *auth.JWTer) gin.HandlerFunc {
	return func(c *gin.Context) {
		ah := c.GetHeader("Authorization")
		if !strings.HasPrefix(ah, "Bearer ") {
			resp.AbortError(c, http.StatusUnauthorized, "missing token")
			return
		}
		claims, err := j.Parse(strings.TrimPrefix(ah, "Bearer "))
		if err != nil {
			resp.AbortError(c, http.StatusUnauthorized, "invalid token")
			return
		}
		c.Set("claims", claims)
		c.Next()
	}
}
