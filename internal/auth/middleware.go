package auth

import (
	"net/http"
	"strings"

	"github.com/SlpAus/clone-pool-backend/pkg/token"
	"github.com/gin-gonic/gin"
)

// UsernameKey 是已认证用户名在Gin上下文中的键
const UsernameKey = "authUsername"

// RequireAuth 校验请求携带的管理员令牌。
// 优先取 Authorization: Bearer <token>；WebSocket升级请求
// 无法自定义请求头，允许通过 ?token= 传递。
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := ""

		if header := c.GetHeader("Authorization"); strings.HasPrefix(header, "Bearer ") {
			tokenStr = strings.TrimPrefix(header, "Bearer ")
		} else {
			tokenStr = c.Query("token")
		}

		if tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "未登录"})
			return
		}

		claims, err := token.ParseToken(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "令牌无效或已过期"})
			return
		}

		c.Set(UsernameKey, claims.Username)
		c.Next()
	}
}
