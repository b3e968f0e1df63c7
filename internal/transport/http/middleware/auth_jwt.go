package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"gift-service/internal/service"
	resp "gift-service/internal/transport/http/response"
)

const (
	KeyUserID   = "userId"
	KeyUsername = "username"
)

// AuthJWT Bearer 验签后还要回库确认用户仍存在（token 无状态，用户可能已注销）
func AuthJWT(authSvc *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ah := c.GetHeader("Authorization")
		if !strings.HasPrefix(ah, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusOK, resp.Error(resp.CodeUnauthorized, "missing token"))
			return
		}
		u, err := authSvc.ResolveToken(c.Request.Context(), strings.TrimPrefix(ah, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusOK, resp.FromError(err))
			return
		}
		c.Set(KeyUserID, u.ID)
		c.Set(KeyUsername, u.Username)
		c.Next()
	}
}

// CallerID 取当前登录用户 id；中间件之后必有值
func CallerID(c *gin.Context) uint {
	v, _ := c.Get(KeyUserID)
	id, _ := v.(uint)
	return id
}
