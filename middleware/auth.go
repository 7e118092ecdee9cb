package middleware

import (
	"Social/models"
	"Social/pkg/context"
	"Social/pkg/log"
	"Social/pkg/response"
	stdctx "context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Authenticator 解析 Basic 账号密码或 Bearer token 得到当前用户
type Authenticator interface {
	Authenticate(ctx stdctx.Context, username, password string) (*models.User, error)
	ResolveToken(ctx stdctx.Context, token string) (*models.User, error)
}

// Auth 必须登录
func Auth(a Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.Header("WWW-Authenticate", `Basic realm="social"`)
			response.Abort(c, http.StatusUnauthorized, "缺少 Authorization")
			return
		}
		if !authenticate(c, a) {
			return
		}
		c.Next()
	}
}

// OptionalAuth 公开接口, 带了凭证就解析, 凭证错误仍然拒绝
func OptionalAuth(a Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") != "" && !authenticate(c, a) {
			return
		}
		c.Next()
	}
}

// RequireRole 放在 Auth 之后
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := context.GetUser(c)
		if err != nil {
			response.Abort(c, http.StatusUnauthorized, "未登录")
			return
		}
		for _, role := range roles {
			if user.Role == role {
				c.Next()
				return
			}
		}
		log.L.Warn("role denied",
			zap.String("username", user.Username),
			zap.String("role", string(user.Role)),
			zap.String("path", c.FullPath()),
		)
		response.Abort(c, http.StatusForbidden, "没有访问权限")
	}
}

func authenticate(c *gin.Context, a Authenticator) bool {
	var (
		user *models.User
		err  error
	)
	authHeader := c.GetHeader("Authorization")
	if username, password, ok := c.Request.BasicAuth(); ok {
		user, err = a.Authenticate(c.Request.Context(), username, password)
	} else {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			response.Abort(c, http.StatusUnauthorized, "Authorization 格式错误")
			return false
		}
		user, err = a.ResolveToken(c.Request.Context(), parts[1])
	}
	if err != nil {
		log.L.Info("authentication failed", zap.String("path", c.FullPath()), zap.Error(err))
		response.Abort(c, http.StatusUnauthorized, err.Error())
		return false
	}

	context.SetUser(c, user)
	return true
}
