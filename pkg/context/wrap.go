package context

import (
	"Social/models"
	"Social/pkg/log"
	"Social/pkg/response"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	CtxUser = "login_user"
)

type HandlerFunc func(*gin.Context) error

func Wrap(h func(*gin.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := h(c); err != nil {

			// 如果已经写过响应，直接返回
			if c.Writer.Written() {
				return
			}
			// 业务错误
			var be *response.BizError
			if errors.As(err, &be) {
				response.Fail(c, be.Code, be.Msg)
				return
			}
			log.L.Error("unhandled request error",
				zap.String("path", c.FullPath()),
				zap.Error(err),
			)
			response.Fail(c, http.StatusInternalServerError, "服务器内部错误")
		}
	}
}

// SetUser 认证中间件写入当前登录用户
func SetUser(c *gin.Context, user *models.User) {
	c.Set(CtxUser, user)
}

// GetUser 取当前登录用户, 未登录时返回错误
func GetUser(c *gin.Context) (*models.User, error) {
	v, ok := c.Get(CtxUser)
	if !ok {
		return nil, errors.New("login user 不存在")
	}

	user, ok := v.(*models.User)
	if !ok || user == nil {
		return nil, errors.New("login user 类型错误")
	}

	return user, nil
}

// OptionalUser 公开接口上可能携带的登录用户
func OptionalUser(c *gin.Context) *models.User {
	user, _ := GetUser(c)
	return user
}
