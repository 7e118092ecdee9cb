package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// BizError 携带 HTTP 状态码的业务错误
type BizError struct {
	Code int
	Msg  string
	Err  error
}

func (e *BizError) Error() string {
	return e.Msg
}

func (e *BizError) Unwrap() error {
	return e.Err
}

func NewError(code int, msg string) *BizError {
	return &BizError{
		Code: code,
		Msg:  msg,
	}
}

// Wrap 保留原始错误链, 便于日志定位
func Wrap(code int, err error) *BizError {
	return &BizError{
		Code: code,
		Msg:  err.Error(),
		Err:  err,
	}
}

// StatusFor 取错误对应的状态码, 非业务错误按 500 处理
func StatusFor(err error) int {
	var be *BizError
	if errors.As(err, &be) {
		return be.Code
	}
	return http.StatusInternalServerError
}

func Abort(c *gin.Context, httpStatus int, msg string) {
	c.AbortWithStatusJSON(httpStatus, Response{
		Code: httpStatus,
		Msg:  msg,
		Data: nil,
	})
}
