package handler

import (
	"Social/pkg/response"
	"Social/service"
	"Social/types"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// fail 业务错误到 HTTP 状态码的唯一映射点
func fail(err error) error {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return response.Wrap(http.StatusNotFound, err)
	case errors.Is(err, service.ErrForbidden):
		return response.Wrap(http.StatusForbidden, err)
	case errors.Is(err, service.ErrDuplicateReaction),
		errors.Is(err, service.ErrDuplicateUsername):
		return response.Wrap(http.StatusConflict, err)
	case errors.Is(err, service.ErrIncorrectPassword),
		errors.Is(err, service.ErrUserDisabled):
		return response.Wrap(http.StatusUnauthorized, err)
	case errors.Is(err, service.ErrEmptyBody),
		errors.Is(err, service.ErrPasswordSyntax),
		errors.Is(err, service.ErrPasswordMismatch),
		errors.Is(err, service.ErrInvalidUsername),
		errors.Is(err, service.ErrInvalidImage),
		errors.Is(err, types.ErrInvalidSort):
		return response.Wrap(http.StatusBadRequest, err)
	}
	return err
}

func pathID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, response.NewError(http.StatusBadRequest, name+"参数错误")
	}
	return id, nil
}

func pageQuery(c *gin.Context) (types.PageQuery, error) {
	var q types.PageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		return q, response.NewError(http.StatusBadRequest, err.Error())
	}
	if err := q.Normalize(); err != nil {
		return q, fail(err)
	}
	return q, nil
}
