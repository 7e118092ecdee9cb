package handler

import (
	"Social/middleware"
	"Social/models"
	"Social/pkg/context"
	"Social/pkg/response"
	"Social/service"
	"Social/types"
	"net/http"

	"github.com/gin-gonic/gin"
)

type User struct {
	UserService    service.IUserService
	PictureService service.IPictureService
}

func (u *User) RegisterRouter(r gin.IRouter) {
	authorize := middleware.Auth(u.UserService)
	anyRole := middleware.RequireRole(models.RoleUser, models.RoleAdmin)
	adminOnly := middleware.RequireRole(models.RoleAdmin)

	user := r.Group("/user")
	user.POST("/add/dto", middleware.OptionalAuth(u.UserService), context.Wrap(u.Register))
	user.POST("/login", context.Wrap(u.Login))

	user.PATCH("/password/dto/:id", authorize, anyRole, context.Wrap(u.ChangePassword))
	user.PATCH("/picture/dto/:id", authorize, anyRole, context.Wrap(u.UpdatePicture))
	user.POST("/picture/upload/:id", authorize, anyRole, context.Wrap(u.UploadPicture))
	user.DELETE("/delete/dto/:id", authorize, anyRole, context.Wrap(u.Delete))
	user.GET("/all/username/dto", authorize, anyRole, context.Wrap(u.SearchByUsername))

	user.GET("/all", authorize, adminOnly, context.Wrap(u.List))
	user.GET("/:id", authorize, adminOnly, context.Wrap(u.Get))
	user.PATCH("/enable/:id", authorize, adminOnly, context.Wrap(u.SetEnabled))
	user.GET("/post/:postId", authorize, adminOnly, context.Wrap(u.PostAuthor))
}

// Register 注册, 管理员登录状态下注册的用户也是管理员
func (u *User) Register(c *gin.Context) error {
	var req types.RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		return response.NewError(http.StatusBadRequest, err.Error())
	}

	dto, err := u.UserService.Register(c.Request.Context(), context.OptionalUser(c), &req)
	if err != nil {
		return fail(err)
	}
	response.Created(c, dto)
	return nil
}

func (u *User) Login(c *gin.Context) error {
	var req types.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		return response.NewError(http.StatusBadRequest, err.Error())
	}

	resp, err := u.UserService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		return fail(err)
	}
	response.Success(c, resp)
	return nil
}

func (u *User) ChangePassword(c *gin.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req types.PasswordRequest
	if err := c.ShouldBind(&req); err != nil {
		return response.NewError(http.StatusBadRequest, err.Error())
	}
	actor, err := context.GetUser(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "未登录")
	}

	if err := u.UserService.ChangePassword(c.Request.Context(), actor, id, &req); err != nil {
		return fail(err)
	}
	response.Success(c, "Password changed successfully!")
	return nil
}

func (u *User) UpdatePicture(c *gin.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req types.PictureRequest
	if err := c.ShouldBind(&req); err != nil {
		return response.NewError(http.StatusBadRequest, err.Error())
	}
	actor, err := context.GetUser(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "未登录")
	}

	dto, err := u.UserService.UpdatePicture(c.Request.Context(), actor, id, req.ProfilePictureUrl)
	if err != nil {
		return fail(err)
	}
	response.Success(c, dto)
	return nil
}

func (u *User) UploadPicture(c *gin.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	header, err := c.FormFile("image")
	if err != nil {
		return response.NewError(http.StatusBadRequest, "缺少 image 文件")
	}
	actor, err := context.GetUser(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "未登录")
	}

	resp, err := u.PictureService.UploadPicture(c.Request.Context(), actor, id, header)
	if err != nil {
		return fail(err)
	}
	response.Success(c, resp)
	return nil
}

func (u *User) Delete(c *gin.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	actor, err := context.GetUser(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "未登录")
	}

	if err := u.UserService.DeleteUser(c.Request.Context(), actor, id); err != nil {
		return fail(err)
	}
	response.NoContent(c)
	return nil
}

func (u *User) SearchByUsername(c *gin.Context) error {
	list, err := u.UserService.SearchByUsername(c.Request.Context(), c.Query("keyword"))
	if err != nil {
		return fail(err)
	}
	response.Success(c, list)
	return nil
}

func (u *User) List(c *gin.Context) error {
	list, err := u.UserService.ListUsers(c.Request.Context())
	if err != nil {
		return fail(err)
	}
	response.Success(c, list)
	return nil
}

func (u *User) Get(c *gin.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	view, err := u.UserService.GetUser(c.Request.Context(), id)
	if err != nil {
		return fail(err)
	}
	response.Success(c, view)
	return nil
}

func (u *User) SetEnabled(c *gin.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req types.EnableRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		return response.NewError(http.StatusBadRequest, err.Error())
	}

	view, err := u.UserService.SetEnabled(c.Request.Context(), id, *req.Enabled)
	if err != nil {
		return fail(err)
	}
	response.Success(c, view)
	return nil
}

func (u *User) PostAuthor(c *gin.Context) error {
	postID, err := pathID(c, "postId")
	if err != nil {
		return err
	}
	view, err := u.UserService.GetPostAuthor(c.Request.Context(), postID)
	if err != nil {
		return fail(err)
	}
	response.Success(c, view)
	return nil
}
