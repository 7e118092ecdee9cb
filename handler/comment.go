package handler

import (
	"Social/middleware"
	"Social/models"
	"Social/pkg/context"
	"Social/pkg/response"
	"Social/service"
	"Social/types"
	stdctx "context"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Comment struct {
	UserService    service.IUserService
	CommentService service.ICommentService
}

func (h *Comment) RegisterRouter(r gin.IRouter) {
	authorize := middleware.Auth(h.UserService)
	anyRole := middleware.RequireRole(models.RoleUser, models.RoleAdmin)
	adminOnly := middleware.RequireRole(models.RoleAdmin)

	comment := r.Group("/comment", authorize)
	comment.POST("/add/:postId", anyRole, context.Wrap(h.Create))
	comment.PATCH("/edit/dto/:id", anyRole, context.Wrap(h.Edit))
	comment.DELETE("/delete/:commentId/:postId", anyRole, context.Wrap(h.Delete))
	comment.GET("/all/dto", anyRole, context.Wrap(h.ListDto))
	comment.GET("/all/dto/:postId", anyRole, context.Wrap(h.ListByPost))
	comment.GET("/dto/:id", anyRole, context.Wrap(h.GetDto))
	comment.GET("/body/dto", anyRole, context.Wrap(h.SearchDto))
	comment.POST("/like/dto/:id", anyRole, context.Wrap(h.AddLike))
	comment.POST("/dislike/dto/:id", anyRole, context.Wrap(h.AddDislike))

	comment.GET("/all", adminOnly, context.Wrap(h.List))
	comment.GET("/:id", adminOnly, context.Wrap(h.Get))
	comment.GET("/body", adminOnly, context.Wrap(h.Search))
}

func (h *Comment) Create(c *gin.Context) error {
	postID, err := pathID(c, "postId")
	if err != nil {
		return err
	}
	var req types.BodyRequest
	if err := c.ShouldBind(&req); err != nil {
		return response.NewError(http.StatusBadRequest, err.Error())
	}
	actor, err := context.GetUser(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "未登录")
	}

	dto, err := h.CommentService.CreateComment(c.Request.Context(), actor, postID, req.Body)
	if err != nil {
		return fail(err)
	}
	response.Created(c, dto)
	return nil
}

func (h *Comment) Edit(c *gin.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req types.BodyRequest
	if err := c.ShouldBind(&req); err != nil {
		return response.NewError(http.StatusBadRequest, err.Error())
	}
	actor, err := context.GetUser(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "未登录")
	}

	dto, err := h.CommentService.EditComment(c.Request.Context(), actor, id, req.Body)
	if err != nil {
		return fail(err)
	}
	response.Success(c, dto)
	return nil
}

func (h *Comment) Delete(c *gin.Context) error {
	commentID, err := pathID(c, "commentId")
	if err != nil {
		return err
	}
	postID, err := pathID(c, "postId")
	if err != nil {
		return err
	}
	actor, err := context.GetUser(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "未登录")
	}

	if err := h.CommentService.DeleteComment(c.Request.Context(), actor, commentID, postID); err != nil {
		return fail(err)
	}
	response.NoContent(c)
	return nil
}

func (h *Comment) List(c *gin.Context) error {
	q, err := pageQuery(c)
	if err != nil {
		return err
	}
	list, err := h.CommentService.ListComments(c.Request.Context(), q)
	if err != nil {
		return fail(err)
	}
	response.Success(c, list)
	return nil
}

func (h *Comment) ListDto(c *gin.Context) error {
	q, err := pageQuery(c)
	if err != nil {
		return err
	}
	list, err := h.CommentService.ListCommentDtos(c.Request.Context(), q)
	if err != nil {
		return fail(err)
	}
	response.Success(c, list)
	return nil
}

func (h *Comment) ListByPost(c *gin.Context) error {
	postID, err := pathID(c, "postId")
	if err != nil {
		return err
	}
	list, err := h.CommentService.ListByPost(c.Request.Context(), postID)
	if err != nil {
		return fail(err)
	}
	response.Success(c, list)
	return nil
}

func (h *Comment) Get(c *gin.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	view, err := h.CommentService.GetComment(c.Request.Context(), id)
	if err != nil {
		return fail(err)
	}
	response.Success(c, view)
	return nil
}

func (h *Comment) GetDto(c *gin.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	dto, err := h.CommentService.GetCommentDto(c.Request.Context(), id)
	if err != nil {
		return fail(err)
	}
	response.Success(c, dto)
	return nil
}

func (h *Comment) Search(c *gin.Context) error {
	list, err := h.CommentService.SearchComments(c.Request.Context(), c.Query("body"))
	if err != nil {
		return fail(err)
	}
	response.Success(c, list)
	return nil
}

func (h *Comment) SearchDto(c *gin.Context) error {
	list, err := h.CommentService.SearchCommentDtos(c.Request.Context(), c.Query("body"))
	if err != nil {
		return fail(err)
	}
	response.Success(c, list)
	return nil
}

func (h *Comment) AddLike(c *gin.Context) error {
	return h.react(c, h.CommentService.AddLike)
}

func (h *Comment) AddDislike(c *gin.Context) error {
	return h.react(c, h.CommentService.AddDislike)
}

func (h *Comment) react(c *gin.Context, add func(stdctx.Context, *models.User, int64) (*types.CommentDto, error)) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	actor, err := context.GetUser(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "未登录")
	}

	dto, err := add(c.Request.Context(), actor, id)
	if err != nil {
		return fail(err)
	}
	response.Success(c, dto)
	return nil
}
