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

type Post struct {
	UserService service.IUserService
	PostService service.IPostService
}

func (p *Post) RegisterRouter(r gin.IRouter) {
	authorize := middleware.Auth(p.UserService)
	anyRole := middleware.RequireRole(models.RoleUser, models.RoleAdmin)
	adminOnly := middleware.RequireRole(models.RoleAdmin)

	post := r.Group("/post", authorize)
	post.POST("/add/dto", anyRole, context.Wrap(p.Create))
	post.PUT("/edit/dto/:id", anyRole, context.Wrap(p.Edit))
	post.DELETE("/delete/:id", anyRole, context.Wrap(p.Delete))
	post.GET("/all/dto", anyRole, context.Wrap(p.ListDto))
	post.GET("/dto/:id", anyRole, context.Wrap(p.GetDto))
	post.GET("/body/dto", anyRole, context.Wrap(p.Search))
	post.POST("/addLike/dto/:id", anyRole, context.Wrap(p.AddLike))
	post.POST("/addDislike/dto/:id", anyRole, context.Wrap(p.AddDislike))
	post.GET("/likes/dto/:id", anyRole, context.Wrap(p.CountLikes))
	post.GET("/dislikes/dto/:id", anyRole, context.Wrap(p.CountDislikes))

	post.GET("/all", adminOnly, context.Wrap(p.ListWithComments))
	post.GET("/:id", adminOnly, context.Wrap(p.Get))
}

func (p *Post) Create(c *gin.Context) error {
	var req types.BodyRequest
	if err := c.ShouldBind(&req); err != nil {
		return response.NewError(http.StatusBadRequest, err.Error())
	}
	actor, err := context.GetUser(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "未登录")
	}

	dto, err := p.PostService.CreatePost(c.Request.Context(), actor, req.Body)
	if err != nil {
		return fail(err)
	}
	response.Created(c, dto)
	return nil
}

func (p *Post) Edit(c *gin.Context) error {
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

	dto, err := p.PostService.EditPost(c.Request.Context(), actor, id, req.Body)
	if err != nil {
		return fail(err)
	}
	response.Success(c, dto)
	return nil
}

func (p *Post) Delete(c *gin.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	actor, err := context.GetUser(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "未登录")
	}

	if err := p.PostService.DeletePost(c.Request.Context(), actor, id); err != nil {
		return fail(err)
	}
	response.NoContent(c)
	return nil
}

// ListDto 分页列表, 结果来自命名缓存
func (p *Post) ListDto(c *gin.Context) error {
	q, err := pageQuery(c)
	if err != nil {
		return err
	}
	list, err := p.PostService.ListPostDtos(c.Request.Context(), q)
	if err != nil {
		return fail(err)
	}
	response.Success(c, list)
	return nil
}

func (p *Post) ListWithComments(c *gin.Context) error {
	q, err := pageQuery(c)
	if err != nil {
		return err
	}
	list, err := p.PostService.ListPostsWithComments(c.Request.Context(), q)
	if err != nil {
		return fail(err)
	}
	response.Success(c, list)
	return nil
}

func (p *Post) Get(c *gin.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	post, err := p.PostService.GetPost(c.Request.Context(), id)
	if err != nil {
		return fail(err)
	}
	response.Success(c, post)
	return nil
}

func (p *Post) GetDto(c *gin.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	dto, err := p.PostService.GetPostDto(c.Request.Context(), id)
	if err != nil {
		return fail(err)
	}
	response.Success(c, dto)
	return nil
}

func (p *Post) Search(c *gin.Context) error {
	list, err := p.PostService.SearchPosts(c.Request.Context(), c.Query("keywordInBody"))
	if err != nil {
		return fail(err)
	}
	response.Success(c, list)
	return nil
}

func (p *Post) AddLike(c *gin.Context) error {
	return p.react(c, p.PostService.AddLike)
}

func (p *Post) AddDislike(c *gin.Context) error {
	return p.react(c, p.PostService.AddDislike)
}

func (p *Post) react(c *gin.Context, add func(stdctx.Context, *models.User, int64) (*types.PostDto, error)) error {
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

func (p *Post) CountLikes(c *gin.Context) error {
	return p.count(c, p.PostService.CountLikes)
}

func (p *Post) CountDislikes(c *gin.Context) error {
	return p.count(c, p.PostService.CountDislikes)
}

func (p *Post) count(c *gin.Context, fn func(stdctx.Context, int64) (int64, error)) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	n, err := fn(c.Request.Context(), id)
	if err != nil {
		return fail(err)
	}
	response.Success(c, types.CountResponse{ID: id, Count: n})
	return nil
}
