package service

import (
	"Social/dao"
	"Social/models"
	"Social/types"
	"context"

	"github.com/sourcegraph/conc/pool"
)

// Mapper 把表记录组装成接口返回结构, 关联数据全部批量显式查询
type Mapper struct {
	UserDAO     *dao.Users
	CommentDAO  *dao.Comment
	ReactionDAO *dao.Reaction
}

func ToUserDto(u *models.User) *types.UserDto {
	if u == nil {
		return nil
	}
	return &types.UserDto{
		ID:             u.ID,
		Username:       u.Username,
		ProfilePicture: u.ProfilePicture,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}

func ToUserView(u *models.User) *types.UserView {
	return &types.UserView{
		UserDto: *ToUserDto(u),
		Role:    string(u.Role),
		Enabled: u.Enabled,
	}
}

func ToReactionDtos(reactions []*models.Reaction) []*types.ReactionDto {
	list := make([]*types.ReactionDto, 0, len(reactions))
	for _, r := range reactions {
		dto := &types.ReactionDto{
			ID:        r.ID,
			UserID:    r.UserID,
			Username:  r.Username,
			CreatedAt: r.CreatedAt,
		}
		targetID := r.TargetID
		if r.TargetType == models.TargetPost {
			dto.PostID = &targetID
		} else {
			dto.CommentID = &targetID
		}
		list = append(list, dto)
	}
	return list
}

// splitReactions 按类型拆分
func splitReactions(reactions []*models.Reaction) (likes, dislikes []*models.Reaction) {
	for _, r := range reactions {
		if r.Kind == models.KindLike {
			likes = append(likes, r)
		} else {
			dislikes = append(dislikes, r)
		}
	}
	return likes, dislikes
}

func postDto(p *models.Post, author *models.User, reactions []*models.Reaction) *types.PostDto {
	likes, dislikes := splitReactions(reactions)
	dto := &types.PostDto{
		ID:               p.ID,
		Body:             p.Body,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
		NumberOfComments: p.NumberOfComments,
		Likes:            ToReactionDtos(likes),
		Dislikes:         ToReactionDtos(dislikes),
		LikeCount:        len(likes),
		DislikeCount:     len(dislikes),
	}
	if author != nil {
		dto.Username = author.Username
		dto.ProfilePicture = author.ProfilePicture
	}
	return dto
}

func commentDto(c *models.Comment, author *models.User, reactions []*models.Reaction) *types.CommentDto {
	likes, dislikes := splitReactions(reactions)
	return &types.CommentDto{
		ID:           c.ID,
		PostID:       c.PostID,
		Body:         c.Body,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
		User:         ToUserDto(author),
		Likes:        ToReactionDtos(likes),
		Dislikes:     ToReactionDtos(dislikes),
		LikeCount:    len(likes),
		DislikeCount: len(dislikes),
	}
}

func commentView(c *models.Comment, reactions []*models.Reaction) *types.CommentView {
	likes, dislikes := splitReactions(reactions)
	return &types.CommentView{
		ID:        c.ID,
		PostID:    c.PostID,
		UserID:    c.UserID,
		Body:      c.Body,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
		Likes:     ToReactionDtos(likes),
		Dislikes:  ToReactionDtos(dislikes),
	}
}

// PostDtos 并发加载作者和反应
func (m *Mapper) PostDtos(ctx context.Context, posts []*models.Post) ([]*types.PostDto, error) {
	result := make([]*types.PostDto, 0, len(posts))
	if len(posts) == 0 {
		return result, nil
	}

	postIDs := make([]int64, 0, len(posts))
	userIDs := make([]int64, 0, len(posts))
	for _, p := range posts {
		postIDs = append(postIDs, p.ID)
		userIDs = append(userIDs, p.UserID)
	}

	var (
		users     map[int64]*models.User
		reactions map[int64][]*models.Reaction
	)
	p := pool.New().WithContext(ctx).WithCancelOnError()
	p.Go(func(ctx context.Context) (err error) {
		users, err = m.UserDAO.FindByIDs(ctx, userIDs)
		return err
	})
	p.Go(func(ctx context.Context) (err error) {
		reactions, err = m.ReactionDAO.FindByTargets(ctx, models.TargetPost, postIDs)
		return err
	})
	if err := p.Wait(); err != nil {
		return nil, err
	}

	for _, post := range posts {
		result = append(result, postDto(post, users[post.UserID], reactions[post.ID]))
	}
	return result, nil
}

func (m *Mapper) PostDto(ctx context.Context, post *models.Post) (*types.PostDto, error) {
	list, err := m.PostDtos(ctx, []*models.Post{post})
	if err != nil {
		return nil, err
	}
	return list[0], nil
}

// PostsWithComments 帖子 + 评论 + 两层反应
func (m *Mapper) PostsWithComments(ctx context.Context, posts []*models.Post) ([]*types.PostWithComments, error) {
	result := make([]*types.PostWithComments, 0, len(posts))
	if len(posts) == 0 {
		return result, nil
	}

	postIDs := make([]int64, 0, len(posts))
	for _, p := range posts {
		postIDs = append(postIDs, p.ID)
	}

	var (
		comments      map[int64][]*models.Comment
		postReactions map[int64][]*models.Reaction
	)
	p := pool.New().WithContext(ctx).WithCancelOnError()
	p.Go(func(ctx context.Context) (err error) {
		comments, err = m.CommentDAO.FindByPostIDs(ctx, postIDs)
		return err
	})
	p.Go(func(ctx context.Context) (err error) {
		postReactions, err = m.ReactionDAO.FindByTargets(ctx, models.TargetPost, postIDs)
		return err
	})
	if err := p.Wait(); err != nil {
		return nil, err
	}

	commentIDs := make([]int64, 0)
	for _, list := range comments {
		for _, c := range list {
			commentIDs = append(commentIDs, c.ID)
		}
	}
	commentReactions, err := m.ReactionDAO.FindByTargets(ctx, models.TargetComment, commentIDs)
	if err != nil {
		return nil, err
	}

	for _, post := range posts {
		likes, dislikes := splitReactions(postReactions[post.ID])
		views := make([]*types.CommentView, 0, len(comments[post.ID]))
		for _, c := range comments[post.ID] {
			views = append(views, commentView(c, commentReactions[c.ID]))
		}
		result = append(result, &types.PostWithComments{
			ID:               post.ID,
			Body:             post.Body,
			UserID:           post.UserID,
			CreatedAt:        post.CreatedAt,
			UpdatedAt:        post.UpdatedAt,
			NumberOfComments: post.NumberOfComments,
			Likes:            ToReactionDtos(likes),
			Dislikes:         ToReactionDtos(dislikes),
			Comments:         views,
		})
	}
	return result, nil
}

func (m *Mapper) CommentDtos(ctx context.Context, comments []*models.Comment) ([]*types.CommentDto, error) {
	result := make([]*types.CommentDto, 0, len(comments))
	if len(comments) == 0 {
		return result, nil
	}

	commentIDs := make([]int64, 0, len(comments))
	userIDs := make([]int64, 0, len(comments))
	for _, c := range comments {
		commentIDs = append(commentIDs, c.ID)
		userIDs = append(userIDs, c.UserID)
	}

	var (
		users     map[int64]*models.User
		reactions map[int64][]*models.Reaction
	)
	p := pool.New().WithContext(ctx).WithCancelOnError()
	p.Go(func(ctx context.Context) (err error) {
		users, err = m.UserDAO.FindByIDs(ctx, userIDs)
		return err
	})
	p.Go(func(ctx context.Context) (err error) {
		reactions, err = m.ReactionDAO.FindByTargets(ctx, models.TargetComment, commentIDs)
		return err
	})
	if err := p.Wait(); err != nil {
		return nil, err
	}

	for _, c := range comments {
		result = append(result, commentDto(c, users[c.UserID], reactions[c.ID]))
	}
	return result, nil
}

func (m *Mapper) CommentDto(ctx context.Context, comment *models.Comment) (*types.CommentDto, error) {
	list, err := m.CommentDtos(ctx, []*models.Comment{comment})
	if err != nil {
		return nil, err
	}
	return list[0], nil
}

func (m *Mapper) CommentViews(ctx context.Context, comments []*models.Comment) ([]*types.CommentView, error) {
	result := make([]*types.CommentView, 0, len(comments))
	if len(comments) == 0 {
		return result, nil
	}
	ids := make([]int64, 0, len(comments))
	for _, c := range comments {
		ids = append(ids, c.ID)
	}
	reactions, err := m.ReactionDAO.FindByTargets(ctx, models.TargetComment, ids)
	if err != nil {
		return nil, err
	}
	for _, c := range comments {
		result = append(result, commentView(c, reactions[c.ID]))
	}
	return result, nil
}
