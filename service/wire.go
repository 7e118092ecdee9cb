package service

import (
	"github.com/google/wire"
)

var ProviderSet = wire.NewSet(
	wire.Struct(new(Mapper), "*"),

	wire.Struct(new(ReactionService), "*"),
	wire.Bind(new(IReactionService), new(*ReactionService)),

	wire.Struct(new(PostService), "*"),
	wire.Bind(new(IPostService), new(*PostService)),

	wire.Struct(new(CommentService), "*"),
	wire.Bind(new(ICommentService), new(*CommentService)),

	wire.Struct(new(UserService), "*"),
	wire.Bind(new(IUserService), new(*UserService)),

	wire.Struct(new(PictureService), "*"),
	wire.Bind(new(IPictureService), new(*PictureService)),
)
