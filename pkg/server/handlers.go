package server

import (
	"Social/handler"
)

type Handlers struct {
	User    *handler.User
	Post    *handler.Post
	Comment *handler.Comment
}
