package service

import (
	"context"
	"testing"
	"time"

	"Social/config"
	"Social/dao"
	"Social/dao/cache"
	"Social/models"
	"Social/pkg/database"
	"Social/pkg/encrypt"
	"Social/pkg/mq"
	"Social/pkg/snowflake"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type testEnv struct {
	db        *gorm.DB
	users     *dao.Users
	posts     *dao.PostDAO
	comments  *dao.Comment
	reactions *dao.Reaction
	store     *cache.MemoryStore
	events    *mq.Recorder

	reactionSvc *ReactionService
	postSvc     *PostService
	commentSvc  *CommentService
	userSvc     *UserService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	encrypt.Cost = bcrypt.MinCost

	db, err := database.Open(&config.Database{Driver: config.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// 内存库每个连接是独立的库, 固定单连接
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, database.Migrate(db))

	env := &testEnv{
		db:        db,
		users:     dao.NewUsers(db),
		posts:     dao.NewPostDAO(db),
		comments:  dao.NewComment(db),
		reactions: dao.NewReaction(db),
		store:     cache.NewMemoryStore(cache.Names...),
		events:    &mq.Recorder{},
	}
	mapper := &Mapper{UserDAO: env.users, CommentDAO: env.comments, ReactionDAO: env.reactions}
	env.reactionSvc = &ReactionService{
		DB:          db,
		PostDAO:     env.posts,
		CommentDAO:  env.comments,
		ReactionDAO: env.reactions,
		Publisher:   env.events,
	}
	env.postSvc = &PostService{
		DB:        db,
		PostDAO:   env.posts,
		UserDAO:   env.users,
		Reactions: env.reactionSvc,
		Mapper:    mapper,
		Cache:     env.store,
		Publisher: env.events,
	}
	env.commentSvc = &CommentService{
		DB:         db,
		CommentDAO: env.comments,
		PostDAO:    env.posts,
		UserDAO:    env.users,
		Reactions:  env.reactionSvc,
		Mapper:     mapper,
		Cache:      env.store,
		Publisher:  env.events,
	}
	env.userSvc = &UserService{
		DB:        db,
		UserDAO:   env.users,
		PostDAO:   env.posts,
		Comment:   env.comments,
		JwtConfig: &config.Jwt{Secret: "test-secret", ExpiresIn: time.Hour},
		Publisher: env.events,
	}
	return env
}

// mustUser 直接落库, 密码为 Secret#1
func (e *testEnv) mustUser(t *testing.T, username string, role models.Role) *models.User {
	t.Helper()
	hash, err := encrypt.HashPassword("Secret#1")
	require.NoError(t, err)
	u := &models.User{
		ID:        snowflake.GenID(),
		Username:  username,
		Password:  hash,
		Role:      role,
		Enabled:   true,
		CreatedAt: time.Now(),
	}
	require.NoError(t, e.users.Create(context.Background(), u))
	return u
}

func (e *testEnv) mustPost(t *testing.T, author *models.User, body string) int64 {
	t.Helper()
	dto, err := e.postSvc.CreatePost(context.Background(), author, body)
	require.NoError(t, err)
	return dto.ID
}

func (e *testEnv) mustComment(t *testing.T, author *models.User, postID int64, body string) int64 {
	t.Helper()
	dto, err := e.commentSvc.CreateComment(context.Background(), author, postID, body)
	require.NoError(t, err)
	return dto.ID
}

func (e *testEnv) commentCount(t *testing.T, postID int64) int {
	t.Helper()
	post, err := e.posts.FindById(context.Background(), postID)
	require.NoError(t, err)
	return post.NumberOfComments
}
