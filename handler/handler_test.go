package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"Social/config"
	"Social/dao"
	"Social/dao/cache"
	"Social/models"
	"Social/pkg/database"
	"Social/pkg/encrypt"
	"Social/pkg/mq"
	"Social/pkg/oss"
	"Social/pkg/snowflake"
	"Social/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"golang.org/x/crypto/bcrypt"
)

type testApp struct {
	engine *gin.Engine
	users  *dao.Users
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)
	encrypt.Cost = bcrypt.MinCost

	db, err := database.Open(&config.Database{Driver: config.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, database.Migrate(db))

	users := dao.NewUsers(db)
	posts := dao.NewPostDAO(db)
	comments := dao.NewComment(db)
	reactions := dao.NewReaction(db)
	store := cache.NewMemoryStore(cache.Names...)
	publisher := mq.Noop{}
	mapper := &service.Mapper{UserDAO: users, CommentDAO: comments, ReactionDAO: reactions}

	reactionSvc := &service.ReactionService{DB: db, PostDAO: posts, CommentDAO: comments, ReactionDAO: reactions, Publisher: publisher}
	userSvc := &service.UserService{
		DB: db, UserDAO: users, PostDAO: posts, Comment: comments,
		JwtConfig: &config.Jwt{Secret: "test", ExpiresIn: time.Hour},
		Publisher: publisher,
	}
	postSvc := &service.PostService{DB: db, PostDAO: posts, UserDAO: users, Reactions: reactionSvc, Mapper: mapper, Cache: store, Publisher: publisher}
	commentSvc := &service.CommentService{DB: db, CommentDAO: comments, PostDAO: posts, UserDAO: users, Reactions: reactionSvc, Mapper: mapper, Cache: store, Publisher: publisher}
	pictureSvc := &service.PictureService{UserDAO: users, Uploader: oss.Disabled{}, OssConfig: &config.OssConfig{}}

	r := gin.New()
	(&User{UserService: userSvc, PictureService: pictureSvc}).RegisterRouter(r)
	(&Post{UserService: userSvc, PostService: postSvc}).RegisterRouter(r)
	(&Comment{UserService: userSvc, CommentService: commentSvc}).RegisterRouter(r)
	return &testApp{engine: r, users: users}
}

func (a *testApp) seedUser(t *testing.T, username string, role models.Role) int64 {
	t.Helper()
	hash, err := encrypt.HashPassword("Secret#1")
	require.NoError(t, err)
	id := snowflake.GenID()
	require.NoError(t, a.users.Create(context.Background(), &models.User{
		ID: id, Username: username, Password: hash, Role: role, Enabled: true, CreatedAt: time.Now(),
	}))
	return id
}

type request struct {
	method, path string
	body         string
	form         url.Values
	user         string
	token        string
}

func (a *testApp) do(t *testing.T, r request) (int, gjson.Result) {
	t.Helper()
	var req *http.Request
	switch {
	case r.form != nil:
		req = httptest.NewRequest(r.method, r.path, strings.NewReader(r.form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	case r.body != "":
		req = httptest.NewRequest(r.method, r.path, strings.NewReader(r.body))
		req.Header.Set("Content-Type", "application/json")
	default:
		req = httptest.NewRequest(r.method, r.path, nil)
	}
	if r.user != "" {
		req.SetBasicAuth(r.user, "Secret#1")
	}
	if r.token != "" {
		req.Header.Set("Authorization", "Bearer "+r.token)
	}
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)
	return w.Code, gjson.Parse(w.Body.String())
}

func TestUserRegisterAndLogin(t *testing.T) {
	app := newTestApp(t)

	code, body := app.do(t, request{method: http.MethodPost, path: "/user/add/dto", body: `{"username":"alice","password":"Secret#1"}`})
	require.Equal(t, http.StatusCreated, code, body.Raw)
	assert.Equal(t, "alice", body.Get("data.username").String())

	code, _ = app.do(t, request{method: http.MethodPost, path: "/user/add/dto", body: `{"username":"alice","password":"Secret#1"}`})
	assert.Equal(t, http.StatusConflict, code)

	code, body = app.do(t, request{method: http.MethodPost, path: "/user/add/dto", body: `{"username":"bob","password":"weakpass"}`})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, int64(400), body.Get("code").Int())

	longPassword := "Aa1!" + strings.Repeat("é", 60)
	code, _ = app.do(t, request{method: http.MethodPost, path: "/user/add/dto", body: `{"username":"carol","password":"` + longPassword + `"}`})
	assert.Equal(t, http.StatusBadRequest, code)

	code, body = app.do(t, request{method: http.MethodPost, path: "/user/login", form: url.Values{"username": {"alice"}, "password": {"Secret#1"}}})
	require.Equal(t, http.StatusOK, code, body.Raw)
	token := body.Get("data.token").String()
	require.NotEmpty(t, token)

	code, _ = app.do(t, request{method: http.MethodPost, path: "/user/login", form: url.Values{"username": {"alice"}, "password": {"Wrong#12"}}})
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _ = app.do(t, request{method: http.MethodPost, path: "/user/login", form: url.Values{"username": {"ghost"}, "password": {"Secret#1"}}})
	assert.Equal(t, http.StatusNotFound, code)

	code, body = app.do(t, request{method: http.MethodGet, path: "/user/all/username/dto?keyword=ALI", token: token})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, int64(1), body.Get("data.#").Int())
}

func TestAdminRegistersAdmin(t *testing.T) {
	app := newTestApp(t)
	app.seedUser(t, "root", models.RoleAdmin)

	code, _ := app.do(t, request{method: http.MethodPost, path: "/user/add/dto", user: "root", body: `{"username":"second","password":"Secret#1"}`})
	require.Equal(t, http.StatusCreated, code)

	stored, err := app.users.FindByUsername(context.Background(), "second")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, stored.Role)
}

func TestRoleGates(t *testing.T) {
	app := newTestApp(t)
	app.seedUser(t, "alice", models.RoleUser)
	app.seedUser(t, "root", models.RoleAdmin)

	code, _ := app.do(t, request{method: http.MethodGet, path: "/post/all/dto"})
	assert.Equal(t, http.StatusUnauthorized, code)

	for _, path := range []string{"/user/all", "/post/all", "/comment/all", "/comment/body?body=x"} {
		code, _ = app.do(t, request{method: http.MethodGet, path: path, user: "alice"})
		assert.Equal(t, http.StatusForbidden, code, path)
	}

	code, body := app.do(t, request{method: http.MethodGet, path: "/user/all", user: "root"})
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, int64(2), body.Get("data.#").Int())

	code, _ = app.do(t, request{method: http.MethodGet, path: "/post/all/dto?sort=sideways", user: "alice"})
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestPostFlow(t *testing.T) {
	app := newTestApp(t)
	app.seedUser(t, "a", models.RoleUser)
	app.seedUser(t, "b", models.RoleUser)
	app.seedUser(t, "root", models.RoleAdmin)

	code, body := app.do(t, request{method: http.MethodPost, path: "/post/add/dto", user: "a", body: `{"body":"hello"}`})
	require.Equal(t, http.StatusCreated, code, body.Raw)
	postID := body.Get("data.id").String()

	code, _ = app.do(t, request{method: http.MethodPost, path: "/post/add/dto", user: "a", body: `{"body":"  "}`})
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = app.do(t, request{method: http.MethodPut, path: "/post/edit/dto/" + postID, user: "b", body: `{"body":"hacked"}`})
	assert.Equal(t, http.StatusForbidden, code)

	code, body = app.do(t, request{method: http.MethodPut, path: "/post/edit/dto/" + postID, user: "root", body: `{"body":"hacked"}`})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "hacked", body.Get("data.body").String())
	assert.True(t, body.Get("data.updated_at").Exists())

	code, body = app.do(t, request{method: http.MethodPost, path: "/post/addLike/dto/" + postID, user: "b"})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, int64(1), body.Get("data.like_count").Int())

	code, _ = app.do(t, request{method: http.MethodPost, path: "/post/addLike/dto/" + postID, user: "b"})
	assert.Equal(t, http.StatusConflict, code)

	code, _ = app.do(t, request{method: http.MethodPost, path: "/post/addDislike/dto/" + postID, user: "b"})
	assert.Equal(t, http.StatusOK, code)

	code, body = app.do(t, request{method: http.MethodGet, path: "/post/likes/dto/" + postID, user: "a"})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, int64(1), body.Get("data.count").Int())

	code, _ = app.do(t, request{method: http.MethodPost, path: "/post/addLike/dto/999", user: "b"})
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = app.do(t, request{method: http.MethodGet, path: "/post/body/dto?keywordInBody=nothing", user: "a"})
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = app.do(t, request{method: http.MethodGet, path: "/post/dto/abc", user: "a"})
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = app.do(t, request{method: http.MethodDelete, path: "/post/delete/" + postID, user: "b"})
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = app.do(t, request{method: http.MethodDelete, path: "/post/delete/" + postID, user: "a"})
	assert.Equal(t, http.StatusNoContent, code)

	code, _ = app.do(t, request{method: http.MethodGet, path: "/post/dto/" + postID, user: "a"})
	assert.Equal(t, http.StatusNotFound, code)
}

func TestCommentFlow(t *testing.T) {
	app := newTestApp(t)
	app.seedUser(t, "a", models.RoleUser)
	app.seedUser(t, "b", models.RoleUser)

	_, body := app.do(t, request{method: http.MethodPost, path: "/post/add/dto", user: "a", body: `{"body":"hello"}`})
	postID := body.Get("data.id").String()
	_, body = app.do(t, request{method: http.MethodPost, path: "/post/add/dto", user: "a", body: `{"body":"other"}`})
	otherID := body.Get("data.id").String()

	code, body := app.do(t, request{method: http.MethodPost, path: "/comment/add/" + postID, user: "b", body: `{"body":"nice"}`})
	require.Equal(t, http.StatusCreated, code, body.Raw)
	commentID := body.Get("data.id").String()

	code, _ = app.do(t, request{method: http.MethodPost, path: "/comment/add/999", user: "b", body: `{"body":"nice"}`})
	assert.Equal(t, http.StatusNotFound, code)

	_, body = app.do(t, request{method: http.MethodGet, path: "/post/dto/" + postID, user: "a"})
	assert.Equal(t, int64(1), body.Get("data.number_of_comments").Int())

	code, _ = app.do(t, request{method: http.MethodPatch, path: "/comment/edit/dto/" + commentID, user: "a", body: `{"body":"edited"}`})
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = app.do(t, request{method: http.MethodPost, path: "/comment/like/dto/" + commentID, user: "a"})
	assert.Equal(t, http.StatusOK, code)
	code, _ = app.do(t, request{method: http.MethodPost, path: "/comment/like/dto/" + commentID, user: "a"})
	assert.Equal(t, http.StatusConflict, code)

	code, body = app.do(t, request{method: http.MethodGet, path: "/comment/all/dto/" + postID, user: "a"})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, int64(1), body.Get("data.#").Int())
	assert.Equal(t, int64(1), body.Get("data.0.like_count").Int())

	code, _ = app.do(t, request{method: http.MethodDelete, path: "/comment/delete/" + commentID + "/" + otherID, user: "b"})
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = app.do(t, request{method: http.MethodDelete, path: "/comment/delete/" + commentID + "/" + postID, user: "b"})
	assert.Equal(t, http.StatusNoContent, code)

	_, body = app.do(t, request{method: http.MethodGet, path: "/post/dto/" + postID, user: "a"})
	assert.Equal(t, int64(0), body.Get("data.number_of_comments").Int())

	code, body = app.do(t, request{method: http.MethodGet, path: "/comment/body/dto?body=zzz", user: "a"})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, int64(0), body.Get("data.#").Int())
}

func TestUserManagement(t *testing.T) {
	app := newTestApp(t)
	aliceID := app.seedUser(t, "alice", models.RoleUser)
	app.seedUser(t, "bob", models.RoleUser)
	app.seedUser(t, "root", models.RoleAdmin)
	id := func(v int64) string { return strconv.FormatInt(v, 10) }

	code, _ := app.do(t, request{method: http.MethodPatch, path: "/user/password/dto/" + id(aliceID), user: "bob",
		form: url.Values{"newPassword1": {"Newpass#2"}, "newPassword2": {"Newpass#2"}, "oldPassword": {"Secret#1"}}})
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = app.do(t, request{method: http.MethodPatch, path: "/user/password/dto/" + id(aliceID), user: "alice",
		form: url.Values{"newPassword1": {"Newpass#2"}, "newPassword2": {"Newpass#3"}, "oldPassword": {"Secret#1"}}})
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = app.do(t, request{method: http.MethodPatch, path: "/user/password/dto/" + id(aliceID), user: "alice",
		form: url.Values{"newPassword1": {"Newpass#2"}, "newPassword2": {"Newpass#2"}, "oldPassword": {"Wrong#111"}}})
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _ = app.do(t, request{method: http.MethodPatch, path: "/user/picture/dto/" + id(aliceID), user: "root",
		form: url.Values{"profilePictureUrl": {"https://img/x.png"}}})
	assert.Equal(t, http.StatusForbidden, code)

	code, body := app.do(t, request{method: http.MethodPatch, path: "/user/picture/dto/" + id(aliceID), user: "alice",
		form: url.Values{"profilePictureUrl": {"https://img/a.png"}}})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "https://img/a.png", body.Get("data.profile_picture").String())

	code, body = app.do(t, request{method: http.MethodPatch, path: "/user/enable/" + id(aliceID) + "?enabled=false", user: "root"})
	require.Equal(t, http.StatusOK, code, body.Raw)
	assert.False(t, body.Get("data.enabled").Bool())

	code, _ = app.do(t, request{method: http.MethodGet, path: "/user/all/username/dto?keyword=a", user: "alice"})
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _ = app.do(t, request{method: http.MethodDelete, path: "/user/delete/dto/" + id(aliceID), user: "bob"})
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = app.do(t, request{method: http.MethodDelete, path: "/user/delete/dto/" + id(aliceID), user: "root"})
	assert.Equal(t, http.StatusNoContent, code)

	code, _ = app.do(t, request{method: http.MethodGet, path: "/user/" + id(aliceID), user: "root"})
	assert.Equal(t, http.StatusNotFound, code)
}
