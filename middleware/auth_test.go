package middleware

import (
	stdctx "context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"Social/models"
	"Social/pkg/context"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/tidwall/gjson"
)

type fakeAuth struct{}

func (fakeAuth) Authenticate(_ stdctx.Context, username, password string) (*models.User, error) {
	if password != "Secret#1" {
		return nil, errors.New("incorrect password")
	}
	role := models.RoleUser
	if username == "root" {
		role = models.RoleAdmin
	}
	return &models.User{ID: 1, Username: username, Role: role}, nil
}

func (fakeAuth) ResolveToken(_ stdctx.Context, token string) (*models.User, error) {
	if token != "good" {
		return nil, errors.New("invalid token")
	}
	return &models.User{ID: 2, Username: "tok", Role: models.RoleUser}, nil
}

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(GinZap())
	whoami := func(c *gin.Context) {
		name := ""
		if u := context.OptionalUser(c); u != nil {
			name = u.Username
		}
		c.JSON(http.StatusOK, gin.H{"username": name})
	}
	r.GET("/public", OptionalAuth(fakeAuth{}), whoami)
	r.GET("/user", Auth(fakeAuth{}), RequireRole(models.RoleUser, models.RoleAdmin), whoami)
	r.GET("/admin", Auth(fakeAuth{}), RequireRole(models.RoleAdmin), whoami)
	return r
}

func do(r http.Handler, path string, setup func(*http.Request)) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if setup != nil {
		setup(req)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuth(t *testing.T) {
	r := newRouter()
	basic := func(user, pass string) func(*http.Request) {
		return func(req *http.Request) { req.SetBasicAuth(user, pass) }
	}
	bearer := func(token string) func(*http.Request) {
		return func(req *http.Request) { req.Header.Set("Authorization", "Bearer "+token) }
	}

	cases := []struct {
		name   string
		path   string
		setup  func(*http.Request)
		status int
		user   string
	}{
		{"public anonymous", "/public", nil, http.StatusOK, ""},
		{"public with basic", "/public", basic("alice", "Secret#1"), http.StatusOK, "alice"},
		{"public bad creds", "/public", basic("alice", "nope"), http.StatusUnauthorized, ""},
		{"user missing header", "/user", nil, http.StatusUnauthorized, ""},
		{"user basic", "/user", basic("alice", "Secret#1"), http.StatusOK, "alice"},
		{"user bearer", "/user", bearer("good"), http.StatusOK, "tok"},
		{"user bad bearer", "/user", bearer("bad"), http.StatusUnauthorized, ""},
		{"malformed header", "/user", func(req *http.Request) { req.Header.Set("Authorization", "Token x") }, http.StatusUnauthorized, ""},
		{"admin as user", "/admin", basic("alice", "Secret#1"), http.StatusForbidden, ""},
		{"admin as admin", "/admin", basic("root", "Secret#1"), http.StatusOK, "root"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := do(r, tc.path, tc.setup)
			assert.Equal(t, tc.status, w.Code)
			assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
			if tc.status == http.StatusOK {
				assert.Equal(t, tc.user, gjson.Get(w.Body.String(), "username").String())
			} else {
				assert.Equal(t, int64(tc.status), gjson.Get(w.Body.String(), "code").Int())
			}
		})
	}
}

func TestGinZapKeepsRequestID(t *testing.T) {
	r := newRouter()
	w := do(r, "/public", func(req *http.Request) { req.Header.Set(RequestIDHeader, "abc") })
	assert.Equal(t, "abc", w.Header().Get(RequestIDHeader))
}
