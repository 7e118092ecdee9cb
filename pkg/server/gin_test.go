package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"Social/config"
	"Social/dao/cache"
	"Social/handler"
	"Social/pkg/mq"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func newTestEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return NewGinEngine(&Handlers{
		User:    &handler.User{},
		Post:    &handler.Post{},
		Comment: &handler.Comment{},
	})
}

func TestEngineOperationalRoutes(t *testing.T) {
	r := newTestEngine()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", gjson.Get(w.Body.String(), "status").String())
	assert.NotEmpty(t, w.Header().Get("X-Request-Id"))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "social_http_requests_total")

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/post/all/dto", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/post/all/dto", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRunStopsOnCancel(t *testing.T) {
	app := &AppProvider{
		Config:    &config.Config{Server: &config.Server{Http: 0}},
		Engine:    newTestEngine(),
		Evictor:   cache.NewEvictor(cache.NewMemoryStore(cache.Names...), &config.Cache{EvictInterval: 10 * time.Millisecond}),
		Publisher: mq.Noop{},
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- run(ctx, "test", app) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("run did not return after cancel")
	}
}
