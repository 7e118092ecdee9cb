package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/tidwall/gjson"
)

func TestRecovery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(GinZap(), Recovery())
	r.GET("/boom", func(c *gin.Context) {
		panic("boom")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, int64(500), gjson.Get(w.Body.String(), "code").Int())
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
}

func TestPanicTrace(t *testing.T) {
	trace := panicTrace("boom")
	assert.Contains(t, trace, "boom\n")
}
