package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/armii/platform-admin/pkg/state"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(seen *[2]string) *gin.Engine {
	r := gin.New()
	r.Use(RequestID(), ClaimIp())
	r.GET("/", func(c *gin.Context) {
		seen[0] = state.RequestID(c.Request.Context())
		seen[1] = state.ClientIP(c.Request.Context())
		c.Status(http.StatusNoContent)
	})
	return r
}

func TestRequestID_Generated(t *testing.T) {
	var seen [2]string
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.1.2.3:5555"

	newRouter(&seen).ServeHTTP(w, req)

	require.Equal(t, http.StatusNoContent, w.Code)
	assert.NotEmpty(t, seen[0])
	assert.Equal(t, seen[0], w.Header().Get(RequestIDHeader))
	assert.Equal(t, "10.1.2.3", seen[1])
}

func TestRequestID_Propagated(t *testing.T) {
	var seen [2]string
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc")

	newRouter(&seen).ServeHTTP(w, req)

	assert.Equal(t, "abc", seen[0])
	assert.Equal(t, "abc", w.Header().Get(RequestIDHeader))
}
