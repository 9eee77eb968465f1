package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"miniapp-auth-backend/internal/common/middleware"
)

func limitedRouter(r float64, burst int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.RequestID(), middleware.NewRateLimiter(r, burst).Middleware())
	router.GET("/ping", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func ping(router *gin.Engine, ip string) int {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.RemoteAddr = ip + ":1234"
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec.Code
}

func TestRateLimiterAllowsWithinBurst(t *testing.T) {
	router := limitedRouter(1, 3)

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, ping(router, "10.0.0.1"))
	}
}

func TestRateLimiterRejectsOverBurst(t *testing.T) {
	router := limitedRouter(0.001, 2)

	assert.Equal(t, http.StatusOK, ping(router, "10.0.0.2"))
	assert.Equal(t, http.StatusOK, ping(router, "10.0.0.2"))
	assert.Equal(t, http.StatusTooManyRequests, ping(router, "10.0.0.2"))
}

func TestRateLimiterTracksClientsSeparately(t *testing.T) {
	router := limitedRouter(0.001, 1)

	assert.Equal(t, http.StatusOK, ping(router, "10.0.0.3"))
	assert.Equal(t, http.StatusTooManyRequests, ping(router, "10.0.0.3"))
	assert.Equal(t, http.StatusOK, ping(router, "10.0.0.4"))
}
