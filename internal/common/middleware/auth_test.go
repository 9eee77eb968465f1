package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"miniapp-auth-backend/internal/common/middleware"
	"miniapp-auth-backend/internal/initdata"
)

const testToken = "S3cr3t"

func protectedRouter(token string, opts initdata.Options) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.RequestID())
	router.GET("/me", middleware.InitDataAuth(token, opts), func(c *gin.Context) {
		claim, ok := middleware.ClaimFromContext(c)
		if !ok {
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
		userID, _ := middleware.UserIDFromContext(c)
		c.JSON(http.StatusOK, gin.H{
			"id":          claim.ID,
			"user_id":     userID,
			"start_param": middleware.StartParamFromContext(c),
		})
	})
	return router
}

func getMe(router *gin.Engine, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if header != "" {
		req.Header.Set(middleware.HeaderInitData, header)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestInitDataAuthAcceptsSignedHeader(t *testing.T) {
	router := protectedRouter(testToken, initdata.Options{})
	raw := initdata.Sign(map[string]string{
		"user":        `{"id":42,"first_name":"Ann"}`,
		"start_param": "FRIEND01",
	}, testToken, time.Now())

	rec := getMe(router, raw)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"user_id":"42"`)
	assert.Contains(t, rec.Body.String(), `"start_param":"FRIEND01"`)
}

func TestInitDataAuthRejectsMissingHeader(t *testing.T) {
	router := protectedRouter(testToken, initdata.Options{})

	rec := getMe(router, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestInitDataAuthRejectsForgedHeader(t *testing.T) {
	router := protectedRouter(testToken, initdata.Options{})
	raw := initdata.Sign(map[string]string{
		"user": `{"id":42,"first_name":"Ann"}`,
	}, "other-token", time.Now())

	rec := getMe(router, raw)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), string(initdata.ReasonHashMismatch))
}

func TestInitDataAuthRejectsWhenTokenUnconfigured(t *testing.T) {
	router := protectedRouter("", initdata.Options{})
	raw := initdata.Sign(map[string]string{
		"user": `{"id":42,"first_name":"Ann"}`,
	}, testToken, time.Now())

	rec := getMe(router, raw)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
