package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "miniapp-auth-backend/internal/common/errors"
	"miniapp-auth-backend/internal/common/middleware"
	authhttp "miniapp-auth-backend/internal/features/auth/delivery/http"
	"miniapp-auth-backend/internal/features/user/models"
)

// stubAuthService returns a canned result per test case.
type stubAuthService struct {
	user *models.User
	err  error

	gotInitData string
}

func (s *stubAuthService) Authenticate(_ context.Context, rawInitData string) (*models.User, error) {
	s.gotInitData = rawInitData
	if s.err != nil {
		return nil, s.err
	}
	return s.user, nil
}

func newTestRouter(svc *stubAuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.RequestID(), middleware.ErrorHandler())

	api := router.Group("/api")
	authhttp.NewAuthHandler(svc).RegisterRoutes(api)
	return router
}

func postValidate(t *testing.T, router *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/validate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestValidateSuccess(t *testing.T) {
	svc := &stubAuthService{user: &models.User{ID: "42", FirstName: "Ann", ReferralCode: "ABCD2345"}}
	router := newTestRouter(svc)

	rec := postValidate(t, router, `{"initData":"user=...&hash=..."}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user=...&hash=...", svc.gotInitData)

	var resp models.AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "authentication successful", resp.Message)
	require.NotNil(t, resp.User)
	assert.Equal(t, "42", resp.User.ID)
}

func TestValidateMissingInitData(t *testing.T) {
	router := newTestRouter(&stubAuthService{})

	for name, body := range map[string]string{
		"empty object": `{}`,
		"empty value":  `{"initData":""}`,
		"not json":     `not-json`,
	} {
		t.Run(name, func(t *testing.T) {
			rec := postValidate(t, router, body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestValidateVerificationFailure(t *testing.T) {
	svc := &stubAuthService{err: apperrors.NewInvalidInitDataError("hash_mismatch")}
	router := newTestRouter(svc)

	rec := postValidate(t, router, `{"initData":"user=...&hash=bad"}`)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Invalid init data", body["message"])
	assert.Equal(t, "hash_mismatch", body["error"])
}

func TestValidateStorageFailureHidesDetails(t *testing.T) {
	svc := &stubAuthService{err: apperrors.NewDatabaseError("create user", assert.AnError)}
	router := newTestRouter(svc)

	rec := postValidate(t, router, `{"initData":"user=...&hash=..."}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Storage operation failed", body["message"])
	assert.NotContains(t, body, "error")
	assert.NotContains(t, rec.Body.String(), assert.AnError.Error())
}

func TestValidateRequestIDEchoed(t *testing.T) {
	router := newTestRouter(&stubAuthService{user: &models.User{ID: "1"}})

	req := httptest.NewRequest(http.MethodPost, "/api/auth/validate", strings.NewReader(`{"initData":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", "req-123")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, "req-123", rec.Header().Get("X-Request-ID"))
}
