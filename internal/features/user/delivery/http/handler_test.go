package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "miniapp-auth-backend/internal/common/errors"
	"miniapp-auth-backend/internal/common/middleware"
	userhttp "miniapp-auth-backend/internal/features/user/delivery/http"
	"miniapp-auth-backend/internal/features/user/models"
	"miniapp-auth-backend/internal/initdata"
)

const testToken = "S3cr3t"

type stubUserService struct {
	synced *models.User

	lastStartParam string
	lastWallet     string
}

func (s *stubUserService) SyncProfile(_ context.Context, claim *initdata.User, startParam string) (*models.User, error) {
	s.lastStartParam = startParam
	s.synced = &models.User{ID: "42", FirstName: claim.FirstName, ReferralCode: "ABCD2345"}
	return s.synced, nil
}

func (s *stubUserService) GetUser(_ context.Context, id string) (*models.User, error) {
	if id != "42" {
		return nil, apperrors.NewUserNotFoundError(id)
	}
	return &models.User{ID: "42", FirstName: "Ann"}, nil
}

func (s *stubUserService) ConnectWallet(_ context.Context, id, address string) (*models.User, error) {
	s.lastWallet = address
	wallet := address
	return &models.User{ID: id, ConnectedWallet: &wallet}, nil
}

func authedRouter(svc *stubUserService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.RequestID(), middleware.ErrorHandler())

	v1 := router.Group("/api/v1")
	v1.Use(middleware.InitDataAuth(testToken, initdata.Options{}))
	userhttp.NewUserHandler(svc).RegisterRoutes(v1)
	return router
}

func signedHeader(t *testing.T) string {
	t.Helper()
	return initdata.Sign(map[string]string{
		"user":        `{"id":42,"first_name":"Ann"}`,
		"start_param": "FRIEND01",
	}, testToken, time.Now())
}

func doRequest(router *gin.Engine, method, path, header, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if header != "" {
		req.Header.Set(middleware.HeaderInitData, header)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestGetMeSyncsProfile(t *testing.T) {
	svc := &stubUserService{}
	router := authedRouter(svc)

	rec := doRequest(router, http.MethodGet, "/api/v1/users/me", signedHeader(t), "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "FRIEND01", svc.lastStartParam)

	var user models.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &user))
	assert.Equal(t, "42", user.ID)
	assert.Equal(t, "Ann", user.FirstName)
}

func TestGetMeRequiresAuth(t *testing.T) {
	router := authedRouter(&stubUserService{})

	rec := doRequest(router, http.MethodGet, "/api/v1/users/me", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGetUserByID(t *testing.T) {
	router := authedRouter(&stubUserService{})

	rec := doRequest(router, http.MethodGet, "/api/v1/users/42", signedHeader(t), "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(router, http.MethodGet, "/api/v1/users/404", signedHeader(t), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestConnectWallet(t *testing.T) {
	svc := &stubUserService{}
	router := authedRouter(svc)

	rec := doRequest(router, http.MethodPost, "/api/v1/users/me/wallet", signedHeader(t),
		`{"address":"EQCD39VS5jcptHL8vMjEXrzGaRcCVYto7HUn4bpAOg8xqB2N"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "EQCD39VS5jcptHL8vMjEXrzGaRcCVYto7HUn4bpAOg8xqB2N", svc.lastWallet)
}

func TestConnectWalletRequiresAddress(t *testing.T) {
	router := authedRouter(&stubUserService{})

	rec := doRequest(router, http.MethodPost, "/api/v1/users/me/wallet", signedHeader(t), `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
