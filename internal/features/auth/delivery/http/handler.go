package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "miniapp-auth-backend/internal/common/errors"
	"miniapp-auth-backend/internal/common/middleware"
	"miniapp-auth-backend/internal/features/auth/service"
	"miniapp-auth-backend/internal/features/user/models"
)

type AuthHandler struct {
	service service.AuthService
}

func NewAuthHandler(service service.AuthService) *AuthHandler {
	return &AuthHandler{
		service: service,
	}
}

func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup) {
	auth := router.Group("/auth")
	{
		auth.POST("/validate", h.validate)
	}
}

// ValidateRequest is the body of the validation endpoint.
type ValidateRequest struct {
	InitData string `json:"initData" example:"auth_date=...&user=...&hash=..."`
}

// @Summary Validate Telegram init data
// @Description Verifies the signed init-data payload and creates or updates the user profile.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body ValidateRequest true "Raw init-data payload"
// @Success 200 {object} models.AuthResponse "Authenticated user profile"
// @Failure 400 {object} models.ErrorResponse "Missing initData"
// @Failure 401 {object} models.ErrorResponse "Verification failed"
// @Failure 500 {object} models.ErrorResponse "Server misconfiguration or storage failure"
// @Router /auth/validate [post]
func (h *AuthHandler) validate(c *gin.Context) {
	var req ValidateRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.InitData == "" {
		middleware.AbortWithAppError(c, apperrors.New(apperrors.ErrCodeMissingInitData, "initData is required"))
		return
	}

	user, err := h.service.Authenticate(c.Request.Context(), req.InitData)
	if err != nil {
		if appErr, ok := apperrors.AsAppError(err); ok {
			middleware.AbortWithAppError(c, appErr)
			return
		}
		middleware.AbortWithAppError(c, apperrors.Wrap(err, apperrors.ErrCodeInternal, "Authentication failed"))
		return
	}

	c.JSON(http.StatusOK, models.AuthResponse{
		Message: "authentication successful",
		User:    user,
	})
}
