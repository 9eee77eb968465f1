package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "miniapp-auth-backend/internal/common/errors"
	"miniapp-auth-backend/internal/common/middleware"
	"miniapp-auth-backend/internal/features/user/models"
	"miniapp-auth-backend/internal/features/user/service"
)

type UserHandler struct {
	service service.UserService
}

func NewUserHandler(service service.UserService) *UserHandler {
	return &UserHandler{
		service: service,
	}
}

// RegisterRoutes mounts the user routes. The group is expected to carry the
// init-data authentication middleware.
func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup) {
	users := router.Group("/users")
	{
		users.GET("/me", h.getMe)
		users.GET("/:id", h.getUser)
		users.POST("/me/wallet", h.connectWallet)
	}
}

// @Summary Get current user
// @Description Returns the profile for the authenticated claim, creating or refreshing it first.
// @Tags users
// @Accept json
// @Produce json
// @Security TelegramInitData
// @Success 200 {object} models.User "User profile"
// @Failure 401 {object} models.ErrorResponse "Missing or invalid init data"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /users/me [get]
func (h *UserHandler) getMe(c *gin.Context) {
	claim, ok := middleware.ClaimFromContext(c)
	if !ok {
		middleware.AbortWithAppError(c, apperrors.New(apperrors.ErrCodeUnauthorized, "Telegram init data required"))
		return
	}

	user, err := h.service.SyncProfile(c.Request.Context(), claim, middleware.StartParamFromContext(c))
	if err != nil {
		h.abort(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// @Summary Get user by ID
// @Description Returns a user profile by its Telegram user ID.
// @Tags users
// @Accept json
// @Produce json
// @Security TelegramInitData
// @Param id path string true "User ID"
// @Success 200 {object} models.User "User profile"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Failure 404 {object} models.ErrorResponse "User not found"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /users/{id} [get]
func (h *UserHandler) getUser(c *gin.Context) {
	user, err := h.service.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.abort(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// @Summary Connect a TON wallet
// @Description Attaches a normalized TON wallet address to the authenticated user's profile.
// @Tags users
// @Accept json
// @Produce json
// @Security TelegramInitData
// @Param request body models.ConnectWalletRequest true "Wallet address"
// @Success 200 {object} models.User "Updated profile"
// @Failure 400 {object} models.ErrorResponse "Invalid wallet address"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Failure 404 {object} models.ErrorResponse "User not found"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /users/me/wallet [post]
func (h *UserHandler) connectWallet(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		middleware.AbortWithAppError(c, apperrors.New(apperrors.ErrCodeUnauthorized, "Telegram init data required"))
		return
	}

	var req models.ConnectWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.AbortWithAppError(c, apperrors.New(apperrors.ErrCodeBadRequest, "address is required"))
		return
	}

	user, err := h.service.ConnectWallet(c.Request.Context(), userID, req.Address)
	if err != nil {
		h.abort(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) abort(c *gin.Context, err error) {
	if appErr, ok := apperrors.AsAppError(err); ok {
		middleware.AbortWithAppError(c, appErr)
		return
	}
	middleware.AbortWithAppError(c, apperrors.Wrap(err, apperrors.ErrCodeInternal, "Internal server error"))
}
