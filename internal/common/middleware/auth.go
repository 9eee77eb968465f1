package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"miniapp-auth-backend/internal/common/errors"
	"miniapp-auth-backend/internal/initdata"
)

// HeaderInitData is the request header carrying the raw init-data payload
// for authenticated routes.
const HeaderInitData = "init_data"

const (
	ctxKeyClaim      = "claim"
	ctxKeyStartParam = "start_param"
	ctxKeyUserID     = "user_id"
)

// InitDataAuth validates the init_data header with the verifier and stores
// the decoded claim in the request context. Routes behind it can trust the
// claim; routes without it never see one.
func InitDataAuth(token string, opts initdata.Options) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(HeaderInitData)
		if raw == "" {
			AbortWithAppError(c, errors.New(errors.ErrCodeUnauthorized, "Telegram init data required"))
			return
		}

		if token == "" {
			AbortWithAppError(c, errors.NewConfigError("Server configuration error"))
			return
		}

		verdict := initdata.Verify(raw, token, opts)
		if !verdict.Valid {
			AbortWithAppError(c, errors.NewInvalidInitDataError(string(verdict.Reason)))
			return
		}

		c.Set(ctxKeyClaim, verdict.Claim)
		c.Set(ctxKeyStartParam, verdict.StartParam)
		c.Set(ctxKeyUserID, strconv.FormatInt(verdict.Claim.ID, 10))
		c.Next()
	}
}

// ClaimFromContext returns the verified claim stored by InitDataAuth.
func ClaimFromContext(c *gin.Context) (*initdata.User, bool) {
	v, exists := c.Get(ctxKeyClaim)
	if !exists {
		return nil, false
	}
	claim, ok := v.(*initdata.User)
	return claim, ok
}

// StartParamFromContext returns the launch parameter stored by InitDataAuth.
func StartParamFromContext(c *gin.Context) string {
	return c.GetString(ctxKeyStartParam)
}

// UserIDFromContext returns the authenticated user ID stored by InitDataAuth.
func UserIDFromContext(c *gin.Context) (string, bool) {
	id := c.GetString(ctxKeyUserID)
	return id, id != ""
}
