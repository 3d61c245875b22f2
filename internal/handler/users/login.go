// File: internal/handler/users/login.go
package users

import (
	"net/http"
	"time"

	"postboard/internal/api"
	"postboard/internal/logging"
	"postboard/internal/store"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// LoginHandler 驗證 email/密碼，回傳 userID (即 email)；有設定 JWT_SECRET 時一併發行存取令牌
// @Summary     Log in
// @Description 未知 email 與密碼錯誤皆回 401
// @Tags        users
// @Accept      json,application/x-www-form-urlencoded
// @Produce     json
// @Param       body body     api.LoginRequest true "登入資料"
// @Success     200  {object} api.LoginResponse
// @Failure     400  {object} api.ErrorResponse
// @Failure     401  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Router      /userLogin [post]
func LoginHandler(st store.Store, tokenTTL time.Duration) echo.HandlerFunc {
	return func(c echo.Context) error {
		log := logging.From(c)

		var req api.LoginRequest
		if err := c.Bind(&req); err != nil {
			return api.Respond(c, api.Validation(msgMissingCredentials))
		}
		if err := c.Validate(&req); err != nil {
			return api.Respond(c, api.Validation(msgMissingCredentials))
		}

		ctx := c.Request().Context()
		user, err := st.GetUserByEmail(ctx, req.Email)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				log.WithField("email", req.Email).Info("login: user not found")
				return api.Respond(c, api.NotFound(msgUserNotFound).WithStatus(http.StatusUnauthorized))
			}
			log.WithError(err).Error("login: lookup failed")
			return api.Respond(c, api.Internal("Login failed", err))
		}

		if err := authenticateUser(ctx, *user, req.Password); err != nil {
			log.WithField("email", req.Email).Info("login: invalid password")
			return api.Respond(c, api.Unauthorized(msgInvalidPassword))
		}

		resp := api.LoginResponse{UserID: user.Email}
		if tokensEnabled() {
			token, exp, err := issueAccessToken(*user, tokenTTL)
			if err != nil {
				log.WithError(err).Error("login: issue token failed")
				return api.Respond(c, api.Internal("Login failed", err))
			}
			resp.AccessToken = token
			resp.ExpiresAt = &exp
		}

		log.WithField("email", user.Email).Info("user logged in")
		return c.JSON(http.StatusOK, resp)
	}
}
