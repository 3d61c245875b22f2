// File: internal/handler/users/register.go
package users

import (
	"net/http"

	"postboard/internal/api"
	"postboard/internal/logging"
	"postboard/internal/model"
	"postboard/internal/store"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// RegisterHandler 註冊新使用者
// @Summary     Register a user
// @Description 以 email 與密碼建立帳號；email 已存在回 409
// @Tags        users
// @Accept      json,application/x-www-form-urlencoded
// @Produce     json
// @Param       body body     api.RegisterRequest true "註冊資料"
// @Success     200  {object} api.MessageResponse
// @Failure     400  {object} api.ErrorResponse
// @Failure     409  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Router      /registerUser [post]
func RegisterHandler(st store.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		log := logging.From(c)

		var req api.RegisterRequest
		if err := c.Bind(&req); err != nil {
			log.WithError(err).Info("register: unreadable body")
			return api.Respond(c, api.Validation(msgMissingCredentials))
		}
		if err := c.Validate(&req); err != nil {
			log.Info("register: missing email or password")
			return api.Respond(c, api.Validation(msgMissingCredentials))
		}

		ctx := c.Request().Context()
		_, err := st.GetUserByEmail(ctx, req.Email)
		switch {
		case err == nil:
			log.WithField("email", req.Email).Info("register: user already exists")
			return api.Respond(c, api.Conflict(msgUserExists))
		case !errors.Is(err, store.ErrNotFound):
			log.WithError(err).Error("register: lookup failed")
			return api.Respond(c, api.Internal("Registration failed", err))
		}

		hash, err := hashPassword(req.Password)
		if err != nil {
			log.WithError(err).Error("register: hash failed")
			return api.Respond(c, api.Internal("Registration failed", err))
		}

		// 兩個請求同時註冊同一 email 時，由唯一索引擋下後到的那一個
		if _, err := st.CreateUser(ctx, &model.User{Email: req.Email, PasswordHash: hash}); err != nil {
			if errors.Is(err, store.ErrDuplicate) {
				log.WithField("email", req.Email).Info("register: user already exists")
				return api.Respond(c, api.Conflict(msgUserExists))
			}
			log.WithError(err).Error("register: insert failed")
			return api.Respond(c, api.Internal("Registration failed", err))
		}

		log.WithField("email", req.Email).Info("registered user")
		return c.JSON(http.StatusOK, api.MessageResponse{Message: msgRegistered})
	}
}
