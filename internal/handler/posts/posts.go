package posts

import (
	"postboard/internal/api"
	"postboard/internal/middleware"
	"postboard/internal/model"
	"postboard/internal/store"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

const (
	msgUserNotFound = "User not found"
	msgPostNotFound = "Post not found"
	msgForbidden    = "Forbidden"
)

// checkOwner 請求帶 token 時，userID (email) 必須是 token 本人
func checkOwner(c echo.Context, email string) *api.Error {
	claims, ok := middleware.ClaimsFrom(c)
	if ok && claims.Email != email {
		return api.Forbidden(msgForbidden)
	}
	return nil
}

// lookupOwner 以 email 找出貼文擁有者；找不到回 404，其餘錯誤以 failMsg 包成 500
func lookupOwner(c echo.Context, st store.Store, email, failMsg string) (*model.User, *api.Error) {
	user, err := st.GetUserByEmail(c.Request().Context(), email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, api.NotFound(msgUserNotFound)
		}
		return nil, api.Internal(failMsg, err)
	}
	return user, nil
}
