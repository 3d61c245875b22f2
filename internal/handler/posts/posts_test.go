package posts

import (
	"context"
	"errors"
	"net/http/httptest"
	"strings"

	"postboard/internal/api"
	"postboard/internal/middleware"
	"postboard/internal/model"
	"postboard/internal/service"
	"postboard/internal/store"

	"github.com/labstack/echo/v4"
)

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = api.NewValidator()
	return e
}

func newCtx(e *echo.Echo, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

// withClaims 模擬 middleware 驗證過的 token
func withClaims(c echo.Context, userID, email string) {
	c.Set(middleware.ContextUserKey, &service.CustomClaims{UserID: userID, Email: email})
}

type errBinder struct{}

func (errBinder) Bind(i any, c echo.Context) error { return errors.New("bind") }

func aliceLookup(_ context.Context, email string) (*model.User, error) {
	if email != "alice@x.com" {
		return nil, store.ErrNotFound
	}
	return &model.User{ID: "alice-id", Email: email}, nil
}
