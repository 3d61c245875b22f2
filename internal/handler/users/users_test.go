package users

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"

	"postboard/internal/api"
	"postboard/internal/model"
	"postboard/internal/service"
	"postboard/internal/store"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
)

func restore() {
	hashPassword = service.HashPassword
	authenticateUser = service.AuthenticateUser
	tokensEnabled = service.TokensEnabled
	issueAccessToken = service.IssueAccessToken
	service.PasswordCost = bcrypt.DefaultCost
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = api.NewValidator()
	return e
}

func newJSONCtx(e *echo.Echo, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func newFormCtx(e *echo.Echo, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

type errBinder struct{}

func (errBinder) Bind(i any, c echo.Context) error { return errors.New("bind") }

func notFound(context.Context, string) (*model.User, error) { return nil, store.ErrNotFound }
