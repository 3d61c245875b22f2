// File: internal/api/errors.go
package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
)

// Kind 錯誤分類
type Kind int

const (
	KindValidation Kind = iota + 1
	KindConflict
	KindNotFound
	KindAuth
	KindInternal
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindNotFound:
		return "not_found"
	case KindAuth:
		return "auth"
	case KindInternal:
		return "internal"
	}
	return "unknown"
}

// Error 是 handler 回給用戶端的錯誤，Status 決定 HTTP 狀態碼
type Error struct {
	Kind    Kind
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// WithStatus 回傳覆寫狀態碼的副本
func (e *Error) WithStatus(status int) *Error {
	cp := *e
	cp.Status = status
	return &cp
}

func Validation(msg string) *Error {
	return &Error{Kind: KindValidation, Status: http.StatusBadRequest, Message: msg}
}

func Conflict(msg string) *Error {
	return &Error{Kind: KindConflict, Status: http.StatusConflict, Message: msg}
}

func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Status: http.StatusNotFound, Message: msg}
}

func Unauthorized(msg string) *Error {
	return &Error{Kind: KindAuth, Status: http.StatusUnauthorized, Message: msg}
}

func Forbidden(msg string) *Error {
	return &Error{Kind: KindAuth, Status: http.StatusForbidden, Message: msg}
}

// Internal 會把底層錯誤訊息附加在回應中
func Internal(msg string, err error) *Error {
	return &Error{Kind: KindInternal, Status: http.StatusInternalServerError, Message: msg, Err: err}
}

// Body 回傳要送給用戶端的訊息
func (e *Error) Body() ErrorResponse {
	if e.Kind == KindInternal && e.Err != nil {
		return ErrorResponse{Message: e.Message + ": " + e.Err.Error()}
	}
	return ErrorResponse{Message: e.Message}
}

// Respond 將錯誤寫成 JSON；非 *Error 一律視為 internal
func Respond(c echo.Context, err error) error {
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		apiErr = Internal("internal error", err)
	}
	return c.JSON(apiErr.Status, apiErr.Body())
}
