package middleware

import (
	"strings"

	"postboard/internal/api"
	"postboard/internal/service"

	"github.com/labstack/echo/v4"
)

const ContextUserKey = "user"

var verifyAccessToken = service.VerifyAccessToken

func extractClaims(c echo.Context) (*service.CustomClaims, *api.Error) {
	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	if authHeader == "" {
		return nil, api.Unauthorized("missing token")
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return nil, api.Unauthorized("invalid authorization header format")
	}
	claims, err := verifyAccessToken(parts[1])
	if err != nil {
		e := api.Unauthorized("invalid token")
		e.Err = err
		return nil, e
	}
	return claims, nil
}

// RequireAuth 沒有有效的 Bearer token 直接回 401
func RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, apiErr := extractClaims(c)
		if apiErr != nil {
			return api.Respond(c, apiErr)
		}
		c.Set(ContextUserKey, claims)
		return next(c)
	}
}

// OptionalAuth 沒帶 Authorization 或未設定 JWT_SECRET 時照常放行；
// 有帶但無效時回 401
func OptionalAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if c.Request().Header.Get(echo.HeaderAuthorization) == "" || !service.TokensEnabled() {
			return next(c)
		}
		return RequireAuth(next)(c)
	}
}

// ClaimsFrom 取出通過驗證的 token claims
func ClaimsFrom(c echo.Context) (*service.CustomClaims, bool) {
	claims, ok := c.Get(ContextUserKey).(*service.CustomClaims)
	return claims, ok && claims != nil
}
