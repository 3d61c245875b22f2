package api

import "time"

// LoginResponse 回傳使用者識別 (email)；設定 JWT_SECRET 時附帶存取令牌
// swagger:model api.LoginResponse
type LoginResponse struct {
	UserID      string     `json:"userID" example:"alice@example.com"`
	AccessToken string     `json:"access_token,omitempty" example:"eyJhbGciOi..."`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
}
