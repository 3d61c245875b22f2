// File: internal/model/user.go
package model

// User 帳號資料；Email 為查詢用的業務鍵
type User struct {
	ID           string `json:"_id"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
}
