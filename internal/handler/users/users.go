package users

import "postboard/internal/service"

const (
	msgMissingCredentials = "Email and password required"
	msgUserExists         = "User already exists"
	msgRegistered         = "Registered successfully"
	msgUserNotFound       = "User not found"
	msgInvalidPassword    = "Invalid password"
)

// 測試替換用
var (
	hashPassword     = service.HashPassword
	authenticateUser = service.AuthenticateUser
	tokensEnabled    = service.TokensEnabled
	issueAccessToken = service.IssueAccessToken
)
