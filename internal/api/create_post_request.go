// File: internal/api/create_post_request.go
package api

// swagger:model api.CreatePostRequest
type CreatePostRequest struct {
	UserID          string `json:"userID" form:"userID" validate:"required" example:"alice@example.com"`
	PostTitle       string `json:"postTitle" form:"postTitle" validate:"required" example:"Hello"`
	PostDescription string `json:"postDescription" form:"postDescription" validate:"required" example:"First post"`
}
