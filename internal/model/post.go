// File: internal/model/post.go
package model

import "time"

// Post 由使用者建立的貼文；UserID 指向 User.ID 而非 Email
type Post struct {
	ID          string    `json:"_id"`
	UserID      string    `json:"userID"`
	Title       string    `json:"postTitle"`
	Description string    `json:"postDescription"`
	CreatedAt   time.Time `json:"created_at"`
}
