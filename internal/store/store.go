// File: internal/store/store.go
package store

import (
	"context"

	"postboard/internal/model"

	"github.com/pkg/errors"
)

var (
	// ErrNotFound 查無資料
	ErrNotFound = errors.New("not found")
	// ErrDuplicate 違反唯一索引 (users.email)
	ErrDuplicate = errors.New("duplicate key")
)

// Store 是 handler 使用的持久層；Mongo 與 Postgres 各有一份實作
type Store interface {
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	CreateUser(ctx context.Context, u *model.User) (*model.User, error)
	CreatePost(ctx context.Context, p *model.Post) (*model.Post, error)
	// ListPostsByUser 依 created_at 由新到舊排序
	ListPostsByUser(ctx context.Context, userID string) ([]model.Post, error)
	GetPostByID(ctx context.Context, postID string) (*model.Post, error)
	// DeletePost 刪除並回傳被刪除的貼文
	DeletePost(ctx context.Context, postID string) (*model.Post, error)
	Ping(ctx context.Context) error
}
