package store

import (
	"context"

	"postboard/internal/model"
)

// FakeStore 測試用；未設定的 Fn 被呼叫時 panic
type FakeStore struct {
	GetUserByEmailFn  func(ctx context.Context, email string) (*model.User, error)
	CreateUserFn      func(ctx context.Context, u *model.User) (*model.User, error)
	CreatePostFn      func(ctx context.Context, p *model.Post) (*model.Post, error)
	ListPostsByUserFn func(ctx context.Context, userID string) ([]model.Post, error)
	GetPostByIDFn     func(ctx context.Context, postID string) (*model.Post, error)
	DeletePostFn      func(ctx context.Context, postID string) (*model.Post, error)
	PingFn            func(ctx context.Context) error
}

func (f *FakeStore) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	if f.GetUserByEmailFn != nil {
		return f.GetUserByEmailFn(ctx, email)
	}
	panic("unexpected GetUserByEmail")
}

func (f *FakeStore) CreateUser(ctx context.Context, u *model.User) (*model.User, error) {
	if f.CreateUserFn != nil {
		return f.CreateUserFn(ctx, u)
	}
	panic("unexpected CreateUser")
}

func (f *FakeStore) CreatePost(ctx context.Context, p *model.Post) (*model.Post, error) {
	if f.CreatePostFn != nil {
		return f.CreatePostFn(ctx, p)
	}
	panic("unexpected CreatePost")
}

func (f *FakeStore) ListPostsByUser(ctx context.Context, userID string) ([]model.Post, error) {
	if f.ListPostsByUserFn != nil {
		return f.ListPostsByUserFn(ctx, userID)
	}
	panic("unexpected ListPostsByUser")
}

func (f *FakeStore) GetPostByID(ctx context.Context, postID string) (*model.Post, error) {
	if f.GetPostByIDFn != nil {
		return f.GetPostByIDFn(ctx, postID)
	}
	panic("unexpected GetPostByID")
}

func (f *FakeStore) DeletePost(ctx context.Context, postID string) (*model.Post, error) {
	if f.DeletePostFn != nil {
		return f.DeletePostFn(ctx, postID)
	}
	panic("unexpected DeletePost")
}

func (f *FakeStore) Ping(ctx context.Context) error {
	if f.PingFn != nil {
		return f.PingFn(ctx)
	}
	panic("unexpected Ping")
}
