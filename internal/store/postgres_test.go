package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"postboard/internal/database"
	"postboard/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

/* ---------- 假實作 ---------- */

// fakeRow 依 Scan 的目標數量決定填入哪些欄位：
// 1) 3 → user (id, email, hashed_password)
// 2) 1 → CreateUser RETURNING id
// 3) 2 → CreatePost RETURNING id, created_at
// 4) 5 → post
type fakeRow struct {
	err  error
	user model.User
	post model.Post
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	switch len(dest) {
	case 1:
		*dest[0].(*string) = r.user.ID
	case 2:
		*dest[0].(*string) = r.post.ID
		*dest[1].(*time.Time) = r.post.CreatedAt
	case 3:
		*dest[0].(*string) = r.user.ID
		*dest[1].(*string) = r.user.Email
		*dest[2].(*string) = r.user.PasswordHash
	case 5:
		*dest[0].(*string) = r.post.ID
		*dest[1].(*string) = r.post.UserID
		*dest[2].(*string) = r.post.Title
		*dest[3].(*string) = r.post.Description
		*dest[4].(*time.Time) = r.post.CreatedAt
	default:
		panic("fakeRow.Scan: unexpected dest count")
	}
	return nil
}

type fakeRows struct {
	posts   []model.Post
	idx     int
	scanErr error
	err     error
	closed  bool
}

func (r *fakeRows) Close()                                       { r.closed = true }
func (r *fakeRows) Err() error                                   { return r.err }
func (r *fakeRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *fakeRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *fakeRows) Values() ([]any, error)                       { return nil, nil }
func (r *fakeRows) RawValues() [][]byte                          { return nil }
func (r *fakeRows) Conn() *pgx.Conn                              { return nil }

func (r *fakeRows) Next() bool {
	if r.idx >= len(r.posts) {
		return false
	}
	r.idx++
	return true
}

func (r *fakeRows) Scan(dest ...any) error {
	if r.scanErr != nil {
		return r.scanErr
	}
	return fakeRow{post: r.posts[r.idx-1]}.Scan(dest...)
}

/* ---------- 測試 ---------- */

func TestPostgresStoreUsers(t *testing.T) {
	ctx := context.Background()
	t.Cleanup(func() { newID = uuid.NewString })
	newID = func() string { return "7f8a3c1e-0000-4000-8000-000000000001" }

	t.Run("GetUserByEmail success", func(t *testing.T) {
		var gotArgs []any
		db := &database.FakeDB{QueryRowFn: func(_ context.Context, _ string, args ...any) pgx.Row {
			gotArgs = args
			return fakeRow{user: model.User{ID: "u1", Email: "a@x.com", PasswordHash: "h"}}
		}}
		u, err := NewPostgresStore(db).GetUserByEmail(ctx, "a@x.com")
		require.NoError(t, err)
		require.Equal(t, "u1", u.ID)
		require.Equal(t, "h", u.PasswordHash)
		require.Equal(t, []any{"a@x.com"}, gotArgs)
	})

	t.Run("GetUserByEmail not found", func(t *testing.T) {
		db := &database.FakeDB{QueryRowFn: func(context.Context, string, ...any) pgx.Row {
			return fakeRow{err: pgx.ErrNoRows}
		}}
		_, err := NewPostgresStore(db).GetUserByEmail(ctx, "a@x.com")
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("GetUserByEmail db error", func(t *testing.T) {
		db := &database.FakeDB{QueryRowFn: func(context.Context, string, ...any) pgx.Row {
			return fakeRow{err: errors.New("conn reset")}
		}}
		_, err := NewPostgresStore(db).GetUserByEmail(ctx, "a@x.com")
		require.Error(t, err)
		require.NotErrorIs(t, err, ErrNotFound)
	})

	t.Run("CreateUser success", func(t *testing.T) {
		db := &database.FakeDB{QueryRowFn: func(_ context.Context, _ string, args ...any) pgx.Row {
			return fakeRow{user: model.User{ID: args[0].(string)}}
		}}
		u, err := NewPostgresStore(db).CreateUser(ctx, &model.User{Email: "a@x.com", PasswordHash: "h"})
		require.NoError(t, err)
		require.Equal(t, "7f8a3c1e-0000-4000-8000-000000000001", u.ID)
	})

	t.Run("CreateUser duplicate", func(t *testing.T) {
		db := &database.FakeDB{QueryRowFn: func(context.Context, string, ...any) pgx.Row {
			return fakeRow{err: &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}}
		}}
		_, err := NewPostgresStore(db).CreateUser(ctx, &model.User{Email: "a@x.com"})
		require.ErrorIs(t, err, ErrDuplicate)
	})

	t.Run("CreateUser other error", func(t *testing.T) {
		db := &database.FakeDB{QueryRowFn: func(context.Context, string, ...any) pgx.Row {
			return fakeRow{err: &pgconn.PgError{Code: "42P01"}}
		}}
		_, err := NewPostgresStore(db).CreateUser(ctx, &model.User{Email: "a@x.com"})
		require.Error(t, err)
		require.NotErrorIs(t, err, ErrDuplicate)
	})
}

func TestPostgresStorePosts(t *testing.T) {
	ctx := context.Background()
	owner := uuid.NewString()
	now := time.Now().UTC()

	t.Run("CreatePost success", func(t *testing.T) {
		db := &database.FakeDB{QueryRowFn: func(_ context.Context, _ string, args ...any) pgx.Row {
			require.Equal(t, owner, args[1])
			return fakeRow{post: model.Post{ID: "p1", CreatedAt: args[4].(time.Time)}}
		}}
		p, err := NewPostgresStore(db).CreatePost(ctx, &model.Post{UserID: owner, Title: "T", Description: "D"})
		require.NoError(t, err)
		require.Equal(t, "p1", p.ID)
		require.False(t, p.CreatedAt.IsZero())
	})

	t.Run("CreatePost bad owner", func(t *testing.T) {
		_, err := NewPostgresStore(&database.FakeDB{}).CreatePost(ctx, &model.Post{UserID: "x"})
		require.Error(t, err)
	})

	t.Run("CreatePost db error", func(t *testing.T) {
		db := &database.FakeDB{QueryRowFn: func(context.Context, string, ...any) pgx.Row {
			return fakeRow{err: errors.New("insert")}
		}}
		_, err := NewPostgresStore(db).CreatePost(ctx, &model.Post{UserID: owner})
		require.Error(t, err)
	})

	t.Run("ListPostsByUser", func(t *testing.T) {
		rows := &fakeRows{posts: []model.Post{
			{ID: "p2", UserID: owner, Title: "new", CreatedAt: now},
			{ID: "p1", UserID: owner, Title: "old", CreatedAt: now.Add(-time.Minute)},
		}}
		var gotSQL string
		db := &database.FakeDB{QueryFn: func(_ context.Context, sql string, _ ...any) (pgx.Rows, error) {
			gotSQL = sql
			return rows, nil
		}}
		posts, err := NewPostgresStore(db).ListPostsByUser(ctx, owner)
		require.NoError(t, err)
		require.Len(t, posts, 2)
		require.Equal(t, "new", posts[0].Title)
		require.Contains(t, gotSQL, "ORDER BY created_at DESC")
		require.True(t, rows.closed)
	})

	t.Run("ListPostsByUser empty", func(t *testing.T) {
		db := &database.FakeDB{QueryFn: func(context.Context, string, ...any) (pgx.Rows, error) {
			return &fakeRows{}, nil
		}}
		posts, err := NewPostgresStore(db).ListPostsByUser(ctx, owner)
		require.NoError(t, err)
		require.NotNil(t, posts)
		require.Empty(t, posts)
	})

	t.Run("ListPostsByUser errors", func(t *testing.T) {
		_, err := NewPostgresStore(&database.FakeDB{}).ListPostsByUser(ctx, "bad")
		require.Error(t, err)

		db := &database.FakeDB{QueryFn: func(context.Context, string, ...any) (pgx.Rows, error) {
			return nil, errors.New("query")
		}}
		_, err = NewPostgresStore(db).ListPostsByUser(ctx, owner)
		require.Error(t, err)

		db.QueryFn = func(context.Context, string, ...any) (pgx.Rows, error) {
			return &fakeRows{posts: []model.Post{{}}, scanErr: errors.New("scan")}, nil
		}
		_, err = NewPostgresStore(db).ListPostsByUser(ctx, owner)
		require.Error(t, err)

		db.QueryFn = func(context.Context, string, ...any) (pgx.Rows, error) {
			return &fakeRows{err: errors.New("rows")}, nil
		}
		_, err = NewPostgresStore(db).ListPostsByUser(ctx, owner)
		require.Error(t, err)
	})

	t.Run("GetPostByID and DeletePost", func(t *testing.T) {
		id := uuid.NewString()
		db := &database.FakeDB{QueryRowFn: func(_ context.Context, _ string, args ...any) pgx.Row {
			require.Equal(t, id, args[0])
			return fakeRow{post: model.Post{ID: id, UserID: owner, Title: "T", Description: "D", CreatedAt: now}}
		}}
		st := NewPostgresStore(db)
		p, err := st.GetPostByID(ctx, id)
		require.NoError(t, err)
		require.Equal(t, owner, p.UserID)

		p, err = st.DeletePost(ctx, id)
		require.NoError(t, err)
		require.Equal(t, id, p.ID)
	})

	t.Run("DeletePost not found", func(t *testing.T) {
		db := &database.FakeDB{QueryRowFn: func(context.Context, string, ...any) pgx.Row {
			return fakeRow{err: pgx.ErrNoRows}
		}}
		_, err := NewPostgresStore(db).DeletePost(ctx, uuid.NewString())
		require.ErrorIs(t, err, ErrNotFound)

		// 非 UUID 直接視為不存在，不查資料庫
		_, err = NewPostgresStore(&database.FakeDB{}).DeletePost(ctx, "abc")
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("DeletePost db error", func(t *testing.T) {
		db := &database.FakeDB{QueryRowFn: func(context.Context, string, ...any) pgx.Row {
			return fakeRow{err: errors.New("boom")}
		}}
		_, err := NewPostgresStore(db).DeletePost(ctx, uuid.NewString())
		require.Error(t, err)
		require.NotErrorIs(t, err, ErrNotFound)
	})

	t.Run("Ping", func(t *testing.T) {
		db := &database.FakeDB{PingFn: func(context.Context) error { return errors.New("down") }}
		require.Error(t, NewPostgresStore(db).Ping(ctx))
	})
}
