package store

import (
	"context"
	"time"

	"postboard/internal/database"
	"postboard/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
)

const uniqueViolation = "23505"

var newID = uuid.NewString

// PostgresStore 以 users / posts 資料表實作 Store，schema 由 database.RunMigrations 建立
type PostgresStore struct {
	db database.DB
}

func NewPostgresStore(db database.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	row := s.db.QueryRow(ctx,
		`SELECT id, email, hashed_password
		 FROM users WHERE email = $1`,
		email,
	)
	u := &model.User{}
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errors.Wrapf(ErrNotFound, "GetUserByEmail %q", email)
		}
		return nil, errors.Wrap(err, "GetUserByEmail")
	}
	return u, nil
}

func (s *PostgresStore) CreateUser(ctx context.Context, u *model.User) (*model.User, error) {
	row := s.db.QueryRow(ctx,
		`INSERT INTO users (id, email, hashed_password)
		 VALUES ($1, $2, $3)
		 RETURNING id`,
		newID(),
		u.Email,
		u.PasswordHash,
	)
	if err := row.Scan(&u.ID); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, errors.Wrapf(ErrDuplicate, "CreateUser %q", u.Email)
		}
		return nil, errors.Wrap(err, "CreateUser")
	}
	return u, nil
}

func (s *PostgresStore) CreatePost(ctx context.Context, p *model.Post) (*model.Post, error) {
	if _, err := uuid.Parse(p.UserID); err != nil {
		return nil, errors.Wrapf(err, "CreatePost: owner id %q", p.UserID)
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	row := s.db.QueryRow(ctx,
		`INSERT INTO posts (id, user_id, post_title, post_description, created_at)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at`,
		newID(),
		p.UserID,
		p.Title,
		p.Description,
		p.CreatedAt,
	)
	if err := row.Scan(&p.ID, &p.CreatedAt); err != nil {
		return nil, errors.Wrap(err, "CreatePost")
	}
	return p, nil
}

func (s *PostgresStore) ListPostsByUser(ctx context.Context, userID string) ([]model.Post, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, errors.Wrapf(err, "ListPostsByUser: owner id %q", userID)
	}
	rows, err := s.db.Query(ctx,
		`SELECT id, user_id, post_title, post_description, created_at
		 FROM posts WHERE user_id = $1
		 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, errors.Wrap(err, "ListPostsByUser")
	}
	defer rows.Close()

	posts := make([]model.Post, 0)
	for rows.Next() {
		var p model.Post
		if err := rows.Scan(&p.ID, &p.UserID, &p.Title, &p.Description, &p.CreatedAt); err != nil {
			return nil, errors.Wrap(err, "ListPostsByUser: scan")
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "ListPostsByUser: rows")
	}
	return posts, nil
}

func (s *PostgresStore) GetPostByID(ctx context.Context, postID string) (*model.Post, error) {
	return s.scanPost(ctx, "GetPostByID", postID,
		`SELECT id, user_id, post_title, post_description, created_at
		 FROM posts WHERE id = $1`)
}

func (s *PostgresStore) DeletePost(ctx context.Context, postID string) (*model.Post, error) {
	return s.scanPost(ctx, "DeletePost", postID,
		`DELETE FROM posts WHERE id = $1
		 RETURNING id, user_id, post_title, post_description, created_at`)
}

// scanPost 非 UUID 格式的 id 視為查無資料
func (s *PostgresStore) scanPost(ctx context.Context, op, postID, query string) (*model.Post, error) {
	if _, err := uuid.Parse(postID); err != nil {
		return nil, errors.Wrapf(ErrNotFound, "%s %q", op, postID)
	}
	p := &model.Post{}
	err := s.db.QueryRow(ctx, query, postID).Scan(&p.ID, &p.UserID, &p.Title, &p.Description, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, errors.Wrapf(ErrNotFound, "%s %q", op, postID)
	}
	if err != nil {
		return nil, errors.Wrap(err, op)
	}
	return p, nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}
