// File: internal/store/mongo.go
package store

import (
	"context"
	"time"

	"postboard/internal/model"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	usersCollection = "users"
	postsCollection = "posts"
)

type userDoc struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	Email          string             `bson:"email"`
	HashedPassword string             `bson:"hashedPassword"`
}

type postDoc struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	UserID          primitive.ObjectID `bson:"userID"`
	PostTitle       string             `bson:"postTitle"`
	PostDescription string             `bson:"postDescription"`
	CreatedAt       time.Time          `bson:"created_at"`
}

func (d userDoc) model() *model.User {
	return &model.User{ID: d.ID.Hex(), Email: d.Email, PasswordHash: d.HashedPassword}
}

func (d postDoc) model() model.Post {
	return model.Post{
		ID:          d.ID.Hex(),
		UserID:      d.UserID.Hex(),
		Title:       d.PostTitle,
		Description: d.PostDescription,
		CreatedAt:   d.CreatedAt,
	}
}

// MongoStore 以 MongoDB 的 users / posts collection 實作 Store
type MongoStore struct {
	db    *mongo.Database
	users *mongo.Collection
	posts *mongo.Collection
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{
		db:    db,
		users: db.Collection(usersCollection),
		posts: db.Collection(postsCollection),
	}
}

// EnsureIndexes 建立 email 唯一索引與貼文列表用的複合索引
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("email_unique"),
	})
	if err != nil {
		return errors.Wrap(err, "EnsureIndexes users")
	}
	_, err = s.posts.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "userID", Value: 1}, {Key: "created_at", Value: -1}},
		Options: options.Index().SetName("userID_created_at"),
	})
	if err != nil {
		return errors.Wrap(err, "EnsureIndexes posts")
	}
	return nil
}

func (s *MongoStore) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	var doc userDoc
	err := s.users.FindOne(ctx, bson.M{"email": email}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, errors.Wrapf(ErrNotFound, "GetUserByEmail %q", email)
	}
	if err != nil {
		return nil, errors.Wrap(err, "GetUserByEmail")
	}
	return doc.model(), nil
}

func (s *MongoStore) CreateUser(ctx context.Context, u *model.User) (*model.User, error) {
	doc := userDoc{
		ID:             primitive.NewObjectID(),
		Email:          u.Email,
		HashedPassword: u.PasswordHash,
	}
	if _, err := s.users.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, errors.Wrapf(ErrDuplicate, "CreateUser %q", u.Email)
		}
		return nil, errors.Wrap(err, "CreateUser")
	}
	u.ID = doc.ID.Hex()
	return u, nil
}

func (s *MongoStore) CreatePost(ctx context.Context, p *model.Post) (*model.Post, error) {
	owner, err := primitive.ObjectIDFromHex(p.UserID)
	if err != nil {
		return nil, errors.Wrapf(err, "CreatePost: owner id %q", p.UserID)
	}
	if p.CreatedAt.IsZero() {
		// BSON date 只有毫秒精度
		p.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	}
	doc := postDoc{
		ID:              primitive.NewObjectID(),
		UserID:          owner,
		PostTitle:       p.Title,
		PostDescription: p.Description,
		CreatedAt:       p.CreatedAt,
	}
	if _, err := s.posts.InsertOne(ctx, doc); err != nil {
		return nil, errors.Wrap(err, "CreatePost")
	}
	p.ID = doc.ID.Hex()
	return p, nil
}

func (s *MongoStore) ListPostsByUser(ctx context.Context, userID string) ([]model.Post, error) {
	owner, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, errors.Wrapf(err, "ListPostsByUser: owner id %q", userID)
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.posts.Find(ctx, bson.M{"userID": owner}, opts)
	if err != nil {
		return nil, errors.Wrap(err, "ListPostsByUser")
	}
	var docs []postDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, errors.Wrap(err, "ListPostsByUser: decode")
	}
	posts := make([]model.Post, 0, len(docs))
	for _, d := range docs {
		posts = append(posts, d.model())
	}
	return posts, nil
}

func (s *MongoStore) GetPostByID(ctx context.Context, postID string) (*model.Post, error) {
	oid, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return nil, errors.Wrapf(ErrNotFound, "GetPostByID %q", postID)
	}
	var doc postDoc
	err = s.posts.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, errors.Wrapf(ErrNotFound, "GetPostByID %q", postID)
	}
	if err != nil {
		return nil, errors.Wrap(err, "GetPostByID")
	}
	p := doc.model()
	return &p, nil
}

func (s *MongoStore) DeletePost(ctx context.Context, postID string) (*model.Post, error) {
	oid, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return nil, errors.Wrapf(ErrNotFound, "DeletePost %q", postID)
	}
	var doc postDoc
	err = s.posts.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, errors.Wrapf(ErrNotFound, "DeletePost %q", postID)
	}
	if err != nil {
		return nil, errors.Wrap(err, "DeletePost")
	}
	p := doc.model()
	return &p, nil
}

func (s *MongoStore) Ping(ctx context.Context) error {
	return s.db.Client().Ping(ctx, readpref.Primary())
}
