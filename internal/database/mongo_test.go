package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func TestConnectMongo(t *testing.T) {
	t.Cleanup(func() {
		mongoConnect = mongo.Connect
		mongoPingTimeout = 10 * time.Second
	})

	t.Run("connect error", func(t *testing.T) {
		mongoConnect = func(ctx context.Context, opts ...*options.ClientOptions) (*mongo.Client, error) {
			return nil, errors.New("dial")
		}
		c, err := ConnectMongo(context.Background(), "mongodb://localhost:27017")
		require.Error(t, err)
		require.Nil(t, c)
		require.Contains(t, err.Error(), "connect mongodb")
	})

	t.Run("ping error", func(t *testing.T) {
		mongoConnect = mongo.Connect
		mongoPingTimeout = 200 * time.Millisecond
		c, err := ConnectMongo(context.Background(), "mongodb://127.0.0.1:1/?serverSelectionTimeoutMS=100&connectTimeoutMS=100")
		require.Error(t, err)
		require.Nil(t, c)
		require.Contains(t, err.Error(), "ping mongodb")
	})
}
