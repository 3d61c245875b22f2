// File: internal/store/cached.go
package store

import (
	"context"
	"encoding/json"
	"time"

	"postboard/internal/cache"
	"postboard/internal/model"
	"postboard/internal/worker"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"golang.org/x/sync/singleflight"
)

const (
	writeBackTimeout = 2 * time.Second
	// lookupTimeout 限制共用查詢的時間，它不跟任何一個呼叫者的 ctx 綁在一起
	lookupTimeout = 5 * time.Second
)

// cachedUser 是寫進 redis 的內容；model.User 不會序列化密碼雜湊
type cachedUser struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	PasswordHash string `json:"hashed_password"`
}

// CachedStore 在 GetUserByEmail 前加一層 redis，其餘方法直接交給 next
type CachedStore struct {
	Store
	cache cache.Cache
	pool  worker.Pool
	cb    *gobreaker.CircuitBreaker
	sf    singleflight.Group
	ttl   time.Duration
	log   logrus.FieldLogger
}

func NewCachedStore(next Store, c cache.Cache, pool worker.Pool, ttl time.Duration, log logrus.FieldLogger) *CachedStore {
	st := gobreaker.Settings{
		Name:        "redis-user-cache",
		MaxRequests: 1,
		Interval:    10 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 5 && failureRatio >= 0.5
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			log.Warnf("circuit breaker %s changed from %s to %s", name, from, to)
		},
	}
	return &CachedStore{
		Store: next,
		cache: c,
		pool:  pool,
		cb:    gobreaker.NewCircuitBreaker(st),
		ttl:   ttl,
		log:   log,
	}
}

func userKey(email string) string {
	return "user:email:" + email
}

func (s *CachedStore) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	key := userKey(email)

	val, err := s.cb.Execute(func() (interface{}, error) {
		res, err := s.cache.Get(ctx, key).Result()
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		return res, nil
	})
	switch {
	case err != nil:
		s.log.Warnf("[GetUserByEmail] cache unavailable, reading store: %v", err)
	case val != nil:
		var cu cachedUser
		if err := json.Unmarshal([]byte(val.(string)), &cu); err == nil {
			return &model.User{ID: cu.ID, Email: cu.Email, PasswordHash: cu.PasswordHash}, nil
		}
		s.log.Errorf("[GetUserByEmail] failed to unmarshal %s: %v", key, err)
	}

	// 同一個 email 的並發 miss 只查一次；每個呼叫者各自等自己的 ctx
	ch := s.sf.DoChan(key, func() (interface{}, error) {
		lookupCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), lookupTimeout)
		defer cancel()
		u, err := s.Store.GetUserByEmail(lookupCtx, email)
		if err != nil {
			return nil, err
		}
		s.writeBack(key, u)
		return u, nil
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		if res.Shared {
			s.log.Debugf("shared user lookup for %s", key)
		}
		u := *res.Val.(*model.User)
		return &u, nil
	}
}

// CreateUser 成功後預先寫入快取，註冊後馬上登入不必回源
func (s *CachedStore) CreateUser(ctx context.Context, u *model.User) (*model.User, error) {
	created, err := s.Store.CreateUser(ctx, u)
	if err != nil {
		return nil, err
	}
	s.writeBack(userKey(created.Email), created)
	return created, nil
}

func (s *CachedStore) writeBack(key string, u *model.User) {
	data, err := json.Marshal(cachedUser{ID: u.ID, Email: u.Email, PasswordHash: u.PasswordHash})
	if err != nil {
		s.log.Errorf("[writeBack] marshal %s: %v", key, err)
		return
	}
	ok := s.pool.Submit(func() {
		ctx, cancel := context.WithTimeout(context.Background(), writeBackTimeout)
		defer cancel()
		if err := s.cache.Set(ctx, key, string(data), s.ttl).Err(); err != nil {
			s.log.Errorf("[writeBack] failed to write cache for redis key %s: %v", key, err)
		}
	})
	if !ok {
		s.log.Warnf("[writeBack] queue full or pool stopped, skip %s", key)
	}
}
