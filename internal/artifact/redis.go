package artifact

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

type redisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Close() error
}

// RedisSource reads artifacts stored as plain string values under
// prefix+name.
type RedisSource struct {
	client  redisClient
	prefix  string
	timeout time.Duration
}

func NewRedisSource(client redisClient, prefix string, timeout time.Duration) *RedisSource {
	return &RedisSource{client: client, prefix: prefix, timeout: timeout}
}

func (s *RedisSource) ctx(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

func (s *RedisSource) Load(ctx context.Context, name string) ([]byte, error) {
	ctx, cancel := s.ctx(ctx)
	defer cancel()
	data, err := s.client.Get(ctx, s.prefix+name).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("redis key %s: %w", s.prefix+name, ErrNotFound)
		}
		return nil, fmt.Errorf("redis get %s: %w", s.prefix+name, err)
	}
	return data, nil
}

func (s *RedisSource) Put(ctx context.Context, name string, data []byte) error {
	ctx, cancel := s.ctx(ctx)
	defer cancel()
	if err := s.client.Set(ctx, s.prefix+name, data, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", s.prefix+name, err)
	}
	return nil
}

func (s *RedisSource) Close(context.Context) error {
	return s.client.Close()
}
