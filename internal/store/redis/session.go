package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Схема ключей:
//   session:{namespace}: хэш ключ сессии -> значение

func sessionKey(namespace string) string {
	return "session:" + namespace
}

// SessionStore хранит ключи сессии в одном хэше Redis на namespace.
// Каждая операция это одна команда, поэтому запись и очистка атомарны.
type SessionStore struct {
	rdb       *redis.Client
	namespace string
}

func NewSessionStore(rdb *redis.Client, namespace string) *SessionStore {
	if namespace == "" {
		namespace = "default"
	}
	return &SessionStore{rdb: rdb, namespace: namespace}
}

// Connect разбирает url, проверяет сервер через ping и возвращает хранилище.
func Connect(ctx context.Context, url, namespace string) (*SessionStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return NewSessionStore(rdb, namespace), nil
}

func (s *SessionStore) Close() error {
	return s.rdb.Close()
}

func (s *SessionStore) MultiGet(ctx context.Context, keys []string) (map[string]string, error) {
	out := make(map[string]string, len(keys))
	if len(keys) == 0 {
		return out, nil
	}
	values, err := s.rdb.HMGet(ctx, sessionKey(s.namespace), keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("hmget session: %w", err)
	}
	for i, value := range values {
		if str, ok := value.(string); ok {
			out[keys[i]] = str
		}
	}
	return out, nil
}

func (s *SessionStore) MultiSet(ctx context.Context, items map[string]string) error {
	if len(items) == 0 {
		return nil
	}
	fields := make(map[string]interface{}, len(items))
	for key, value := range items {
		fields[key] = value
	}
	if err := s.rdb.HSet(ctx, sessionKey(s.namespace), fields).Err(); err != nil {
		return fmt.Errorf("hset session: %w", err)
	}
	return nil
}

func (s *SessionStore) MultiRemove(ctx context.Context, keys []string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := s.rdb.HDel(ctx, sessionKey(s.namespace), keys...).Err(); err != nil {
		return fmt.Errorf("hdel session: %w", err)
	}
	return nil
}
