package repositories

import (
	"context"
	"errors"

	"github.com/go-redis/redis/v8"
)

const redisScanBatch = 200

type redisItemStore struct {
	client    *redis.Client
	namespace string
}

// NewRedisItemStore stores each item as a plain Redis string. namespace is
// prepended to every key so several deployments can share one database.
func NewRedisItemStore(client *redis.Client, namespace string) ItemStore {
	return &redisItemStore{client: client, namespace: namespace}
}

// NewRedisItemStoreFromURL parses a redis:// URL and builds the store.
func NewRedisItemStoreFromURL(rawURL, namespace string) (ItemStore, error) {
	opts, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, err
	}
	return NewRedisItemStore(redis.NewClient(opts), namespace), nil
}

func (s *redisItemStore) GetItem(ctx context.Context, key string) (string, bool, error) {
	v, err := s.client.Get(ctx, s.namespace+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (s *redisItemStore) SetItem(ctx context.Context, key, value string) error {
	return s.client.Set(ctx, s.namespace+key, value, 0).Err()
}

func (s *redisItemStore) Keys(ctx context.Context, prefix string) ([]string, error) {
	var (
		out    []string
		cursor uint64
	)
	match := s.namespace + prefix + "*"
	for {
		keys, next, err := s.client.Scan(ctx, cursor, match, redisScanBatch).Result()
		if err != nil {
			return nil, err
		}
		for _, k := range keys {
			out = append(out, k[len(s.namespace):])
		}
		if next == 0 {
			return out, nil
		}
		cursor = next
	}
}

func (s *redisItemStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *redisItemStore) Close() error {
	return s.client.Close()
}
