package sitestorage

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
	"github.com/pkg/errors"

	"github.com/indyavik/theme-1-multi-site/common"
)

// RedisAdapter is a redis-backed Adapter. Alongside each value it maintains
// a set of stored keys so List does not depend on SCAN.
type RedisAdapter struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisAdapter creates a RedisAdapter using the given client. The key
// prefix namespaces all entries.
func NewRedisAdapter(client *redis.Client, keyPrefix string) (*RedisAdapter, error) {
	if client == nil {
		return nil, errors.New("redis client cannot be nil")
	}
	if keyPrefix == "" {
		keyPrefix = "siteedit"
	}
	return &RedisAdapter{client: client, keyPrefix: keyPrefix}, nil
}

func (a *RedisAdapter) valueKey(key string) string {
	return fmt.Sprintf("%s:blob:%s", a.keyPrefix, key)
}

func (a *RedisAdapter) indexKey() string {
	return fmt.Sprintf("%s:keys", a.keyPrefix)
}

// Put stores data under key.
func (a *RedisAdapter) Put(ctx context.Context, key string, data []byte) error {
	if err := a.client.Set(ctx, a.valueKey(key), data, 0).Err(); err != nil {
		return errors.Wrapf(err, "failed to store %s", key)
	}
	if err := a.client.SAdd(ctx, a.indexKey(), key).Err(); err != nil {
		return errors.Wrapf(err, "failed to index %s", key)
	}
	return nil
}

// Get returns the data stored under key.
func (a *RedisAdapter) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := a.client.Get(ctx, a.valueKey(key)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, common.ErrNotFound
		}
		return nil, errors.Wrapf(err, "failed to get %s", key)
	}
	return data, nil
}

// Delete removes key.
func (a *RedisAdapter) Delete(ctx context.Context, key string) error {
	if err := a.client.Del(ctx, a.valueKey(key)).Err(); err != nil {
		return errors.Wrapf(err, "failed to delete %s", key)
	}
	if err := a.client.SRem(ctx, a.indexKey(), key).Err(); err != nil {
		return errors.Wrapf(err, "failed to unindex %s", key)
	}
	return nil
}

// List returns all stored keys.
func (a *RedisAdapter) List(ctx context.Context) ([]string, error) {
	keys, err := a.client.SMembers(ctx, a.indexKey()).Result()
	if err != nil {
		return nil, errors.Wrap(err, "failed to list keys")
	}
	return keys, nil
}
