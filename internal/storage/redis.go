package storage

import (
	"context"
	"fmt"

	"github.com/redis/rueidis"
)

// RedisBackend stores each key as a plain Redis string
type RedisBackend struct {
	client rueidis.Client
	prefix string
}

// DialRedis connects to a Redis server
func DialRedis(addr string) (rueidis.Client, error) {
	client, err := rueidis.NewClient(rueidis.ClientOption{
		InitAddress: []string{addr},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create redis client: %w", err)
	}
	return client, nil
}

// NewRedisBackend uses client for storage. prefix namespaces the keys,
// e.g. "peregrinno:" stores tasks under "peregrinno:tasks".
func NewRedisBackend(client rueidis.Client, prefix string) *RedisBackend {
	return &RedisBackend{
		client: client,
		prefix: prefix,
	}
}

// Name implements Backend
func (b *RedisBackend) Name() string { return "redis" }

// Get implements Backend
func (b *RedisBackend) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := validateKey(key); err != nil {
		return nil, false, err
	}

	cmd := b.client.B().Get().Key(b.prefix + key).Build()
	value, err := b.client.Do(ctx, cmd).ToString()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return []byte(value), true, nil
}

// Set implements Backend
func (b *RedisBackend) Set(ctx context.Context, key string, data []byte) error {
	if err := validateKey(key); err != nil {
		return err
	}

	cmd := b.client.B().Set().Key(b.prefix + key).Value(string(data)).Build()
	return b.client.Do(ctx, cmd).Error()
}

// Close implements Backend
func (b *RedisBackend) Close() error {
	b.client.Close()
	return nil
}
