package stores

import (
	"context"
	"sync"

	"github.com/redis/go-redis/v9"
)

// Storage keys for the persisted collections. Each collection lives in a
// single name-addressable JSON blob; readers tolerate a missing key and
// missing optional fields.
const (
	IssuesKey  = "issues_store_v1"
	CivicKey   = "civic_hours_v1"
	RewardsKey = "rewards_store_v1"
)

// Blob is the persistence contract the stores run on: whole-value get and
// set of a named JSON blob. Get returns (nil, nil) when the key is absent.
type Blob interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, data []byte) error
}

// RedisBlob persists blobs as Redis string values
type RedisBlob struct {
	Client *redis.Client
}

func NewRedisBlob(client *redis.Client) *RedisBlob {
	return &RedisBlob{Client: client}
}

func (b *RedisBlob) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := b.Client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (b *RedisBlob) Set(ctx context.Context, key string, data []byte) error {
	return b.Client.Set(ctx, key, data, 0).Err()
}

// MemoryBlob keeps blobs in process memory; used by tests
type MemoryBlob struct {
	mu   sync.Mutex
	data map[string][]byte
}

func NewMemoryBlob() *MemoryBlob {
	return &MemoryBlob{data: make(map[string][]byte)}
}

func (b *MemoryBlob) Get(_ context.Context, key string) ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	data, ok := b.data[key]
	if !ok {
		return nil, nil
	}
	return data, nil
}

func (b *MemoryBlob) Set(_ context.Context, key string, data []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.data[key] = data
	return nil
}
