package cache

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/kengibson1111/go-ssr-render-cache/internal"
)

// RedisConfig holds connection configuration for the Redis-backed store
type RedisConfig = internal.Config

// RedisRetryConfig defines retry behavior with exponential backoff
type RedisRetryConfig = internal.RetryConfig

// DefaultRedisConfig returns a RedisConfig with sensible default values
func DefaultRedisConfig() *RedisConfig {
	return internal.DefaultConfig()
}

// DefaultRedisRetryConfig returns a RedisRetryConfig with sensible default values
func DefaultRedisRetryConfig() *RedisRetryConfig {
	return internal.DefaultRetryConfig()
}

// RedisStore implements the Store interface over a shared Redis instance so
// multiple render processes reuse each other's cached templates. Payloads
// live under <namespace>/entries/<key> with hit counters under
// <namespace>/hits/<key>; both expire with the configured TTL.
//
// Store availability failures degrade to cache misses: a render is never
// blocked by an unreachable Redis.
type RedisStore struct {
	client internal.RedisClientInterface
	config *RedisConfig
}

// NewRedisStore creates a Redis-backed store with the provided configuration
func NewRedisStore(config *RedisConfig) (*RedisStore, error) {
	client, err := internal.NewRedisClient(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Redis client: %w", err)
	}

	return &RedisStore{
		client: client,
		config: client.Config(),
	}, nil
}

// NewRedisStoreWithDependencies creates a Redis store with injected dependencies for testing
func NewRedisStoreWithDependencies(client internal.RedisClientInterface, config *RedisConfig) *RedisStore {
	return &RedisStore{
		client: client,
		config: config,
	}
}

func (rs *RedisStore) entryKey(key string) string {
	return rs.config.KeyNamespace + "/entries/" + key
}

func (rs *RedisStore) hitsKey(key string) string {
	return rs.config.KeyNamespace + "/hits/" + key
}

// Get returns the payload stored under key and increments its hit counter.
func (rs *RedisStore) Get(key string) (string, bool) {
	ctx := context.Background()
	payload, err := rs.client.GetWithRetry(ctx, rs.entryKey(key))
	if err != nil {
		return "", false
	}
	// Hit accounting is best effort; a failed INCR must not fail the hit.
	rs.client.IncrWithRetry(ctx, rs.hitsKey(key)) //nolint:errcheck
	return payload, true
}

// Put stores payload under key if the key is absent and returns the payload
// now held by the store. First writer wins across processes.
func (rs *RedisStore) Put(key, payload string) string {
	ctx := context.Background()
	stored, err := rs.client.SetNXWithRetry(ctx, rs.entryKey(key), payload, rs.config.DefaultTTL)
	if err != nil {
		return payload
	}
	if !stored {
		if winner, err := rs.client.GetWithRetry(ctx, rs.entryKey(key)); err == nil {
			return winner
		}
	}
	return payload
}

// Clear removes all cached payloads and hit counters in this store's
// namespace.
func (rs *RedisStore) Clear() {
	ctx := context.Background()
	keys, err := rs.scanKeys(ctx, rs.config.KeyNamespace+"/*")
	if err != nil || len(keys) == 0 {
		return
	}
	rs.client.DelWithRetry(ctx, keys...) //nolint:errcheck
}

// Entries returns the number of cached payloads.
func (rs *RedisStore) Entries() int {
	keys, err := rs.scanKeys(context.Background(), rs.config.KeyNamespace+"/entries/*")
	if err != nil {
		return 0
	}
	return len(keys)
}

// HitReport returns a snapshot of key to hit count, sorted by key.
func (rs *RedisStore) HitReport() []CacheHitReport {
	ctx := context.Background()
	prefix := rs.config.KeyNamespace + "/hits/"
	keys, err := rs.scanKeys(ctx, prefix+"*")
	if err != nil {
		return nil
	}

	report := make([]CacheHitReport, 0, len(keys))
	for _, k := range keys {
		val, err := rs.client.GetWithRetry(ctx, k)
		if err != nil {
			continue
		}
		hits, err := strconv.ParseInt(val, 10, 64)
		if err != nil {
			continue
		}
		report = append(report, CacheHitReport{Key: strings.TrimPrefix(k, prefix), Hits: hits})
	}
	sort.Slice(report, func(i, j int) bool { return report[i].Key < report[j].Key })
	return report
}

// scanKeys collects all keys matching pattern using SCAN.
func (rs *RedisStore) scanKeys(ctx context.Context, pattern string) ([]string, error) {
	client := rs.client.Client()
	if client == nil {
		return nil, errors.New("redis client unavailable")
	}

	var keys []string
	iter := client.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil && err != redis.Nil {
		return nil, fmt.Errorf("failed to scan keys: %w", err)
	}
	return keys, nil
}

// Health performs a health check on the store's Redis connection
func (rs *RedisStore) Health(ctx context.Context) error {
	return rs.client.HealthWithRetry(ctx)
}

// Close closes the store's Redis connection
func (rs *RedisStore) Close() error {
	return rs.client.Close()
}
