package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/mock"
)

// MockRedisClient is a mock implementation of the RedisClientInterface for testing
type MockRedisClient struct {
	mock.Mock
}

// NewMockRedisClient creates a new mock Redis client
func NewMockRedisClient() *MockRedisClient {
	return &MockRedisClient{}
}

// Health mocks the Health method
func (m *MockRedisClient) Health(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// HealthWithRetry mocks the HealthWithRetry method
func (m *MockRedisClient) HealthWithRetry(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// GetWithRetry mocks the GetWithRetry method
func (m *MockRedisClient) GetWithRetry(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

// SetWithRetry mocks the SetWithRetry method
func (m *MockRedisClient) SetWithRetry(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	args := m.Called(ctx, key, value, expiration)
	return args.Error(0)
}

// SetNXWithRetry mocks the SetNXWithRetry method
func (m *MockRedisClient) SetNXWithRetry(ctx context.Context, key string, value interface{}, expiration time.Duration) (bool, error) {
	args := m.Called(ctx, key, value, expiration)
	return args.Bool(0), args.Error(1)
}

// DelWithRetry mocks the DelWithRetry method
func (m *MockRedisClient) DelWithRetry(ctx context.Context, keys ...string) error {
	args := m.Called(ctx, keys)
	return args.Error(0)
}

// IncrWithRetry mocks the IncrWithRetry method
func (m *MockRedisClient) IncrWithRetry(ctx context.Context, key string) (int64, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(int64), args.Error(1)
}

// Client mocks the Client method
func (m *MockRedisClient) Client() *redis.Client {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*redis.Client)
}

// Config mocks the Config method
func (m *MockRedisClient) Config() *RedisConfig {
	args := m.Called()
	return args.Get(0).(*RedisConfig)
}

// Close mocks the Close method
func (m *MockRedisClient) Close() error {
	args := m.Called()
	return args.Error(0)
}

// MockRenderer is a render delegate that counts invocations and produces
// markup from a caller-supplied function, for asserting how many times the
// engine delegated past the cache.
type MockRenderer struct {
	Calls int
	Fn    RenderFunc
}

// Render implements the render delegate contract
func (m *MockRenderer) Render(identity string, props map[string]any) (string, error) {
	m.Calls++
	return m.Fn(identity, props)
}

// RecordingHashFunc wraps a HashFunc and records every composed key string
// it receives, for verifying hash invocation behavior.
type RecordingHashFunc struct {
	Inputs []string
	Fn     HashFunc
}

// Hash implements the HashFunc contract
func (r *RecordingHashFunc) Hash(composed string) string {
	r.Inputs = append(r.Inputs, composed)
	if r.Fn != nil {
		return r.Fn(composed)
	}
	return composed
}
