package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestRedisStore() (*RedisStore, *MockRedisClient) {
	client := NewMockRedisClient()
	return NewRedisStoreWithDependencies(client, DefaultRedisConfig()), client
}

func TestNewRedisStoreInvalidConfig(t *testing.T) {
	config := DefaultRedisConfig()
	config.KeyNamespace = "no-leading-slash"

	store, err := NewRedisStore(config)
	require.Error(t, err)
	assert.Nil(t, store)
}

func TestRedisStoreGetHit(t *testing.T) {
	store, client := newTestRedisStore()

	client.On("GetWithRetry", mock.Anything, "/ssr/entries/k1").Return("<div>@0@</div>", nil)
	client.On("IncrWithRetry", mock.Anything, "/ssr/hits/k1").Return(int64(1), nil)

	payload, ok := store.Get("k1")
	require.True(t, ok)
	assert.Equal(t, "<div>@0@</div>", payload)
	client.AssertExpectations(t)
}

func TestRedisStoreGetMissOnError(t *testing.T) {
	store, client := newTestRedisStore()

	client.On("GetWithRetry", mock.Anything, "/ssr/entries/k1").
		Return("", errors.New("connection refused"))

	payload, ok := store.Get("k1")
	assert.False(t, ok, "store errors must read as cache misses")
	assert.Empty(t, payload)
	client.AssertNotCalled(t, "IncrWithRetry", mock.Anything, mock.Anything)
}

func TestRedisStoreGetHitSurvivesIncrFailure(t *testing.T) {
	store, client := newTestRedisStore()

	client.On("GetWithRetry", mock.Anything, "/ssr/entries/k1").Return("payload", nil)
	client.On("IncrWithRetry", mock.Anything, "/ssr/hits/k1").
		Return(int64(0), errors.New("connection refused"))

	payload, ok := store.Get("k1")
	require.True(t, ok, "hit accounting is best effort")
	assert.Equal(t, "payload", payload)
}

func TestRedisStorePutWinner(t *testing.T) {
	store, client := newTestRedisStore()

	client.On("SetNXWithRetry", mock.Anything, "/ssr/entries/k1", "mine", 24*time.Hour).
		Return(true, nil)

	stored := store.Put("k1", "mine")
	assert.Equal(t, "mine", stored)
	client.AssertNotCalled(t, "GetWithRetry", mock.Anything, mock.Anything)
}

func TestRedisStorePutLoserFetchesWinner(t *testing.T) {
	store, client := newTestRedisStore()

	client.On("SetNXWithRetry", mock.Anything, "/ssr/entries/k1", "mine", 24*time.Hour).
		Return(false, nil)
	client.On("GetWithRetry", mock.Anything, "/ssr/entries/k1").Return("theirs", nil)

	stored := store.Put("k1", "mine")
	assert.Equal(t, "theirs", stored, "first writer wins across processes")
	client.AssertExpectations(t)
}

func TestRedisStorePutFallsBackOnError(t *testing.T) {
	tests := []struct {
		name  string
		setup func(*MockRedisClient)
	}{
		{
			name: "setnx fails",
			setup: func(client *MockRedisClient) {
				client.On("SetNXWithRetry", mock.Anything, "/ssr/entries/k1", "mine", 24*time.Hour).
					Return(false, errors.New("connection refused"))
			},
		},
		{
			name: "winner fetch fails",
			setup: func(client *MockRedisClient) {
				client.On("SetNXWithRetry", mock.Anything, "/ssr/entries/k1", "mine", 24*time.Hour).
					Return(false, nil)
				client.On("GetWithRetry", mock.Anything, "/ssr/entries/k1").
					Return("", errors.New("connection refused"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, client := newTestRedisStore()
			tt.setup(client)

			// The caller's own payload is always a usable result.
			assert.Equal(t, "mine", store.Put("k1", "mine"))
		})
	}
}

func TestRedisStoreScanDependentsWithoutClient(t *testing.T) {
	store, client := newTestRedisStore()

	// A mock without a live *redis.Client cannot SCAN; the scan-backed
	// surfaces must degrade to empty results instead of failing.
	client.On("Client").Return(nil)

	assert.Equal(t, 0, store.Entries())
	assert.Empty(t, store.HitReport())
	store.Clear()
	client.AssertNotCalled(t, "DelWithRetry", mock.Anything, mock.Anything)
}

func TestRedisStoreHealth(t *testing.T) {
	store, client := newTestRedisStore()
	client.On("HealthWithRetry", mock.Anything).Return(nil)

	assert.NoError(t, store.Health(context.Background()))
	client.AssertExpectations(t)
}

func TestRedisStoreClose(t *testing.T) {
	store, client := newTestRedisStore()
	client.On("Close").Return(nil)

	assert.NoError(t, store.Close())
	client.AssertExpectations(t)
}
