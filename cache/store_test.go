package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreGetMiss(t *testing.T) {
	store := NewMemoryStore()

	payload, ok := store.Get("absent")
	assert.False(t, ok)
	assert.Empty(t, payload)
	assert.Equal(t, 0, store.Entries())
}

func TestMemoryStorePutAndGet(t *testing.T) {
	store := NewMemoryStore()

	stored := store.Put("k1", "<div>x</div>")
	assert.Equal(t, "<div>x</div>", stored)
	assert.Equal(t, 1, store.Entries())

	payload, ok := store.Get("k1")
	require.True(t, ok)
	assert.Equal(t, "<div>x</div>", payload)
}

func TestMemoryStoreFirstWriterWins(t *testing.T) {
	store := NewMemoryStore()

	first := store.Put("k1", "first")
	second := store.Put("k1", "second")

	assert.Equal(t, "first", first)
	assert.Equal(t, "first", second, "later writer's payload must be discarded")
	assert.Equal(t, 1, store.Entries())

	payload, ok := store.Get("k1")
	require.True(t, ok)
	assert.Equal(t, "first", payload)
}

func TestMemoryStoreHitAccounting(t *testing.T) {
	store := NewMemoryStore()
	store.Put("k1", "x")
	store.Put("k2", "y")

	for i := 0; i < 3; i++ {
		_, ok := store.Get("k1")
		require.True(t, ok)
	}
	_, ok := store.Get("k2")
	require.True(t, ok)

	report := store.HitReport()
	require.Len(t, report, 2)
	assert.Equal(t, CacheHitReport{Key: "k1", Hits: 3}, report[0])
	assert.Equal(t, CacheHitReport{Key: "k2", Hits: 1}, report[1])
}

func TestMemoryStoreClear(t *testing.T) {
	store := NewMemoryStore()
	store.Put("k1", "x")
	store.Get("k1")

	store.Clear()

	assert.Equal(t, 0, store.Entries())
	assert.Empty(t, store.HitReport())

	_, ok := store.Get("k1")
	assert.False(t, ok)
}
