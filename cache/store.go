package cache

import (
	"sort"
	"sync"
)

// Store is the backing store for rendered payloads. Get reports a hit as an
// observable side effect. Put inserts only if the key is absent and returns
// the winning payload, so concurrent misses for the same key resolve to
// first-writer-wins.
type Store interface {
	Get(key string) (payload string, ok bool)
	Put(key, payload string) string
	Clear()
	Entries() int
	HitReport() []CacheHitReport
}

// MemoryStore is the default in-process Store: a mutex-guarded map with
// per-entry hit counts. Entries live until an explicit Clear.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]*memoryEntry
}

type memoryEntry struct {
	payload string
	hits    int64
}

// NewMemoryStore creates an empty in-process store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]*memoryEntry)}
}

// Get returns the payload stored under key and increments its hit count.
func (s *MemoryStore) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[key]
	if !ok {
		return "", false
	}
	entry.hits++
	return entry.payload, true
}

// Put stores payload under key if the key is absent and returns the payload
// now held by the store. A later writer's payload is discarded.
func (s *MemoryStore) Put(key, payload string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.entries[key]; ok {
		return existing.payload
	}
	s.entries[key] = &memoryEntry{payload: payload}
	return payload
}

// Clear removes all entries and resets hit counts.
func (s *MemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]*memoryEntry)
}

// Entries returns the number of cached entries.
func (s *MemoryStore) Entries() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// HitReport returns a snapshot of key to hit count, sorted by key.
func (s *MemoryStore) HitReport() []CacheHitReport {
	s.mu.RLock()
	defer s.mu.RUnlock()
	report := make([]CacheHitReport, 0, len(s.entries))
	for key, entry := range s.entries {
		report = append(report, CacheHitReport{Key: key, Hits: entry.hits})
	}
	sort.Slice(report, func(i, j int) bool { return report[i].Key < report[j].Key })
	return report
}
