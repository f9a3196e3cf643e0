package cache

import (
	"sort"
	"sync"
	"time"
)

// Timer is a scoped profiling handle returned by Profiler.Start. A nil
// Timer is a valid no-op handle, so callers on the disabled path pay no
// cost beyond a nil check.
type Timer struct {
	identity string
	start    time.Time
}

// Profiler accumulates wall-clock render cost per component identity.
// Timings nest inclusively: an outer component's elapsed time includes all
// nested renders it triggers.
type Profiler struct {
	mu      sync.Mutex
	entries map[string]*profileTotals
}

type profileTotals struct {
	total time.Duration
	calls int64
}

// NewProfiler creates an empty profiler.
func NewProfiler() *Profiler {
	return &Profiler{entries: make(map[string]*profileTotals)}
}

// Start begins timing one render of the given component identity.
func (p *Profiler) Start(identity string) *Timer {
	return &Timer{identity: identity, start: time.Now()}
}

// Stop accumulates the elapsed time since Start into the identity's entry
// and increments its call count. Stop on a nil Timer is a no-op.
func (p *Profiler) Stop(t *Timer) {
	if t == nil {
		return
	}
	elapsed := time.Since(t.start)
	p.mu.Lock()
	defer p.mu.Unlock()
	entry, ok := p.entries[t.identity]
	if !ok {
		entry = &profileTotals{}
		p.entries[t.identity] = entry
	}
	entry.total += elapsed
	entry.calls++
}

// Clear resets all profile entries.
func (p *Profiler) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.entries = make(map[string]*profileTotals)
}

// Report returns a snapshot of accumulated totals sorted by identity,
// without mutating internal state.
func (p *Profiler) Report() []ProfileEntry {
	p.mu.Lock()
	defer p.mu.Unlock()
	report := make([]ProfileEntry, 0, len(p.entries))
	for identity, entry := range p.entries {
		avg := time.Duration(0)
		if entry.calls > 0 {
			avg = entry.total / time.Duration(entry.calls)
		}
		report = append(report, ProfileEntry{
			Identity: identity,
			Total:    entry.total,
			Calls:    entry.calls,
			Average:  avg,
		})
	}
	sort.Slice(report, func(i, j int) bool { return report[i].Identity < report[j].Identity })
	return report
}
