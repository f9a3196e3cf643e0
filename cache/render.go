package cache

import (
	"fmt"
	"strings"
	"sync"

	"github.com/apex/log"

	"github.com/kengibson1111/go-ssr-render-cache/internal"
)

// Engine is the render interceptor and the owner of all caching state: the
// per-component configuration table, global toggles, the payload store and
// the profiler. The host integration layer creates one Engine, configures
// it once, and wraps every component render call through Render.
//
// Configuration mutation (SetCachingConfig, toggles, ClearCache) is expected
// at configuration time, not concurrently with in-flight renders.
type Engine struct {
	mu         sync.RWMutex
	components map[string]*componentRules

	caching          bool
	profiling        bool
	debug            bool
	stripURLProtocol bool
	hashKeys         bool
	hashFn           HashFunc
	hashMemo         map[string]string

	store    Store
	profiler *Profiler
}

// NewEngine creates a render cache engine backed by the given store. A nil
// store selects a fresh MemoryStore. All toggles start disabled.
func NewEngine(store Store) *Engine {
	if store == nil {
		store = NewMemoryStore()
	}
	return &Engine{
		components: make(map[string]*componentRules),
		hashFn:     internal.DefaultHashKey,
		hashMemo:   make(map[string]string),
		store:      store,
		profiler:   NewProfiler(),
	}
}

// renderFlags is a read-only snapshot of the engine's global toggles taken
// once per render call.
type renderFlags struct {
	caching  bool
	debug    bool
	stripURL bool
	hashKeys bool
	hashFn   HashFunc
}

// Render is the per-render entry point. It profiles the call when profiling
// is enabled, probes the cache when the component has an enabled config,
// and otherwise delegates straight to render. Nested components rendered
// inside the delegate re-enter Render; their timings nest inclusively.
//
// Cache-layer failures never prevent rendering: template tokenization or
// shape mismatches degrade to a full uncached render. The only cache errors
// surfaced to the caller are simple-strategy key derivation failures on
// unserializable props.
func (e *Engine) Render(identity string, props map[string]any, render RenderFunc) (string, error) {
	if render == nil {
		return "", internal.NewValidationError("render delegate cannot be nil", nil)
	}

	e.mu.RLock()
	profiling := e.profiling
	rules := e.components[identity]
	flags := renderFlags{
		caching:  e.caching,
		debug:    e.debug,
		stripURL: e.stripURLProtocol,
		hashKeys: e.hashKeys,
		hashFn:   e.hashFn,
	}
	e.mu.RUnlock()

	if profiling {
		timer := e.profiler.Start(identity)
		defer e.profiler.Stop(timer)
	}

	if !flags.caching || rules == nil || !rules.cfg.Enable {
		return render(identity, props)
	}

	switch rules.cfg.Strategy {
	case StrategyTemplate:
		return e.renderTemplate(identity, props, render, rules, flags)
	default:
		return e.renderSimple(identity, props, render, rules, flags)
	}
}

// renderSimple caches raw markup under a canonical serialization of the
// full props bag.
func (e *Engine) renderSimple(identity string, props map[string]any, render RenderFunc, rules *componentRules, flags renderFlags) (string, error) {
	var key string
	if rules.cfg.GenCacheKey != nil {
		key = rules.cfg.GenCacheKey(props)
	} else {
		derived, err := internal.SimpleKey(identity, props)
		if err != nil {
			return "", err
		}
		key = e.hashKey(derived, flags)
	}

	if payload, ok := e.store.Get(key); ok {
		e.debugLog(flags, identity, key, "cache hit")
		return payload, nil
	}

	out, err := render(identity, props)
	if err != nil {
		return "", err
	}
	e.store.Put(key, out)
	e.debugLog(flags, identity, key, "cache miss stored")
	return out, nil
}

// renderTemplate caches tokenized markup keyed by the props bag's
// tokenizable-path shape and preserved literals, then substitutes the
// current values back in on every call.
func (e *Engine) renderTemplate(identity string, props map[string]any, render RenderFunc, rules *componentRules, flags renderFlags) (string, error) {
	tok, err := internal.Tokenize(identity, props, rules.opts)
	if err != nil {
		// Unsafe to template (unserializable literal, placeholder-like
		// value). Render uncached.
		e.debugLog(flags, identity, "", fmt.Sprintf("tokenization refused, rendering uncached: %v", err))
		return render(identity, props)
	}

	key := e.hashKey(tok.KeySource, flags)

	if payload, ok := e.store.Get(key); ok {
		out, applyErr := tok.Apply(payload, flags.stripURL)
		if applyErr == nil {
			e.debugLog(flags, identity, key, "cache hit")
			return out, nil
		}
		e.debugLog(flags, identity, key, fmt.Sprintf("template mismatch, rendering uncached: %v", applyErr))
		return render(identity, props)
	}

	rendered, err := render(identity, tok.Props)
	if err != nil {
		return "", err
	}

	payload := e.store.Put(key, internal.ScrubMarkup(rendered))
	e.debugLog(flags, identity, key, "cache miss stored")

	out, applyErr := tok.Apply(payload, flags.stripURL)
	if applyErr != nil {
		// The winning payload came from a different shape. Should not
		// happen with a well-behaved store; degrade to a full render.
		e.debugLog(flags, identity, key, fmt.Sprintf("template mismatch on stored payload: %v", applyErr))
		return render(identity, props)
	}
	return out, nil
}

// hashKey compacts a composed key when hashing is enabled. Hashed keys are
// memoized so a hash function observes each distinct composed key exactly
// once.
func (e *Engine) hashKey(composed string, flags renderFlags) string {
	if !flags.hashKeys {
		return composed
	}
	e.mu.RLock()
	hashed, ok := e.hashMemo[composed]
	e.mu.RUnlock()
	if ok {
		return hashed
	}
	hashed = flags.hashFn(composed)
	e.mu.Lock()
	e.hashMemo[composed] = hashed
	e.mu.Unlock()
	return hashed
}

func (e *Engine) debugLog(flags renderFlags, identity, key, msg string) {
	if !flags.debug {
		return
	}
	log.WithFields(log.Fields{
		"component": identity,
		"key":       key,
	}).Info(msg)
}

// DebugReport returns a formatted snapshot of cache hit counts and profile
// data for tuning which components should be cached.
func (e *Engine) DebugReport() string {
	var sb strings.Builder
	sb.WriteString("cache entries:\n")
	for _, row := range e.store.HitReport() {
		fmt.Fprintf(&sb, "  %s hits=%d\n", row.Key, row.Hits)
	}
	profile := e.profiler.Report()
	if len(profile) > 0 {
		sb.WriteString("profile:\n")
		for _, entry := range profile {
			fmt.Fprintf(&sb, "  %s calls=%d total=%v avg=%v\n",
				entry.Identity, entry.Calls, entry.Total, entry.Average)
		}
	}
	return sb.String()
}
