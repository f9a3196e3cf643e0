package cache

import (
	"fmt"

	"github.com/kengibson1111/go-ssr-render-cache/internal"
)

// componentRules is a validated, pre-compiled per-component configuration.
type componentRules struct {
	cfg  *ComponentConfig
	opts internal.TemplateOptions
}

// SetCachingConfig replaces the full per-component configuration table
// atomically. The incoming config is validated first; any malformed entry
// rejects the whole call with a CONFIG error and the previous table stays
// in effect.
func (e *Engine) SetCachingConfig(cfg *Config) error {
	if cfg == nil {
		return internal.NewConfigError("caching config cannot be nil", nil)
	}

	compiled := make(map[string]*componentRules, len(cfg.Components))
	for identity, cc := range cfg.Components {
		if identity == "" {
			return internal.NewConfigError("component identity cannot be empty", nil)
		}
		if cc == nil {
			return internal.NewConfigError(
				fmt.Sprintf("config for component '%s' cannot be nil", identity), nil)
		}
		switch cc.Strategy {
		case StrategySimple, StrategyTemplate:
		default:
			return internal.NewConfigError(
				fmt.Sprintf("unknown strategy '%s' for component '%s'", cc.Strategy, identity), nil)
		}
		compiled[identity] = &componentRules{
			cfg: cc,
			opts: internal.NewTemplateOptions(
				cc.PreserveKeys, cc.PreserveEmptyKeys, cc.IgnoreKeys, cc.WhiteListNonStringKeys),
		}
	}

	e.mu.Lock()
	e.components = compiled
	e.mu.Unlock()
	return nil
}

// ConfigFor returns the configuration for a component identity and whether
// caching is enabled for it. Identities are never auto-created.
func (e *Engine) ConfigFor(identity string) (*ComponentConfig, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	rules, ok := e.components[identity]
	if !ok {
		return nil, false
	}
	return rules.cfg, rules.cfg.Enable
}

// EnableCaching toggles the cache globally. Disabled by default; takes
// effect on the next render call.
func (e *Engine) EnableCaching(flag bool) {
	e.mu.Lock()
	e.caching = flag
	e.mu.Unlock()
}

// EnableProfiling toggles render profiling globally. Disabled by default.
func (e *Engine) EnableProfiling(flag bool) {
	e.mu.Lock()
	e.profiling = flag
	e.mu.Unlock()
}

// EnableCachingDebug toggles debug logging of cache activity and hit
// reporting. Disabled by default.
func (e *Engine) EnableCachingDebug(flag bool) {
	e.mu.Lock()
	e.debug = flag
	e.mu.Unlock()
}

// StripUrlProtocol toggles making tokenized URL values protocol-relative in
// cached payloads. Disabled by default.
func (e *Engine) StripUrlProtocol(flag bool) {
	e.mu.Lock()
	e.stripURLProtocol = flag
	e.mu.Unlock()
}

// ShouldHashKeys toggles hashing of composed cache keys. A nil hashFn
// selects the default xxhash64 key hash. Disabled by default; has no
// retroactive effect on already-cached entries.
func (e *Engine) ShouldHashKeys(flag bool, hashFn HashFunc) {
	e.mu.Lock()
	e.hashKeys = flag
	if hashFn != nil {
		e.hashFn = hashFn
	} else {
		e.hashFn = internal.DefaultHashKey
	}
	// A new hash function invalidates memoized hashes.
	e.hashMemo = make(map[string]string)
	e.mu.Unlock()
}

// ClearCache removes all cached entries and resets hit counts.
func (e *Engine) ClearCache() {
	e.store.Clear()
}

// CacheEntries returns the number of cached entries.
func (e *Engine) CacheEntries() int {
	return e.store.Entries()
}

// CacheHitReport returns a snapshot of key to hit count for offline
// inspection.
func (e *Engine) CacheHitReport() []CacheHitReport {
	return e.store.HitReport()
}

// ClearProfileData resets all profile entries.
func (e *Engine) ClearProfileData() {
	e.profiler.Clear()
}

// ProfileData returns a read-only snapshot of accumulated render timings.
func (e *Engine) ProfileData() []ProfileEntry {
	return e.profiler.Report()
}
