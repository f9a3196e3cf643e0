// Package cache provides a caching and profiling engine for server-side
// rendering of component trees.
//
// This package implements a render-time caching layer that supports:
//   - Per-component render cost profiling with clearable reports
//   - Simple-strategy caching keyed on a canonical serialization of props
//   - Template-strategy caching that tokenizes variable string content into
//     positional placeholders, so one cached render is reusable across
//     different prop values
//   - Per-component configuration with preserve/ignore/whitelist path rules
//   - Pluggable cache stores: in-process memory store and a shared
//     Redis-backed store
//   - Comprehensive error handling with typed errors and uncached-render
//     fallback
//
// # Architecture
//
// The host rendering pipeline wraps every component render call through the
// Engine:
//
//	render interceptor -> key strategy -> store probe
//	    hit:  detokenize the stored template with the current props
//	    miss: delegate to the renderer, scrub, store, detokenize
//
// A cache key is a pure function of the component identity, the configured
// strategy, the cache-relevant subset of props, and the global key-shape
// toggles. For the template strategy only the tokenizable-path shape and the
// preserved literal values contribute to the key, so calls that differ only
// in tokenized string values hit the same entry.
//
// # Basic Usage
//
// Create an engine, configure components, and wrap render calls:
//
//	engine := cache.NewEngine(nil) // in-process memory store
//	engine.EnableCaching(true)
//
//	err := engine.SetCachingConfig(&cache.Config{
//	    Components: map[string]*cache.ComponentConfig{
//	        "Hello": {Strategy: cache.StrategyTemplate, Enable: true},
//	    },
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	markup, err := engine.Render("Hello", props, renderComponent)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// The delegate is invoked exactly once per cache miss and must be
// deterministic for identical props. Nested components rendered inside the
// delegate may re-enter Render; the store and profiler tolerate nested
// synchronous calls.
//
// # Template Strategy
//
// Tokenization replaces every non-empty string leaf of the props bag with a
// positional placeholder "@N@", assigned in a deterministic canonical
// traversal (sorted map keys, slice index order). The renderer produces
// markup containing the placeholders literally; that markup is stored and
// replayed by substituting the current call's values back in. Path rules
// refine the classification:
//
//	PreserveKeys:           literal stays in place and is keyed (values
//	                        that switch markup structure)
//	PreserveEmptyKeys:      empty strings at these paths are kept and keyed
//	IgnoreKeys:             excluded from the key entirely
//	WhiteListNonStringKeys: non-string values tokenized anyway
//
// # Profiling
//
// Profiling accumulates wall-clock time and call counts per component:
//
//	engine.EnableProfiling(true)
//	// ... render ...
//	for _, entry := range engine.ProfileData() {
//	    fmt.Printf("%s calls=%d total=%v avg=%v\n",
//	        entry.Identity, entry.Calls, entry.Total, entry.Average)
//	}
//	engine.ClearProfileData()
//
// # Shared Redis Store
//
// Multiple render processes can share one template cache:
//
//	config := cache.DefaultRedisConfig()
//	config.RedisAddr = "localhost:6379"
//
//	store, err := cache.NewRedisStore(config)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer store.Close()
//
//	engine := cache.NewEngine(store)
//
// Redis availability failures degrade to cache misses; a render is never
// blocked by an unreachable store.
//
// # Error Handling
//
// The package provides typed errors with predicate helpers:
//
//	_, err := engine.Render("Profile", props, renderComponent)
//	if err != nil {
//	    switch {
//	    case cache.IsKeyDerivationError(err):
//	        // simple strategy, unserializable props, no custom key fn
//	    default:
//	        // renderer error
//	    }
//	}
//
// Template-strategy failures (tokenization refusal, shape mismatch against a
// stored template) are never surfaced: the engine falls back to a full
// uncached render. Config errors reject the entire SetCachingConfig call
// atomically.
//
// # API Separation
//
// Public API (cache package): Engine, Store implementations, Profiler,
// configuration types, error types and predicates.
//
// Internal API (internal package): key strategies, canonical props
// traversal, tokenization, markup scrubbing, and the low-level Redis client
// wrapper. The internal package may change without notice.
//
// # Examples
//
// See the examples directory for complete usage examples:
//   - examples/template_cache_example/ - template strategy caching
//   - examples/profiling_example/ - render profiling and reports
//
// # Dependencies
//
// The package depends on:
//   - github.com/redis/go-redis/v9 - Redis client library
//   - github.com/cespare/xxhash/v2 - default cache key hash
//   - github.com/apex/log - debug-mode cache logging
//   - gopkg.in/yaml.v3 - config file loading
package cache
