package cache

import (
	"time"
)

// Strategy selects how a component's cache key is derived and how its
// cached payload is reused.
type Strategy string

const (
	// StrategySimple keys on a canonical serialization of the full props
	// bag and stores raw markup; a hit requires identical props.
	StrategySimple Strategy = "simple"

	// StrategyTemplate keys on the tokenizable-path shape of the props bag
	// and stores markup with positional placeholders, so one cached render
	// is reusable across different prop values.
	StrategyTemplate Strategy = "template"
)

// KeyFunc derives a custom cache key from a props bag. When set on a
// component config it overrides simple-strategy key derivation; the return
// value is used verbatim and the caller owns collision avoidance.
type KeyFunc func(props map[string]any) string

// HashFunc compacts a composed cache key. It receives the full pre-hash key
// material exactly once per distinct key.
type HashFunc func(composed string) string

// RenderFunc is the delegate invoked on a cache miss to produce markup. It
// must be deterministic for identical props; nested components rendered
// inside it may re-enter the engine.
type RenderFunc func(identity string, props map[string]any) (string, error)

// ComponentConfig configures caching for one component identity.
type ComponentConfig struct {
	Strategy Strategy `json:"strategy" yaml:"strategy"`
	Enable   bool     `json:"enable" yaml:"enable"`

	// GenCacheKey overrides simple-strategy key derivation. Not
	// representable in config files.
	GenCacheKey KeyFunc `json:"-" yaml:"-"`

	// PreserveKeys lists property paths whose literal value must stay in
	// place and contribute to the cache key (values that change markup
	// structure).
	PreserveKeys []string `json:"preserve_keys,omitempty" yaml:"preserveKeys,omitempty"`

	// PreserveEmptyKeys lists paths whose empty-string value is kept
	// literal and keyed.
	PreserveEmptyKeys []string `json:"preserve_empty_keys,omitempty" yaml:"preserveEmptyKeys,omitempty"`

	// IgnoreKeys lists paths excluded from the cache key entirely.
	IgnoreKeys []string `json:"ignore_keys,omitempty" yaml:"ignoreKeys,omitempty"`

	// WhiteListNonStringKeys lists paths whose non-string value may be
	// tokenized anyway. Only leaf paths qualify (numbers, booleans); a
	// nested map or slice path here has no effect because traversal
	// descends into containers before classifying leaves.
	WhiteListNonStringKeys []string `json:"whitelist_non_string_keys,omitempty" yaml:"whiteListNonStringKeys,omitempty"`
}

// Config is the full per-component caching configuration table, replaced
// atomically through Engine.SetCachingConfig.
type Config struct {
	Components map[string]*ComponentConfig `json:"components" yaml:"components"`
}

// CacheHitReport is one row of a store hit report: a derived key and the
// number of hits it has served since the last clear.
type CacheHitReport struct {
	Key  string `json:"key"`
	Hits int64  `json:"hits"`
}

// ProfileEntry is a snapshot of accumulated render cost for one component
// identity.
type ProfileEntry struct {
	Identity string        `json:"identity"`
	Total    time.Duration `json:"total"`
	Calls    int64         `json:"calls"`
	Average  time.Duration `json:"average"`
}
