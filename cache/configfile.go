package cache

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadConfigFile reads a per-component caching configuration from a YAML
// file. The schema mirrors the Config type:
//
//	components:
//	  Hello:
//	    strategy: template
//	    enable: true
//	    preserveKeys: [variant]
//	    ignoreKeys: [sessionId]
//
// The loaded config is not applied; pass it to Engine.SetCachingConfig,
// which validates it.
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read caching config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse caching config file '%s': %w", path, err)
	}

	return &cfg, nil
}
