// Package config loads and validates service configuration from defaults,
// an optional YAML file, and environment variables, in ascending priority.
package config

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	envprovider "github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "DBSTUDIO_"

// Load reads configuration from defaults, then the YAML file at path (when
// path is empty, "config.yaml" is tried and silently skipped if absent),
// then DBSTUDIO_* environment variables. The merged result is validated
// before being returned.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	candidate := path
	if candidate == "" {
		candidate = "config.yaml"
	}
	if err := k.Load(file.Provider(candidate), yaml.Parser()); err != nil && path != "" {
		// An explicitly requested file must exist; the default one is optional.
		return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
	}

	// DBSTUDIO_SERVER_PORT=9000 becomes server.port.
	if err := k.Load(envprovider.Provider(envPrefix, ".", func(s string) string {
		key := strings.TrimPrefix(s, envPrefix)
		return strings.ReplaceAll(strings.ToLower(key), "_", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func defaults() map[string]any {
	return map[string]any{
		"server.host":             "127.0.0.1",
		"server.port":             8080,
		"server.read_timeout":     "15s",
		"server.write_timeout":    "30s",
		"server.shutdown_timeout": "10s",
		"server.max_result_rows":  500,

		"log.level":  "info",
		"log.pretty": false,

		"storage.dir": ".database-studio",
	}
}
