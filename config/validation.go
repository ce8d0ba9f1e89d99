package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validate checks structural constraints on the merged configuration and
// enforces that connection names are unique, since they key every API call.
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return err
	}

	seen := make(map[string]struct{}, len(cfg.Connections))
	for _, c := range cfg.Connections {
		if _, dup := seen[c.Name]; dup {
			return fmt.Errorf("duplicate connection name %q", c.Name)
		}
		seen[c.Name] = struct{}{}
	}
	return nil
}
