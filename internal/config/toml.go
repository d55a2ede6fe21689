package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// LoadFile decodes a TOML file over cfg. Keys absent from the file keep
// their current values. A missing file is not an error.
func LoadFile(path string, cfg *Config) error {
	if path == "" {
		return fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to stat config: %w", err)
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to decode config: %w", err)
	}
	return nil
}
