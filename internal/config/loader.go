package config

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// defaultConfigPath is tried when CONFIG_PATH is unset.
const defaultConfigPath = "./config.yaml"

// Load reads the demo configuration. Values come from ENV, then the YAML
// file, then env-default tags. The file is CONFIG_PATH when set (it must then
// exist) or ./config.yaml when present; a container with neither runs on ENV
// and defaults alone. The result has passed Validate, so Datasets.Names is
// populated.
func Load() (*Config, error) {
	var cfg Config

	path := os.Getenv("CONFIG_PATH")
	explicitPath := path != ""
	if !explicitPath {
		path = defaultConfigPath
	}

	_, statErr := os.Stat(path)
	switch {
	case statErr == nil:
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	case explicitPath:
		return nil, fmt.Errorf("config: CONFIG_PATH %s: %w", path, statErr)
	default:
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config: no %s, read env: %w", defaultConfigPath, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}

	return &cfg, nil
}
