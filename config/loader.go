package config

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

// LoadConfig loads configuration with priority: CLI flags > Config file > Defaults.
// Validation is left to the caller since each command checks different fields.
func LoadConfig(ctx *cli.Context) (*Config, error) {
	cfg := DefaultConfig()

	configPath := ctx.String(FlagConfig)
	if configPath == "" {
		configPath = FindConfigFile()
	}

	if configPath != "" {
		fileCfg, err := LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		cfg = fileCfg
	}

	cfg.MergeFromFlags(ctx)
	cfg.ImageFormat = normalizeFormat(cfg.ImageFormat)

	return cfg, nil
}
