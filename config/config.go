package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/leagueops/rosterd/core/balance"
	"github.com/leagueops/rosterd/core/metrics"
)

// Config is the full service configuration.
type Config struct {
	Engine  balance.Config `json:"engine"`
	Metrics metrics.Config `json:"metrics"`
	Output  OutputConfig   `json:"output"`
}

// Load reads the configuration file at path, applies RD_-prefixed
// environment overrides, defaults and validation.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	// Optional environment overrides, e.g. RD_OUTPUT__FORMAT=csv.
	if err := k.Load(env.Provider("RD_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "rd_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.Engine.SetDefaults()
	cfg.Metrics.SetDefaults()
	cfg.Output.SetDefaults()
	if err := cfg.Engine.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Output.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns a configuration with every default applied, for callers
// running without a config file.
func Default() *Config {
	cfg := &Config{}
	cfg.Engine.SetDefaults()
	cfg.Metrics.SetDefaults()
	cfg.Output.SetDefaults()
	return cfg
}
