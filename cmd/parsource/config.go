package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/dhamidi/parsource/lang"
	"github.com/dhamidi/parsource/parse"
)

// Config holds the runtime settings of the parse command.
type Config struct {
	Lang      string `koanf:"lang"`
	Lookahead int    `koanf:"lookahead"`
	Offsets   bool   `koanf:"offsets"`
	Format    string `koanf:"format"`
	LangsDir  string `koanf:"langs_dir"`
}

// findConfigFile finds the config file to use.
// Priority: explicit path > parsource.yaml > parsource.yml
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if _, err := os.Stat("parsource.yaml"); err == nil {
		return "parsource.yaml"
	}
	if _, err := os.Stat("parsource.yml"); err == nil {
		return "parsource.yml"
	}
	return ""
}

// loadConfig loads configuration from file, environment variables, and
// flags. Precedence (highest to lowest): flags > env vars > config file >
// defaults. Any langs_dir is loaded into the language registry before the
// config is returned.
func loadConfig(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(map[string]interface{}{
		"lang":      "js",
		"lookahead": parse.DefaultLookahead,
		"offsets":   true,
		"format":    "tree",
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configFile := findConfigFile(cfgFile); configFile != "" {
		if err := k.Load(file.Provider(configFile), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", configFile, err)
		}
	}

	// PARSOURCE_LANGS_DIR -> langs_dir
	if err := k.Load(env.Provider("PARSOURCE_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "PARSOURCE_"))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			key := strings.ReplaceAll(f.Name, "-", "_")
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if cfg.LangsDir != "" {
		if err := lang.LoadDir(cfg.LangsDir); err != nil {
			return nil, err
		}
	}

	return &cfg, nil
}
