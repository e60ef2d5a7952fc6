package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
	sharedcfg "github.com/sweeplabs/dirsweep/internal/config"
)

var configFileUsed string

// Load builds the configuration from defaults, the optional settings file,
// DIRSWEEP_* environment variables, and explicitly set flags, in rising
// precedence. An empty configDir resolves via sharedcfg.Dir.
func Load(configDir string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")
	configFileUsed = ""

	if configDir == "" {
		var err error
		configDir, err = sharedcfg.Dir()
		if err != nil {
			return nil, err
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	// 1. Defaults.
	if err := k.Load(confmap.Provider(map[string]interface{}{
		"root":          home,
		"marker":        DefaultMarker,
		"xattr_name":    "",
		"query_command": DefaultQueryCommand,
		"mark_command":  DefaultMarkCommand,
		"skip_paths":    sharedcfg.DefaultSkipPaths,
		"dry_run":       false,
		"verbose":       false,
		"output":        DefaultOutput,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Optional settings file in the configuration area.
	settingsPath := filepath.Join(configDir, SettingsFileName)
	if _, err := os.Stat(settingsPath); err == nil {
		if err := k.Load(file.Provider(settingsPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading settings file %s: %w", settingsPath, err)
		}
		configFileUsed = settingsPath
	}

	// 3. Environment variables: DIRSWEEP_ROOT -> root, etc.
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags, only those explicitly set.
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

	cfg.ConfigDir = configDir
	cfg.RulesFile = filepath.Join(configDir, sharedcfg.RulesFileName)
	cfg.Root = filepath.Clean(cfg.Root)

	// Skip paths from settings may be relative to the scan root.
	for i, p := range cfg.SkipPaths {
		if !filepath.IsAbs(p) {
			cfg.SkipPaths[i] = filepath.Join(cfg.Root, p)
		}
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// FileUsed returns the settings file loaded by the last Load, if any.
func FileUsed() string {
	return configFileUsed
}
