package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// configName is the config file name without extension.
const configName = ".spdx-guide"

// configType is the config file format.
const configType = "yaml"

// envPrefix is the environment variable prefix, e.g. SPDX_GUIDE_THEME.
const envPrefix = "SPDX_GUIDE"

// flagKeys maps command-line flag names to config keys.
var flagKeys = map[string]string{
	"dir":         "dir",
	"file":        "file",
	"theme":       "theme",
	"lang":        "language",
	"backend":     "backend",
	"line-ending": "line_ending",
	"verbose":     "verbose",
	"dry-run":     "dry_run",
}

// Load resolves the configuration. If configPath is non-empty it must exist;
// otherwise .spdx-guide.yaml is searched in the working directory and $HOME
// and a missing file is not an error. Flags present in flags and explicitly
// set take precedence over everything else.
func Load(configPath string, flags *pflag.FlagSet) (*Config, error) {
	viperCfg := viper.New()

	applyDefaults(viperCfg)

	viperCfg.SetConfigType(configType)
	viperCfg.SetEnvPrefix(envPrefix)
	viperCfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viperCfg.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := viperCfg.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	if configPath != "" {
		viperCfg.SetConfigFile(configPath)
	} else {
		viperCfg.SetConfigName(configName)
		viperCfg.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viperCfg.AddConfigPath(home)
		}
	}

	if err := viperCfg.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := viperCfg.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &cfg, nil
}

func applyDefaults(viperCfg *viper.Viper) {
	viperCfg.SetDefault("dir", DefaultDir)
	viperCfg.SetDefault("file", DefaultFile)
	viperCfg.SetDefault("theme", DefaultTheme)
	viperCfg.SetDefault("language", "")
	viperCfg.SetDefault("backend", DefaultBackend)
	viperCfg.SetDefault("line_ending", DefaultLineEnding)
	viperCfg.SetDefault("verbose", false)
	viperCfg.SetDefault("dry_run", false)
}
