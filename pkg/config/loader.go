package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// configName is the config file name without extension.
const configName = ".corpusync"

// configType is the config file format.
const configType = "yaml"

// envPrefix is the environment variable prefix for corpusync settings.
const envPrefix = "CORPUSYNC"

// envKeySeparator is the nested key separator in environment variable names.
const envKeySeparator = "_"

// Default configuration values, matching the typst upstream layout and the
// tree-sitter corpus conventions.
const (
	DefaultFixtureDir    = "tests/typ"
	DefaultFixtureExt    = ".typ"
	DefaultSeparator     = "---"
	DefaultCommentPrefix = "//"
	DefaultCorpusDirName = "corpus/official"
	DefaultEntryPrefix   = "test"
	DefaultEntryExt      = ".scm"
	DefaultLogLevel      = "info"
)

// Load loads configuration from file, env vars, and defaults.
// If configPath is non-empty, it is used as the explicit config file path.
// Otherwise, the config file is searched in CWD and $HOME.
// Missing config file is not an error; defaults are used.
func Load(configPath string) (*Config, error) {
	viperCfg := viper.New()

	applyDefaults(viperCfg)

	viperCfg.SetConfigType(configType)
	viperCfg.SetEnvPrefix(envPrefix)
	viperCfg.SetEnvKeyReplacer(strings.NewReplacer(".", envKeySeparator))
	viperCfg.AutomaticEnv()

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

	readErr := viperCfg.ReadInConfig()
	if readErr != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(readErr, &notFound) {
			return nil, fmt.Errorf("read config: %w", readErr)
		}
	}

	var cfg Config

	unmarshalErr := viperCfg.Unmarshal(&cfg)
	if unmarshalErr != nil {
		return nil, fmt.Errorf("unmarshal config: %w", unmarshalErr)
	}

	validateErr := cfg.Validate()
	if validateErr != nil {
		return nil, fmt.Errorf("validate config: %w", validateErr)
	}

	return &cfg, nil
}

func applyDefaults(viperCfg *viper.Viper) {
	viperCfg.SetDefault("upstream.fixture_dir", DefaultFixtureDir)
	viperCfg.SetDefault("upstream.fixture_ext", DefaultFixtureExt)
	viperCfg.SetDefault("segment.separator", DefaultSeparator)
	viperCfg.SetDefault("segment.comment_prefix", DefaultCommentPrefix)
	viperCfg.SetDefault("corpus.dir_name", DefaultCorpusDirName)
	viperCfg.SetDefault("corpus.entry_prefix", DefaultEntryPrefix)
	viperCfg.SetDefault("corpus.entry_ext", DefaultEntryExt)
	viperCfg.SetDefault("logging.level", DefaultLogLevel)
}
