package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"github.com/wscrape/wscrape/internal/errors"
)

const (
	// ConfigFileName is the default config file name.
	ConfigFileName = ".wscrape.yaml"
	// GlobalConfigDir is the directory for global config.
	GlobalConfigDir = ".config/wscrape"
	// GlobalConfigFile is the global config file name.
	GlobalConfigFile = "config.yaml"
	// EnvPrefix is the prefix for environment variable overrides
	// (e.g. WSCRAPE_REMOTE_HOST overrides remote.host).
	EnvPrefix = "WSCRAPE"
)

// Load reads config from the specified path.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	bindEnv(v)

	if err := v.ReadInConfig(); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.WrapWithCode(err, errors.ErrConfig,
				"Config file not found",
				"Run 'wscrape init' to create a config file, or specify one with --config")
		}
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to read config file",
			"Check the file exists and is valid YAML")
	}

	return parseConfig(v)
}

// Find locates the config file using the search order:
// 1. Explicit path (from --config flag)
// 2. .wscrape.yaml in current directory
// 3. ~/.config/wscrape/config.yaml (global defaults)
//
// Returns the path to the config file, or an error if none exists.
func Find(explicit string) (string, error) {
	// 1. Explicit path takes precedence
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			if os.IsNotExist(err) {
				return "", errors.WrapWithCode(err, errors.ErrConfig,
					"Specified config file not found: "+explicit,
					"Check the path is correct")
			}
			return "", errors.WrapWithCode(err, errors.ErrConfig,
				"Cannot access config file: "+explicit,
				"Check file permissions")
		}
		return explicit, nil
	}

	// 2. Current directory
	cwd, err := os.Getwd()
	if err != nil {
		return "", errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot determine current directory",
			"Check directory permissions")
	}

	localConfig := filepath.Join(cwd, ConfigFileName)
	if _, err := os.Stat(localConfig); err == nil {
		return localConfig, nil
	}

	// 3. Global config
	home, err := os.UserHomeDir()
	if err == nil {
		globalConfig := filepath.Join(home, GlobalConfigDir, GlobalConfigFile)
		if _, err := os.Stat(globalConfig); err == nil {
			return globalConfig, nil
		}
	}

	return "", errors.New(errors.ErrConfig,
		"No config file found",
		"Run 'wscrape init' to create one")
}

// bindEnv wires WSCRAPE_* environment variables as overrides for config keys.
func bindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Explicit binds so env-only keys survive Unmarshal.
	for _, key := range []string{
		"store.dsn",
		"store.credentials",
		"remote.host",
		"remote.credentials",
		"capture.interval_ms",
	} {
		_ = v.BindEnv(key)
	}
}

// parseConfig unmarshals and validates the loaded configuration.
func parseConfig(v *viper.Viper) (*Config, error) {
	v.SetDefault("capture.interval_ms", DefaultIntervalMS)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Invalid config file structure",
			"Check the YAML matches the documented keys")
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks that all required fields are present and sane.
func Validate(cfg *Config) error {
	if cfg.Store.DSN == "" {
		return errors.New(errors.ErrConfig,
			"Missing store.dsn in config",
			"Set store.dsn to the store connection string")
	}
	if cfg.Store.Credentials == "" {
		return errors.New(errors.ErrConfig,
			"Missing store.credentials in config",
			"Set store.credentials to the path of the store credential JSON file")
	}
	if cfg.Remote.Host == "" {
		return errors.New(errors.ErrConfig,
			"Missing remote.host in config",
			"Set remote.host to the remote hostname or SSH alias")
	}
	if cfg.Remote.Credentials == "" {
		return errors.New(errors.ErrConfig,
			"Missing remote.credentials in config",
			"Set remote.credentials to the path of the remote credential JSON file")
	}
	if cfg.Capture.IntervalMS < 0 {
		return errors.New(errors.ErrConfig,
			"capture.interval_ms must be positive",
			"Use a value in milliseconds, e.g. 10000 for ten seconds")
	}
	return nil
}
