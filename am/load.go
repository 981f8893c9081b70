package am

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/teranos/shapeshare/errors"
)

var globalConfig *Config
var viperInstance *viper.Viper
var configFileUsed string
var mergedFiles []string

// Load reads the configuration from every source, caching the result.
func Load() (*Config, error) {
	if globalConfig != nil {
		return globalConfig, nil
	}

	v := initViper()
	config, err := LoadWithViper(v)
	if err != nil {
		return nil, err
	}
	applyMappings(config, mergedFiles)

	globalConfig = config
	return globalConfig, nil
}

// GetViper returns the Viper instance for advanced configuration access
func GetViper() *viper.Viper {
	return initViper()
}

// LoadWithViper loads configuration using a provided Viper instance
func LoadWithViper(v *viper.Viper) (*Config, error) {
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	return &config, nil
}

// LoadFromFile loads defaults plus a single config file, ignoring the
// user file, the project search and the environment.
func LoadFromFile(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("toml")
	SetDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "failed to read config file %s", configPath)
	}

	config, err := LoadWithViper(v)
	if err != nil {
		return nil, errors.Wrapf(err, "config %s", configPath)
	}
	applyMappings(config, []string{configPath})
	return config, nil
}

// Reset clears the cached configuration (useful for testing)
func Reset() {
	globalConfig = nil
	viperInstance = nil
	configFileUsed = ""
	mergedFiles = nil
	ConfigSources = make(map[string]SourceInfo)
}

func initViper() *viper.Viper {
	if viperInstance != nil {
		return viperInstance
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	SetDefaults(v)
	mergeConfigFiles(v)

	viperInstance = v
	return v
}

// UserConfigPath returns ~/.shapeshare/shapeshare.toml, or "" without a home directory.
func UserConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".shapeshare", ConfigFileName)
}

// FindProjectConfig walks up from the working directory looking for
// shapeshare.toml. It returns "" when none is found.
func FindProjectConfig() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		path := filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(path); err == nil {
			return path
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}

// mergeConfigFiles merges the user then the project file, recording which
// file each key came from.
func mergeConfigFiles(v *viper.Viper) {
	sources := []struct {
		path   string
		source ConfigSource
	}{
		{UserConfigPath(), SourceUser},
		{FindProjectConfig(), SourceProject},
	}

	for _, s := range sources {
		if s.path == "" {
			continue
		}
		if _, err := os.Stat(s.path); err != nil {
			continue
		}

		fileViper := viper.New()
		fileViper.SetConfigFile(s.path)
		fileViper.SetConfigType("toml")
		if err := fileViper.ReadInConfig(); err != nil {
			continue
		}

		// MergeConfigMap keeps environment variables above file values
		if err := v.MergeConfigMap(fileViper.AllSettings()); err != nil {
			continue
		}
		for _, key := range fileViper.AllKeys() {
			ConfigSources[key] = SourceInfo{Source: s.source, Path: s.path}
		}
		configFileUsed = s.path
		mergedFiles = append(mergedFiles, s.path)
	}
}
