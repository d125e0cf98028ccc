// pkg/core/config.go
package core

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	// EnvPrefix is the prefix for environment overrides, e.g. PKGX_MANAGER
	EnvPrefix = "PKGX"

	// DefaultIndexURL is the git repository holding the deps/ alias tree
	DefaultIndexURL = "https://github.com/arc-language/upkg"

	// DefaultIndexBranch is the branch cloned by sync
	DefaultIndexBranch = "main"
)

// Config holds pkgx configuration
type Config struct {
	Manager   string      `yaml:"manager" mapstructure:"manager"`
	DryRun    bool        `yaml:"dry_run" mapstructure:"dry_run"`
	Quiet     bool        `yaml:"quiet" mapstructure:"quiet"`
	Sudo      bool        `yaml:"sudo" mapstructure:"sudo"`
	Debug     bool        `yaml:"debug" mapstructure:"debug"`
	Aliases   bool        `yaml:"aliases" mapstructure:"aliases"`
	CachePath string      `yaml:"cache_path" mapstructure:"cache_path"`
	Index     IndexConfig `yaml:"index" mapstructure:"index"`
}

// IndexConfig points at the repository synced into the alias cache
type IndexConfig struct {
	URL    string `yaml:"url" mapstructure:"url"`
	Branch string `yaml:"branch" mapstructure:"branch"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		Manager:   "", // Auto-detect
		CachePath: getDefaultCachePath(),
		Index: IndexConfig{
			URL:    DefaultIndexURL,
			Branch: DefaultIndexBranch,
		},
	}
}

// DefaultConfigPath returns $HOME/.config/pkgx/config.yaml
func DefaultConfigPath() (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", fmt.Errorf("locating home directory: %w", err)
	}
	return filepath.Join(home, ".config", "pkgx", "config.yaml"), nil
}

// ResolveConfigPath expands a leading ~ in path, or returns the default path
// when path is empty
func ResolveConfigPath(path string) (string, error) {
	if path == "" {
		return DefaultConfigPath()
	}
	expanded, err := homedir.Expand(path)
	if err != nil {
		return "", fmt.Errorf("expanding config path: %w", err)
	}
	return expanded, nil
}

// LoadConfig loads configuration from defaults, the YAML file at path and
// PKGX_* environment variables, in increasing order of precedence. A missing
// file at the default location is not an error; a missing explicit path is.
func LoadConfig(path string) (*Config, error) {
	explicit := path != ""
	resolved, err := ResolveConfigPath(path)
	if err != nil {
		if explicit {
			return nil, err
		}
		resolved = ""
	}

	v := viper.New()
	setDefaults(v, DefaultConfig())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if resolved != "" {
		if _, err := os.Stat(resolved); err == nil {
			v.SetConfigFile(resolved)
			v.SetConfigType("yaml")
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("parsing config: %w", err)
			}
		} else if !errors.Is(err, os.ErrNotExist) || explicit {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	if cfg.CachePath != "" {
		if expanded, err := homedir.Expand(cfg.CachePath); err == nil {
			cfg.CachePath = expanded
		}
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("manager", d.Manager)
	v.SetDefault("dry_run", d.DryRun)
	v.SetDefault("quiet", d.Quiet)
	v.SetDefault("sudo", d.Sudo)
	v.SetDefault("debug", d.Debug)
	v.SetDefault("aliases", d.Aliases)
	v.SetDefault("cache_path", d.CachePath)
	v.SetDefault("index.url", d.Index.URL)
	v.SetDefault("index.branch", d.Index.Branch)
}

// MarshalConfig renders cfg as YAML
func MarshalConfig(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("marshaling config: %w", err)
	}
	return data, nil
}

// SaveConfig saves configuration to file
func SaveConfig(cfg *Config, path string) error {
	path, err := ResolveConfigPath(path)
	if err != nil {
		return err
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := MarshalConfig(cfg)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

func getDefaultCachePath() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "pkgx")
	}

	return filepath.Join(os.TempDir(), "pkgx")
}
