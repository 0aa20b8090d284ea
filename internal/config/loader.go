// Package config provides configuration management for ccver.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	ccverrors "github.com/RyanGuild/ccver/internal/errors"
	"github.com/RyanGuild/ccver/internal/fileutil"
)

// maxConfigFileSize bounds how much of a .ccver.* file Load will read; a
// project config has no business being larger than this.
const maxConfigFileSize = 1 << 20

// Loader handles configuration loading and merging.
type Loader struct {
	v           *viper.Viper
	configPath  string
	searchPaths []string
	loadedPath  string
}

// NewLoader creates a new configuration loader.
func NewLoader() *Loader {
	v := viper.New()
	v.SetEnvPrefix("CCVER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	return &Loader{
		v:           v,
		searchPaths: []string{"."},
	}
}

// WithConfigPath sets an explicit config file path.
func (l *Loader) WithConfigPath(path string) *Loader {
	l.configPath = path
	return l
}

// WithSearchPaths adds directories to search for config files.
func (l *Loader) WithSearchPaths(paths ...string) *Loader {
	l.searchPaths = append(l.searchPaths, paths...)
	return l
}

// Load loads the configuration, falling back to DefaultConfig for
// anything a config file or environment variable doesn't set.
func (l *Loader) Load() (*Config, error) {
	const op = "config.Load"

	l.setDefaults()

	if err := l.loadConfigFile(); err != nil {
		return nil, ccverrors.ConfigWrap(err, op, "failed to load config file")
	}

	cfg := &Config{}
	if err := l.v.Unmarshal(cfg); err != nil {
		return nil, ccverrors.ConfigWrap(err, op, "failed to unmarshal config")
	}

	return cfg, nil
}

func (l *Loader) setDefaults() {
	defaults := DefaultConfig()

	l.v.SetDefault("versioning.tag_prefix", defaults.Versioning.TagPrefix)
	l.v.SetDefault("versioning.format", defaults.Versioning.FormatTemplate)
	l.v.SetDefault("versioning.default_branch", defaults.Versioning.DefaultBranch)
	l.v.SetDefault("versioning.promotion_chain", defaults.Versioning.PromotionChain)

	l.v.SetDefault("output.color", defaults.Output.Color)
	l.v.SetDefault("output.verbose", defaults.Output.Verbose)
	l.v.SetDefault("output.log_level", defaults.Output.LogLevel)
	l.v.SetDefault("output.json", defaults.Output.JSON)
}

// loadConfigFile loads the configuration file, if one is found. A
// missing file is not an error: ccver runs fine on defaults alone.
func (l *Loader) loadConfigFile() error {
	if l.configPath != "" {
		ext := strings.TrimPrefix(filepath.Ext(l.configPath), ".")
		if err := l.readConfigFile(l.configPath, ext); err != nil {
			return fmt.Errorf("reading config file %s: %w", l.configPath, err)
		}
		l.loadedPath = l.configPath
		return nil
	}

	for _, searchPath := range l.searchPaths {
		for _, name := range ConfigFileNames {
			for _, ext := range ConfigFileExtensions {
				configFile := filepath.Join(searchPath, name+"."+ext)
				if _, err := os.Stat(configFile); err == nil {
					if err := l.readConfigFile(configFile, ext); err != nil {
						return fmt.Errorf("reading config file %s: %w", configFile, err)
					}
					l.loadedPath = configFile
					return nil
				}
			}
		}
	}

	return nil
}

// readConfigFile reads configFile through fileutil's size-limited reader
// and hands the bytes to viper, rather than letting viper open the file
// itself.
func (l *Loader) readConfigFile(configFile, ext string) error {
	data, err := fileutil.ReadFileLimited(configFile, maxConfigFileSize)
	if err != nil {
		return err
	}
	l.v.SetConfigType(ext)
	return l.v.ReadConfig(bytes.NewReader(data))
}

// GetConfigPath returns the path to the loaded config file, if any.
func (l *Loader) GetConfigPath() string {
	return l.loadedPath
}

// WriteDefaultConfig writes ccver's default configuration to path, used
// by the init subcommand to scaffold a new project file.
func WriteDefaultConfig(path string) error {
	const op = "config.WriteDefaultConfig"

	defaults := DefaultConfig()
	v := viper.New()
	v.Set("versioning.tag_prefix", defaults.Versioning.TagPrefix)
	v.Set("versioning.format", defaults.Versioning.FormatTemplate)
	v.Set("versioning.default_branch", defaults.Versioning.DefaultBranch)
	v.Set("versioning.promotion_chain", defaults.Versioning.PromotionChain)
	v.Set("output.color", defaults.Output.Color)
	v.Set("output.verbose", defaults.Output.Verbose)
	v.Set("output.log_level", defaults.Output.LogLevel)
	v.Set("output.json", defaults.Output.JSON)

	if err := v.WriteConfigAs(path); err != nil {
		return ccverrors.ConfigWrap(err, op, "failed to write config file")
	}

	return nil
}

// LoadFromDirectory loads configuration rooted at dir.
func LoadFromDirectory(dir string) (*Config, error) {
	return NewLoader().WithSearchPaths(dir).Load()
}
