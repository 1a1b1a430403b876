// Package config provides configuration management for ntc using Viper.
package config

import (
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/thoreinstein/ntc/internal/errors"
	"github.com/thoreinstein/ntc/internal/family"
	"github.com/thoreinstein/ntc/internal/locator"
	"github.com/thoreinstein/ntc/internal/paths"
	"github.com/thoreinstein/ntc/internal/target"
)

// EnvPrefix prefixes environment variables that override config keys,
// e.g. NTC_ANDROID_API_LEVEL.
const EnvPrefix = "NTC"

// Config represents the top-level configuration structure.
type Config struct {
	Version int `mapstructure:"version" yaml:"version"`

	// WorkingDir is probed for android-ndk* and osxcross* installs.
	// Empty means the parent of the current directory.
	WorkingDir string `mapstructure:"working_dir" yaml:"working_dir,omitempty"`

	// Host overrides runtime host detection. Empty means the running OS.
	Host string `mapstructure:"host" yaml:"host,omitempty"`

	// Properties are override hints such as androidNdk and osxcrossBin.
	Properties map[string]string `mapstructure:"properties" yaml:"properties,omitempty"`

	Android  AndroidConfig  `mapstructure:"android" yaml:"android"`
	Osxcross OsxcrossConfig `mapstructure:"osxcross" yaml:"osxcross"`
	Mingw    MingwConfig    `mapstructure:"mingw" yaml:"mingw"`
}

// AndroidConfig tunes the Android NDK toolchain.
type AndroidConfig struct {
	APILevel int    `mapstructure:"api_level" yaml:"api_level"`
	Compiler string `mapstructure:"compiler" yaml:"compiler"`
}

// OsxcrossConfig tunes the osxcross toolchain.
type OsxcrossConfig struct {
	Darwin string `mapstructure:"darwin" yaml:"darwin"`
}

// MingwConfig tunes the mingw-w64 cross front-ends.
type MingwConfig struct {
	WrapperSuffix string `mapstructure:"wrapper_suffix" yaml:"wrapper_suffix"`
}

// Init initializes Viper with default configuration.
// Call this once at application startup before accessing config values.
func Init() {
	viper.SetConfigName(paths.ConfigFileName)
	viper.SetConfigType("yaml")

	// Search paths (in order of precedence)
	viper.AddConfigPath(".")
	viper.AddConfigPath(paths.ConfigDir())

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	d := Default()
	viper.SetDefault("version", d.Version)
	viper.SetDefault("working_dir", d.WorkingDir)
	viper.SetDefault("host", d.Host)
	viper.SetDefault("android.api_level", d.Android.APILevel)
	viper.SetDefault("android.compiler", d.Android.Compiler)
	viper.SetDefault("osxcross.darwin", d.Osxcross.Darwin)
	viper.SetDefault("mingw.wrapper_suffix", d.Mingw.WrapperSuffix)
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	opts := family.DefaultOptions()
	return &Config{
		Version:  1,
		Android:  AndroidConfig{APILevel: opts.APILevel, Compiler: opts.Compiler},
		Osxcross: OsxcrossConfig{Darwin: opts.Darwin},
		Mingw:    MingwConfig{WrapperSuffix: opts.MingwWrapperSuffix},
	}
}

// Load reads the configuration file.
// If path is provided, it reads from that specific file.
// If path is empty, it searches in the default locations.
// Returns the loaded configuration or default values if no file is found (when path is empty).
func Load(path string) (*Config, error) {
	if path != "" {
		viper.SetConfigFile(path)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || path != "" {
			return nil, errors.Wrap(err, "reading config file")
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshaling config")
	}
	cfg.Properties = canonicalProperties(cfg.Properties)

	return &cfg, nil
}

// Path returns the config file in use, or the default location when none
// was read.
func Path() string {
	if used := viper.ConfigFileUsed(); used != "" {
		return used
	}
	return filepath.Join(paths.ConfigDir(), paths.ConfigFileName+".yaml")
}

// canonicalProperties restores the casing of known property keys, which
// viper lowercases.
func canonicalProperties(props map[string]string) map[string]string {
	if len(props) == 0 {
		return props
	}
	known := []string{locator.PropertyAndroidNDK, locator.PropertyOsxcrossBin}
	out := make(map[string]string, len(props))
	for k, v := range props {
		for _, name := range known {
			if strings.EqualFold(k, name) {
				k = name
				break
			}
		}
		out[k] = v
	}
	return out
}

// HostOS returns the configured host, or the running OS when unset.
func (c *Config) HostOS() (target.HostOS, error) {
	if c.Host == "" {
		return target.CurrentHost(), nil
	}
	return target.ParseHost(c.Host)
}

// ResolveWorkingDir returns the absolute working directory.
func (c *Config) ResolveWorkingDir() (string, error) {
	if c.WorkingDir == "" {
		return paths.DefaultWorkingDir()
	}
	dir, err := paths.ExpandHome(c.WorkingDir)
	if err != nil {
		return "", err
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", errors.Wrapf(err, "resolving working directory %q", c.WorkingDir)
	}
	return abs, nil
}

// FamilyOptions returns the options passed to the family configurators.
func (c *Config) FamilyOptions() family.Options {
	return family.Options{
		APILevel:           c.Android.APILevel,
		Compiler:           c.Android.Compiler,
		Darwin:             c.Osxcross.Darwin,
		MingwWrapperSuffix: c.Mingw.WrapperSuffix,
	}
}

// MergeProperties returns the config properties overlaid with overrides.
func (c *Config) MergeProperties(overrides map[string]string) map[string]string {
	out := make(map[string]string, len(c.Properties)+len(overrides))
	for k, v := range c.Properties {
		out[k] = v
	}
	for k, v := range overrides {
		out[k] = v
	}
	return out
}
