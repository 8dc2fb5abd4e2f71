// Package config loads devinfo settings from defaults, an optional yaml file,
// DEVINFO_ environment variables and command line flags, in increasing order
// of precedence.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"devinfo/pkg/bytefmt"
	"devinfo/pkg/log"
)

const (
	KeyServerAddr      = "server.addr"
	KeyStoragePath     = "storage.path"
	KeyStorageStyle    = "storage.style"
	KeyRefreshInterval = "refresh.interval"
	KeyLogLevel        = "log.level"
	KeyMock            = "mock"

	EnvPrefix = "DEVINFO"
	fileName  = "devinfo"
)

type Config struct {
	Server  ServerConfig  `mapstructure:"server" yaml:"server"`
	Storage StorageConfig `mapstructure:"storage" yaml:"storage"`
	Refresh RefreshConfig `mapstructure:"refresh" yaml:"refresh"`
	Log     LogConfig     `mapstructure:"log" yaml:"log"`
	Mock    bool          `mapstructure:"mock" yaml:"mock"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr" yaml:"addr"`
}

type StorageConfig struct {
	Path  string `mapstructure:"path" yaml:"path"`
	Style string `mapstructure:"style" yaml:"style"`
}

type RefreshConfig struct {
	Interval time.Duration `mapstructure:"interval" yaml:"interval"`
}

type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
}

// New returns a viper instance with devinfo defaults and environment lookup.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyServerAddr, ":8080")
	v.SetDefault(KeyStoragePath, "/")
	v.SetDefault(KeyStorageStyle, bytefmt.File.String())
	v.SetDefault(KeyRefreshInterval, time.Second)
	v.SetDefault(KeyLogLevel, zerolog.InfoLevel.String())
	v.SetDefault(KeyMock, false)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	return v
}

// Load reads path, or devinfo.yaml from the working directory or the user
// config directory when path is empty, and decodes the result. A missing
// default file is not an error.
func Load(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(fileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, fileName))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	return Decode(v)
}

// Decode unmarshals and validates the current settings of v.
func Decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var result error

	if c.Server.Addr == "" {
		result = multierror.Append(result, errors.New(KeyServerAddr+" must not be empty"))
	}
	if _, err := bytefmt.ParseStyle(c.Storage.Style); err != nil {
		result = multierror.Append(result, fmt.Errorf("%s: %w", KeyStorageStyle, err))
	}
	if c.Refresh.Interval <= 0 {
		result = multierror.Append(result, fmt.Errorf("%s must be positive, got %s", KeyRefreshInterval, c.Refresh.Interval))
	}
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		result = multierror.Append(result, fmt.Errorf("%s: %w", KeyLogLevel, err))
	}

	return result
}

// CountStyle returns the configured byte count style. It assumes Validate passed.
func (c *Config) CountStyle() bytefmt.CountStyle {
	style, _ := bytefmt.ParseStyle(c.Storage.Style)
	return style
}

// BindFlags binds each named flag in flags to its config key.
func BindFlags(v *viper.Viper, flags *pflag.FlagSet, keys map[string]string) error {
	var result error
	for name, key := range keys {
		f := flags.Lookup(name)
		if f == nil {
			result = multierror.Append(result, fmt.Errorf("unknown flag --%s for %s", name, key))
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result
}

// Watch calls onChange with the reloaded config whenever the config file in
// use changes. Reloads that fail validation are logged and skipped. It does
// nothing when no file was read.
func Watch(v *viper.Viper, onChange func(*Config)) bool {
	if v.ConfigFileUsed() == "" {
		return false
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		cfg, err := Decode(v)
		if err != nil {
			log.Warn().Err(err).Str("file", e.Name).Msg("Ignoring invalid config reload")
			return
		}
		log.Info().Str("file", e.Name).Str("op", e.Op.String()).Msg("Config reloaded")
		onChange(cfg)
	})
	v.WatchConfig()

	return true
}

// Export writes c as yaml.
func Export(w io.Writer, c *Config) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return enc.Close()
}
