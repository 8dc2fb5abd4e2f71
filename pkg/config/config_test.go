package config

import (
	"bytes"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/suite"
	"gopkg.in/yaml.v3"

	"devinfo/pkg/bytefmt"
)

// ConfigTestSuite tests config loading, validation and reloads
type ConfigTestSuite struct {
	suite.Suite
	dir string
}

// SetupTest runs before each test
func (s *ConfigTestSuite) SetupTest() {
	s.dir = s.T().TempDir()
}

func (s *ConfigTestSuite) writeFile(content string) string {
	path := filepath.Join(s.dir, "devinfo.yaml")
	s.Require().NoError(os.WriteFile(path, []byte(content), 0o600))
	return path
}

// TestDefaults tests settings with no file, env or flags
func (s *ConfigTestSuite) TestDefaults() {
	cfg, err := Decode(New())
	s.Require().NoError(err)

	s.Equal(":8080", cfg.Server.Addr)
	s.Equal("/", cfg.Storage.Path)
	s.Equal(bytefmt.File, cfg.CountStyle())
	s.Equal(time.Second, cfg.Refresh.Interval)
	s.Equal("info", cfg.Log.Level)
	s.False(cfg.Mock)
}

// TestLoadFile tests reading an explicit yaml file
func (s *ConfigTestSuite) TestLoadFile() {
	path := s.writeFile("storage:\n  path: /data\n  style: memory\nrefresh:\n  interval: 5s\nmock: true\n")

	cfg, err := Load(New(), path)
	s.Require().NoError(err)
	s.Equal("/data", cfg.Storage.Path)
	s.Equal(bytefmt.Memory, cfg.CountStyle())
	s.Equal(5*time.Second, cfg.Refresh.Interval)
	s.True(cfg.Mock)
	s.Equal(":8080", cfg.Server.Addr)
}

// TestLoadMissingExplicitFile tests that a named file must exist
func (s *ConfigTestSuite) TestLoadMissingExplicitFile() {
	_, err := Load(New(), filepath.Join(s.dir, "absent.yaml"))
	s.Error(err)
}

// TestEnvOverridesFile tests DEVINFO_ variables
func (s *ConfigTestSuite) TestEnvOverridesFile() {
	path := s.writeFile("storage:\n  style: memory\n")
	s.T().Setenv("DEVINFO_STORAGE_STYLE", "none")
	s.T().Setenv("DEVINFO_LOG_LEVEL", "debug")

	cfg, err := Load(New(), path)
	s.Require().NoError(err)
	s.Equal(bytefmt.None, cfg.CountStyle())
	s.Equal("debug", cfg.Log.Level)
}

// TestFlagsOverrideEnv tests flag binding
func (s *ConfigTestSuite) TestFlagsOverrideEnv() {
	s.T().Setenv("DEVINFO_SERVER_ADDR", ":9000")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("addr", ":8080", "listen address")
	flags.Bool("mock", false, "use fixtures")
	s.Require().NoError(flags.Parse([]string{"--addr", ":7000"}))

	v := New()
	s.Require().NoError(BindFlags(v, flags, map[string]string{"addr": KeyServerAddr, "mock": KeyMock}))

	cfg, err := Decode(v)
	s.Require().NoError(err)
	s.Equal(":7000", cfg.Server.Addr)
	s.False(cfg.Mock)
}

// TestBindUnknownFlag tests binding a flag that was never defined
func (s *ConfigTestSuite) TestBindUnknownFlag() {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	err := BindFlags(New(), flags, map[string]string{"width": "storage.width"})
	s.Error(err)
	s.Contains(err.Error(), "--width")
}

// TestValidateCollectsErrors tests that every bad setting is reported
func (s *ConfigTestSuite) TestValidateCollectsErrors() {
	cfg := &Config{
		Storage: StorageConfig{Style: "metric"},
		Refresh: RefreshConfig{Interval: 0},
		Log:     LogConfig{Level: "loud"},
	}

	err := cfg.Validate()
	s.Require().Error(err)

	var merr *multierror.Error
	s.Require().ErrorAs(err, &merr)
	s.Len(merr.Errors, 4)
	s.Contains(err.Error(), KeyStorageStyle)
	s.Contains(err.Error(), KeyRefreshInterval)
	s.Contains(err.Error(), KeyLogLevel)
	s.Contains(err.Error(), KeyServerAddr)
}

// TestExport tests yaml output of the effective config
func (s *ConfigTestSuite) TestExport() {
	cfg, err := Decode(New())
	s.Require().NoError(err)

	var buf bytes.Buffer
	s.Require().NoError(Export(&buf, cfg))
	s.Contains(buf.String(), ":8080")
	s.Contains(buf.String(), "interval: 1s")

	var raw map[string]any
	s.Require().NoError(yaml.Unmarshal(buf.Bytes(), &raw))
	s.Contains(raw, "storage")
	s.Contains(raw, "log")
}

// TestWatchWithoutFile tests that nothing is watched without a file
func (s *ConfigTestSuite) TestWatchWithoutFile() {
	s.False(Watch(New(), func(*Config) {}))
}

// TestWatchReload tests that an edited file is reloaded
func (s *ConfigTestSuite) TestWatchReload() {
	path := s.writeFile("refresh:\n  interval: 2s\n")
	v := New()
	_, err := Load(v, path)
	s.Require().NoError(err)

	var interval atomic.Int64
	s.Require().True(Watch(v, func(cfg *Config) {
		interval.Store(int64(cfg.Refresh.Interval))
	}))

	s.Require().NoError(os.WriteFile(path, []byte("refresh:\n  interval: 3s\n"), 0o600))

	s.Eventually(func() bool {
		return time.Duration(interval.Load()) == 3*time.Second
	}, 5*time.Second, 20*time.Millisecond)
}

func TestConfigTestSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}
