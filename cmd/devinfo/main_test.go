package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"
)

// CommandTestSuite runs the CLI against fixture devices
type CommandTestSuite struct {
	suite.Suite
	out *bytes.Buffer
}

// SetupTest isolates each run from any config file in the working directory
func (s *CommandTestSuite) SetupTest() {
	s.out = &bytes.Buffer{}
	s.T().Chdir(s.T().TempDir())
}

func (s *CommandTestSuite) run(args ...string) error {
	root := newRootCmd()
	root.SetOut(s.out)
	root.SetErr(s.out)
	root.SetArgs(args)
	return root.Execute()
}

// TestVersion tests the embedded version
func (s *CommandTestSuite) TestVersion() {
	s.Require().NoError(s.run("version"))
	s.Equal("devinfo v"+strings.TrimSpace(Version)+"\n", s.out.String())
}

// TestStorage tests the one-shot panel
func (s *CommandTestSuite) TestStorage() {
	s.Require().NoError(s.run("storage", "--mock", "--width", "60"))
	s.Contains(s.out.String(), "104 / 256 GB")
	s.Len(strings.Split(strings.TrimSpace(s.out.String()), "\n"), 1)
}

// TestStorageVerbose tests layer rows and the exact total
func (s *CommandTestSuite) TestStorageVerbose() {
	s.Require().NoError(s.run("storage", "--mock", "-v", "-w", "80", "--style", "memory"))
	out := s.out.String()
	s.Contains(out, "Total Capacity: 238.42 GiB")
	s.Contains(out, "Used Capacity:")
	s.Contains(out, "Total Capacity (exact): 256,000,000,000 bytes")
}

// TestStorageBadStyle tests config validation of flag values
func (s *CommandTestSuite) TestStorageBadStyle() {
	err := s.run("storage", "--mock", "--style", "metric")
	s.Require().Error(err)
	s.Contains(err.Error(), "storage.style")
}

// TestShow tests the device screen
func (s *CommandTestSuite) TestShow() {
	s.Require().NoError(s.run("show", "--mock"))
	out := s.out.String()
	s.Contains(out, "Current device: Test iPhone - iPhone (iOS 17.4)")
	s.Contains(out, "104 / 256 GB")
}

// TestConfigExport tests yaml output with a config file
func (s *CommandTestSuite) TestConfigExport() {
	path := filepath.Join(s.T().TempDir(), "devinfo.yaml")
	s.Require().NoError(os.WriteFile(path, []byte("storage:\n  style: none\n"), 0o600))

	s.Require().NoError(s.run("--config", path, "config", "export"))
	s.Contains(s.out.String(), "style: none")
	s.Contains(s.out.String(), "interval: 1s")
}

func TestCommandTestSuite(t *testing.T) {
	suite.Run(t, new(CommandTestSuite))
}
