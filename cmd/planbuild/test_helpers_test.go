// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"context"
	"testing"

	"github.com/planbuild/planbuild/internal/config"
)

// staticConfig is a ConfigProvider that returns a fixed configuration.
type staticConfig struct {
	cfg  *config.Config
	path string
	err  error
}

func (s *staticConfig) Load(_ context.Context, _ config.LoadOptions) (*config.Config, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.cfg, nil
}

func (s *staticConfig) Path(_ config.LoadOptions) (string, error) {
	return s.path, s.err
}

// testConfig returns the defaults without the built-in blueprint tables and
// with logging limited to errors.
func testConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Catalog.Blueprints = false
	cfg.Log.Level = config.LogLevelError
	return cfg
}

// runCommand executes the root command in-process with cfg and returns
// stdout, stderr and the command error.
func runCommand(t *testing.T, cfg *config.Config, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	app := NewApp(Dependencies{
		Config: &staticConfig{cfg: cfg},
		Stdout: &stdout,
		Stderr: &stderr,
	})

	root := NewRootCommand(app)
	root.SetArgs(args)
	root.SetOut(&stdout)
	root.SetErr(&stderr)

	err := root.ExecuteContext(t.Context())
	return stdout.String(), stderr.String(), err
}
