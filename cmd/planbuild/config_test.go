// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"strings"
	"testing"
)

func TestConfigShow(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.Catalog.Paths = []string{"catalog/vanilla.cue"}

	stdout, _, err := runCommand(t, cfg, "config", "show")
	if err != nil {
		t.Fatalf("config show error = %v", err)
	}
	for _, want := range []string{"(using defaults)", "catalog/vanilla.cue", "_planned", "piece_plan_totem", "250ms"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("stdout missing %q:\n%s", want, stdout)
		}
	}
}

func TestConfigDump(t *testing.T) {
	t.Parallel()

	stdout, _, err := runCommand(t, testConfig(), "config", "dump")
	if err != nil {
		t.Fatalf("config dump error = %v", err)
	}
	for _, want := range []string{"plans: {", `suffix: "_planned"`, "blueprints: false", `level: "error"`} {
		if !strings.Contains(stdout, want) {
			t.Errorf("dump missing %q:\n%s", want, stdout)
		}
	}
}

func TestConfigPath(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer
	app := NewApp(Dependencies{
		Config: &staticConfig{cfg: testConfig(), path: "/etc/planbuild/config.cue"},
		Stdout: &stdout,
		Stderr: &stderr,
	})
	root := NewRootCommand(app)
	root.SetArgs([]string{"config", "path"})
	root.SetOut(&stdout)
	root.SetErr(&stderr)

	if err := root.ExecuteContext(t.Context()); err != nil {
		t.Fatalf("config path error = %v", err)
	}
	if !strings.Contains(stdout.String(), "Config file: /etc/planbuild/config.cue") {
		t.Errorf("stdout = %s", stdout.String())
	}
}
