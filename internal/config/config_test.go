// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"testing"

	"github.com/planbuild/planbuild/internal/issue"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	if cfg.Plans.Suffix != "_planned" {
		t.Errorf("Plans.Suffix = %q, want _planned", cfg.Plans.Suffix)
	}
	if cfg.Plans.CloneSuffix != "(Clone)" {
		t.Errorf("Plans.CloneSuffix = %q, want (Clone)", cfg.Plans.CloneSuffix)
	}
	if cfg.Plans.Bucket != "_planHammerPieceTable" {
		t.Errorf("Plans.Bucket = %q", cfg.Plans.Bucket)
	}
	if cfg.Plans.LookupCacheSize != 256 {
		t.Errorf("Plans.LookupCacheSize = %d, want 256", cfg.Plans.LookupCacheSize)
	}
	if !cfg.Catalog.Blueprints {
		t.Error("Catalog.Blueprints should default to true")
	}
	if len(cfg.Catalog.Paths) != 0 {
		t.Errorf("Catalog.Paths = %v, want empty", cfg.Catalog.Paths)
	}
	if !slices.Equal(cfg.Eligibility.ReservedNames, []string{"piece_plan_totem"}) {
		t.Errorf("Eligibility.ReservedNames = %v", cfg.Eligibility.ReservedNames)
	}
	if !slices.Equal(cfg.Eligibility.Denylist, []string{"piece_repair"}) {
		t.Errorf("Eligibility.Denylist = %v", cfg.Eligibility.Denylist)
	}
	if cfg.Log.Level != LogLevelInfo {
		t.Errorf("Log.Level = %q, want info", cfg.Log.Level)
	}
	if cfg.Watch.Debounce != "250ms" {
		t.Errorf("Watch.Debounce = %q, want 250ms", cfg.Watch.Debounce)
	}
}

func TestConfigDir(t *testing.T) {
	Reset()
	defer Reset()

	SetConfigDirOverride("/custom/planbuild")
	dir, err := ConfigDir()
	if err != nil || dir != "/custom/planbuild" {
		t.Errorf("ConfigDir() with override = %q, %v", dir, err)
	}
	Reset()

	if runtime.GOOS != "linux" {
		t.Skip("XDG lookup is Linux-only")
	}

	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	dir, err = ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir() error = %v", err)
	}
	if want := filepath.Join(xdg, AppName); dir != want {
		t.Errorf("ConfigDir() = %q, want %q", dir, want)
	}
}

func TestLoad_ReturnsDefaultsWhenNoConfigFile(t *testing.T) {
	cfg, path, err := loadWithOptions(context.Background(), LoadOptions{ConfigDirPath: t.TempDir()})
	if err != nil {
		t.Fatalf("loadWithOptions() error = %v", err)
	}
	if path != "" {
		t.Errorf("resolved path = %q, want empty", path)
	}
	if cfg.Plans.Suffix != "_planned" || cfg.Log.Level != LogLevelInfo {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestLoad_MergesPartialConfigOverDefaults(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
plans: {
	suffix:            "_bp"
	lookup_cache_size: 16
}
catalog: paths: ["./pieces.cue", "./mods"]
log: level: "debug"
`)

	cfg, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: dir})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Plans.Suffix != "_bp" {
		t.Errorf("Plans.Suffix = %q, want _bp", cfg.Plans.Suffix)
	}
	if cfg.Plans.LookupCacheSize != 16 {
		t.Errorf("Plans.LookupCacheSize = %d, want 16", cfg.Plans.LookupCacheSize)
	}
	if cfg.Plans.CloneSuffix != "(Clone)" {
		t.Errorf("Plans.CloneSuffix = %q, default should survive", cfg.Plans.CloneSuffix)
	}
	if !slices.Equal(cfg.Catalog.Paths, []string{"./pieces.cue", "./mods"}) {
		t.Errorf("Catalog.Paths = %v", cfg.Catalog.Paths)
	}
	if cfg.Log.Level != LogLevelDebug {
		t.Errorf("Log.Level = %q, want debug", cfg.Log.Level)
	}
	if !cfg.Catalog.Blueprints {
		t.Error("Catalog.Blueprints default should survive")
	}
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("PLANBUILD_PLANS_SUFFIX", "_env")
	t.Setenv("PLANBUILD_LOG_LEVEL", "warn")

	cfg, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: t.TempDir()})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Plans.Suffix != "_env" {
		t.Errorf("Plans.Suffix = %q, want _env", cfg.Plans.Suffix)
	}
	if cfg.Log.Level != LogLevelWarn {
		t.Errorf("Log.Level = %q, want warn", cfg.Log.Level)
	}
}

func TestLoad_InvalidEnvironmentOverride(t *testing.T) {
	t.Setenv("PLANBUILD_LOG_LEVEL", "loud")

	_, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: t.TempDir()})
	if err == nil {
		t.Fatal("expected error for invalid log level")
	}
	if !errors.Is(err, ErrInvalidLogLevel) {
		t.Errorf("error should wrap ErrInvalidLogLevel, got %v", err)
	}
	if !strings.Contains(err.Error(), "validate configuration") {
		t.Errorf("error should name the operation, got %v", err)
	}
}

func TestLoad_InvalidConfigFile(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"syntax error", `this is not valid CUE syntax {{{{`},
		{"wrong type", `plans: lookup_cache_size: "big"`},
		{"bad enum", `log: level: "loud"`},
		{"unknown field", `plans: sufix: "_bp"`},
		{"blank suffix", `plans: suffix: ""`},
		{"bad debounce", `watch: debounce: "soon"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			cfgPath := writeConfig(t, dir, tt.content)

			_, err := NewProvider().Load(context.Background(), LoadOptions{ConfigDirPath: dir})
			if err == nil {
				t.Fatal("expected Load() to fail")
			}
			errStr := err.Error()
			if !strings.Contains(errStr, "load configuration") {
				t.Errorf("error should contain operation, got: %s", errStr)
			}
			if !strings.Contains(errStr, cfgPath) {
				t.Errorf("error should contain resource path, got: %s", errStr)
			}
		})
	}
}

func TestLoad_CustomPath_NotFound_ReturnsError(t *testing.T) {
	nonExistentPath := filepath.Join(t.TempDir(), "missing", "config.cue")

	_, err := NewProvider().Load(context.Background(), LoadOptions{ConfigFilePath: nonExistentPath})
	if err == nil {
		t.Fatal("expected error for non-existent config file")
	}
	if !strings.Contains(err.Error(), "config file not found") {
		t.Errorf("error should contain 'config file not found', got: %v", err)
	}

	var ae *issue.ActionableError
	if !errors.As(err, &ae) {
		t.Fatal("expected error to be *issue.ActionableError")
	}
	if !slices.Contains(ae.Suggestions, "Verify the file path is correct") {
		t.Errorf("missing suggestion, got: %v", ae.Suggestions)
	}
}

func TestLoad_CustomPath_Valid(t *testing.T) {
	customPath := filepath.Join(t.TempDir(), "custom-config.cue")
	if err := os.WriteFile(customPath, []byte(`eligibility: denylist: ["piece_repair", "piece_bed"]`), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, path, err := loadWithOptions(context.Background(), LoadOptions{ConfigFilePath: customPath})
	if err != nil {
		t.Fatalf("loadWithOptions() error = %v", err)
	}
	if path != customPath {
		t.Errorf("resolved path = %q, want %q", path, customPath)
	}
	if !slices.Equal(cfg.Eligibility.Denylist, []string{"piece_repair", "piece_bed"}) {
		t.Errorf("Eligibility.Denylist = %v", cfg.Eligibility.Denylist)
	}
}

func TestSaveAndLoad(t *testing.T) {
	Reset()
	defer Reset()

	dir := filepath.Join(t.TempDir(), AppName)
	SetConfigDirOverride(dir)

	cfg := DefaultConfig()
	cfg.Catalog.Paths = []string{"./vanilla.cue"}
	cfg.Catalog.Blueprints = false
	cfg.Plans.Bucket = "_customPlanTable"
	cfg.Eligibility.ExcludedTables = append(cfg.Eligibility.ExcludedTables, "_modTable")
	cfg.Watch.ClearScreen = true

	if err := Save(cfg); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := NewProvider().Load(context.Background(), LoadOptions{})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !slices.Equal(loaded.Catalog.Paths, cfg.Catalog.Paths) {
		t.Errorf("Catalog.Paths = %v, want %v", loaded.Catalog.Paths, cfg.Catalog.Paths)
	}
	if loaded.Catalog.Blueprints {
		t.Error("Catalog.Blueprints should round-trip as false")
	}
	if loaded.Plans.Bucket != "_customPlanTable" {
		t.Errorf("Plans.Bucket = %q", loaded.Plans.Bucket)
	}
	if !slices.Equal(loaded.Eligibility.ExcludedTables, cfg.Eligibility.ExcludedTables) {
		t.Errorf("Eligibility.ExcludedTables = %v", loaded.Eligibility.ExcludedTables)
	}
	if !loaded.Watch.ClearScreen {
		t.Error("Watch.ClearScreen should round-trip as true")
	}
}

func TestCreateDefaultConfig(t *testing.T) {
	Reset()
	defer Reset()

	dir := filepath.Join(t.TempDir(), AppName)
	SetConfigDirOverride(dir)

	path, err := CreateDefaultConfig()
	if err != nil {
		t.Fatalf("CreateDefaultConfig() error = %v", err)
	}
	if path != filepath.Join(dir, "config.cue") {
		t.Errorf("path = %q", path)
	}

	// An existing file is left alone.
	if err := os.WriteFile(path, []byte(`log: level: "error"`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := CreateDefaultConfig(); err != nil {
		t.Fatalf("second CreateDefaultConfig() error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `log: level: "error"` {
		t.Errorf("CreateDefaultConfig overwrote an existing file: %s", data)
	}
}

func TestGenerateCUE_MatchesSchema(t *testing.T) {
	t.Parallel()

	content := GenerateCUE(DefaultConfig())
	if err := validateCUE(t, content); err != nil {
		t.Fatalf("generated config does not validate: %v\n%s", err, content)
	}
	for _, want := range []string{`suffix: "_planned"`, `clone_suffix: "(Clone)"`, `reserved_names: ["piece_plan_totem"]`} {
		if !strings.Contains(content, want) {
			t.Errorf("GenerateCUE() missing %q", want)
		}
	}
}

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()

	path := filepath.Join(dir, ConfigFileName+"."+ConfigFileExt)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}
