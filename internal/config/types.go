// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	// LogLevelDebug logs skipped pieces and every scan step.
	LogLevelDebug LogLevel = "debug"
	// LogLevelInfo logs scan summaries.
	LogLevelInfo LogLevel = "info"
	// LogLevelWarn logs diagnostics and collision reports only.
	LogLevelWarn LogLevel = "warn"
	// LogLevelError logs error diagnostics only.
	LogLevelError LogLevel = "error"
)

var (
	// ErrInvalidLogLevel is returned when a LogLevel value is not recognized.
	ErrInvalidLogLevel = errors.New("invalid log level")
	// ErrInvalidDebounce is returned when a watch debounce is not a positive duration.
	ErrInvalidDebounce = errors.New("invalid debounce duration")
	// ErrInvalidPlansConfig is the sentinel error wrapped by InvalidPlansConfigError.
	ErrInvalidPlansConfig = errors.New("invalid plans config")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// LogLevel is the minimum level written by the CLI logger.
	LogLevel string

	// InvalidLogLevelError is returned when a LogLevel value is not recognized.
	// It wraps ErrInvalidLogLevel for errors.Is() compatibility.
	InvalidLogLevelError struct {
		Value LogLevel
	}

	// InvalidDebounceError is returned when a watch debounce cannot be parsed
	// or is not positive.
	InvalidDebounceError struct {
		Value string
		Cause error
	}

	// InvalidPlansConfigError collects field-level errors of a PlansConfig.
	InvalidPlansConfigError struct {
		FieldErrors []error
	}

	// InvalidConfigError is returned when a Config has invalid fields.
	// It wraps ErrInvalidConfig for errors.Is() compatibility and collects
	// field-level validation errors from all sub-components.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the application configuration.
	Config struct {
		// Catalog selects the catalog files scanned by default.
		Catalog CatalogConfig `json:"catalog" mapstructure:"catalog"`
		// Plans configures plan naming and lookups.
		Plans PlansConfig `json:"plans" mapstructure:"plans"`
		// Eligibility configures which pieces can become plans.
		Eligibility EligibilityConfig `json:"eligibility" mapstructure:"eligibility"`
		// Log configures the CLI logger.
		Log LogConfig `json:"log" mapstructure:"log"`
		// Watch configures the watch command.
		Watch WatchConfig `json:"watch" mapstructure:"watch"`
	}

	// CatalogConfig selects catalog sources.
	CatalogConfig struct {
		// Paths are catalog files or directories, scanned in order.
		Paths []string `json:"paths" mapstructure:"paths"`
		// Blueprints adds the built-in blueprint tables to every snapshot.
		Blueprints bool `json:"blueprints" mapstructure:"blueprints"`
	}

	// PlansConfig configures plan naming.
	PlansConfig struct {
		Suffix      string `json:"suffix" mapstructure:"suffix"`
		CloneSuffix string `json:"clone_suffix" mapstructure:"clone_suffix"`
		Bucket      string `json:"bucket" mapstructure:"bucket"`
		// LookupCacheSize bounds the prefab-name lookup cache.
		LookupCacheSize int `json:"lookup_cache_size" mapstructure:"lookup_cache_size"`
	}

	// EligibilityConfig configures the eligibility rules.
	EligibilityConfig struct {
		// ReservedNames are pieces that never get a plan because they
		// construct plans themselves.
		ReservedNames []string `json:"reserved_names" mapstructure:"reserved_names"`
		// Denylist names pieces that never get a plan.
		Denylist []string `json:"denylist" mapstructure:"denylist"`
		// ExcludedTables are piece tables whose pieces are never planned.
		ExcludedTables []string `json:"excluded_tables" mapstructure:"excluded_tables"`
	}

	// LogConfig configures logging.
	LogConfig struct {
		Level      LogLevel `json:"level" mapstructure:"level"`
		Timestamps bool     `json:"timestamps" mapstructure:"timestamps"`
	}

	// WatchConfig configures the watch command.
	WatchConfig struct {
		// Debounce is a Go duration string such as "250ms".
		Debounce string `json:"debounce" mapstructure:"debounce"`
		// Patterns are doublestar globs of files that trigger a rescan.
		Patterns []string `json:"patterns" mapstructure:"patterns"`
		// ClearScreen clears the terminal before each rescan report.
		ClearScreen bool `json:"clear_screen" mapstructure:"clear_screen"`
	}
)

// Error implements the error interface for InvalidLogLevelError.
func (e *InvalidLogLevelError) Error() string {
	return fmt.Sprintf("invalid log level %q (valid: debug, info, warn, error)", e.Value)
}

// Unwrap returns ErrInvalidLogLevel for errors.Is() compatibility.
func (e *InvalidLogLevelError) Unwrap() error { return ErrInvalidLogLevel }

// IsValid returns whether the LogLevel is one of the defined levels.
func (l LogLevel) IsValid() (bool, []error) {
	switch l {
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
		return true, nil
	default:
		return false, []error{&InvalidLogLevelError{Value: l}}
	}
}

// String returns the string representation of the LogLevel.
func (l LogLevel) String() string { return string(l) }

func (e *InvalidDebounceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid debounce %q: %v", e.Value, e.Cause)
	}
	return fmt.Sprintf("invalid debounce %q: must be positive", e.Value)
}

func (e *InvalidDebounceError) Unwrap() error { return ErrInvalidDebounce }

// DebounceDuration parses Debounce.
func (w WatchConfig) DebounceDuration() (time.Duration, error) {
	d, err := time.ParseDuration(w.Debounce)
	if err != nil {
		return 0, &InvalidDebounceError{Value: w.Debounce, Cause: err}
	}
	if d <= 0 {
		return 0, &InvalidDebounceError{Value: w.Debounce}
	}
	return d, nil
}

// IsValid returns whether the WatchConfig has valid fields.
func (w WatchConfig) IsValid() (bool, []error) {
	if _, err := w.DebounceDuration(); err != nil {
		return false, []error{err}
	}
	return true, nil
}

func (e *InvalidPlansConfigError) Error() string {
	return fmt.Sprintf("invalid plans config: %d field error(s)", len(e.FieldErrors))
}

func (e *InvalidPlansConfigError) Unwrap() error { return ErrInvalidPlansConfig }

// IsValid returns whether the PlansConfig has valid fields. The suffix and
// bucket must not be blank and the cache must hold at least one entry.
func (p PlansConfig) IsValid() (bool, []error) {
	var errs []error
	if strings.TrimSpace(p.Suffix) == "" {
		errs = append(errs, errors.New("plans.suffix must not be blank"))
	}
	if strings.TrimSpace(p.CloneSuffix) == "" {
		errs = append(errs, errors.New("plans.clone_suffix must not be blank"))
	}
	if strings.TrimSpace(p.Bucket) == "" {
		errs = append(errs, errors.New("plans.bucket must not be blank"))
	}
	if p.LookupCacheSize < 1 {
		errs = append(errs, fmt.Errorf("plans.lookup_cache_size must be at least 1, got %d", p.LookupCacheSize))
	}
	if len(errs) > 0 {
		return false, []error{&InvalidPlansConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidConfig for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }

// IsValid returns whether the Config has valid fields, delegating to each
// sub-config.
func (c *Config) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.Plans.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.Log.Level.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.Watch.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Catalog: CatalogConfig{
			Paths:      []string{},
			Blueprints: true,
		},
		Plans: PlansConfig{
			Suffix:          "_planned",
			CloneSuffix:     "(Clone)",
			Bucket:          "_planHammerPieceTable",
			LookupCacheSize: 256,
		},
		Eligibility: EligibilityConfig{
			ReservedNames:  []string{"piece_plan_totem"},
			Denylist:       []string{"piece_repair"},
			ExcludedTables: []string{"_planHammerPieceTable", "_BlueprintPieceTable"},
		},
		Log: LogConfig{
			Level: LogLevelInfo,
		},
		Watch: WatchConfig{
			Debounce: "250ms",
			Patterns: []string{"**/*.cue", "**/*.toml", "**/*.yaml", "**/*.yml"},
		},
	}
}
