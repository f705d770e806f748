// SPDX-License-Identifier: MPL-2.0

package watch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

const defaultDebounce = 250 * time.Millisecond

// defaultIgnores are never watched: VCS metadata and editor swap files.
var defaultIgnores = []string{
	"**/.git/**",
	"**/*.swp",
	"**/*.swo",
	"**/*~",
	"**/.DS_Store",
}

var (
	// ErrInvalidPattern is returned when a watch or ignore glob is malformed.
	ErrInvalidPattern = errors.New("invalid watch pattern")
	// ErrAlreadyRunning is returned by a second call to Run.
	ErrAlreadyRunning = errors.New("watch: Run called more than once")
)

type (
	// Config holds the parameters for a Watcher.
	Config struct {
		// Patterns select the files that trigger a rescan, relative to
		// BaseDir. An empty slice matches every non-ignored file.
		Patterns []string
		// Ignore is merged with the built-in ignores.
		Ignore []string
		// Debounce is the quiet period before OnChange fires. Zero or
		// negative values fall back to 250ms.
		Debounce time.Duration
		// ClearScreen writes an ANSI clear sequence to Stdout before each
		// OnChange call.
		ClearScreen bool
		// BaseDir defaults to the working directory.
		BaseDir string
		// OnChange receives the sorted, deduplicated changed paths relative
		// to BaseDir.
		OnChange func(ctx context.Context, changed []string) error
		Stdout   io.Writer
		Logger   *log.Logger
	}

	// InvalidPatternError names the malformed glob.
	InvalidPatternError struct {
		Label   string
		Pattern string
		Cause   error
	}

	// Watcher monitors BaseDir and fires a debounced callback when matching
	// files change. Run must be called exactly once.
	Watcher struct {
		cfg     Config
		fsw     *fsnotify.Watcher
		ignores []string
		stdout  io.Writer
		logger  *log.Logger
		baseDir string
		started atomic.Bool
	}
)

func (e *InvalidPatternError) Error() string {
	return fmt.Sprintf("invalid %s pattern %q: %v", e.Label, e.Pattern, e.Cause)
}

func (e *InvalidPatternError) Unwrap() error { return ErrInvalidPattern }

// Validate checks every pattern is a valid doublestar glob.
func (c Config) Validate() error {
	var errs []error
	for _, set := range []struct {
		label    string
		patterns []string
	}{{"watch", c.Patterns}, {"ignore", c.Ignore}} {
		for _, pat := range set.patterns {
			if pat == "" {
				errs = append(errs, &InvalidPatternError{Label: set.label, Pattern: pat, Cause: errors.New("empty pattern")})
				continue
			}
			if !doublestar.ValidatePattern(pat) {
				errs = append(errs, &InvalidPatternError{Label: set.label, Pattern: pat, Cause: doublestar.ErrBadPattern})
			}
		}
	}
	return errors.Join(errs...)
}

// New resolves BaseDir, validates the patterns and registers every
// non-ignored directory below BaseDir with fsnotify.
func New(cfg Config) (*Watcher, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	baseDir := cfg.BaseDir
	if baseDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("watch: determine working directory: %w", err)
		}
		baseDir = wd
	}
	absBase, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, fmt.Errorf("watch: resolve base directory: %w", err)
	}

	stdout := cfg.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: create fsnotify watcher: %w", err)
	}

	w := &Watcher{
		cfg:     cfg,
		fsw:     fsw,
		ignores: append(append([]string{}, defaultIgnores...), cfg.Ignore...),
		stdout:  stdout,
		logger:  logger,
		baseDir: absBase,
	}

	if err := w.addDirectories(); err != nil {
		if closeErr := fsw.Close(); closeErr != nil {
			logger.Warn("close watcher after init failure", "err", closeErr)
		}
		return nil, err
	}

	return w, nil
}

// BaseDir returns the absolute directory being watched.
func (w *Watcher) BaseDir() string { return w.baseDir }

// Run blocks until ctx is cancelled. It returns nil on cancellation and an
// error when fsnotify fails in a way the watcher cannot recover from.
func (w *Watcher) Run(ctx context.Context) error {
	if !w.started.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}

	delay := w.cfg.Debounce
	if delay <= 0 {
		delay = defaultDebounce
	}
	deb := newDebouncer(delay, w.dispatch, func() {
		w.logger.Warn("rescan still running, retrying after debounce")
	})

	defer func() {
		deb.stop()
		if closeErr := w.fsw.Close(); closeErr != nil {
			w.logger.Warn("close watcher", "err", closeErr)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case evt, ok := <-w.fsw.Events:
			if !ok {
				return errors.New("watch: fsnotify event channel closed unexpectedly")
			}

			rel, err := filepath.Rel(w.baseDir, evt.Name)
			if err != nil {
				rel = evt.Name
			}
			if evt.Has(fsnotify.Create) {
				w.maybeAddDir(evt.Name)
			}
			if w.isIgnored(rel) || !w.matchesPatterns(rel) {
				continue
			}
			w.logger.Debug("catalog file changed", "path", rel, "op", evt.Op.String())
			deb.add(ctx, filepath.ToSlash(rel))

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return errors.New("watch: fsnotify error channel closed unexpectedly")
			}
			if isFatalFsnotifyError(err) {
				return fmt.Errorf("watch: fatal fsnotify error: %w", err)
			}
			w.logger.Warn("fsnotify error", "err", err)
		}
	}
}

func (w *Watcher) dispatch(ctx context.Context, changed []string) {
	if w.cfg.ClearScreen {
		fmt.Fprint(w.stdout, "\033[2J\033[H")
	}
	if w.cfg.OnChange == nil {
		return
	}
	if err := w.cfg.OnChange(ctx, changed); err != nil {
		w.logger.Error("rescan failed", "err", err)
	}
}

// addDirectories registers BaseDir and its non-ignored subdirectories.
// Pattern filtering happens per event.
func (w *Watcher) addDirectories() error {
	walkErr := filepath.WalkDir(w.baseDir, func(path string, d os.DirEntry, walkDirErr error) error {
		if walkDirErr != nil {
			w.logger.Warn("skipping inaccessible path", "path", path, "err", walkDirErr)
			return nil //nolint:nilerr // inaccessible directories are skipped
		}
		if !d.IsDir() {
			return nil
		}
		rel, relErr := filepath.Rel(w.baseDir, path)
		if relErr != nil {
			return nil //nolint:nilerr // unrelatable paths are skipped
		}
		if rel != "." && (w.isIgnored(rel) || w.isIgnored(rel+"/")) {
			return filepath.SkipDir
		}
		if addErr := w.fsw.Add(path); addErr != nil {
			return fmt.Errorf("watch: add directory %q: %w", path, addErr)
		}
		return nil
	})
	if walkErr != nil {
		return fmt.Errorf("watch: walk directory tree: %w", walkErr)
	}
	return nil
}

func (w *Watcher) maybeAddDir(path string) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return
	}
	rel, err := filepath.Rel(w.baseDir, path)
	if err != nil || w.isIgnored(rel) || w.isIgnored(rel+"/") {
		return
	}
	if addErr := w.fsw.Add(path); addErr != nil {
		w.logger.Warn("watch new directory", "path", path, "err", addErr)
	}
}

func (w *Watcher) isIgnored(rel string) bool {
	return matchAny(w.ignores, rel)
}

// matchesPatterns reports whether rel matches a watch pattern; with no
// patterns everything matches.
func (w *Watcher) matchesPatterns(rel string) bool {
	if len(w.cfg.Patterns) == 0 {
		return true
	}
	return matchAny(w.cfg.Patterns, rel)
}

func matchAny(patterns []string, rel string) bool {
	normalized := filepath.ToSlash(rel)
	for _, pat := range patterns {
		if matched, err := doublestar.Match(pat, normalized); err == nil && matched {
			return true
		}
	}
	return false
}

// DefaultIgnores returns a copy of the built-in ignore patterns.
func DefaultIgnores() []string {
	return append([]string(nil), defaultIgnores...)
}
