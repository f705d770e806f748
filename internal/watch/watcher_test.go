// SPDX-License-Identifier: MPL-2.0

package watch

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/planbuild/planbuild/internal/testutil"
)

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"zero value", Config{}, false},
		{"catalog patterns", Config{Patterns: []string{"**/*.cue", "**/*.{toml,yaml}"}}, false},
		{"ignore patterns", Config{Ignore: []string{"**/tmp/**"}}, false},
		{"empty pattern", Config{Patterns: []string{""}}, true},
		{"unclosed class", Config{Patterns: []string{"[invalid"}}, true},
		{"bad ignore", Config{Ignore: []string{"{a,b"}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.cfg.Validate()
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidPattern) {
					t.Errorf("Validate() = %v, want ErrInvalidPattern", err)
				}
				var patErr *InvalidPatternError
				if !errors.As(err, &patErr) {
					t.Errorf("Validate() should return *InvalidPatternError, got %T", err)
				}
				return
			}
			if err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
		})
	}
}

func TestNew_RejectsInvalidPatterns(t *testing.T) {
	t.Parallel()

	_, err := New(Config{BaseDir: t.TempDir(), Patterns: []string{"[x"}})
	if !errors.Is(err, ErrInvalidPattern) {
		t.Errorf("New() error = %v, want ErrInvalidPattern", err)
	}
}

func TestMatching(t *testing.T) {
	t.Parallel()

	w := &Watcher{
		cfg:     Config{Patterns: []string{"**/*.cue", "mods/*.toml"}},
		ignores: append(DefaultIgnores(), "**/scratch/**"),
	}

	tests := []struct {
		rel     string
		ignored bool
		matches bool
	}{
		{"pieces.cue", false, true},
		{"vanilla/hammer.cue", false, true},
		{"mods/extra.toml", false, true},
		{"mods/deep/extra.toml", false, false},
		{"notes.txt", false, false},
		{".git/HEAD", true, false},
		{"pieces.cue.swp", true, false},
		{"scratch/tmp.cue", true, true},
	}

	for _, tt := range tests {
		if got := w.isIgnored(tt.rel); got != tt.ignored {
			t.Errorf("isIgnored(%q) = %v, want %v", tt.rel, got, tt.ignored)
		}
		if got := w.matchesPatterns(tt.rel); got != tt.matches {
			t.Errorf("matchesPatterns(%q) = %v, want %v", tt.rel, got, tt.matches)
		}
	}
}

func TestDefaultIgnores_ReturnsCopy(t *testing.T) {
	t.Parallel()

	got := DefaultIgnores()
	got[0] = "changed"
	if DefaultIgnores()[0] == "changed" {
		t.Error("DefaultIgnores() must return a copy")
	}
}

func TestWatcher_RescansOnCatalogChange(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	changes := make(chan []string, 4)

	w, err := New(Config{
		BaseDir:  dir,
		Patterns: []string{"**/*.cue"},
		Debounce: 50 * time.Millisecond,
		Stdout:   &bytes.Buffer{},
		OnChange: func(_ context.Context, changed []string) error {
			changes <- changed
			return nil
		},
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if w.BaseDir() == "" || !filepath.IsAbs(w.BaseDir()) {
		t.Errorf("BaseDir() = %q, want absolute", w.BaseDir())
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	errCh := make(chan error, 1)
	go func() { errCh <- w.Run(ctx) }()

	// Give fsnotify a moment before writing.
	time.Sleep(50 * time.Millisecond)
	for _, name := range []string{"notes.txt", "pieces.cue", "more.cue"} {
		testutil.MustWriteFile(t, filepath.Join(dir, name), "tables: []\n")
	}

	var got []string
	deadline := time.After(5 * time.Second)
	for !slices.Contains(got, "pieces.cue") || !slices.Contains(got, "more.cue") {
		select {
		case batch := <-changes:
			got = append(got, batch...)
		case <-deadline:
			t.Fatalf("timed out; changes so far: %v", got)
		}
	}
	if slices.Contains(got, "notes.txt") {
		t.Errorf("non-matching file triggered a rescan: %v", got)
	}

	cancel()
	if err := <-errCh; err != nil {
		t.Errorf("Run() error = %v", err)
	}
	if err := w.Run(context.Background()); !errors.Is(err, ErrAlreadyRunning) {
		t.Errorf("second Run() = %v, want ErrAlreadyRunning", err)
	}
}
