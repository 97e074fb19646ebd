// Package prefs persists the flat user-preference map to a YAML file and
// watches that file for outside edits.
package prefs

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"

	"github.com/starford/notebookd/internal/checksum"
)

const debounce = 200 * time.Millisecond

// File is a preferences file. It remembers the checksum of the content it
// last read or wrote so that its own writes are not reported as changes.
type File struct {
	path string
	seen checksum.Tracker
}

// NewFile returns the preferences file at path. The file need not exist.
func NewFile(path string) *File {
	return &File{path: path}
}

// Path returns the file path.
func (f *File) Path() string { return f.path }

// Load reads the preferences. A missing file yields an empty map.
func (f *File) Load() (map[string]any, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]any{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("prefs: read %s: %w", f.path, err)
	}
	values := map[string]any{}
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("prefs: parse %s: %w", f.path, err)
	}
	f.remember(data)
	return values, nil
}

// Save atomically replaces the file with values.
func (f *File) Save(values map[string]any) error {
	if values == nil {
		values = map[string]any{}
	}
	data, err := yaml.Marshal(values)
	if err != nil {
		return fmt.Errorf("prefs: encode: %w", err)
	}
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("prefs: mkdir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".prefs-tmp-*")
	if err != nil {
		return fmt.Errorf("prefs: create temp: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("prefs: write temp: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("prefs: close temp: %w", err)
	}
	// Record before the rename so the watcher never sees an unknown sum.
	f.remember(data)
	if err := os.Rename(tmpName, f.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("prefs: rename: %w", err)
	}
	return nil
}

func (f *File) remember(data []byte) { f.seen.Remember(data) }

// changed reports whether data differs from the last known content and
// records it.
func (f *File) changed(data []byte) bool { return f.seen.Changed(data) }

// Watch watches the file's directory until ctx is cancelled and calls
// onChange, debounced, whenever the file's content changes to something
// this File did not itself read or write.
func (f *File) Watch(ctx context.Context, logger *slog.Logger, onChange func()) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("prefs: mkdir: %w", err)
	}
	if err := w.Add(dir); err != nil {
		return fmt.Errorf("prefs: watch %s: %w", dir, err)
	}
	target := filepath.Clean(f.path)
	logger.Info("prefs: watching", slog.String("path", target))

	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			logger.Info("prefs: watcher stopped")
			return nil

		case <-fire:
			fire = nil
			data, err := os.ReadFile(target)
			if err != nil {
				if !errors.Is(err, fs.ErrNotExist) {
					logger.Warn("prefs: read failed", slog.String("error", err.Error()))
				}
				continue
			}
			if !f.changed(data) {
				continue
			}
			logger.Debug("prefs: changed", slog.String("path", target))
			onChange()

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target || ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			fire = timer.C

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("prefs: watcher error", slog.String("error", watchErr.Error()))
		}
	}
}
