package config

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads configuration when one of the loaded files changes
type Watcher struct {
	loader     *Loader
	customPath string
	files      map[string]bool
	fs         *fsnotify.Watcher
	updates    chan *Config
	errors     chan error
}

// NewWatcher watches the files merged by loader's last load. customPath is
// passed back to LoadConfig on every reload.
func NewWatcher(loader *Loader, customPath string) (*Watcher, error) {
	files := loader.LoadedFiles()
	if len(files) == 0 {
		return nil, fmt.Errorf("no config file loaded")
	}

	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	w := &Watcher{
		loader:     loader,
		customPath: customPath,
		files:      make(map[string]bool, len(files)),
		fs:         fs,
		updates:    make(chan *Config, 1),
		errors:     make(chan error, 1),
	}

	// Watch directories so editors that replace the file are still seen
	dirs := make(map[string]bool)
	for _, f := range files {
		w.files[filepath.Clean(f)] = true
		dirs[filepath.Dir(f)] = true
	}
	for dir := range dirs {
		if err := fs.Add(dir); err != nil {
			_ = fs.Close()
			return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}

	return w, nil
}

// Updates delivers each successfully reloaded config
func (w *Watcher) Updates() <-chan *Config {
	return w.updates
}

// Errors delivers reload and watch failures
func (w *Watcher) Errors() <-chan error {
	return w.errors
}

// Run processes events until ctx is done, then closes the watcher and both
// channels
func (w *Watcher) Run(ctx context.Context) error {
	defer close(w.errors)
	defer close(w.updates)
	defer func() { _ = w.fs.Close() }()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fs.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if !w.files[filepath.Clean(event.Name)] {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			cfg, err := w.loader.LoadConfig(w.customPath)
			if err != nil {
				w.send(ctx, nil, err)
				continue
			}
			w.send(ctx, cfg, nil)

		case err, ok := <-w.fs.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.send(ctx, nil, err)
		}
	}
}

func (w *Watcher) send(ctx context.Context, cfg *Config, err error) {
	if err != nil {
		// Errors are dropped while the previous one is unread
		select {
		case w.errors <- err:
		default:
		}
		return
	}
	select {
	case w.updates <- cfg:
	case <-ctx.Done():
	}
}
