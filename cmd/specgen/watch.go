package main

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

const watchDebounce = 100 * time.Millisecond

// watchDefs runs generate once and again after every change to the
// definitions file, until ctx is done. Generation errors are reported to w
// and do not stop the watch.
func watchDefs(ctx context.Context, w io.Writer, cfg generateConfig, debounce time.Duration) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	// editors often replace the file, so watch its directory
	target := filepath.Clean(cfg.defsFile)
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("failed to watch directory %s: %w", filepath.Dir(target), err)
	}

	run := func() {
		if err := generate(w, cfg); err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
		}
	}
	run()

	fire := make(chan struct{}, 1)
	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounce, func() {
				select {
				case fire <- struct{}{}:
				default:
				}
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(w, "Watch error: %v\n", err)

		case <-fire:
			fmt.Fprintf(w, "[watch] %s changed\n", cfg.defsFile)
			run()
		}
	}
}
