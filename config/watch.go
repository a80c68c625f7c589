// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"cogentcore.org/core/base/errors"
	"github.com/fsnotify/fsnotify"
)

// WatchDelay is how long the settings file must stay unchanged after a
// write before [Watch] reads it.
var WatchDelay = 100 * time.Millisecond

// Watch watches the given settings file and, once it has settled after
// being written, reads it on top of a copy of base and calls fn with the
// result. fn is called on the watcher goroutine; callers that own a viewer
// must post the update to its loop. Watch blocks until the context is done.
// Read errors and empty files are logged and the update is skipped.
func Watch(ctx context.Context, filename string, base *Config, fn func(cfg *Config)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("config.Watch: %w", err)
	}
	defer w.Close()

	// editors often replace the file, so watch the directory
	abs, err := filepath.Abs(filename)
	if err != nil {
		return fmt.Errorf("config.Watch: %w", err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("config.Watch: %w", err)
	}
	// writers truncate before writing, so wait for the file to settle
	settle := time.NewTimer(WatchDelay)
	settle.Stop()
	defer settle.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs || !ev.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			settle.Reset(WatchDelay)
		case <-settle.C:
			if cfg := reload(abs, base); cfg != nil {
				fn(cfg)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			errors.Log(err)
		}
	}
}

// reload reads the settings file on top of a copy of base, returning nil
// if it cannot be read or is empty.
func reload(filename string, base *Config) *Config {
	b, err := os.ReadFile(filename)
	if errors.Log(err) != nil {
		return nil
	}
	if len(bytes.TrimSpace(b)) == 0 {
		slog.Warn("config: ignoring empty settings file", "file", filename)
		return nil
	}
	cfg := base.Copy()
	if errors.Log(cfg.Read(b)) != nil {
		return nil
	}
	slog.Info("config: reloaded settings", "file", filename)
	return cfg
}
