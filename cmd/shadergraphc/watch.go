// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
)

// settle is how long the document must stay quiet before recompiling.
// Editors often write a file in several steps.
const settle = 100 * time.Millisecond

// watch runs build once and again after every change to path until ctx is
// done. Build errors are logged, not returned, so a broken save does not
// end the session.
func watch(ctx context.Context, e *env, path string, build func() error) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "create watcher")
	}
	defer w.Close()

	// Watch the directory: saving through a rename replaces the file and
	// would drop a watch on the file itself.
	abs, err := filepath.Abs(path)
	if err != nil {
		return errors.Wrapf(err, "resolve %s", path)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		return errors.Wrapf(err, "watch %s", filepath.Dir(abs))
	}

	rebuild := func() {
		if err := build(); err != nil {
			e.log.Error("compile failed", "path", path, "error", err)
			return
		}
		e.log.Info("compiled", "path", path)
	}
	rebuild()

	timer := time.NewTimer(settle)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			e.log.Debug("document changed", "op", ev.Op.String())
			timer.Reset(settle)

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			e.log.Warn("watch error", "error", err)

		case <-timer.C:
			rebuild()
		}
	}
}
