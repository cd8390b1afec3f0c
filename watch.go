package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// watchAndCheck runs the check, then runs it again after every change under
// the resource and source directories until ctx is done. Changes are
// debounced by cfg.WatchDebounce. Failures of a single run are logged.
func watchAndCheck(ctx context.Context, cfg *config, log zerolog.Logger, w io.Writer) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	dirs, err := watchDirs(cfg)
	if err != nil {
		return err
	}
	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch directory %s: %w", dir, err)
		}
	}
	log.Info().Int("directories", len(dirs)).Msg("Watching for changes")

	run := func() {
		if err := reportCheck(w, cfg, log); err != nil && !errors.Is(err, errChecksFailed) {
			log.Error().Err(err).Msg("Check failed")
		}
	}
	run()

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if event.Op&fsnotify.Create == fsnotify.Create {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := watcher.Add(event.Name); err != nil {
						log.Warn().Err(err).Str("dir", event.Name).Msg("Failed to watch new directory")
					}
				}
			}
			log.Debug().Str("file", event.Name).Str("op", event.Op.String()).Msg("File changed")
			pending = time.After(cfg.WatchDebounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Error().Err(err).Msg("Watcher error")

		case <-pending:
			pending = nil
			fmt.Fprintln(w)
			run()
		}
	}
}

// watchDirs returns the resource directory and every non-excluded directory
// of the source tree. fsnotify watches are not recursive.
func watchDirs(cfg *config) ([]string, error) {
	exclude, err := compileExcludes(cfg.Exclude)
	if err != nil {
		return nil, err
	}
	dirs := []string{cfg.LocalesDir}
	err = filepath.WalkDir(cfg.SrcDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(cfg.SrcDir, path)
		if err != nil {
			return err
		}
		if rel != "." && exclude.match(filepath.ToSlash(rel)+"/") {
			return filepath.SkipDir
		}
		if path != cfg.LocalesDir {
			dirs = append(dirs, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning source directory: %w", err)
	}
	return dirs, nil
}
