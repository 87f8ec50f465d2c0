// Package watcher re-runs a build whenever component sources change. It
// watches a directory tree, debounces change bursts, and invokes a rebuild
// callback from a single goroutine so builds never overlap.
package watcher

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce is the settle time applied when none is configured.
const DefaultDebounce = 500 * time.Millisecond

// Run watches root and calls rebuild after changes settle, until ctx is
// cancelled. Directories created while watching are picked up; dot
// directories and build output are ignored.
func Run(ctx context.Context, root string, debounce time.Duration, rebuild func(), log *zap.Logger) error {
	if log == nil {
		log = zap.NewNop()
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fw.Close()

	if err := addRecursive(fw, root); err != nil {
		return err
	}
	log.Info("watching for changes", zap.String("root", root))

	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	armed := false
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if skipPath(root, ev.Name) {
				continue
			}
			log.Debug("source changed", zap.String("path", ev.Name), zap.String("op", ev.Op.String()))
			if ev.Op&fsnotify.Create != 0 {
				if info, serr := os.Stat(ev.Name); serr == nil && info.IsDir() {
					if aerr := addRecursive(fw, ev.Name); aerr != nil {
						log.Warn("watching new directory failed", zap.Error(aerr))
					}
				}
			}
			timer.Reset(debounce)
			armed = true

		case werr, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			log.Warn("watch error", zap.Error(werr))

		case <-timer.C:
			if !armed {
				continue
			}
			armed = false
			rebuild()
		}
	}
}

func addRecursive(fw *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && skipDir(d.Name()) {
			return filepath.SkipDir
		}
		return fw.Add(path)
	})
}

func skipDir(name string) bool {
	return strings.HasPrefix(name, ".") || name == "build"
}

// skipPath reports whether path lies under an ignored directory, judged
// relative to the watch root so dotted ancestors of root don't count.
func skipPath(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = path
	}
	for _, part := range strings.Split(filepath.ToSlash(rel), "/") {
		if part != "." && part != ".." && skipDir(part) {
			return true
		}
	}
	return false
}
