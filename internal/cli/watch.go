package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	apperrors "github.com/matzehuels/codediagram/pkg/errors"
)

// watchDebounce collapses the burst of events an editor save produces.
const watchDebounce = 200 * time.Millisecond

// watchFile calls regenerate after every debounced change to path until
// ctx is cancelled. The parent directory is watched so that editors which
// save by rename are still seen. Errors from regenerate are reported and
// the loop continues.
func watchFile(ctx context.Context, path string, debounce time.Duration, regenerate func() error) error {
	logger := loggerFromContext(ctx)

	abs, err := filepath.Abs(path)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInvalidPath, err, "resolve %s", path)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Close()

	if err := w.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}
	printInfo("Watching %s (Ctrl+C to stop)", path)

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !relevant(event, abs) {
				continue
			}
			logger.Debug("file event", "op", event.Op.String(), "path", event.Name)
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			if err := regenerate(); err != nil {
				printError("%s", apperrors.UserMessage(err))
				logger.Debug("regenerate failed", "error", err)
			}

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", "error", err)
		}
	}
}

// relevant reports whether event changes the contents of target.
func relevant(event fsnotify.Event, target string) bool {
	if filepath.Clean(event.Name) != target {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create)
}
