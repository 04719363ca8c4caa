package dataset

import (
	"context"
	"errors"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const reloadDebounce = 250 * time.Millisecond

// Watch reloads the dataset whenever its file changes, until ctx is done.
// Editors often replace files instead of writing in place, so the parent
// directory is watched and events are filtered by name. Bursts of events
// are debounced into one reload.
func (s *Source) Watch(ctx context.Context, onReload func(rows int, err error)) error {
	path := s.Path()
	if path == "" {
		return errors.New("watch: only file-backed sources can be watched")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return err
	}
	go s.watchLoop(ctx, fw, abs, onReload)
	return nil
}

func (s *Source) watchLoop(ctx context.Context, fw *fsnotify.Watcher, path string, onReload func(int, error)) {
	defer fw.Close()
	// nil until a change arrives; re-armed by every event in a burst
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-fw.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != path {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				fire = time.After(reloadDebounce)
			}
		case <-fire:
			fire = nil
			t, err := s.Reload(ctx)
			if err == nil {
				s.logger.Info("node dataset reloaded after change", zap.Int("rows", t.Len()))
			}
			if onReload != nil {
				onReload(t.Len(), err)
			}
		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			s.logger.Warn("dataset watch error", zap.Error(err))
		}
	}
}
