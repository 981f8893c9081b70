package loader

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/teranos/shapeshare/errors"
	"github.com/teranos/shapeshare/logger"
	"github.com/teranos/shapeshare/model"
)

// DefaultDebounce collapses the burst of events an editor save produces.
const DefaultDebounce = 500 * time.Millisecond

// ReloadCallback receives each successfully reloaded model.
type ReloadCallback func(*model.Model) error

// ModelWatcher reloads a model file whenever it changes on disk.
type ModelWatcher struct {
	path           string
	watcher        *fsnotify.Watcher
	callbacks      []ReloadCallback
	mu             sync.Mutex
	reloadMu       sync.Mutex
	debounceTimer  *time.Timer
	debouncePeriod time.Duration
	log            *zap.SugaredLogger
}

// NewModelWatcher watches the directory holding path so that editors which
// replace the file on save are still observed.
func NewModelWatcher(path string) (*ModelWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrapf(err, "resolve %s", path)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create fsnotify watcher")
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		watcher.Close()
		return nil, errors.Wrapf(err, "failed to watch model directory %s", filepath.Dir(abs))
	}

	return &ModelWatcher{
		path:           abs,
		watcher:        watcher,
		debouncePeriod: DefaultDebounce,
		log:            logger.Named("watch"),
	}, nil
}

// SetDebounce overrides the debounce period. Call before Run.
func (mw *ModelWatcher) SetDebounce(d time.Duration) {
	mw.mu.Lock()
	defer mw.mu.Unlock()
	mw.debouncePeriod = d
}

// OnReload registers a callback run after every successful reload.
func (mw *ModelWatcher) OnReload(callback ReloadCallback) {
	mw.mu.Lock()
	defer mw.mu.Unlock()
	mw.callbacks = append(mw.callbacks, callback)
}

// Run processes file events until ctx is done or the watcher is closed.
func (mw *ModelWatcher) Run(ctx context.Context) error {
	defer mw.stopTimer()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-mw.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != mw.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			mw.log.Debugw("Model change detected",
				logger.FieldFile, event.Name,
				"op", event.Op.String())
			mw.scheduleReload()

		case err, ok := <-mw.watcher.Errors:
			if !ok {
				return nil
			}
			mw.log.Warnw("Model watcher error", logger.FieldError, err)
		}
	}
}

// Close stops watching.
func (mw *ModelWatcher) Close() error {
	mw.stopTimer()
	return mw.watcher.Close()
}

func (mw *ModelWatcher) scheduleReload() {
	mw.mu.Lock()
	defer mw.mu.Unlock()

	if mw.debounceTimer != nil {
		mw.debounceTimer.Stop()
	}
	mw.debounceTimer = time.AfterFunc(mw.debouncePeriod, func() {
		if err := mw.reload(); err != nil {
			mw.log.Errorw("Model reload failed",
				logger.FieldFile, mw.path,
				logger.FieldError, err)
		}
	})
}

func (mw *ModelWatcher) stopTimer() {
	mw.mu.Lock()
	defer mw.mu.Unlock()
	if mw.debounceTimer != nil {
		mw.debounceTimer.Stop()
		mw.debounceTimer = nil
	}
}

// reload loads the model and runs the callbacks. Reloads never overlap, so
// two regenerations cannot write the same output at once.
func (mw *ModelWatcher) reload() error {
	mw.reloadMu.Lock()
	defer mw.reloadMu.Unlock()

	m, err := LoadFile(mw.path)
	if err != nil {
		return err
	}
	mw.log.Infow("Model reloaded", logger.FieldFile, mw.path)

	mw.mu.Lock()
	callbacks := make([]ReloadCallback, len(mw.callbacks))
	copy(callbacks, mw.callbacks)
	mw.mu.Unlock()

	for _, callback := range callbacks {
		if err := callback(m); err != nil {
			mw.log.Warnw("Model reload callback error", logger.FieldError, err)
		}
	}
	return nil
}
