package mcp

// Implementation Plan:
// 1. Use fsnotify to watch loaded target images
// 2. Debounce file system events (500ms)
// 3. Reload each changed target on debounce timeout
// 4. Handle errors gracefully (keep old image on failure)
// 5. Thread-safe start/stop

import (
	"context"
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Reloadable is an interface for components that can be reloaded.
type Reloadable interface {
	Reload(ctx context.Context) error
}

// ImageWatcher watches target executables and reloads their targets when
// the file on disk changes, so a rebuilt binary is picked up without
// restarting the session.
type ImageWatcher struct {
	watcher      *fsnotify.Watcher
	debounceTime time.Duration

	mu      sync.Mutex
	targets map[string]Reloadable // keyed by absolute image path
	started bool

	stopCh   chan struct{}
	doneCh   chan struct{}
	stopOnce sync.Once
}

// NewImageWatcher creates a watcher with no images registered.
func NewImageWatcher() (*ImageWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &ImageWatcher{
		watcher:      watcher,
		debounceTime: 500 * time.Millisecond,
		targets:      make(map[string]Reloadable),
		stopCh:       make(chan struct{}),
		doneCh:       make(chan struct{}),
	}, nil
}

// Watch registers the image at path and reloads r when it changes. The
// parent directory is watched rather than the file itself: editors and
// linkers replace files instead of rewriting them in place.
func (iw *ImageWatcher) Watch(path string, r Reloadable) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	if err := iw.watcher.Add(filepath.Dir(abs)); err != nil {
		return err
	}

	iw.mu.Lock()
	iw.targets[abs] = r
	iw.mu.Unlock()
	return nil
}

// Start begins watching for image changes. Calling it twice is a no-op.
func (iw *ImageWatcher) Start(ctx context.Context) {
	iw.mu.Lock()
	if iw.started {
		iw.mu.Unlock()
		return
	}
	iw.started = true
	iw.mu.Unlock()
	go iw.watch(ctx)
}

// Stop stops the watcher. Safe to call whether or not Start ran.
func (iw *ImageWatcher) Stop() {
	iw.stopOnce.Do(func() {
		close(iw.stopCh)
		iw.mu.Lock()
		started := iw.started
		iw.mu.Unlock()
		if started {
			<-iw.doneCh // Wait for goroutine to finish
		}
		iw.watcher.Close()
	})
}

func (iw *ImageWatcher) watch(ctx context.Context) {
	defer close(iw.doneCh)

	var timer *time.Timer
	var timerCh <-chan time.Time
	pending := make(map[string]struct{})

	for {
		select {
		case event, ok := <-iw.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}

			abs, err := filepath.Abs(event.Name)
			if err != nil {
				continue
			}
			iw.mu.Lock()
			_, watched := iw.targets[abs]
			iw.mu.Unlock()
			if !watched {
				continue
			}

			pending[abs] = struct{}{}
			if timer == nil {
				timer = time.NewTimer(iw.debounceTime)
			} else {
				timer.Reset(iw.debounceTime)
			}
			timerCh = timer.C

		case <-timerCh:
			iw.reloadPending(ctx, pending)
			pending = make(map[string]struct{})
			timerCh = nil

		case err, ok := <-iw.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("image watcher error: %v", err)

		case <-iw.stopCh:
			return
		case <-ctx.Done():
			return
		}
	}
}

func (iw *ImageWatcher) reloadPending(ctx context.Context, pending map[string]struct{}) {
	for path := range pending {
		iw.mu.Lock()
		r, ok := iw.targets[path]
		iw.mu.Unlock()
		if !ok {
			continue
		}

		if err := r.Reload(ctx); err != nil {
			// Keep serving the old image; a half-written binary will
			// trigger another event when the build finishes.
			log.Printf("reloading target image %s: %v", path, err)
			continue
		}
		log.Printf("target image %s changed on disk, reloaded", path)
	}
}
