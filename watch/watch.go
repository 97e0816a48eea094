package watch

import (
	"log"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounce coalesces the bursts of events editors emit on save.
const debounce = 100 * time.Millisecond

// ShaderWatcher watches a shader source file and invokes onChange after each
// modification. The callback runs on the watcher goroutine; callers forward
// it to the render loop themselves (shader reload must not race a frame).
type ShaderWatcher struct {
	watcher *fsnotify.Watcher
	done    chan struct{}
}

// Watch starts watching path. The containing directory is watched rather
// than the file itself so atomic-rename saves keep working.
func Watch(path string, onChange func()) (*ShaderWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return nil, err
	}

	sw := &ShaderWatcher{watcher: w, done: make(chan struct{})}
	go sw.run(abs, onChange)
	return sw, nil
}

func (sw *ShaderWatcher) run(abs string, onChange func()) {
	var timer *time.Timer
	for {
		select {
		case <-sw.done:
			return
		case ev, ok := <-sw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != abs {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounce, onChange)
		case err, ok := <-sw.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("shader watcher: %v", err)
		}
	}
}

func (sw *ShaderWatcher) Close() error {
	close(sw.done)
	return sw.watcher.Close()
}
