package prefabs

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ChangeKind says what sort of file changed.
type ChangeKind int

const (
	SceneChanged ChangeKind = iota
	ScriptChanged
)

// Change is one debounced file event.
type Change struct {
	Path string
	Kind ChangeKind
}

const debounce = 100 * time.Millisecond

// Watcher reports edits to scene documents and motion scripts. Events are
// delivered on Changes from a background goroutine; consumers drain it from
// their own loop.
type Watcher struct {
	watcher *fsnotify.Watcher
	Changes chan Change
	Errors  chan error
	closeCh chan struct{}
	done    chan struct{}
	once    sync.Once
}

// NewWatcher watches dirs (non-recursively).
func NewWatcher(dirs ...string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	for _, dir := range dirs {
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return nil, err
		}
	}

	watcher := &Watcher{
		watcher: w,
		Changes: make(chan Change, 16),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
		done:    make(chan struct{}),
	}
	go watcher.run()
	return watcher, nil
}

// WatchScene watches the directory holding path, plus prefabs/scripts when
// it exists.
func WatchScene(path string) (*Watcher, error) {
	dir := filepath.Dir(path)
	dirs := []string{dir}
	scripts := filepath.Join("prefabs", "scripts")
	if info, err := os.Stat(scripts); err == nil && info.IsDir() && filepath.Clean(dir) != scripts {
		dirs = append(dirs, scripts)
	}
	return NewWatcher(dirs...)
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.done
		close(w.Changes)
		close(w.Errors)
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.done)
	last := make(map[string]time.Time)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			kind, ok := classify(event.Name)
			if !ok {
				continue
			}
			now := time.Now()
			if t, ok := last[event.Name]; ok && now.Sub(t) < debounce {
				continue
			}
			last[event.Name] = now
			select {
			case w.Changes <- Change{Path: event.Name, Kind: kind}:
			case <-w.closeCh:
				return
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
		case <-w.closeCh:
			return
		}
	}
}

func classify(path string) (ChangeKind, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return SceneChanged, true
	case ".tengo":
		return ScriptChanged, true
	}
	return 0, false
}
