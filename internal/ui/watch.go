package ui

import (
	"path/filepath"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/fsnotify/fsnotify"
)

// filesChangedMsg is sent after a watched file changed and writes settled.
type filesChangedMsg struct {
	Path string
}

// watchErrMsg carries a watcher failure; watching stops after it.
type watchErrMsg struct {
	Err error
}

// FileWatcher reports changes to a fixed set of files. Parent directories are watched so
// editors that replace files by rename are still seen.
type FileWatcher struct {
	w        *fsnotify.Watcher
	paths    []string
	files    map[string]bool
	debounce time.Duration
}

// NewFileWatcher watches paths.
func NewFileWatcher(paths []string, debounce time.Duration) (*FileWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	fw := &FileWatcher{w: w, paths: append([]string(nil), paths...), files: map[string]bool{}, debounce: debounce}
	dirs := map[string]bool{}
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			_ = w.Close()
			return nil, err
		}
		fw.files[abs] = true
		dir := filepath.Dir(abs)
		if dirs[dir] {
			continue
		}
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return nil, err
		}
		dirs[dir] = true
	}
	return fw, nil
}

// Paths returns the paths as given.
func (fw *FileWatcher) Paths() []string { return fw.paths }

// Wait returns a command that blocks until a watched file is written, created or
// renamed, lets further events settle for the debounce period, then reports it.
func (fw *FileWatcher) Wait() tea.Cmd {
	if fw == nil {
		return nil
	}
	return func() tea.Msg {
		for {
			select {
			case ev, ok := <-fw.w.Events:
				if !ok {
					return nil
				}
				if !fw.relevant(ev) {
					continue
				}
				time.Sleep(fw.debounce)
				fw.drain()
				return filesChangedMsg{Path: ev.Name}
			case err, ok := <-fw.w.Errors:
				if !ok {
					return nil
				}
				return watchErrMsg{Err: err}
			}
		}
	}
}

func (fw *FileWatcher) relevant(ev fsnotify.Event) bool {
	if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return false
	}
	abs, err := filepath.Abs(ev.Name)
	return err == nil && fw.files[abs]
}

func (fw *FileWatcher) drain() {
	for {
		select {
		case <-fw.w.Events:
		default:
			return
		}
	}
}

// Close stops watching.
func (fw *FileWatcher) Close() error {
	if fw == nil {
		return nil
	}
	return fw.w.Close()
}
