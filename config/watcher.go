package config

import (
	"path/filepath"

	"github.com/bloeys/nshade/logging"
	"github.com/fsnotify/fsnotify"
	"github.com/mitchellh/go-homedir"
)

// Watcher reloads a config file whenever it changes on disk. Reloads happen on the watcher
// goroutine, and the latest valid config is handed to the main loop through Poll
type Watcher struct {
	Path string

	fsw     *fsnotify.Watcher
	updates chan Config
	done    chan struct{}
}

// Watch starts watching path. The directory is watched rather than the file
// because many editors save by renaming a temp file over the original
func Watch(path string) (*Watcher, error) {

	path, err := homedir.Expand(path)
	if err != nil {
		return nil, err
	}

	path, err = filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if err := fsw.Add(filepath.Dir(path)); err != nil {
		fsw.Close()
		return nil, err
	}

	w := &Watcher{
		Path:    path,
		fsw:     fsw,
		updates: make(chan Config, 1),
		done:    make(chan struct{}),
	}

	go w.watch()
	return w, nil
}

func (w *Watcher) watch() {

	for {
		select {
		case <-w.done:
			return

		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}

			if filepath.Clean(event.Name) != w.Path {
				continue
			}

			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}

			cfg, err := Load(w.Path)
			if err != nil {
				// Half written files are common, the next write event will fix it
				logging.WarnLog.Printf("Ignoring config change: %s\n", err)
				continue
			}

			w.publish(cfg)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			logging.WarnLog.Printf("Config watcher error: %s\n", err)
		}
	}
}

// publish replaces any config that was not polled yet, only the newest one matters
func (w *Watcher) publish(cfg Config) {

	select {
	case <-w.updates:
	default:
	}

	w.updates <- cfg
}

// Poll returns the newest reloaded config, if any, without blocking
func (w *Watcher) Poll() (Config, bool) {

	select {
	case cfg := <-w.updates:
		return cfg, true
	default:
		return Config{}, false
	}
}

func (w *Watcher) Close() error {
	close(w.done)
	return w.fsw.Close()
}
