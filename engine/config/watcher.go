package config

import (
	"path/filepath"
	"sync"

	"github.com/Rob2309/vulkan-explained/engine/core"
	"github.com/fsnotify/fsnotify"
)

// ConfigWatcher reloads a config file whenever it is written or replaced.
// Successfully parsed configs arrive on Configs, failures on Errors.
type ConfigWatcher struct {
	path string

	fsnotify *fsnotify.Watcher
	configs  chan *Config
	errors   chan error
	done     chan struct{}

	mutex    sync.Mutex
	isClosed bool
}

func NewConfigWatcher(path string) (*ConfigWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	// Editors often replace the file instead of writing it, which drops a
	// watch on the file itself. Watch the directory and filter by name.
	if err := fsWatch.Add(filepath.Dir(abs)); err != nil {
		fsWatch.Close()
		return nil, err
	}

	cw := &ConfigWatcher{
		path:     abs,
		fsnotify: fsWatch,
		configs:  make(chan *Config),
		errors:   make(chan error),
		done:     make(chan struct{}),
	}
	go cw.start()
	return cw, nil
}

func (cw *ConfigWatcher) Configs() <-chan *Config { return cw.configs }

func (cw *ConfigWatcher) Errors() <-chan error { return cw.errors }

func (cw *ConfigWatcher) Close() error {
	cw.mutex.Lock()
	defer cw.mutex.Unlock()
	if cw.isClosed {
		return core.ErrWatcherClosed
	}
	cw.isClosed = true
	close(cw.done)
	return nil
}

func (cw *ConfigWatcher) start() {
	defer func() {
		cw.fsnotify.Close()
		close(cw.configs)
		close(cw.errors)
	}()

	for {
		select {
		case e, ok := <-cw.fsnotify.Events:
			if !ok {
				return
			}
			if filepath.Clean(e.Name) != cw.path {
				continue
			}
			// Handle create or modify events
			if e.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			cfg, err := LoadConfig(cw.path)
			if err != nil {
				core.LogWarn("config reload failed: %s", err)
				if !cw.send(nil, err) {
					return
				}
				continue
			}
			core.LogInfo("config %s reloaded", cw.path)
			if !cw.send(cfg, nil) {
				return
			}

		case err, ok := <-cw.fsnotify.Errors:
			if !ok {
				return
			}
			core.LogError(err.Error())
			if !cw.send(nil, err) {
				return
			}

		case <-cw.done:
			return
		}
	}
}

// send delivers a result unless the watcher is closed first.
func (cw *ConfigWatcher) send(cfg *Config, err error) bool {
	if err != nil {
		select {
		case cw.errors <- err:
			return true
		case <-cw.done:
			return false
		}
	}
	select {
	case cw.configs <- cfg:
		return true
	case <-cw.done:
		return false
	}
}
