package hellomesh

import (
	"fmt"
	"path/filepath"
	"slices"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/gekko3d/hellomesh/rt/core"
)

// ConfigWatchModule reloads the config file when it changes on disk and turns
// differences in shape, wireframe or scale into control events.
type ConfigWatchModule struct {
	Path   string
	Config Config
}

func (m ConfigWatchModule) Install(app *App, cmd *Commands) {
	_, events := ensureControlResources(app, cmd, m.Config)
	w, err := NewConfigWatcher(m.Path, m.Config, events, app.Logger())
	if err != nil {
		panic(err)
	}
	cmd.AddResources(w)
	cmd.OnShutdown(func() {
		if err := w.Close(); err != nil {
			app.Logger().Warnf("Config watcher close: %v", err)
		}
	})
}

// ConfigWatcher owns an fsnotify watcher on the config file's directory;
// editors often replace the file rather than write it in place.
type ConfigWatcher struct {
	path    string
	watcher *fsnotify.Watcher
	events  *ControlEvents
	log     Logger

	mu      sync.Mutex
	current Config

	done chan struct{}
	wg   sync.WaitGroup
}

func NewConfigWatcher(path string, current Config, events *ControlEvents, log Logger) (*ConfigWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("config watch %s: %w", path, err)
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("config watch: %w", err)
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("config watch %s: %w", path, err)
	}

	w := &ConfigWatcher{
		path:    abs,
		watcher: watcher,
		events:  events,
		log:     log,
		current: current,
		done:    make(chan struct{}),
	}
	w.wg.Add(1)
	go w.loop()
	log.Infof("Watching %s for changes", abs)
	return w, nil
}

// Current returns the last config successfully loaded.
func (w *ConfigWatcher) Current() Config {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.current
}

func (w *ConfigWatcher) loop() {
	defer w.wg.Done()
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path || !ev.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			w.reload()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Warnf("Config watcher: %v", err)
		}
	}
}

func (w *ConfigWatcher) reload() {
	next, err := LoadConfig(w.path)
	if err != nil {
		w.log.Warnf("Ignoring config change: %v", err)
		return
	}

	w.mu.Lock()
	prev := w.current
	w.current = next
	w.mu.Unlock()

	for _, ev := range configEvents(prev, next) {
		w.events.Push(ev)
	}
}

func (w *ConfigWatcher) Close() error {
	close(w.done)
	err := w.watcher.Close()
	w.wg.Wait()
	return err
}

// configEvents lists the control events that move prev to next.
func configEvents(prev, next Config) []ControlEvent {
	var events []ControlEvent
	if prev.InitialShape() != next.InitialShape() {
		events = append(events, ShapeSelected{Index: slices.Index(core.Shapes(), next.InitialShape())})
	}
	if prev.Wireframe != next.Wireframe {
		events = append(events, WireframeToggled{On: next.Wireframe})
	}
	if prev.Scale != next.Scale {
		events = append(events, ScaleChanged{Scale: next.Scale})
	}
	return events
}
