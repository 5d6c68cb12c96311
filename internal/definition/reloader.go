package definition

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"menukit/internal/menu"
)

// debounceDelay is how long the definition file must be quiet before a
// reload; editors often produce several events per save.
const debounceDelay = 100 * time.Millisecond

// Reloader watches one definition file and rebuilds the menu whenever it
// changes.
type Reloader struct {
	path      string
	performer menu.Performer

	watcher *fsnotify.Watcher
	menus   chan *menu.Menu
	errs    chan error

	done chan struct{}
	wg   sync.WaitGroup
}

// NewReloader creates a reloader for the definition at path. Rebuilt menus
// are bound to the given performer.
func NewReloader(path string, performer menu.Performer) (*Reloader, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("definition: resolve %s: %w", path, err)
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("definition: create watcher: %w", err)
	}
	return &Reloader{
		path:      abs,
		performer: performer,
		watcher:   watcher,
		menus:     make(chan *menu.Menu, 1),
		errs:      make(chan error, 10),
		done:      make(chan struct{}),
	}, nil
}

// Menus returns the channel of rebuilt menus.
func (r *Reloader) Menus() <-chan *menu.Menu {
	return r.menus
}

// Errors returns the channel of reload errors. A broken definition is
// reported here; the previously delivered menu stays in effect.
func (r *Reloader) Errors() <-chan error {
	return r.errs
}

// Start begins watching. The directory is watched rather than the file so
// rename-and-replace saves keep working.
func (r *Reloader) Start() error {
	if err := r.watcher.Add(filepath.Dir(r.path)); err != nil {
		return fmt.Errorf("definition: watch %s: %w", filepath.Dir(r.path), err)
	}
	r.wg.Add(1)
	go r.loop()
	return nil
}

// Stop ends watching and closes the outgoing channels.
func (r *Reloader) Stop() {
	close(r.done)
	r.watcher.Close()
	r.wg.Wait()
	close(r.menus)
	close(r.errs)
}

func (r *Reloader) loop() {
	defer r.wg.Done()

	// The debounce timer lives in this goroutine so no reload can race the
	// channel close in Stop.
	var debounce *time.Timer
	var fire <-chan time.Time
	defer func() {
		if debounce != nil {
			debounce.Stop()
		}
	}()

	for {
		select {
		case <-r.done:
			return

		case event, ok := <-r.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != r.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if debounce == nil {
				debounce = time.NewTimer(debounceDelay)
				fire = debounce.C
			} else {
				debounce.Stop()
				debounce.Reset(debounceDelay)
			}

		case <-fire:
			r.reload()

		case err, ok := <-r.watcher.Errors:
			if !ok {
				return
			}
			r.reportError(err)
		}
	}
}

func (r *Reloader) reload() {
	def, err := Parse(r.path)
	if err != nil {
		r.reportError(err)
		return
	}
	m, err := Build(def, r.performer)
	if err != nil {
		r.reportError(err)
		return
	}

	// Keep only the newest menu when nobody consumed the previous one.
	select {
	case r.menus <- m:
	default:
		select {
		case <-r.menus:
		default:
		}
		select {
		case r.menus <- m:
		default:
		}
	}
}

func (r *Reloader) reportError(err error) {
	select {
	case r.errs <- err:
	default:
	}
}
