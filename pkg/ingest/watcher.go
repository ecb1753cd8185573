package ingest

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

const defaultDebounce = 500 * time.Millisecond

// Watcher reloads the dataset when one of the source files changes and hands
// the fresh dataset to onReload. Bursts of events within the debounce window
// trigger a single reload.
type Watcher struct {
	src      Sources
	synth    Synth
	log      *slog.Logger
	watcher  *fsnotify.Watcher
	files    map[string]struct{}
	debounce time.Duration
	onReload func(Dataset)
}

func NewWatcher(src Sources, synth Synth, log *slog.Logger, onReload func(Dataset)) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		src:      src,
		synth:    synth,
		log:      log,
		watcher:  fw,
		files:    make(map[string]struct{}),
		debounce: defaultDebounce,
		onReload: onReload,
	}

	// editors usually replace files, so watch the directories and filter by name.
	dirs := make(map[string]struct{})
	for _, path := range []string{src.AirportsFile, src.RoutesFile, src.ZonesFile} {
		if path == "" {
			continue
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			fw.Close()
			return nil, err
		}
		w.files[abs] = struct{}{}
		dirs[filepath.Dir(abs)] = struct{}{}
	}
	for dir := range dirs {
		if err := fw.Add(dir); err != nil {
			fw.Close()
			return nil, err
		}
	}
	return w, nil
}

// SetDebounce must be called before Start.
func (w *Watcher) SetDebounce(d time.Duration) {
	w.debounce = d
}

// Start blocks until ctx is cancelled. Run it in a goroutine.
func (w *Watcher) Start(ctx context.Context) {
	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !w.relevant(event) {
				continue
			}
			w.log.Debug("source file changed", slog.String("path", event.Name), slog.String("op", event.Op.String()))
			timer.Reset(w.debounce)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Warn("file watcher error", slog.Any("error", err))

		case <-timer.C:
			w.reload(ctx)

		case <-ctx.Done():
			return
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return false
	}
	abs, err := filepath.Abs(event.Name)
	if err != nil {
		return false
	}
	_, ok := w.files[abs]
	return ok
}

func (w *Watcher) reload(ctx context.Context) {
	ds, err := LoadDataset(ctx, w.src, w.synth, w.log)
	if err != nil {
		// keep serving the previous snapshot
		w.log.Error("reload dataset failed", slog.Any("error", err))
		return
	}
	w.onReload(ds)
}

func (w *Watcher) Stop() error {
	return w.watcher.Close()
}
