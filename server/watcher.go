package server

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// LogEventType describes what happened to a game log file.
type LogEventType string

const (
	// LogCreated fires when a new game log appears in the watched directory.
	LogCreated LogEventType = "created"
	// LogWritten fires when an existing game log grows.
	LogWritten LogEventType = "written"
	// LogRemoved fires when a game log is deleted or renamed away. A
	// spectator following that file should stop and resync.
	LogRemoved LogEventType = "removed"
)

// LogEvent is a change to a game log file in the watched directory.
type LogEvent struct {
	Path string
	Type LogEventType
}

// LogWatcher watches a game log directory and reports changes to log files.
// It lets spectators pick up games started after they connected and notice
// writes made outside the follow stream.
type LogWatcher struct {
	watcher    *fsnotify.Watcher
	events     chan LogEvent
	debounceMs int
	lastChange map[string]time.Time
	mu         sync.Mutex
	logger     *logrus.Entry
}

// NewLogWatcher creates a watcher for the given game log directory.
// The debounceMs parameter controls how long to wait before processing rapid
// writes to the same file.
func NewLogWatcher(dir string, debounceMs int, logger *logrus.Entry) (*LogWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, err
	}

	if debounceMs <= 0 {
		debounceMs = 100
	}

	return &LogWatcher{
		watcher:    watcher,
		events:     make(chan LogEvent, 16),
		debounceMs: debounceMs,
		lastChange: make(map[string]time.Time),
		logger:     logger,
	}, nil
}

// Events returns the channel of game log changes.
func (w *LogWatcher) Events() <-chan LogEvent {
	return w.events
}

// Start begins watching for log changes. It blocks until the context is
// cancelled.
func (w *LogWatcher) Start(ctx context.Context) {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !isGameLog(event.Name) {
				continue
			}
			w.logger.Debugf("fsnotify event: %s op=%v", event.Name, event.Op)

			switch {
			case event.Op&fsnotify.Create != 0:
				w.emit(LogEvent{Path: event.Name, Type: LogCreated})
			case event.Op&fsnotify.Write != 0:
				w.handleWrite(event.Name)
			case event.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
				w.emit(LogEvent{Path: event.Name, Type: LogRemoved})
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Errorf("Watcher error: %v", err)
		case <-ctx.Done():
			w.watcher.Close()
			return
		}
	}
}

// handleWrite emits a write event with per-file debouncing.
func (w *LogWatcher) handleWrite(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	elapsed := time.Since(w.lastChange[path])
	if elapsed < time.Duration(w.debounceMs)*time.Millisecond {
		w.logger.Debugf("Debounced: %s (only %v since last change)", filepath.Base(path), elapsed)
		return
	}
	w.lastChange[path] = time.Now()

	w.emit(LogEvent{Path: path, Type: LogWritten})
}

func (w *LogWatcher) emit(ev LogEvent) {
	select {
	case w.events <- ev:
	default:
		// Non-blocking send so a slow consumer cannot stall the watcher
	}
}

// Close stops the watcher and releases resources.
func (w *LogWatcher) Close() error {
	return w.watcher.Close()
}

func isGameLog(path string) bool {
	return strings.HasSuffix(path, ".log") || strings.HasSuffix(path, ".txt")
}
