package gamelog

import (
	"io"

	"github.com/hpcloud/tail"
	"github.com/sirupsen/logrus"

	"github.com/grovetools/santorini/board"
)

// Follower tails a growing game log and emits parsed turns as they are
// appended. The two header lines (board parameters and player order) are
// skipped; callers replay the existing log with Load before following.
type Follower struct {
	Turns chan board.Turn

	t      *tail.Tail
	logger *logrus.Entry
}

// FollowOptions configures a Follower.
type FollowOptions struct {
	// FromStart tails the whole file instead of only new lines.
	FromStart bool
	// Poll uses polling instead of inotify. Useful on filesystems without
	// inotify support.
	Poll bool
	// Logger receives parse warnings for malformed lines.
	Logger *logrus.Entry
}

// Follow starts tailing the game log at path.
func Follow(path string, opts FollowOptions) (*Follower, error) {
	cfg := tail.Config{
		Follow: true,
		ReOpen: true,
		Poll:   opts.Poll,
		Logger: tail.DiscardingLogger,
	}
	if !opts.FromStart {
		cfg.Location = &tail.SeekInfo{Offset: 0, Whence: io.SeekEnd}
	}

	t, err := tail.TailFile(path, cfg)
	if err != nil {
		return nil, err
	}

	f := &Follower{
		Turns:  make(chan board.Turn, 64),
		t:      t,
		logger: opts.Logger,
	}
	go f.run(opts.FromStart)
	return f, nil
}

func (f *Follower) run(fromStart bool) {
	defer close(f.Turns)

	headerLines := 0
	for line := range f.t.Lines {
		if line.Err != nil {
			f.warnf("tail error: %v", line.Err)
			continue
		}
		if line.Text == "" {
			continue
		}

		// Skip the board and player order records when reading from the start
		if fromStart && headerLines < 2 {
			headerLines++
			continue
		}

		turn, err := ParseTurnLine(line.Text)
		if err != nil {
			f.warnf("skipping malformed game log line %q: %v", line.Text, err)
			continue
		}
		f.Turns <- turn
	}
}

// Stop stops tailing and closes the Turns channel.
func (f *Follower) Stop() error {
	return f.t.Stop()
}

func (f *Follower) warnf(format string, args ...interface{}) {
	if f.logger != nil {
		f.logger.Warnf(format, args...)
	}
}
