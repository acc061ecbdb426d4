package file

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aretw0/turtle/internal/logging"
	"github.com/fsnotify/fsnotify"
)

// DefaultPollInterval re-checks the file even without a notification,
// covering filesystems where events are unreliable.
const DefaultPollInterval = 500 * time.Millisecond

// Follower implements ports.InputSource by tailing a file: it yields the
// existing lines, then waits for new ones. Removing or renaming the file ends
// the input with io.EOF.
type Follower struct {
	path    string
	name    string
	file    *os.File
	reader  *bufio.Reader
	watcher *fsnotify.Watcher
	partial strings.Builder
	poll    time.Duration
	logger  *slog.Logger
}

// FollowerOption configures a Follower.
type FollowerOption func(*Follower)

// WithPollInterval sets the fallback poll interval.
func WithPollInterval(d time.Duration) FollowerOption {
	return func(f *Follower) {
		if d > 0 {
			f.poll = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) FollowerOption {
	return func(f *Follower) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// NewFollower opens path and starts watching its directory.
func NewFollower(path string, opts ...FollowerOption) (*Follower, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path: %w", err)
	}

	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	// Watch the directory: some systems don't support watching files directly.
	if err := watcher.Add(filepath.Dir(absPath)); err != nil {
		watcher.Close()
		file.Close()
		return nil, fmt.Errorf("failed to watch directory of %s: %w", path, err)
	}

	f := &Follower{
		path:    absPath,
		name:    filepath.Base(absPath),
		file:    file,
		reader:  bufio.NewReader(file),
		watcher: watcher,
		poll:    DefaultPollInterval,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	f.logger.Debug("following command file", "path", absPath)
	return f, nil
}

// NextLine blocks until a complete line is appended, ctx is done or the file goes away.
func (f *Follower) NextLine(ctx context.Context) (string, error) {
	for {
		chunk, err := f.reader.ReadString('\n')
		f.partial.WriteString(chunk)
		if err == nil {
			line := f.partial.String()
			f.partial.Reset()
			return strings.TrimRight(line, "\r\n"), nil
		}
		if err != io.EOF {
			return "", fmt.Errorf("failed to read %s: %w", f.path, err)
		}
		if err := f.wait(ctx); err != nil {
			return "", err
		}
	}
}

func (f *Follower) wait(ctx context.Context) error {
	timer := time.NewTimer(f.poll)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
			return nil
		case event, ok := <-f.watcher.Events:
			if !ok {
				return io.EOF
			}
			if filepath.Base(event.Name) != f.name {
				continue
			}
			if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				f.logger.Info("command file removed, ending input", "path", f.path)
				return io.EOF
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				return nil
			}
		case err, ok := <-f.watcher.Errors:
			if !ok {
				return io.EOF
			}
			f.logger.Error("file watcher error", "error", err)
		}
	}
}

// Close stops watching and closes the file.
func (f *Follower) Close() error {
	werr := f.watcher.Close()
	ferr := f.file.Close()
	if werr != nil {
		return werr
	}
	return ferr
}
