package memory

import (
	"context"
	"io"
	"sync"
)

// Source implements ports.InputSource by replaying a fixed list of lines.
type Source struct {
	mu    sync.Mutex
	lines []string
	next  int
}

// NewSource creates a source that yields lines in order, then io.EOF.
func NewSource(lines ...string) *Source {
	return &Source{lines: append([]string(nil), lines...)}
}

// NextLine returns the next line.
func (s *Source) NextLine(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.next >= len(s.lines) {
		return "", io.EOF
	}
	line := s.lines[s.next]
	s.next++
	return line, nil
}
