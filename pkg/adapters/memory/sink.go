package memory

import (
	"context"
	"sync"
)

// Sink implements ports.OutputSink and ports.ReportReader in memory.
// Safe for concurrent use.
type Sink struct {
	mu      sync.RWMutex
	reports []string
}

// NewSink creates an empty sink.
func NewSink() *Sink {
	return &Sink{}
}

// Write records a report.
func (s *Sink) Write(_ context.Context, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reports = append(s.reports, text)
	return nil
}

// Reports returns a copy of everything written so far.
func (s *Sink) Reports(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string{}, s.reports...), nil
}

// Reset drops recorded reports.
func (s *Sink) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reports = nil
}
