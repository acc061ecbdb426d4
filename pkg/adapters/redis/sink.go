package redis

import (
	"context"
	"fmt"

	backend "github.com/redis/go-redis/v9"
)

// DefaultKey is the list that receives reports when no key is configured.
const DefaultKey = "turtle:reports"

// Sink implements ports.OutputSink and ports.ReportReader on a Redis list.
// Every report is RPUSHed to the list and, when a channel is set, also PUBLISHed.
type Sink struct {
	client  *backend.Client
	key     string
	channel string
	maxLen  int64
}

// Option configures the Sink.
type Option func(*Sink)

// WithKey sets the list key.
func WithKey(key string) Option {
	return func(s *Sink) {
		if key != "" {
			s.key = key
		}
	}
}

// WithChannel publishes every report on channel as well.
func WithChannel(channel string) Option {
	return func(s *Sink) {
		s.channel = channel
	}
}

// WithMaxLen keeps only the most recent n reports in the list. Zero keeps all.
func WithMaxLen(n int64) Option {
	return func(s *Sink) {
		s.maxLen = n
	}
}

// New creates a sink connected to addr.
func New(addr string, opts ...Option) *Sink {
	return NewFromClient(backend.NewClient(&backend.Options{Addr: addr}), opts...)
}

// NewFromClient creates a sink using an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Sink {
	s := &Sink{
		client: client,
		key:    DefaultKey,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Ping checks connectivity.
func (s *Sink) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

// Write appends a report atomically with its trim and publish.
func (s *Sink) Write(ctx context.Context, text string) error {
	_, err := s.client.TxPipelined(ctx, func(pipe backend.Pipeliner) error {
		pipe.RPush(ctx, s.key, text)
		if s.maxLen > 0 {
			pipe.LTrim(ctx, s.key, -s.maxLen, -1)
		}
		if s.channel != "" {
			pipe.Publish(ctx, s.channel, text)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to push report to %s: %w", s.key, err)
	}
	return nil
}

// Reports returns the stored reports, oldest first.
func (s *Sink) Reports(ctx context.Context) ([]string, error) {
	reports, err := s.client.LRange(ctx, s.key, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read reports from %s: %w", s.key, err)
	}
	return reports, nil
}

// Close releases the client.
func (s *Sink) Close() error {
	return s.client.Close()
}
