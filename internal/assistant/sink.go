package assistant

import (
	"context"
	"log/slog"
	"sync"
)

// Sink receives every completed turn.
type Sink interface {
	Deliver(ctx context.Context, t Turn) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ctx context.Context, t Turn) error

// Deliver implements Sink.
func (f SinkFunc) Deliver(ctx context.Context, t Turn) error { return f(ctx, t) }

// LogSink writes each turn as one structured log record. Pointed at a
// file-backed logger it is the conversation history.
type LogSink struct {
	Logger *slog.Logger
}

// Deliver implements Sink.
func (s *LogSink) Deliver(ctx context.Context, t Turn) error {
	s.Logger.LogAttrs(ctx, slog.LevelInfo, "turn",
		slog.String("turn_id", t.ID.String()),
		slog.String("character", t.Character),
		slog.String("intent", string(t.Intent)),
		slog.Bool("delegated", t.Delegated),
		slog.String("user", t.Utterance),
		slog.String("assistant", t.Reply),
	)
	return nil
}

// RecordingSink keeps turns in memory. It backs tests and the chat REPL's
// history view.
type RecordingSink struct {
	mu    sync.Mutex
	turns []Turn
}

// Deliver implements Sink.
func (s *RecordingSink) Deliver(_ context.Context, t Turn) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.turns = append(s.turns, t)
	return nil
}

// Turns returns a copy of the recorded turns.
func (s *RecordingSink) Turns() []Turn {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Turn(nil), s.turns...)
}
