package flow

import (
	"context"
	"sync"

	"freelancebot/core/logger"

	"log/slog"
)

const defaultQueueSize = 32

type task struct {
	ctx context.Context
	ev  Event
}

// Serializer fans inbound events out to per-user workers: one user's
// events run strictly in arrival order, different users run in parallel.
type Serializer struct {
	handle HandlerFunc

	mu     sync.Mutex
	queues map[int64]chan task
	wg     sync.WaitGroup
	closed bool
}

// NewSerializer wraps a handler with per-user ordering.
func NewSerializer(handle HandlerFunc) *Serializer {
	return &Serializer{
		handle: handle,
		queues: make(map[int64]chan task),
	}
}

// Enqueue schedules the event on its user's queue. When the queue is
// full or the serializer is closed the event is handled inline instead
// of being dropped; an inline event can interleave with the worker's
// queued ones, so per-user ordering is guaranteed only while the queue
// has capacity.
func (s *Serializer) Enqueue(ctx context.Context, ev Event) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return s.handle(ctx, ev)
	}
	q, ok := s.queues[ev.UserID]
	if !ok {
		q = make(chan task, defaultQueueSize)
		s.queues[ev.UserID] = q
		s.wg.Add(1)
		go s.worker(q)
	}
	s.mu.Unlock()

	select {
	case q <- task{ctx: ctx, ev: ev}:
		return nil
	default:
		logger.Warn(ctx, "flow", "queue.full",
			slog.Int64("user_id", ev.UserID),
		)
		return s.handle(ctx, ev)
	}
}

func (s *Serializer) worker(q chan task) {
	defer s.wg.Done()
	for t := range q {
		if err := s.handle(t.ctx, t.ev); err != nil {
			logger.Error(t.ctx, "flow", "handle",
				slog.Int64("user_id", t.ev.UserID),
				slog.String("err", err.Error()),
			)
		}
	}
}

// Close stops accepting queued events and waits for in-flight ones.
func (s *Serializer) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	for _, q := range s.queues {
		close(q)
	}
	s.mu.Unlock()
	s.wg.Wait()
}
