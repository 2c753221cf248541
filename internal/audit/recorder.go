// AngelaMos | 2026
// recorder.go

package audit

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/carterperez-dev/campaign-studio/internal/config"
	"github.com/carterperez-dev/campaign-studio/internal/core"
)

type Store interface {
	Insert(ctx context.Context, e *Entry) error
}

// Recorder writes audit entries on a background worker. Record never
// blocks the caller: a full queue drops the entry, a failed write is
// logged and forgotten.
type Recorder struct {
	store   Store
	logger  *slog.Logger
	timeout time.Duration

	mu     sync.RWMutex
	queue  chan *Entry
	closed bool
	done   chan struct{}

	dropped atomic.Int64
	failed  atomic.Int64
}

func NewRecorder(store Store, logger *slog.Logger, cfg config.AuditConfig) *Recorder {
	size := cfg.BufferSize
	if size < 1 {
		size = 256
	}

	timeout := cfg.WriteTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	r := &Recorder{
		store:   store,
		logger:  logger,
		timeout: timeout,
		queue:   make(chan *Entry, size),
		done:    make(chan struct{}),
	}

	go r.run()

	return r
}

func (r *Recorder) Record(e *Entry) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.closed {
		r.dropped.Add(1)
		return
	}

	select {
	case r.queue <- e:
	default:
		r.dropped.Add(1)
		r.logger.Warn("audit queue full, dropping entry",
			"action", e.Action,
			"resource_type", e.ResourceType,
		)
	}
}

// Close stops accepting entries and waits for the queue to drain or ctx
// to expire.
func (r *Recorder) Close(ctx context.Context) error {
	r.mu.Lock()
	if !r.closed {
		r.closed = true
		close(r.queue)
	}
	r.mu.Unlock()

	select {
	case <-r.done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("drain audit queue: %w", ctx.Err())
	}
}

func (r *Recorder) Dropped() int64 {
	return r.dropped.Load()
}

func (r *Recorder) Failed() int64 {
	return r.failed.Load()
}

func (r *Recorder) run() {
	defer close(r.done)

	for e := range r.queue {
		r.write(e)
	}
}

func (r *Recorder) write(e *Entry) {
	defer func() {
		if p := recover(); p != nil {
			r.failed.Add(1)
			r.logger.Warn("audit write panicked", "panic", p)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	ctx, span := core.StartSpan(ctx, "audit.write", trace.SpanKindInternal,
		attribute.String("audit.action", e.Action),
		attribute.String("audit.resource_type", e.ResourceType),
	)
	defer span.End()

	if err := r.store.Insert(ctx, e); err != nil {
		core.SetSpanError(ctx, err)
		r.failed.Add(1)
		r.logger.Warn("audit write failed",
			"error", err,
			"action", e.Action,
			"resource_type", e.ResourceType,
		)
	}
}
