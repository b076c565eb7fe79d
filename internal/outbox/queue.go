package outbox

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// DefaultBuffer is the queue capacity used when NewQueue gets a size < 1.
const DefaultBuffer = 256

// saveTimeout bounds a single write performed by the worker.
const saveTimeout = 5 * time.Second

// Queue is an asynchronous Sink: a buffered channel drained by a single
// worker goroutine that hands each record to a Writer. Records submitted
// while the buffer is full are dropped. Failed writes are logged and never
// retried.
type Queue struct {
	w      Writer
	logger *zap.Logger

	records chan Record
	done    chan struct{}

	mu     sync.RWMutex
	closed bool
	once   sync.Once
}

// NewQueue starts the worker. Call Close to drain and stop it.
func NewQueue(w Writer, buffer int, logger *zap.Logger) *Queue {
	if buffer < 1 {
		buffer = DefaultBuffer
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	q := &Queue{
		w:       w,
		logger:  logger.Named("outbox"),
		records: make(chan Record, buffer),
		done:    make(chan struct{}),
	}
	go q.run()
	return q
}

// Submit enqueues r without blocking. It returns false when the queue is
// full or closed.
func (q *Queue) Submit(r Record) bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		q.logger.Warn("record dropped, queue closed", zap.String("id", r.ID))
		return false
	}
	select {
	case q.records <- r:
		return true
	default:
		q.logger.Warn("record dropped, queue full",
			zap.String("id", r.ID),
			zap.Int("capacity", cap(q.records)),
		)
		return false
	}
}

// Pending returns the number of records waiting for the worker.
func (q *Queue) Pending() int {
	return len(q.records)
}

// Close stops accepting records and waits until the worker has drained the
// buffer or ctx is done. It is safe to call more than once.
func (q *Queue) Close(ctx context.Context) error {
	q.once.Do(func() {
		q.mu.Lock()
		q.closed = true
		close(q.records)
		q.mu.Unlock()
	})
	select {
	case <-q.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (q *Queue) run() {
	defer close(q.done)
	for r := range q.records {
		q.save(r)
	}
}

func (q *Queue) save(r Record) {
	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()
	if err := q.w.Save(ctx, r); err != nil {
		q.logger.Error("persist classification",
			zap.String("id", r.ID),
			zap.Error(err),
		)
	}
}
