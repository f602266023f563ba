package jobs

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

const defaultJobTimeout = 30 * time.Second

type job struct {
	Type string
	Run  func(context.Context) error
}

// Queue runs fire-and-forget work on a single background worker. Work
// enqueued while the buffer is full, or after Stop, is refused.
type Queue struct {
	mu      sync.RWMutex
	stopped bool
	queue   chan job
	timeout time.Duration
	wg      sync.WaitGroup
	once    sync.Once
	cancel  context.CancelFunc
	onRun   func(jobType string, err error)
}

func New(size int) *Queue {
	if size <= 0 {
		size = 1
	}
	return &Queue{queue: make(chan job, size), timeout: defaultJobTimeout}
}

// OnRun registers a hook invoked after every job, used for metrics.
func (q *Queue) OnRun(fn func(jobType string, err error)) {
	q.onRun = fn
}

func (q *Queue) Start(ctx context.Context) {
	q.once.Do(func() {
		ctx, q.cancel = context.WithCancel(ctx)
		q.wg.Add(1)
		go q.worker(ctx)
	})
}

// Stop refuses further work, drains what is queued and waits for the worker
// to exit.
func (q *Queue) Stop() {
	q.mu.Lock()
	q.stopped = true
	q.mu.Unlock()
	if q.cancel != nil {
		q.cancel()
	}
	q.wg.Wait()
}

func (q *Queue) Enqueue(jobType string, run func(context.Context) error) bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.stopped {
		slog.Warn("job queue stopped", "jobType", jobType)
		return false
	}
	select {
	case q.queue <- job{Type: jobType, Run: run}:
		return true
	default:
		slog.Warn("job queue full", "jobType", jobType)
		return false
	}
}

func (q *Queue) worker(ctx context.Context) {
	defer q.wg.Done()
	for {
		select {
		case <-ctx.Done():
			q.drain()
			return
		case j := <-q.queue:
			if err := q.runJob(ctx, j); err != nil {
				slog.Warn("job run failed", "jobType", j.Type, "err", err)
			}
		}
	}
}

func (q *Queue) drain() {
	for {
		select {
		case j := <-q.queue:
			if err := q.runJob(context.Background(), j); err != nil {
				slog.Warn("job run failed", "jobType", j.Type, "err", err)
			}
		default:
			return
		}
	}
}

func (q *Queue) runJob(ctx context.Context, j job) (err error) {
	runCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), q.timeout)
	defer cancel()
	defer func() {
		if rec := recover(); rec != nil {
			slog.Error("job panicked", "jobType", j.Type, "panic", rec)
			err = errPanicked
		}
		if q.onRun != nil {
			q.onRun(j.Type, err)
		}
	}()
	return j.Run(runCtx)
}
