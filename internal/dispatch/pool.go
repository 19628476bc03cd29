// Package dispatch provides a small bounded worker pool for running
// independent API calls concurrently.
//
// Jobs carry no ordering guarantee relative to each other. A job that fails
// or panics never affects the others, and nothing is retried.
package dispatch

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
)

type queuedJob struct {
	ctx context.Context
	job Job
}

// Pool executes Jobs on a fixed set of worker goroutines fed by one queue.
type Pool struct {
	cfg   Config
	queue chan queuedJob

	done   chan struct{} // closed in Stop()
	closed uint32        // 0 → running, 1 → closed

	// Submit holds mu.RLock across its closed check and enqueue; Stop takes
	// mu.Lock before closing done. An accepted job is therefore always queued
	// before the workers start draining, and always runs.
	mu sync.RWMutex

	wg sync.WaitGroup
}

// NewPool constructs the pool and starts its workers.
func NewPool(cfg Config) *Pool {
	// Apply zero-value defaults.
	if cfg.Workers <= 0 {
		cfg.Workers = 4
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 64
	}
	if cfg.EnqueueTimeout <= 0 {
		cfg.EnqueueTimeout = time.Second
	}

	p := &Pool{
		cfg:   cfg,
		queue: make(chan queuedJob, cfg.QueueSize),
		done:  make(chan struct{}),
	}
	for i := 0; i < cfg.Workers; i++ {
		p.wg.Add(1)
		go p.runWorker(i)
	}
	return p
}

// Submit enqueues job.
//
//   - Returns nil on success.
//   - Returns ErrPoolClosed if the pool is stopped.
//   - Returns *QueueFullError (errors.Is ErrQueueFull) if the queue is still
//     full after EnqueueTimeout.
//   - Returns ctx.Err() if the caller-provided context is cancelled first.
func (p *Pool) Submit(ctx context.Context, job Job) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if atomic.LoadUint32(&p.closed) == 1 {
		return ErrPoolClosed
	}

	timer := time.NewTimer(p.cfg.EnqueueTimeout)
	defer timer.Stop()

	select {
	case p.queue <- queuedJob{ctx: ctx, job: job}:
		submissionsTotal.Inc()
		return nil

	case <-ctx.Done():
		return ctx.Err()

	case <-timer.C:
		queueFullTotal.Inc()
		return &QueueFullError{Length: len(p.queue), Capacity: cap(p.queue)}
	}
}

// Stop lets the workers drain the queue, waits for them to exit, and returns.
// Submits already in progress finish first, so Stop may wait up to
// EnqueueTimeout. It is idempotent and safe for concurrent use.
func (p *Pool) Stop() {
	if !atomic.CompareAndSwapUint32(&p.closed, 0, 1) {
		return
	}
	log.Debug().Int("workers", p.cfg.Workers).Msg("dispatch: stopping pool")
	p.mu.Lock()
	close(p.done)
	p.mu.Unlock()
	p.wg.Wait()
	log.Debug().Msg("dispatch: pool stopped")
}

// Close lets Pool satisfy io.Closer.
func (p *Pool) Close() error {
	p.Stop()
	return nil
}

// ------------------------- internals -------------------------

func (p *Pool) runWorker(idx int) {
	defer p.wg.Done()

	for {
		select {
		case qj := <-p.queue:
			p.run(idx, qj)
			queueDepth.Set(float64(len(p.queue)))

		case <-p.done:
			drained := 0
			for {
				select {
				case qj := <-p.queue:
					p.run(idx, qj)
					drained++
				default:
					if drained > 0 {
						log.Debug().Int("worker", idx).Int("jobs", drained).Msg("dispatch: drained queue")
					}
					queueDepth.Set(0)
					return
				}
			}
		}
	}
}

// run executes one job. A cancelled caller context skips the job.
func (p *Pool) run(idx int, qj queuedJob) {
	if qj.job == nil {
		return
	}
	if err := qj.ctx.Err(); err != nil {
		p.safeHandleError(err)
		return
	}

	start := time.Now()
	err := func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				log.Error().Int("worker", idx).Interface("panic", r).Msg("dispatch: job panic")
				err = &PanicError{Value: r}
			}
		}()
		return qj.job.Run(qj.ctx)
	}()
	runDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		p.safeHandleError(err)
	}
}

func (p *Pool) safeHandleError(err error) {
	if err == nil || p.cfg.ErrorHandler == nil {
		return
	}
	defer func() {
		// Guard against panics in the user-supplied handler.
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("dispatch: error handler panic")
		}
	}()
	p.cfg.ErrorHandler(err)
}
