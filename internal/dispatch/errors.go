package dispatch

import (
	"errors"
	"fmt"
)

// ErrQueueFull reports transient back-pressure: the queue was full when
// Submit tried to enqueue a job.
var ErrQueueFull = errors.New("dispatch queue full")

// ErrPoolClosed reports a permanent condition: the pool has been stopped and
// will accept no further work.
var ErrPoolClosed = errors.New("dispatch pool closed")

// ErrNilJob is returned when a nil JobFunc is run.
var ErrNilJob = errors.New("nil job")

// QueueFullError carries diagnostics while satisfying errors.Is(_, ErrQueueFull).
type QueueFullError struct {
	Length   int // queue length at timeout
	Capacity int // cap(queue)
}

func (e *QueueFullError) Error() string {
	return fmt.Sprintf("dispatch queue full (len=%d cap=%d)", e.Length, e.Capacity)
}

func (e *QueueFullError) Is(target error) bool { return target == ErrQueueFull }

// PanicError wraps a value recovered from a panicking job.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string { return fmt.Sprintf("job panic: %v", e.Value) }
