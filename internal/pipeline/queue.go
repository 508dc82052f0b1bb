package pipeline

import (
	"sync"
	"sync/atomic"
	"time"
)

// Queue is an unbounded FIFO channel of jobs. Enqueue never blocks and never
// fails; Dequeue blocks up to a timeout so the worker loop can periodically
// re-check its running flag. A pump goroutine shuttles jobs between an input
// and an output channel through an internal buffer, which is what makes the
// queue unbounded.
type Queue struct {
	in   chan Job
	out  chan Job
	done chan struct{}

	mu     sync.Mutex
	closed bool

	size atomic.Int64
}

func NewQueue() *Queue {
	q := &Queue{
		in:   make(chan Job),
		out:  make(chan Job),
		done: make(chan struct{}),
	}
	go q.pump()
	return q
}

func (q *Queue) pump() {
	var buffer []Job
	for {
		var out chan Job
		var next Job
		if len(buffer) > 0 {
			out = q.out
			next = buffer[0]
		}

		select {
		case job := <-q.in:
			buffer = append(buffer, job)
		case out <- next:
			buffer = buffer[1:]
		case <-q.done:
			return
		}
	}
}

// Enqueue appends the job at the tail. Enqueueing into a closed queue is a
// no-op; retry timers may still fire after shutdown.
func (q *Queue) Enqueue(job Job) {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.size.Add(1)
	q.mu.Unlock()

	select {
	case q.in <- job:
	case <-q.done:
		q.size.Add(-1)
	}
}

// Dequeue waits up to timeout for a job. The second return is false when the
// timeout elapsed with nothing available, or the queue is closed.
func (q *Queue) Dequeue(timeout time.Duration) (Job, bool) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case job := <-q.out:
		q.size.Add(-1)
		return job, true
	case <-timer.C:
		return Job{}, false
	case <-q.done:
		return Job{}, false
	}
}

// Size is the current count of undelivered jobs.
func (q *Queue) Size() int {
	return int(q.size.Load())
}

// Close stops the pump. Jobs still buffered are abandoned.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.closed = true
	close(q.done)
}
