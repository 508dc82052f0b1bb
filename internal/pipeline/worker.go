package pipeline

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/lvxn0va/legal-ease-ai/internal/metrics"
	"github.com/lvxn0va/legal-ease-ai/internal/types"
)

// Options tune the worker's retry and polling behavior. Zero values fall
// back to the defaults used in production.
type Options struct {
	MaxRetries     int
	RetryDelay     time.Duration
	DequeueTimeout time.Duration
}

const (
	defaultRetryDelay     = 5 * time.Second
	defaultDequeueTimeout = time.Second
)

// Worker owns the job queue and the dispatch loop. A single loop goroutine
// pulls jobs off the queue and spawns one processing goroutine per job, so
// dequeueing never blocks behind a slow document.
type Worker struct {
	queue *Queue
	seq   *Sequencer
	store DocumentStore
	log   zerolog.Logger

	maxRetries     int
	retryDelay     time.Duration
	dequeueTimeout time.Duration

	running  atomic.Bool
	loopDone chan struct{}
	jobs     sync.WaitGroup

	mu       sync.Mutex
	claimed  map[string]struct{} // document IDs with a processing goroutine live
	inflight int
}

func NewWorker(queue *Queue, seq *Sequencer, store DocumentStore, log zerolog.Logger, opts Options) *Worker {
	if opts.MaxRetries <= 0 {
		opts.MaxRetries = MaxRetries
	}
	if opts.RetryDelay <= 0 {
		opts.RetryDelay = defaultRetryDelay
	}
	if opts.DequeueTimeout <= 0 {
		opts.DequeueTimeout = defaultDequeueTimeout
	}
	return &Worker{
		queue:          queue,
		seq:            seq,
		store:          store,
		log:            log,
		maxRetries:     opts.MaxRetries,
		retryDelay:     opts.RetryDelay,
		dequeueTimeout: opts.DequeueTimeout,
		claimed:        make(map[string]struct{}),
	}
}

// Start launches the dispatch loop. It is a no-op when the worker is
// already running.
func (w *Worker) Start() {
	if !w.running.CompareAndSwap(false, true) {
		return
	}
	w.loopDone = make(chan struct{})
	go w.loop()
	w.log.Info().Msg("Pipeline worker started")
}

// Stop shuts the worker down: the loop stops dequeueing, every in-flight
// processing goroutine is allowed to finish, and the queue is closed so
// late retry timers become no-ops.
func (w *Worker) Stop() {
	if !w.running.CompareAndSwap(true, false) {
		return
	}
	<-w.loopDone
	w.jobs.Wait()
	w.queue.Close()
	w.log.Info().Msg("Pipeline worker stopped")
}

// EnqueueProcessing flips the document to PROCESSING and queues a job for
// it. The status commit happens before the enqueue, so by the time the job
// ID is returned the status is already observable.
func (w *Worker) EnqueueProcessing(ctx context.Context, doc *types.Document) (string, error) {
	processing := types.StatusProcessing
	if err := w.store.UpdateDocument(ctx, doc.ID, types.DocumentUpdate{Status: &processing}); err != nil {
		return "", fmt.Errorf("failed to mark document processing: %w", err)
	}

	job := NewJob(doc.ID, doc.UserID, Locator{Bucket: doc.StorageBucket, Key: doc.StorageKey})
	w.queue.Enqueue(job)
	metrics.JobsEnqueuedTotal.Inc()
	metrics.QueueDepth.Set(float64(w.queue.Size()))

	w.log.Info().
		Str("job_id", job.ID).
		Str("document_id", doc.ID).
		Msg("Document queued for processing")
	return job.ID, nil
}

// QueueDepth reports how many jobs are waiting in the queue.
func (w *Worker) QueueDepth() int {
	return w.queue.Size()
}

// InFlightCount reports how many processing goroutines are currently live.
func (w *Worker) InFlightCount() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.inflight
}

func (w *Worker) loop() {
	defer close(w.loopDone)
	for w.running.Load() {
		job, ok := w.queue.Dequeue(w.dequeueTimeout)
		if !ok {
			continue
		}
		metrics.QueueDepth.Set(float64(w.queue.Size()))
		w.dispatch(job)
	}
}

// dispatch claims the job's document and spawns its processing goroutine.
// A document already claimed by a live goroutine is deferred: the job goes
// back to the tail after the retry delay, with its retry budget untouched.
func (w *Worker) dispatch(job Job) {
	w.mu.Lock()
	if _, busy := w.claimed[job.DocumentID]; busy {
		w.mu.Unlock()
		w.log.Debug().
			Str("job_id", job.ID).
			Str("document_id", job.DocumentID).
			Msg("Document already processing, deferring job")
		w.requeueAfter(job, w.retryDelay)
		return
	}
	w.claimed[job.DocumentID] = struct{}{}
	w.inflight++
	w.mu.Unlock()
	metrics.JobsInFlight.Inc()

	w.jobs.Add(1)
	go func() {
		defer w.jobs.Done()
		defer w.release(job.DocumentID)
		w.run(job)
	}()
}

func (w *Worker) release(documentID string) {
	w.mu.Lock()
	delete(w.claimed, documentID)
	w.inflight--
	w.mu.Unlock()
	metrics.JobsInFlight.Dec()
}

func (w *Worker) run(job Job) {
	log := w.log.With().
		Str("job_id", job.ID).
		Str("document_id", job.DocumentID).
		Int("retry_count", job.RetryCount).
		Logger()
	log.Info().Msg("Processing job")

	start := time.Now()
	err := w.seq.Run(context.Background(), job)
	metrics.JobProcessingDuration.Observe(time.Since(start).Seconds())

	if err == nil {
		metrics.JobsCompletedTotal.Inc()
		return
	}

	if job.RetryCount < w.maxRetries {
		log.Warn().Err(err).
			Int("next_attempt", job.RetryCount+1).
			Dur("retry_delay", w.retryDelay).
			Msg("Job failed, scheduling retry")
		metrics.JobsRetriedTotal.Inc()
		w.requeueAfter(job.Retry(), w.retryDelay)
		return
	}

	log.Error().Err(err).Msg("Job failed after exhausting retries")
	metrics.JobsFailedTotal.Inc()

	failed := types.StatusFailed
	message := fmt.Sprintf("Processing failed after max retries: %v", err)
	if updateErr := w.store.UpdateDocument(context.Background(), job.DocumentID, types.DocumentUpdate{
		Status:          &failed,
		ExtractionError: &message,
	}); updateErr != nil {
		log.Error().Err(updateErr).Msg("Failed to record terminal failure")
	}
}

// requeueAfter puts the job back on the queue tail after the delay. The
// timer fires on its own goroutine, so retries never tie up the dispatch
// loop. Enqueue on a closed queue is a no-op, which makes timers that
// outlive Stop harmless.
func (w *Worker) requeueAfter(job Job, delay time.Duration) {
	time.AfterFunc(delay, func() {
		w.queue.Enqueue(job)
		metrics.QueueDepth.Set(float64(w.queue.Size()))
	})
}
