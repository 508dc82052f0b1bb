package pipeline

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/lvxn0va/legal-ease-ai/internal/types"
)

func newTestWorker(store *fakeStore, blobs *fakeBlobs, opts Options) *Worker {
	seq := newTestSequencer(store, blobs, nil, nil, nil)
	return NewWorker(NewQueue(), seq, store, zerolog.Nop(), opts)
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before timeout")
}

func TestWorkerProcessesEnqueuedDocument(t *testing.T) {
	store := newFakeStore(testDocument("doc-1"))
	w := newTestWorker(store, nil, Options{DequeueTimeout: 20 * time.Millisecond})
	w.Start()
	defer w.Stop()

	doc := store.get("doc-1")
	doc.Status = types.StatusUploaded
	jobID, err := w.EnqueueProcessing(context.Background(), doc)
	if err != nil {
		t.Fatalf("EnqueueProcessing: %v", err)
	}
	if jobID == "" {
		t.Fatal("EnqueueProcessing returned an empty job ID")
	}

	waitFor(t, 2*time.Second, func() bool {
		return store.get("doc-1").Status == types.StatusCompleted
	})
}

func TestWorkerEnqueueFlipsStatusBeforeReturning(t *testing.T) {
	store := newFakeStore(testDocument("doc-1"))
	// Worker not started, so nothing consumes the job: the status flip is
	// the enqueue call's own doing.
	w := newTestWorker(store, nil, Options{})

	if _, err := w.EnqueueProcessing(context.Background(), store.get("doc-1")); err != nil {
		t.Fatalf("EnqueueProcessing: %v", err)
	}

	if got := store.get("doc-1").Status; got != types.StatusProcessing {
		t.Errorf("status after enqueue = %s, want %s", got, types.StatusProcessing)
	}
	if got := w.QueueDepth(); got != 1 {
		t.Errorf("queue depth = %d, want 1", got)
	}
}

func TestWorkerEnqueueFailsWhenStatusCommitFails(t *testing.T) {
	store := newFakeStore(testDocument("doc-1"))
	store.updateErr = errors.New("db down")
	w := newTestWorker(store, nil, Options{})

	if _, err := w.EnqueueProcessing(context.Background(), store.get("doc-1")); err == nil {
		t.Fatal("expected error when the status commit fails")
	}
	if got := w.QueueDepth(); got != 0 {
		t.Errorf("queue depth = %d, want 0 (no job without a committed status)", got)
	}
}

func TestWorkerRetriesTransientFailureUpToBound(t *testing.T) {
	store := newFakeStore(testDocument("doc-1"))
	blobs := &fakeBlobs{err: errors.New("connection refused")}
	w := newTestWorker(store, blobs, Options{
		MaxRetries:     3,
		RetryDelay:     10 * time.Millisecond,
		DequeueTimeout: 10 * time.Millisecond,
	})
	w.Start()
	defer w.Stop()

	if _, err := w.EnqueueProcessing(context.Background(), store.get("doc-1")); err != nil {
		t.Fatalf("EnqueueProcessing: %v", err)
	}

	waitFor(t, 5*time.Second, func() bool {
		return store.get("doc-1").Status == types.StatusFailed
	})

	// Initial attempt plus exactly MaxRetries retries, never more.
	if got := blobs.fetchCount(); got != 4 {
		t.Errorf("fetch attempts = %d, want 4", got)
	}

	doc := store.get("doc-1")
	if !strings.Contains(doc.ExtractionError, "Processing failed after max retries") {
		t.Errorf("extraction error = %q, want max-retries message", doc.ExtractionError)
	}
	if !strings.Contains(doc.ExtractionError, "connection refused") {
		t.Errorf("extraction error = %q, want the underlying cause", doc.ExtractionError)
	}

	// Give any stray timer a chance to fire; the count must not move.
	time.Sleep(100 * time.Millisecond)
	if got := blobs.fetchCount(); got != 4 {
		t.Errorf("fetch attempts after settling = %d, want 4", got)
	}
}

func TestWorkerDoesNotRetryClassifiedFailure(t *testing.T) {
	store := newFakeStore(testDocument("doc-1"))
	blobs := &fakeBlobs{payload: []byte("x")}
	seq := newTestSequencer(store, blobs, &fakeExtractor{err: errors.New("unreadable scan")}, nil, nil)
	w := NewWorker(NewQueue(), seq, store, zerolog.Nop(), Options{
		RetryDelay:     10 * time.Millisecond,
		DequeueTimeout: 10 * time.Millisecond,
	})
	w.Start()
	defer w.Stop()

	if _, err := w.EnqueueProcessing(context.Background(), store.get("doc-1")); err != nil {
		t.Fatalf("EnqueueProcessing: %v", err)
	}

	waitFor(t, 2*time.Second, func() bool {
		return store.get("doc-1").Status == types.StatusFailed
	})

	time.Sleep(100 * time.Millisecond)
	if got := blobs.fetchCount(); got != 1 {
		t.Errorf("fetch attempts = %d, want 1 (content failures never retry)", got)
	}
}

func TestWorkerStartIsIdempotent(t *testing.T) {
	store := newFakeStore(testDocument("doc-1"))
	w := newTestWorker(store, nil, Options{DequeueTimeout: 10 * time.Millisecond})
	w.Start()
	w.Start() // second call must not spawn a second loop
	defer w.Stop()

	if _, err := w.EnqueueProcessing(context.Background(), store.get("doc-1")); err != nil {
		t.Fatalf("EnqueueProcessing: %v", err)
	}
	waitFor(t, 2*time.Second, func() bool {
		return store.get("doc-1").Status == types.StatusCompleted
	})
}

func TestWorkerStopWaitsForInFlightJobs(t *testing.T) {
	store := newFakeStore(testDocument("doc-1"))
	release := make(chan struct{})
	slow := &blockingExtractor{release: release, text: goodLeaseText}
	seq := newTestSequencer(store, nil, slow, nil, nil)
	w := NewWorker(NewQueue(), seq, store, zerolog.Nop(), Options{DequeueTimeout: 10 * time.Millisecond})
	w.Start()

	if _, err := w.EnqueueProcessing(context.Background(), store.get("doc-1")); err != nil {
		t.Fatalf("EnqueueProcessing: %v", err)
	}
	waitFor(t, 2*time.Second, func() bool { return w.InFlightCount() == 1 })

	stopped := make(chan struct{})
	go func() {
		w.Stop()
		close(stopped)
	}()

	select {
	case <-stopped:
		t.Fatal("Stop returned while a job was still in flight")
	case <-time.After(100 * time.Millisecond):
	}

	close(release)
	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop did not return after the job finished")
	}

	if got := store.get("doc-1").Status; got != types.StatusCompleted {
		t.Errorf("status after shutdown = %s, want %s", got, types.StatusCompleted)
	}
}

func TestWorkerDefersDuplicateDocument(t *testing.T) {
	store := newFakeStore(testDocument("doc-1"))
	release := make(chan struct{})
	slow := &blockingExtractor{release: release, text: goodLeaseText}
	seq := newTestSequencer(store, nil, slow, nil, nil)
	w := NewWorker(NewQueue(), seq, store, zerolog.Nop(), Options{
		RetryDelay:     20 * time.Millisecond,
		DequeueTimeout: 10 * time.Millisecond,
	})
	w.Start()

	if _, err := w.EnqueueProcessing(context.Background(), store.get("doc-1")); err != nil {
		t.Fatalf("EnqueueProcessing: %v", err)
	}
	waitFor(t, 2*time.Second, func() bool { return w.InFlightCount() == 1 })

	// Second job for the same document gets deferred, not run concurrently.
	if _, err := w.EnqueueProcessing(context.Background(), store.get("doc-1")); err != nil {
		t.Fatalf("EnqueueProcessing: %v", err)
	}
	time.Sleep(100 * time.Millisecond)
	if got := w.InFlightCount(); got != 1 {
		t.Fatalf("in-flight = %d, want 1 while the document is claimed", got)
	}

	close(release)
	waitFor(t, 2*time.Second, func() bool { return slow.calls() >= 2 })
	w.Stop()
}

// blockingExtractor holds every extraction until release is closed.
type blockingExtractor struct {
	release chan struct{}
	text    string

	mu sync.Mutex
	n  int
}

func (e *blockingExtractor) ExtractText(_ context.Context, r io.Reader, _ string) (string, error) {
	e.mu.Lock()
	e.n++
	e.mu.Unlock()
	io.Copy(io.Discard, r)
	<-e.release
	return e.text, nil
}

func (e *blockingExtractor) calls() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.n
}
