package pipeline

import (
	"bytes"
	"context"
	"io"
	"sync"

	"github.com/lvxn0va/legal-ease-ai/internal/types"
)

// fakeStore is an in-memory DocumentStore that applies DocumentUpdate
// semantics and records every update it receives.
type fakeStore struct {
	mu        sync.Mutex
	documents map[string]*types.Document
	updates   []types.DocumentUpdate
	updateErr error
}

func newFakeStore(docs ...*types.Document) *fakeStore {
	s := &fakeStore{documents: make(map[string]*types.Document)}
	for _, d := range docs {
		s.documents[d.ID] = d
	}
	return s
}

func (s *fakeStore) GetDocument(_ context.Context, id string) (*types.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.documents[id]
	if !ok {
		return nil, types.ErrDocumentNotFound
	}
	copied := *doc
	return &copied, nil
}

func (s *fakeStore) UpdateDocument(_ context.Context, id string, changes types.DocumentUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.updateErr != nil {
		return s.updateErr
	}
	doc, ok := s.documents[id]
	if !ok {
		return types.ErrDocumentNotFound
	}
	s.updates = append(s.updates, changes)
	if changes.Status != nil {
		doc.Status = *changes.Status
	}
	if changes.ExtractedText != nil {
		doc.ExtractedText = *changes.ExtractedText
	}
	if changes.ExtractionError != nil {
		doc.ExtractionError = *changes.ExtractionError
	}
	if changes.LeaseTerms != nil {
		doc.LeaseTerms = changes.LeaseTerms
	}
	if changes.NLPError != nil {
		doc.NLPError = *changes.NLPError
	}
	if changes.Summary != nil {
		doc.Summary = *changes.Summary
	}
	return nil
}

func (s *fakeStore) get(id string) *types.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc := s.documents[id]
	copied := *doc
	return &copied
}

func (s *fakeStore) updateCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.updates)
}

// fakeBlobs serves one payload for every fetch, or a fixed error. It counts
// fetches so tests can assert the retry bound.
type fakeBlobs struct {
	mu      sync.Mutex
	payload []byte
	err     error
	fetches int
}

func (b *fakeBlobs) Fetch(_ context.Context, _, _ string) (io.ReadCloser, error) {
	b.mu.Lock()
	b.fetches++
	err := b.err
	payload := b.payload
	b.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return io.NopCloser(bytes.NewReader(payload)), nil
}

func (b *fakeBlobs) fetchCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.fetches
}

type fakeExtractor struct {
	text string
	err  error
}

func (e *fakeExtractor) ExtractText(_ context.Context, r io.Reader, _ string) (string, error) {
	io.Copy(io.Discard, r)
	return e.text, e.err
}

type fakeTermExtractor struct {
	terms *types.LeaseTerms
	err   error
}

func (e *fakeTermExtractor) ExtractTerms(string) (*types.LeaseTerms, error) {
	return e.terms, e.err
}

type fakeSummarizer struct {
	summary string
	err     error
}

func (s *fakeSummarizer) Summarize(string, *types.LeaseTerms) (string, error) {
	return s.summary, s.err
}
