package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/lvxn0va/legal-ease-ai/internal/extraction"
	"github.com/lvxn0va/legal-ease-ai/internal/types"
)

// DocumentStore is the narrow slice of persistence the pipeline needs: read
// one document and commit a partial update. Each UpdateDocument call is its
// own transaction, so a crash between stages leaves a consistent record.
type DocumentStore interface {
	GetDocument(ctx context.Context, id string) (*types.Document, error)
	UpdateDocument(ctx context.Context, id string, changes types.DocumentUpdate) error
}

// BlobFetcher opens the source file from object storage.
type BlobFetcher interface {
	Fetch(ctx context.Context, bucket, key string) (io.ReadCloser, error)
}

// TextExtractor is the OCR/text-detection backend, a black box returning
// text-or-error.
type TextExtractor interface {
	ExtractText(ctx context.Context, reader io.Reader, mimeType string) (string, error)
}

// TermExtractor pulls structured lease data out of extracted text.
type TermExtractor interface {
	ExtractTerms(text string) (*types.LeaseTerms, error)
}

// Summarizer generates the document summary from the text and whatever
// structured terms are available (possibly nil).
type Summarizer interface {
	Summarize(text string, terms *types.LeaseTerms) (string, error)
}

// Placeholder summaries stored when the summarization stage cannot deliver:
// the API must always have something to show.
const (
	summaryFailedPlaceholder     = "Summary generation failed"
	summaryEmptyPlaceholder      = "No summary could be generated"
	summaryLowQualityPlaceholder = "Generated summary did not pass quality validation"
)

const qualityValidationError = "Extracted text failed quality validation (too short or low quality)"

// Sequencer runs the three extraction stages for one job in strict order,
// committing partial progress after each stage and deciding the terminal
// document status.
type Sequencer struct {
	store      DocumentStore
	blobs      BlobFetcher
	extractor  TextExtractor
	terms      TermExtractor
	summarizer Summarizer
	log        zerolog.Logger
}

func NewSequencer(
	store DocumentStore,
	blobs BlobFetcher,
	extractor TextExtractor,
	terms TermExtractor,
	summarizer Summarizer,
	log zerolog.Logger,
) *Sequencer {
	return &Sequencer{
		store:      store,
		blobs:      blobs,
		extractor:  extractor,
		terms:      terms,
		summarizer: summarizer,
		log:        log,
	}
}

// Run processes one job. A nil return means the document reached a terminal
// status (or the job was dropped because its document no longer exists); a
// non-nil return is a transient failure the worker may retry. Classified
// failures (extraction errors and quality-gate rejections) persist FAILED
// and return nil, because retrying a content problem cannot help.
func (s *Sequencer) Run(ctx context.Context, job Job) error {
	log := s.log.With().Str("job_id", job.ID).Str("document_id", job.DocumentID).Logger()

	doc, err := s.store.GetDocument(ctx, job.DocumentID)
	if err != nil {
		if errors.Is(err, types.ErrDocumentNotFound) {
			// Data-consistency problem outside this pipeline's remit.
			log.Warn().Msg("Document not found, dropping job")
			return nil
		}
		return fmt.Errorf("failed to load document: %w", err)
	}

	// Stage 1: fetch the source object and extract text.
	reader, err := s.blobs.Fetch(ctx, job.Locator.Bucket, job.Locator.Key)
	if err != nil {
		return fmt.Errorf("failed to fetch source file: %w", err)
	}

	text, extractErr := s.extractor.ExtractText(ctx, reader, doc.MimeType)
	reader.Close()

	if extractErr != nil {
		log.Error().Err(extractErr).Msg("Text extraction failed")
		return s.failDocument(ctx, job.DocumentID, extractErr.Error())
	}

	if !extraction.ValidateExtractedText(text) {
		log.Warn().Msg("Extracted text failed quality validation")
		return s.failDocument(ctx, job.DocumentID, qualityValidationError)
	}

	empty := ""
	if err := s.store.UpdateDocument(ctx, job.DocumentID, types.DocumentUpdate{
		ExtractedText:   &text,
		ExtractionError: &empty,
	}); err != nil {
		return fmt.Errorf("failed to persist extracted text: %w", err)
	}

	stats := extraction.GetTextStatistics(text)
	log.Info().
		Int("words", stats.WordCount).
		Int("characters", stats.CharacterCount).
		Msg("Text extraction completed")

	// Stage 2: term extraction. Failure degrades the record but never fails
	// the document.
	terms, termsErr := s.terms.ExtractTerms(text)
	if termsErr != nil {
		log.Warn().Err(termsErr).Msg("Term extraction failed, continuing without structured data")
		msg := termsErr.Error()
		if err := s.store.UpdateDocument(ctx, job.DocumentID, types.DocumentUpdate{
			NLPError: &msg,
		}); err != nil {
			return fmt.Errorf("failed to persist term-extraction error: %w", err)
		}
		terms = nil
	} else {
		if err := s.store.UpdateDocument(ctx, job.DocumentID, types.DocumentUpdate{
			LeaseTerms: terms,
			NLPError:   &empty,
		}); err != nil {
			return fmt.Errorf("failed to persist lease terms: %w", err)
		}
	}

	// Stage 3: summary. The stored summary is never left empty.
	summary := s.buildSummary(log, text, terms)
	if err := s.store.UpdateDocument(ctx, job.DocumentID, types.DocumentUpdate{
		Summary: &summary,
	}); err != nil {
		return fmt.Errorf("failed to persist summary: %w", err)
	}

	// Extraction succeeded, so the document is completed regardless of how
	// stages 2 and 3 went.
	completed := types.StatusCompleted
	if err := s.store.UpdateDocument(ctx, job.DocumentID, types.DocumentUpdate{
		Status: &completed,
	}); err != nil {
		return fmt.Errorf("failed to mark document completed: %w", err)
	}

	log.Info().Str("status", string(completed)).Msg("Document processing completed")
	return nil
}

func (s *Sequencer) buildSummary(log zerolog.Logger, text string, terms *types.LeaseTerms) string {
	summary, err := s.summarizer.Summarize(text, terms)
	if err != nil {
		log.Warn().Err(err).Msg("Summary generation failed")
		return summaryFailedPlaceholder
	}
	if summary == "" {
		return summaryEmptyPlaceholder
	}

	validation := extraction.ValidateSummary(summary)
	if !validation.Valid {
		log.Warn().
			Float64("quality_score", validation.QualityScore).
			Strs("issues", validation.Issues).
			Msg("Summary failed quality validation")
		return summaryLowQualityPlaceholder
	}

	return summary
}

// failDocument records a terminal classified failure.
func (s *Sequencer) failDocument(ctx context.Context, documentID, message string) error {
	failed := types.StatusFailed
	if err := s.store.UpdateDocument(ctx, documentID, types.DocumentUpdate{
		Status:          &failed,
		ExtractionError: &message,
	}); err != nil {
		return fmt.Errorf("failed to mark document failed: %w", err)
	}
	return nil
}
