package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lvxn0va/legal-ease-ai/internal/pipeline"
	"github.com/lvxn0va/legal-ease-ai/internal/repository"
	"github.com/lvxn0va/legal-ease-ai/internal/storage"
	"github.com/lvxn0va/legal-ease-ai/internal/types"
)

const presignedUrlTTL = 15 * time.Minute

type DocumentService struct {
	repo    repository.DocumentRepository
	storage *storage.Storage
	worker  *pipeline.Worker
}

func NewDocumentService(repo repository.DocumentRepository, storage *storage.Storage, worker *pipeline.Worker) *DocumentService {
	return &DocumentService{
		repo:    repo,
		storage: storage,
		worker:  worker,
	}
}

func (s *DocumentService) GetUploadUrl(ctx context.Context, userID, filename, contentType string) (*storage.UploadTarget, error) {
	if !storage.ValidateFileType(contentType, filename) {
		return nil, fmt.Errorf("unsupported file type: only PDF, DOCX and TXT are accepted")
	}

	return s.storage.GetUploadTarget(ctx, userID, filename, presignedUrlTTL)
}

type CreateDocumentRequest struct {
	Filename         string
	OriginalFilename string
	FileSize         string
	MimeType         string
	StorageKey       string
}

// CreateDocument records the uploaded file and hands it to the processing
// pipeline. The returned job ID identifies the queued work; the document's
// status is already PROCESSING when this returns.
func (s *DocumentService) CreateDocument(ctx context.Context, userID string, req CreateDocumentRequest) (*types.Document, string, error) {
	doc := &types.Document{
		ID:               uuid.New().String(),
		UserID:           userID,
		Filename:         req.Filename,
		OriginalFilename: req.OriginalFilename,
		FileSize:         req.FileSize,
		MimeType:         req.MimeType,
		StorageKey:       req.StorageKey,
		StorageBucket:    s.storage.Bucket(),
		Status:           types.StatusUploaded,
	}

	if err := s.repo.CreateDocument(ctx, doc); err != nil {
		return nil, "", fmt.Errorf("failed to create document: %w", err)
	}

	jobID, err := s.worker.EnqueueProcessing(ctx, doc)
	if err != nil {
		return nil, "", fmt.Errorf("failed to queue document for processing: %w", err)
	}
	doc.Status = types.StatusProcessing

	return doc, jobID, nil
}

func (s *DocumentService) ListDocuments(ctx context.Context, userID string) ([]*types.Document, error) {
	return s.repo.ListUserDocuments(ctx, userID)
}

func (s *DocumentService) GetDocument(ctx context.Context, id, userID string) (*types.Document, error) {
	return s.repo.GetUserDocument(ctx, id, userID)
}

func (s *DocumentService) GetDownloadUrl(ctx context.Context, id, userID string) (string, error) {
	doc, err := s.repo.GetUserDocument(ctx, id, userID)
	if err != nil {
		return "", err
	}

	return s.storage.GetDownloadUrl(ctx, doc.StorageKey, presignedUrlTTL)
}

// Reprocess queues a completed or failed document for another pipeline run.
func (s *DocumentService) Reprocess(ctx context.Context, id, userID string) (string, error) {
	doc, err := s.repo.GetUserDocument(ctx, id, userID)
	if err != nil {
		return "", err
	}
	if doc.Status == types.StatusProcessing {
		return "", fmt.Errorf("document is already processing")
	}

	return s.worker.EnqueueProcessing(ctx, doc)
}

func (s *DocumentService) DeleteDocument(ctx context.Context, id, userID string) error {
	doc, err := s.repo.GetUserDocument(ctx, id, userID)
	if err != nil {
		return err
	}

	if err := s.storage.Delete(ctx, doc.StorageKey); err != nil {
		return fmt.Errorf("failed to delete stored file: %w", err)
	}

	return s.repo.DeleteDocument(ctx, id, userID)
}
