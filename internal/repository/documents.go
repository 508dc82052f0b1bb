package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lvxn0va/legal-ease-ai/internal/types"
)

type DocumentRepository interface {
	CreateDocument(ctx context.Context, doc *types.Document) error
	GetDocument(ctx context.Context, id string) (*types.Document, error)
	GetUserDocument(ctx context.Context, id, userID string) (*types.Document, error)
	ListUserDocuments(ctx context.Context, userID string) ([]*types.Document, error)
	UpdateDocument(ctx context.Context, id string, changes types.DocumentUpdate) error
	DeleteDocument(ctx context.Context, id, userID string) error
}

type documentRepository struct {
	pool *pgxpool.Pool
}

func NewDocumentRepository(pool *pgxpool.Pool) DocumentRepository {
	return &documentRepository{pool: pool}
}

const documentColumns = `id, user_id, filename, original_filename,
	COALESCE(file_size, ''), COALESCE(mime_type, ''), storage_key, storage_bucket, status,
	COALESCE(extracted_text, ''), COALESCE(extraction_error, ''), lease_terms,
	COALESCE(nlp_error, ''), COALESCE(summary, ''), created_at, updated_at`

func (r *documentRepository) CreateDocument(ctx context.Context, doc *types.Document) error {
	query := `
		INSERT INTO documents (id, user_id, filename, original_filename, file_size, mime_type,
			storage_key, storage_bucket, status)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, ''), $7, $8, $9)
		RETURNING created_at, updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		doc.ID, doc.UserID, doc.Filename, doc.OriginalFilename, doc.FileSize, doc.MimeType,
		doc.StorageKey, doc.StorageBucket, doc.Status,
	).Scan(&doc.CreatedAt, &doc.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create document: %w", err)
	}

	return nil
}

func (r *documentRepository) GetDocument(ctx context.Context, id string) (*types.Document, error) {
	query := fmt.Sprintf(`SELECT %s FROM documents WHERE id = $1`, documentColumns)
	return r.scanDocument(r.pool.QueryRow(ctx, query, id))
}

func (r *documentRepository) GetUserDocument(ctx context.Context, id, userID string) (*types.Document, error) {
	query := fmt.Sprintf(`SELECT %s FROM documents WHERE id = $1 AND user_id = $2`, documentColumns)
	return r.scanDocument(r.pool.QueryRow(ctx, query, id, userID))
}

func (r *documentRepository) ListUserDocuments(ctx context.Context, userID string) ([]*types.Document, error) {
	query := fmt.Sprintf(`SELECT %s FROM documents WHERE user_id = $1 ORDER BY created_at DESC`, documentColumns)

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer rows.Close()

	var docs []*types.Document
	for rows.Next() {
		doc, err := r.scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}

	return docs, rows.Err()
}

// UpdateDocument applies a partial update and bumps updated_at, all in one
// statement so each pipeline stage commits independently.
func (r *documentRepository) UpdateDocument(ctx context.Context, id string, changes types.DocumentUpdate) error {
	set := "updated_at = NOW()"
	args := []any{id}

	add := func(column string, value any) {
		args = append(args, value)
		set += fmt.Sprintf(", %s = $%d", column, len(args))
	}

	if changes.Status != nil {
		add("status", *changes.Status)
	}
	if changes.ExtractedText != nil {
		add("extracted_text", nullIfEmpty(*changes.ExtractedText))
	}
	if changes.ExtractionError != nil {
		add("extraction_error", nullIfEmpty(*changes.ExtractionError))
	}
	if changes.LeaseTerms != nil {
		data, err := json.Marshal(changes.LeaseTerms)
		if err != nil {
			return fmt.Errorf("failed to marshal lease terms: %w", err)
		}
		add("lease_terms", data)
	}
	if changes.NLPError != nil {
		add("nlp_error", nullIfEmpty(*changes.NLPError))
	}
	if changes.Summary != nil {
		add("summary", nullIfEmpty(*changes.Summary))
	}

	query := fmt.Sprintf(`UPDATE documents SET %s WHERE id = $1`, set)
	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update document: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return types.ErrDocumentNotFound
	}

	return nil
}

func (r *documentRepository) DeleteDocument(ctx context.Context, id, userID string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM documents WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return types.ErrDocumentNotFound
	}

	return nil
}

func (r *documentRepository) scanDocument(row pgx.Row) (*types.Document, error) {
	doc := &types.Document{}
	var leaseTerms []byte

	err := row.Scan(
		&doc.ID, &doc.UserID, &doc.Filename, &doc.OriginalFilename,
		&doc.FileSize, &doc.MimeType, &doc.StorageKey, &doc.StorageBucket, &doc.Status,
		&doc.ExtractedText, &doc.ExtractionError, &leaseTerms,
		&doc.NLPError, &doc.Summary, &doc.CreatedAt, &doc.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, types.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("failed to scan document: %w", err)
	}

	if len(leaseTerms) > 0 {
		terms := &types.LeaseTerms{}
		if err := json.Unmarshal(leaseTerms, terms); err != nil {
			return nil, fmt.Errorf("failed to unmarshal lease terms: %w", err)
		}
		doc.LeaseTerms = terms
	}

	return doc, nil
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
