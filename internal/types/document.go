package types

import "time"

// DocumentStatus is the processing state of an uploaded document.
// Transitions are owned by the processing pipeline:
// uploaded -> processing -> completed | failed.
type DocumentStatus string

const (
	StatusUploaded   DocumentStatus = "uploaded"
	StatusProcessing DocumentStatus = "processing"
	StatusCompleted  DocumentStatus = "completed"
	StatusFailed     DocumentStatus = "failed"
)

type Document struct {
	ID               string         `json:"id"`
	UserID           string         `json:"user_id"`
	Filename         string         `json:"filename"`
	OriginalFilename string         `json:"original_filename"`
	FileSize         string         `json:"file_size,omitempty"`
	MimeType         string         `json:"mime_type"`
	StorageKey       string         `json:"storage_key"`
	StorageBucket    string         `json:"storage_bucket"`
	Status           DocumentStatus `json:"status"`
	ExtractedText    string         `json:"extracted_text,omitempty"`
	ExtractionError  string         `json:"extraction_error,omitempty"`
	LeaseTerms       *LeaseTerms    `json:"lease_terms,omitempty"`
	NLPError         string         `json:"nlp_error,omitempty"`
	Summary          string         `json:"summary,omitempty"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}
