package pipeline

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// MaxRetries is the default bound on re-enqueues for a job that hit a
// transient failure. Classified failures (extraction errors, quality-gate
// rejections) never retry.
const MaxRetries = 3

// Locator identifies the source file in object storage.
type Locator struct {
	Bucket string `json:"bucket"`
	Key    string `json:"key"`
}

// Job is one document-processing request. It is immutable after creation
// except through Retry, which returns a clone with the counter bumped.
type Job struct {
	ID         string    `json:"id"`
	DocumentID string    `json:"document_id"`
	UserID     string    `json:"user_id"`
	Locator    Locator   `json:"locator"`
	RetryCount int       `json:"retry_count"`
	CreatedAt  time.Time `json:"created_at"`
}

func NewJob(documentID, userID string, locator Locator) Job {
	return Job{
		ID:         uuid.New().String(),
		DocumentID: documentID,
		UserID:     userID,
		Locator:    locator,
		CreatedAt:  time.Now().UTC(),
	}
}

// Retry clones the job with an incremented retry counter. The clone keeps the
// original job ID so log lines for all attempts correlate.
func (j Job) Retry() Job {
	j.RetryCount++
	return j
}

func (j Job) String() string {
	return fmt.Sprintf("Job{ID: %s, DocumentID: %s, RetryCount: %d}", j.ID, j.DocumentID, j.RetryCount)
}
