package types

import "errors"

// ErrDocumentNotFound is returned by document stores when no row matches.
var ErrDocumentNotFound = errors.New("document not found")

// DocumentUpdate is a partial update of a document row. Nil fields are left
// untouched; a pointer to the zero value clears the column. Each update is
// committed on its own so partial pipeline progress is visible immediately.
type DocumentUpdate struct {
	Status          *DocumentStatus
	ExtractedText   *string
	ExtractionError *string
	LeaseTerms      *LeaseTerms
	NLPError        *string
	Summary         *string
}
