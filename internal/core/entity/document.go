package entity

import (
	"context"

	"faktura/internal/core/apperror"
	"faktura/internal/core/id"
)

// Document is the base type for business transactions.
// Examples: Invoice, CreditNote.
type Document struct {
	BaseDocument

	// Number is the legally traceable document number. Empty until the
	// numbering engine assigns one at posting time.
	Number string `db:"number" json:"number"`

	// Posted indicates the document is finalized and immutable
	Posted bool `db:"posted" json:"posted"`

	// Comment is an optional user comment
	Comment string `db:"comment" json:"comment,omitempty"`
}

// NewDocument creates a new Document with generated ID.
func NewDocument() Document {
	return Document{
		BaseDocument: NewBaseDocument(),
	}
}

// GetNumber returns the assigned document number, empty when unnumbered.
func (d *Document) GetNumber() string {
	return d.Number
}

// SetNumber stamps the document number.
func (d *Document) SetNumber(number string) {
	d.Number = number
}

// Validate implements Validatable interface.
func (d *Document) Validate(ctx context.Context) error {
	if id.IsNil(d.ID) {
		return apperror.NewValidation("id is required").
			WithDetail("field", "id")
	}
	return nil
}

// CanModify checks if document can be modified.
// Posted documents are frozen.
func (d *Document) CanModify() error {
	if d.Posted {
		return apperror.NewBusinessRule(
			apperror.CodeDocumentPosted,
			"Cannot modify posted document.",
		).WithDetail("document_id", d.ID.String())
	}
	return nil
}

// MarkPosted sets the posted flag.
func (d *Document) MarkPosted() {
	d.Posted = true
	d.Touch()
}

// MarkUnposted clears the posted flag.
func (d *Document) MarkUnposted() {
	d.Posted = false
	d.Touch()
}
