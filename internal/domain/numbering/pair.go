package numbering

import (
	"context"

	"faktura/internal/core/apperror"
	"faktura/internal/core/id"
	"faktura/internal/domain/catalogs/journal"
)

// SequencePair binds the two sequences of one direction: the invoice
// sequence and the credit note sequence. The direction tag must match the
// journal the assignment hangs off; a revenue pair serves customer
// documents, an expense pair supplier ones.
type SequencePair struct {
	Direction journal.Type `db:"direction" json:"direction"`

	InvoiceSequenceID    *id.ID `db:"invoice_sequence_id" json:"invoiceSequenceId,omitempty"`
	CreditNoteSequenceID *id.ID `db:"credit_note_sequence_id" json:"creditNoteSequenceId,omitempty"`
}

// SequenceFor returns the sequence reference serving the given kind.
// A direction mismatch or an unset reference is a configuration defect:
// the assignment was resolvable but cannot serve the document.
func (p SequencePair) SequenceFor(kind Kind) (id.ID, error) {
	if kind.Direction() != p.Direction {
		return id.Nil(), apperror.NewConfiguration("assignment direction does not serve this invoice kind").
			WithDetail("kind", string(kind)).
			WithDetail("direction", string(p.Direction))
	}

	var ref *id.ID
	if kind.IsCreditNote() {
		ref = p.CreditNoteSequenceID
	} else {
		ref = p.InvoiceSequenceID
	}

	if ref == nil || id.IsNil(*ref) {
		return id.Nil(), apperror.NewConfiguration("assignment has no sequence for this invoice kind").
			WithDetail("kind", string(kind))
	}

	return *ref, nil
}

// Validate checks the pair invariants.
func (p SequencePair) Validate(ctx context.Context) error {
	if p.Direction != journal.TypeRevenue && p.Direction != journal.TypeExpense {
		return apperror.NewValidation("pair direction must be revenue or expense").
			WithDetail("field", "direction").
			WithDetail("value", string(p.Direction))
	}

	// Both references are required for the pair's own direction: a journal
	// of that type will dispatch both invoices and credit notes here.
	if p.InvoiceSequenceID == nil || id.IsNil(*p.InvoiceSequenceID) {
		return apperror.NewValidation("invoice sequence is required").
			WithDetail("field", "invoiceSequenceId")
	}
	if p.CreditNoteSequenceID == nil || id.IsNil(*p.CreditNoteSequenceID) {
		return apperror.NewValidation("credit note sequence is required").
			WithDetail("field", "creditNoteSequenceId")
	}

	return nil
}
