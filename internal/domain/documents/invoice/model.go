// Package invoice provides the Invoice document: customer and supplier
// invoices and credit notes with a draft to posted lifecycle. Posting
// triggers sequence numbering and freezes the document.
package invoice

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"faktura/internal/core/apperror"
	"faktura/internal/core/entity"
	"faktura/internal/core/id"
	"faktura/internal/domain/numbering"
)

// Invoice represents an invoice or credit note document.
type Invoice struct {
	entity.Document

	Kind numbering.Kind `db:"kind" json:"kind"`

	CompanyID id.ID `db:"company_id" json:"companyId"`
	JournalID id.ID `db:"journal_id" json:"journalId"`

	// PartyID references the customer or supplier.
	PartyID   id.ID  `db:"party_id" json:"partyId"`
	PartyName string `db:"party_name" json:"partyName,omitempty"`

	// InvoiceDate is the legal date of the invoice. For customer documents
	// it is stamped automatically at numbering time when absent.
	InvoiceDate *time.Time `db:"invoice_date" json:"invoiceDate,omitempty"`

	// AccountingDate overrides InvoiceDate for period lookup when set.
	AccountingDate *time.Time `db:"accounting_date" json:"accountingDate,omitempty"`

	Currency string `db:"currency" json:"currency"`

	// Totals (calculated from lines)
	UntaxedAmount decimal.Decimal `db:"untaxed_amount" json:"untaxedAmount"`
	TaxAmount     decimal.Decimal `db:"tax_amount" json:"taxAmount"`
	TotalAmount   decimal.Decimal `db:"total_amount" json:"totalAmount"`

	// Table part
	Lines []Line `db:"-" json:"lines"`
}

// Line represents an invoice line.
type Line struct {
	LineID id.ID `db:"line_id" json:"lineId"`
	LineNo int   `db:"line_no" json:"lineNo"`

	Description string `db:"description" json:"description"`

	Quantity  decimal.Decimal `db:"quantity" json:"quantity"`
	UnitPrice decimal.Decimal `db:"unit_price" json:"unitPrice"`

	// TaxRate is a percentage, e.g. 12 for 12%.
	TaxRate   decimal.Decimal `db:"tax_rate" json:"taxRate"`
	TaxAmount decimal.Decimal `db:"tax_amount" json:"taxAmount"`

	// Amount is the line total including tax.
	Amount decimal.Decimal `db:"amount" json:"amount"`
}

// New creates a new draft invoice.
func New(kind numbering.Kind, companyID, journalID, partyID id.ID, currency string) *Invoice {
	return &Invoice{
		Document:  entity.NewDocument(),
		Kind:      kind,
		CompanyID: companyID,
		JournalID: journalID,
		PartyID:   partyID,
		Currency:  currency,
		Lines:     make([]Line, 0),
	}
}

// AddLine appends a line and recalculates totals.
func (i *Invoice) AddLine(description string, quantity, unitPrice, taxRate decimal.Decimal) {
	base := quantity.Mul(unitPrice)
	tax := base.Mul(taxRate).Div(decimal.NewFromInt(100)).Round(2)

	line := Line{
		LineID:      id.New(),
		LineNo:      len(i.Lines) + 1,
		Description: description,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		TaxRate:     taxRate,
		TaxAmount:   tax,
		Amount:      base.Add(tax),
	}

	i.Lines = append(i.Lines, line)
	i.recalculateTotals()
}

// recalculateTotals updates document totals from lines.
func (i *Invoice) recalculateTotals() {
	i.UntaxedAmount = decimal.Zero
	i.TaxAmount = decimal.Zero
	i.TotalAmount = decimal.Zero

	for _, line := range i.Lines {
		i.UntaxedAmount = i.UntaxedAmount.Add(line.Quantity.Mul(line.UnitPrice))
		i.TaxAmount = i.TaxAmount.Add(line.TaxAmount)
		i.TotalAmount = i.TotalAmount.Add(line.Amount)
	}
}

// Validate implements entity.Validatable.
func (i *Invoice) Validate(ctx context.Context) error {
	if err := i.Document.Validate(ctx); err != nil {
		return err
	}

	if !i.Kind.Valid() {
		return apperror.NewValidation("unknown invoice kind").
			WithDetail("field", "kind").
			WithDetail("value", string(i.Kind))
	}

	if id.IsNil(i.CompanyID) {
		return apperror.NewValidation("company is required").
			WithDetail("field", "companyId")
	}

	if id.IsNil(i.JournalID) {
		return apperror.NewValidation("journal is required").
			WithDetail("field", "journalId")
	}

	if id.IsNil(i.PartyID) {
		return apperror.NewValidation("party is required").
			WithDetail("field", "partyId")
	}

	if i.Currency == "" {
		return apperror.NewValidation("currency is required").
			WithDetail("field", "currency")
	}

	if len(i.Lines) == 0 {
		return apperror.NewValidation("at least one line is required").
			WithDetail("field", "lines")
	}

	for n, line := range i.Lines {
		if line.Quantity.LessThanOrEqual(decimal.Zero) {
			return apperror.NewValidation("quantity must be positive").
				WithDetail("field", "lines").
				WithDetail("lineNo", n+1)
		}
		if line.UnitPrice.IsNegative() {
			return apperror.NewValidation("unit price cannot be negative").
				WithDetail("field", "lines").
				WithDetail("lineNo", n+1)
		}
	}

	return nil
}

// --- numbering.Numberable implementation ---
// GetID, GetNumber, SetNumber, GetCreatedBy are inherited from entity.Document.

// GetKind returns the invoice kind.
func (i *Invoice) GetKind() numbering.Kind {
	return i.Kind
}

// GetCompanyID returns the owning company.
func (i *Invoice) GetCompanyID() id.ID {
	return i.CompanyID
}

// GetJournalID returns the journal the invoice books into.
func (i *Invoice) GetJournalID() id.ID {
	return i.JournalID
}

// GetInvoiceDate returns the invoice date, nil while unset.
func (i *Invoice) GetInvoiceDate() *time.Time {
	return i.InvoiceDate
}

// SetInvoiceDate stamps the invoice date.
func (i *Invoice) SetInvoiceDate(date time.Time) {
	i.InvoiceDate = &date
}

// GetAccountingDate returns the accounting date override, nil while unset.
func (i *Invoice) GetAccountingDate() *time.Time {
	return i.AccountingDate
}

// Ensure interface compliance at compile time.
var _ numbering.Numberable = (*Invoice)(nil)
