package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"faktura/internal/domain/documents/invoice"
)

// CreateInvoiceLineRequest is one line of a new invoice.
type CreateInvoiceLineRequest struct {
	Description string          `json:"description" binding:"required"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice   decimal.Decimal `json:"unitPrice" binding:"required"`
	TaxRate     decimal.Decimal `json:"taxRate"`
}

// CreateInvoiceRequest for creating draft invoices.
type CreateInvoiceRequest struct {
	Kind      string `json:"kind" binding:"required"`
	CompanyID string `json:"companyId" binding:"required"`
	JournalID string `json:"journalId" binding:"required"`
	PartyID   string `json:"partyId" binding:"required"`
	PartyName string `json:"partyName"`
	Currency  string `json:"currency" binding:"required"`

	InvoiceDate    *time.Time `json:"invoiceDate"`
	AccountingDate *time.Time `json:"accountingDate"`
	Comment        string     `json:"comment"`

	Lines []CreateInvoiceLineRequest `json:"lines" binding:"required,min=1"`
}

// PostInvoiceRequest carries optional posting scope overrides.
// Date overrides the ambient numbering date for documents without one.
type PostInvoiceRequest struct {
	Date *time.Time `json:"date"`
}

// InvoiceLineResponse contains invoice line fields.
type InvoiceLineResponse struct {
	LineID      string          `json:"lineId"`
	LineNo      int             `json:"lineNo"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	TaxRate     decimal.Decimal `json:"taxRate"`
	TaxAmount   decimal.Decimal `json:"taxAmount"`
	Amount      decimal.Decimal `json:"amount"`
}

// InvoiceResponse contains invoice fields.
type InvoiceResponse struct {
	DocumentBaseResponse

	Number string `json:"number"`
	Posted bool   `json:"posted"`
	Kind   string `json:"kind"`

	CompanyID string `json:"companyId"`
	JournalID string `json:"journalId"`
	PartyID   string `json:"partyId"`
	PartyName string `json:"partyName,omitempty"`

	InvoiceDate    *time.Time `json:"invoiceDate,omitempty"`
	AccountingDate *time.Time `json:"accountingDate,omitempty"`

	Currency      string          `json:"currency"`
	UntaxedAmount decimal.Decimal `json:"untaxedAmount"`
	TaxAmount     decimal.Decimal `json:"taxAmount"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	Comment       string          `json:"comment,omitempty"`

	Lines []InvoiceLineResponse `json:"lines"`
}

// FromInvoice creates InvoiceResponse from invoice.Invoice.
func FromInvoice(doc *invoice.Invoice) InvoiceResponse {
	lines := make([]InvoiceLineResponse, len(doc.Lines))
	for i, line := range doc.Lines {
		lines[i] = InvoiceLineResponse{
			LineID:      line.LineID.String(),
			LineNo:      line.LineNo,
			Description: line.Description,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
			TaxRate:     line.TaxRate,
			TaxAmount:   line.TaxAmount,
			Amount:      line.Amount,
		}
	}

	return InvoiceResponse{
		DocumentBaseResponse: FromBaseDocument(doc.BaseDocument),
		Number:               doc.Number,
		Posted:               doc.Posted,
		Kind:                 string(doc.Kind),
		CompanyID:            doc.CompanyID.String(),
		JournalID:            doc.JournalID.String(),
		PartyID:              doc.PartyID.String(),
		PartyName:            doc.PartyName,
		InvoiceDate:          doc.InvoiceDate,
		AccountingDate:       doc.AccountingDate,
		Currency:             doc.Currency,
		UntaxedAmount:        doc.UntaxedAmount,
		TaxAmount:            doc.TaxAmount,
		TotalAmount:          doc.TotalAmount,
		Comment:              doc.Comment,
		Lines:                lines,
	}
}
