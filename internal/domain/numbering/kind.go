// Package numbering provides the invoice sequence resolution and number
// issuance engine: it picks the numbering sequence matching an invoice's
// device, journal, date and kind, then issues the next strict number from it.
package numbering

import (
	"faktura/internal/domain/catalogs/journal"
)

// Kind classifies an invoice by direction and sign.
type Kind string

const (
	KindCustomerInvoice    Kind = "customer_invoice"
	KindCustomerCreditNote Kind = "customer_credit_note"
	KindSupplierInvoice    Kind = "supplier_invoice"
	KindSupplierCreditNote Kind = "supplier_credit_note"
)

// Valid reports whether k is a known invoice kind.
func (k Kind) Valid() bool {
	switch k {
	case KindCustomerInvoice, KindCustomerCreditNote,
		KindSupplierInvoice, KindSupplierCreditNote:
		return true
	}
	return false
}

// IsCustomer reports whether k is a customer-side document.
// Customer documents get an auto-assigned invoice date at numbering time
// and may only be dated into open periods.
func (k Kind) IsCustomer() bool {
	return k == KindCustomerInvoice || k == KindCustomerCreditNote
}

// IsSupplier reports whether k is a supplier-side document.
// Supplier documents may be posted into closed periods.
func (k Kind) IsSupplier() bool {
	return k == KindSupplierInvoice || k == KindSupplierCreditNote
}

// IsCreditNote reports whether k reverses an invoice.
func (k Kind) IsCreditNote() bool {
	return k == KindCustomerCreditNote || k == KindSupplierCreditNote
}

// Direction maps the kind to the journal type it belongs to.
func (k Kind) Direction() journal.Type {
	if k.IsCustomer() {
		return journal.TypeRevenue
	}
	return journal.TypeExpense
}
