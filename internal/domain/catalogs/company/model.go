// Package company provides the Company catalog.
package company

import (
	"context"

	"faktura/internal/core/entity"
)

// Company is a legal entity that owns fiscal years, devices and invoices.
type Company struct {
	entity.Catalog

	// TaxID is the company's fiscal identification number
	TaxID string `db:"tax_id" json:"taxId,omitempty"`

	// Currency is the accounting currency (ISO 4217)
	Currency string `db:"currency" json:"currency"`
}

// NewCompany creates a new Company.
func NewCompany(code, name string) *Company {
	return &Company{
		Catalog:  entity.NewCatalog(code, name),
		Currency: "USD",
	}
}

// Validate implements entity.Validatable.
func (c *Company) Validate(ctx context.Context) error {
	return c.Catalog.Validate(ctx)
}
