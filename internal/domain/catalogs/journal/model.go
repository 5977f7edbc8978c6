// Package journal provides the Journal catalog.
// A journal is an accounting book classifying invoices by direction:
// revenue journals hold customer documents, expense journals supplier ones.
package journal

import (
	"context"

	"faktura/internal/core/apperror"
	"faktura/internal/core/entity"
)

// Type is the journal direction-type.
type Type string

const (
	TypeRevenue Type = "revenue"
	TypeExpense Type = "expense"
	TypeOther   Type = "other"
)

// Valid reports whether t is a known journal type.
func (t Type) Valid() bool {
	switch t {
	case TypeRevenue, TypeExpense, TypeOther:
		return true
	}
	return false
}

// Journal represents an accounting book.
type Journal struct {
	entity.Catalog

	// Type is the direction-type. Only revenue and expense journals may
	// carry sequence assignments.
	Type Type `db:"type" json:"type"`
}

// NewJournal creates a new Journal.
func NewJournal(code, name string, t Type) *Journal {
	return &Journal{
		Catalog: entity.NewCatalog(code, name),
		Type:    t,
	}
}

// Validate implements entity.Validatable.
func (j *Journal) Validate(ctx context.Context) error {
	if err := j.Catalog.Validate(ctx); err != nil {
		return err
	}

	if !j.Type.Valid() {
		return apperror.NewValidation("unknown journal type").
			WithDetail("field", "type").
			WithDetail("value", string(j.Type))
	}

	return nil
}
