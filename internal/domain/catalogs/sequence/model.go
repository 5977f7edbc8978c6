// Package sequence provides the Sequence catalog.
// A sequence is a named, strictly monotonic counter producing formatted
// invoice numbers. The persisted counter value lives with the row; issuance
// goes through counter.Issuer so the increment is transaction-safe.
package sequence

import (
	"context"
	"fmt"
	"time"

	"faktura/internal/core/apperror"
	"faktura/internal/core/entity"
	"faktura/internal/core/id"
)

// Sequence represents a configured numbering sequence.
type Sequence struct {
	entity.Catalog

	// CompanyID is the owning company
	CompanyID id.ID `db:"company_id" json:"companyId"`

	// Prefix is prepended to every number (e.g. "FV", "NC")
	Prefix string `db:"prefix" json:"prefix"`

	// PadWidth is the minimum digit width of the numeric part
	PadWidth int `db:"pad_width" json:"padWidth"`

	// IncludeYear inserts the context-date year between prefix and number
	IncludeYear bool `db:"include_year" json:"includeYear"`

	// CurrentValue is the last issued raw value. Managed by the issuer,
	// never written directly by services.
	CurrentValue int64 `db:"current_value" json:"currentValue"`
}

// NewSequence creates a new Sequence.
func NewSequence(code, name, prefix string, companyID id.ID) *Sequence {
	return &Sequence{
		Catalog:     entity.NewCatalog(code, name),
		CompanyID:   companyID,
		Prefix:      prefix,
		PadWidth:    5,
		IncludeYear: true,
	}
}

// Validate implements entity.Validatable.
func (s *Sequence) Validate(ctx context.Context) error {
	if err := s.Catalog.Validate(ctx); err != nil {
		return err
	}

	if id.IsNil(s.CompanyID) {
		return apperror.NewValidation("company is required").
			WithDetail("field", "companyId")
	}

	if s.Prefix == "" {
		return apperror.NewValidation("prefix is required").
			WithDetail("field", "prefix")
	}

	if s.PadWidth < 1 || s.PadWidth > 12 {
		return apperror.NewValidation("pad width must be between 1 and 12").
			WithDetail("field", "padWidth")
	}

	return nil
}

// Format renders a raw counter value as the final document number.
// The context date contributes the year component only.
func Format(prefix string, padWidth int, includeYear bool, contextDate time.Time, value int64) string {
	if padWidth == 0 {
		padWidth = 5
	}

	if includeYear {
		return fmt.Sprintf("%s-%s-%0*d", prefix, contextDate.Format("2006"), padWidth, value)
	}
	return fmt.Sprintf("%s-%0*d", prefix, padWidth, value)
}

// Format renders a raw counter value using this sequence's settings.
func (s *Sequence) Format(contextDate time.Time, value int64) string {
	return Format(s.Prefix, s.PadWidth, s.IncludeYear, contextDate, value)
}
