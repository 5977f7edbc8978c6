package numbering

import (
	"context"
	"time"

	"faktura/internal/core/apperror"
	"faktura/internal/core/entity"
	"faktura/internal/core/id"
	"faktura/internal/domain/catalogs/journal"
)

// Assignment binds a scope (journal, fiscal year, optional period, company,
// device) to the sequence pair that numbers invoices falling into it.
// Read-only at invoicing time; created and edited by configuration
// administrators.
type Assignment struct {
	entity.BaseEntity

	JournalID    id.ID  `db:"journal_id" json:"journalId"`
	FiscalYearID id.ID  `db:"fiscal_year_id" json:"fiscalYearId"`
	PeriodID     *id.ID `db:"period_id" json:"periodId,omitempty"`
	CompanyID    id.ID  `db:"company_id" json:"companyId"`
	DeviceID     id.ID  `db:"device_id" json:"deviceId"`

	Pair SequencePair `json:"pair"`

	// CreatedAt orders assignments within one scope. Resolution walks
	// assignments in insertion order, so this is the de-facto priority,
	// not an incidental artifact.
	CreatedAt time.Time `db:"created_at" json:"createdAt"`

	// Date windows of the referenced period and fiscal year, denormalized
	// by the repository so resolution needs no further lookups.
	PeriodStart *time.Time `db:"period_start" json:"-"`
	PeriodEnd   *time.Time `db:"period_end" json:"-"`
	FYStart     time.Time  `db:"fy_start" json:"-"`
	FYEnd       time.Time  `db:"fy_end" json:"-"`
}

// NewAssignment creates a new Assignment.
func NewAssignment(journalID, fiscalYearID, companyID, deviceID id.ID, pair SequencePair) *Assignment {
	return &Assignment{
		BaseEntity:   entity.NewBaseEntity(),
		JournalID:    journalID,
		FiscalYearID: fiscalYearID,
		CompanyID:    companyID,
		DeviceID:     deviceID,
		Pair:         pair,
		CreatedAt:    time.Now().UTC(),
	}
}

// HasPeriod reports whether the assignment is narrowed to a period.
func (a *Assignment) HasPeriod() bool {
	return a.PeriodID != nil && !id.IsNil(*a.PeriodID)
}

// PeriodCovers reports whether date falls inside the assignment's period
// window. False when the assignment has no period.
func (a *Assignment) PeriodCovers(date time.Time) bool {
	if !a.HasPeriod() || a.PeriodStart == nil || a.PeriodEnd == nil {
		return false
	}
	return coversDay(*a.PeriodStart, *a.PeriodEnd, date)
}

// FiscalYearCovers reports whether date falls inside the assignment's
// fiscal year window.
func (a *Assignment) FiscalYearCovers(date time.Time) bool {
	return coversDay(a.FYStart, a.FYEnd, date)
}

// Validate implements entity.Validatable.
func (a *Assignment) Validate(ctx context.Context) error {
	if id.IsNil(a.JournalID) {
		return apperror.NewValidation("journal is required").
			WithDetail("field", "journalId")
	}
	if id.IsNil(a.FiscalYearID) {
		return apperror.NewValidation("fiscal year is required").
			WithDetail("field", "fiscalYearId")
	}
	if id.IsNil(a.CompanyID) {
		return apperror.NewValidation("company is required").
			WithDetail("field", "companyId")
	}
	if id.IsNil(a.DeviceID) {
		return apperror.NewValidation("device is required").
			WithDetail("field", "deviceId")
	}

	return a.Pair.Validate(ctx)
}

// ValidateAgainstJournal checks the pair direction matches the journal type.
func (a *Assignment) ValidateAgainstJournal(j *journal.Journal) error {
	if j.Type != journal.TypeRevenue && j.Type != journal.TypeExpense {
		return apperror.NewValidation("only revenue and expense journals may carry sequence assignments").
			WithDetail("journalId", j.ID.String()).
			WithDetail("type", string(j.Type))
	}

	if a.Pair.Direction != j.Type {
		return apperror.NewValidation("pair direction must match the journal type").
			WithDetail("journalType", string(j.Type)).
			WithDetail("pairDirection", string(a.Pair.Direction))
	}

	return nil
}

// coversDay compares by calendar day, ignoring the time component.
func coversDay(start, end, date time.Time) bool {
	d := date.Truncate(24 * time.Hour)
	return !d.Before(start.Truncate(24*time.Hour)) && !d.After(end.Truncate(24*time.Hour))
}
