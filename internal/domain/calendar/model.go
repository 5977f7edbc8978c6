// Package calendar provides fiscal years and accounting periods.
// The numbering engine consumes it through the PeriodFinder contract only;
// calendar management itself (creating years, opening/closing periods) is
// administrative configuration.
package calendar

import (
	"context"
	"time"

	"faktura/internal/core/apperror"
	"faktura/internal/core/entity"
	"faktura/internal/core/id"
)

// PeriodState is the open/closed state of a period.
type PeriodState string

const (
	PeriodOpen   PeriodState = "open"
	PeriodClosed PeriodState = "closed"
)

// FiscalYear bounds a company's accounting year.
type FiscalYear struct {
	entity.Catalog

	CompanyID id.ID     `db:"company_id" json:"companyId"`
	StartDate time.Time `db:"start_date" json:"startDate"`
	EndDate   time.Time `db:"end_date" json:"endDate"`
}

// NewFiscalYear creates a new FiscalYear.
func NewFiscalYear(code, name string, companyID id.ID, start, end time.Time) *FiscalYear {
	return &FiscalYear{
		Catalog:   entity.NewCatalog(code, name),
		CompanyID: companyID,
		StartDate: start,
		EndDate:   end,
	}
}

// Covers reports whether date falls inside the fiscal year (inclusive).
func (fy *FiscalYear) Covers(date time.Time) bool {
	return covers(fy.StartDate, fy.EndDate, date)
}

// Validate implements entity.Validatable.
func (fy *FiscalYear) Validate(ctx context.Context) error {
	if err := fy.Catalog.Validate(ctx); err != nil {
		return err
	}

	if id.IsNil(fy.CompanyID) {
		return apperror.NewValidation("company is required").
			WithDetail("field", "companyId")
	}

	if !fy.EndDate.After(fy.StartDate) {
		return apperror.NewValidation("end date must be after start date").
			WithDetail("field", "endDate")
	}

	return nil
}

// Period is a sub-interval of a fiscal year (usually a month).
type Period struct {
	entity.Catalog

	FiscalYearID id.ID       `db:"fiscal_year_id" json:"fiscalYearId"`
	CompanyID    id.ID       `db:"company_id" json:"companyId"`
	StartDate    time.Time   `db:"start_date" json:"startDate"`
	EndDate      time.Time   `db:"end_date" json:"endDate"`
	State        PeriodState `db:"state" json:"state"`
}

// NewPeriod creates a new open Period.
func NewPeriod(code, name string, fiscalYearID, companyID id.ID, start, end time.Time) *Period {
	return &Period{
		Catalog:      entity.NewCatalog(code, name),
		FiscalYearID: fiscalYearID,
		CompanyID:    companyID,
		StartDate:    start,
		EndDate:      end,
		State:        PeriodOpen,
	}
}

// Covers reports whether date falls inside the period (inclusive).
func (p *Period) Covers(date time.Time) bool {
	return covers(p.StartDate, p.EndDate, date)
}

// IsOpen reports whether documents may be dated into the period.
func (p *Period) IsOpen() bool {
	return p.State == PeriodOpen
}

// Validate implements entity.Validatable.
func (p *Period) Validate(ctx context.Context) error {
	if err := p.Catalog.Validate(ctx); err != nil {
		return err
	}

	if id.IsNil(p.FiscalYearID) {
		return apperror.NewValidation("fiscal year is required").
			WithDetail("field", "fiscalYearId")
	}

	if id.IsNil(p.CompanyID) {
		return apperror.NewValidation("company is required").
			WithDetail("field", "companyId")
	}

	if !p.EndDate.After(p.StartDate) {
		return apperror.NewValidation("end date must be after start date").
			WithDetail("field", "endDate")
	}

	if p.State != PeriodOpen && p.State != PeriodClosed {
		return apperror.NewValidation("unknown period state").
			WithDetail("field", "state").
			WithDetail("value", string(p.State))
	}

	return nil
}

// covers compares by calendar day, ignoring the time component.
func covers(start, end, date time.Time) bool {
	d := date.Truncate(24 * time.Hour)
	return !d.Before(start.Truncate(24*time.Hour)) && !d.After(end.Truncate(24*time.Hour))
}
