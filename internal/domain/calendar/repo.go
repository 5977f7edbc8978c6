package calendar

import (
	"context"
	"time"

	"faktura/internal/core/id"
	"faktura/internal/domain"
)

// PeriodFinder locates the accounting period covering a date.
// This is the narrow contract the numbering engine depends on.
type PeriodFinder interface {
	// FindPeriod returns the period of the company covering date.
	// When allowClosed is false only open periods qualify.
	// Returns NO_PERIOD when nothing covers the date.
	FindPeriod(ctx context.Context, companyID id.ID, date time.Time, allowClosed bool) (*Period, error)
}

// Repository defines persistence for fiscal years and periods.
type Repository interface {
	PeriodFinder

	CreateFiscalYear(ctx context.Context, fy *FiscalYear) error
	GetFiscalYear(ctx context.Context, fyID id.ID) (*FiscalYear, error)
	ListFiscalYears(ctx context.Context, companyID id.ID) ([]*FiscalYear, error)

	CreatePeriod(ctx context.Context, p *Period) error
	GetPeriod(ctx context.Context, periodID id.ID) (*Period, error)
	ListPeriods(ctx context.Context, fiscalYearID id.ID) ([]*Period, error)
	SetPeriodState(ctx context.Context, periodID id.ID, state PeriodState) error

	// List supports the administrative HTTP surface.
	List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*FiscalYear], error)
}
