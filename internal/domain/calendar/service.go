package calendar

import (
	"context"

	"faktura/internal/core/apperror"
	"faktura/internal/core/id"
	"faktura/pkg/logger"
)

// Service provides administrative operations on the accounting calendar.
type Service struct {
	repo Repository
}

// NewService creates a new calendar service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreateFiscalYear validates and stores a fiscal year.
func (s *Service) CreateFiscalYear(ctx context.Context, fy *FiscalYear) error {
	if err := fy.Validate(ctx); err != nil {
		return err
	}

	if err := s.repo.CreateFiscalYear(ctx, fy); err != nil {
		return err
	}

	logger.Info(ctx, "fiscal year created",
		"id", fy.ID,
		"company_id", fy.CompanyID,
		"code", fy.Code)
	return nil
}

// CreatePeriod validates and stores a period inside its fiscal year.
func (s *Service) CreatePeriod(ctx context.Context, p *Period) error {
	if err := p.Validate(ctx); err != nil {
		return err
	}

	fy, err := s.repo.GetFiscalYear(ctx, p.FiscalYearID)
	if err != nil {
		return err
	}

	if !fy.Covers(p.StartDate) || !fy.Covers(p.EndDate) {
		return apperror.NewValidation("period must lie inside its fiscal year").
			WithDetail("fiscalYearId", fy.ID.String())
	}

	if err := s.repo.CreatePeriod(ctx, p); err != nil {
		return err
	}

	logger.Info(ctx, "period created",
		"id", p.ID,
		"fiscal_year_id", p.FiscalYearID,
		"code", p.Code)
	return nil
}

// ClosePeriod marks a period closed for customer documents.
func (s *Service) ClosePeriod(ctx context.Context, periodID id.ID) error {
	return s.repo.SetPeriodState(ctx, periodID, PeriodClosed)
}

// ReopenPeriod marks a period open again.
func (s *Service) ReopenPeriod(ctx context.Context, periodID id.ID) error {
	return s.repo.SetPeriodState(ctx, periodID, PeriodOpen)
}

// GetFiscalYear retrieves a fiscal year by ID.
func (s *Service) GetFiscalYear(ctx context.Context, fyID id.ID) (*FiscalYear, error) {
	return s.repo.GetFiscalYear(ctx, fyID)
}

// ListPeriods lists the periods of a fiscal year.
func (s *Service) ListPeriods(ctx context.Context, fiscalYearID id.ID) ([]*Period, error) {
	return s.repo.ListPeriods(ctx, fiscalYearID)
}
