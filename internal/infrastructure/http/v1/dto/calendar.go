package dto

import (
	"time"

	"faktura/internal/domain/calendar"
)

// CreateFiscalYearRequest for creating fiscal years.
type CreateFiscalYearRequest struct {
	Code      string    `json:"code" binding:"required"`
	Name      string    `json:"name" binding:"required"`
	CompanyID string    `json:"companyId" binding:"required"`
	StartDate time.Time `json:"startDate" binding:"required"`
	EndDate   time.Time `json:"endDate" binding:"required"`
}

// FiscalYearResponse contains fiscal year fields.
type FiscalYearResponse struct {
	CatalogResponse
	CompanyID string    `json:"companyId"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
}

// FromFiscalYear creates FiscalYearResponse from calendar.FiscalYear.
func FromFiscalYear(fy *calendar.FiscalYear) FiscalYearResponse {
	return FiscalYearResponse{
		CatalogResponse: FromCatalog(fy.Catalog),
		CompanyID:       fy.CompanyID.String(),
		StartDate:       fy.StartDate,
		EndDate:         fy.EndDate,
	}
}

// CreatePeriodRequest for creating periods inside a fiscal year.
type CreatePeriodRequest struct {
	Code         string    `json:"code" binding:"required"`
	Name         string    `json:"name" binding:"required"`
	FiscalYearID string    `json:"fiscalYearId" binding:"required"`
	StartDate    time.Time `json:"startDate" binding:"required"`
	EndDate      time.Time `json:"endDate" binding:"required"`
}

// PeriodResponse contains period fields.
type PeriodResponse struct {
	CatalogResponse
	FiscalYearID string    `json:"fiscalYearId"`
	CompanyID    string    `json:"companyId"`
	StartDate    time.Time `json:"startDate"`
	EndDate      time.Time `json:"endDate"`
	State        string    `json:"state"`
}

// FromPeriod creates PeriodResponse from calendar.Period.
func FromPeriod(p *calendar.Period) PeriodResponse {
	return PeriodResponse{
		CatalogResponse: FromCatalog(p.Catalog),
		FiscalYearID:    p.FiscalYearID.String(),
		CompanyID:       p.CompanyID.String(),
		StartDate:       p.StartDate,
		EndDate:         p.EndDate,
		State:           string(p.State),
	}
}
