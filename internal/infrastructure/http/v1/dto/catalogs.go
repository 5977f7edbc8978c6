package dto

import (
	"faktura/internal/domain/catalogs/company"
	"faktura/internal/domain/catalogs/device"
	"faktura/internal/domain/catalogs/journal"
	"faktura/internal/domain/catalogs/sequence"
)

// --- Journal ---

// CreateJournalRequest for creating journals.
type CreateJournalRequest struct {
	Code string `json:"code" binding:"required"`
	Name string `json:"name" binding:"required"`
	Type string `json:"type" binding:"required"`
}

// UpdateJournalRequest for updating journals.
type UpdateJournalRequest struct {
	Code    *string `json:"code"`
	Name    *string `json:"name"`
	Type    *string `json:"type"`
	Version int     `json:"version" binding:"required,min=1"`
}

// JournalResponse contains journal fields.
type JournalResponse struct {
	CatalogResponse
	Type string `json:"type"`
}

// FromJournal creates JournalResponse from journal.Journal.
func FromJournal(j *journal.Journal) JournalResponse {
	return JournalResponse{
		CatalogResponse: FromCatalog(j.Catalog),
		Type:            string(j.Type),
	}
}

// --- Device ---

// CreateDeviceRequest for creating devices.
type CreateDeviceRequest struct {
	Code      string `json:"code" binding:"required"`
	Name      string `json:"name" binding:"required"`
	CompanyID string `json:"companyId" binding:"required"`
}

// UpdateDeviceRequest for updating devices.
type UpdateDeviceRequest struct {
	Code    *string `json:"code"`
	Name    *string `json:"name"`
	Version int     `json:"version" binding:"required,min=1"`
}

// DeviceResponse contains device fields.
type DeviceResponse struct {
	CatalogResponse
	CompanyID string `json:"companyId"`
}

// FromDevice creates DeviceResponse from device.Device.
func FromDevice(d *device.Device) DeviceResponse {
	return DeviceResponse{
		CatalogResponse: FromCatalog(d.Catalog),
		CompanyID:       d.CompanyID.String(),
	}
}

// --- Company ---

// CreateCompanyRequest for creating companies.
type CreateCompanyRequest struct {
	Code     string `json:"code" binding:"required"`
	Name     string `json:"name" binding:"required"`
	TaxID    string `json:"taxId"`
	Currency string `json:"currency"`
}

// UpdateCompanyRequest for updating companies.
type UpdateCompanyRequest struct {
	Code     *string `json:"code"`
	Name     *string `json:"name"`
	TaxID    *string `json:"taxId"`
	Currency *string `json:"currency"`
	Version  int     `json:"version" binding:"required,min=1"`
}

// CompanyResponse contains company fields.
type CompanyResponse struct {
	CatalogResponse
	TaxID    string `json:"taxId,omitempty"`
	Currency string `json:"currency"`
}

// FromCompany creates CompanyResponse from company.Company.
func FromCompany(c *company.Company) CompanyResponse {
	return CompanyResponse{
		CatalogResponse: FromCatalog(c.Catalog),
		TaxID:           c.TaxID,
		Currency:        c.Currency,
	}
}

// --- Sequence ---

// CreateSequenceRequest for creating sequences.
type CreateSequenceRequest struct {
	Code        string `json:"code" binding:"required"`
	Name        string `json:"name" binding:"required"`
	CompanyID   string `json:"companyId" binding:"required"`
	Prefix      string `json:"prefix" binding:"required"`
	PadWidth    int    `json:"padWidth"`
	IncludeYear *bool  `json:"includeYear"`
}

// UpdateSequenceRequest for updating sequences.
// The counter value itself is not editable here; SetNext is a separate
// administrative operation.
type UpdateSequenceRequest struct {
	Code        *string `json:"code"`
	Name        *string `json:"name"`
	Prefix      *string `json:"prefix"`
	PadWidth    *int    `json:"padWidth"`
	IncludeYear *bool   `json:"includeYear"`
	Version     int     `json:"version" binding:"required,min=1"`
}

// SetNextRequest rebases a sequence counter.
type SetNextRequest struct {
	Value int64 `json:"value" binding:"required,min=1"`
}

// SequenceResponse contains sequence fields.
type SequenceResponse struct {
	CatalogResponse
	CompanyID    string `json:"companyId"`
	Prefix       string `json:"prefix"`
	PadWidth     int    `json:"padWidth"`
	IncludeYear  bool   `json:"includeYear"`
	CurrentValue int64  `json:"currentValue"`
}

// FromSequence creates SequenceResponse from sequence.Sequence.
func FromSequence(s *sequence.Sequence) SequenceResponse {
	return SequenceResponse{
		CatalogResponse: FromCatalog(s.Catalog),
		CompanyID:       s.CompanyID.String(),
		Prefix:          s.Prefix,
		PadWidth:        s.PadWidth,
		IncludeYear:     s.IncludeYear,
		CurrentValue:    s.CurrentValue,
	}
}
