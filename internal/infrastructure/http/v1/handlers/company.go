package handlers

import (
	"faktura/internal/domain"
	"faktura/internal/domain/catalogs/company"
	"faktura/internal/infrastructure/http/v1/dto"
)

// CompanyHTTPHandler is a type alias to shorten signatures.
type CompanyHTTPHandler = CatalogHandler[
	*company.Company,
	dto.CreateCompanyRequest,
	dto.UpdateCompanyRequest,
]

// NewCompanyHandler creates a configured generic handler for companies.
func NewCompanyHandler(
	base *BaseHandler,
	service *domain.CatalogService[*company.Company],
) *CompanyHTTPHandler {

	config := CatalogHandlerConfig[
		*company.Company,
		dto.CreateCompanyRequest,
		dto.UpdateCompanyRequest,
	]{
		Service:    service,
		EntityName: "company",

		MapCreateDTO: func(req dto.CreateCompanyRequest) (*company.Company, error) {
			c := company.NewCompany(req.Code, req.Name)
			c.TaxID = req.TaxID
			if req.Currency != "" {
				c.Currency = req.Currency
			}
			return c, nil
		},

		MapUpdateDTO: func(req dto.UpdateCompanyRequest, existing *company.Company) *company.Company {
			if req.Code != nil {
				existing.Code = *req.Code
			}
			if req.Name != nil {
				existing.Name = *req.Name
			}
			if req.TaxID != nil {
				existing.TaxID = *req.TaxID
			}
			if req.Currency != nil {
				existing.Currency = *req.Currency
			}
			existing.Version = req.Version
			return existing
		},

		MapToDTO: func(entity *company.Company) any {
			return dto.FromCompany(entity)
		},
	}

	return NewCatalogHandler(base, config)
}
