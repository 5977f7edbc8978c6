package handlers

import (
	"faktura/internal/core/apperror"
	"faktura/internal/domain"
	"faktura/internal/domain/catalogs/journal"
	"faktura/internal/infrastructure/http/v1/dto"
)

// JournalHTTPHandler is a type alias to shorten signatures.
type JournalHTTPHandler = CatalogHandler[
	*journal.Journal,
	dto.CreateJournalRequest,
	dto.UpdateJournalRequest,
]

// NewJournalHandler creates a configured generic handler for journals.
func NewJournalHandler(
	base *BaseHandler,
	service *domain.CatalogService[*journal.Journal],
) *JournalHTTPHandler {

	config := CatalogHandlerConfig[
		*journal.Journal,
		dto.CreateJournalRequest,
		dto.UpdateJournalRequest,
	]{
		Service:    service,
		EntityName: "journal",

		MapCreateDTO: func(req dto.CreateJournalRequest) (*journal.Journal, error) {
			t := journal.Type(req.Type)
			if !t.Valid() {
				return nil, apperror.NewValidation("unknown journal type").
					WithDetail("field", "type").
					WithDetail("value", req.Type)
			}
			return journal.NewJournal(req.Code, req.Name, t), nil
		},

		MapUpdateDTO: func(req dto.UpdateJournalRequest, existing *journal.Journal) *journal.Journal {
			if req.Code != nil {
				existing.Code = *req.Code
			}
			if req.Name != nil {
				existing.Name = *req.Name
			}
			if req.Type != nil {
				existing.Type = journal.Type(*req.Type)
			}
			existing.Version = req.Version
			return existing
		},

		MapToDTO: func(entity *journal.Journal) any {
			return dto.FromJournal(entity)
		},
	}

	return NewCatalogHandler(base, config)
}
