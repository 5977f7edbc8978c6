package handlers

import (
	"github.com/gin-gonic/gin"

	"faktura/internal/core/apperror"
	"faktura/internal/core/counter"
	"faktura/internal/core/id"
	"faktura/internal/domain"
	"faktura/internal/domain/catalogs/sequence"
	"faktura/internal/infrastructure/http/v1/dto"
)

// SequenceHandler serves the sequence catalog plus the counter rebase
// operation that falls outside generic CRUD.
type SequenceHandler struct {
	*CatalogHandler[*sequence.Sequence, dto.CreateSequenceRequest, dto.UpdateSequenceRequest]
	issuer counter.Issuer
}

// NewSequenceHandler creates a configured handler for sequences.
func NewSequenceHandler(
	base *BaseHandler,
	service *domain.CatalogService[*sequence.Sequence],
	issuer counter.Issuer,
) *SequenceHandler {

	config := CatalogHandlerConfig[
		*sequence.Sequence,
		dto.CreateSequenceRequest,
		dto.UpdateSequenceRequest,
	]{
		Service:    service,
		EntityName: "sequence",

		MapCreateDTO: func(req dto.CreateSequenceRequest) (*sequence.Sequence, error) {
			companyID, err := id.Parse(req.CompanyID)
			if err != nil {
				return nil, apperror.NewValidation("invalid company id format").
					WithDetail("field", "companyId")
			}
			s := sequence.NewSequence(req.Code, req.Name, req.Prefix, companyID)
			if req.PadWidth > 0 {
				s.PadWidth = req.PadWidth
			}
			if req.IncludeYear != nil {
				s.IncludeYear = *req.IncludeYear
			}
			return s, nil
		},

		MapUpdateDTO: func(req dto.UpdateSequenceRequest, existing *sequence.Sequence) *sequence.Sequence {
			if req.Code != nil {
				existing.Code = *req.Code
			}
			if req.Name != nil {
				existing.Name = *req.Name
			}
			if req.Prefix != nil {
				existing.Prefix = *req.Prefix
			}
			if req.PadWidth != nil {
				existing.PadWidth = *req.PadWidth
			}
			if req.IncludeYear != nil {
				existing.IncludeYear = *req.IncludeYear
			}
			existing.Version = req.Version
			return existing
		},

		MapToDTO: func(entity *sequence.Sequence) any {
			return dto.FromSequence(entity)
		},
	}

	return &SequenceHandler{
		CatalogHandler: NewCatalogHandler(base, config),
		issuer:         issuer,
	}
}

// SetNext handles POST /sequences/:id/set-next - rebase the counter.
// The next issued number will carry the given value.
func (h *SequenceHandler) SetNext(c *gin.Context) {
	ctx := c.Request.Context()

	sequenceID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	var req dto.SetNextRequest
	if !h.BindJSON(c, &req) {
		return
	}

	if err := h.issuer.SetNext(ctx, sequenceID, req.Value); err != nil {
		h.Error(c, err)
		return
	}

	h.Success(c, "sequence counter updated")
}
