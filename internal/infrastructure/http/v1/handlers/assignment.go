package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"faktura/internal/core/apperror"
	"faktura/internal/core/id"
	"faktura/internal/domain"
	"faktura/internal/domain/catalogs/journal"
	"faktura/internal/domain/numbering"
	"faktura/internal/infrastructure/http/v1/dto"
)

// AssignmentHandler serves the sequence assignment registry.
// Assignments are configuration: created up front by administrators,
// read-only at invoicing time.
type AssignmentHandler struct {
	*BaseHandler
	registry numbering.Registry
	journals *domain.CatalogService[*journal.Journal]
}

// NewAssignmentHandler creates a new assignment handler.
func NewAssignmentHandler(
	base *BaseHandler,
	registry numbering.Registry,
	journals *domain.CatalogService[*journal.Journal],
) *AssignmentHandler {
	return &AssignmentHandler{
		BaseHandler: base,
		registry:    registry,
		journals:    journals,
	}
}

// Create handles POST /assignments.
func (h *AssignmentHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateAssignmentRequest
	if !h.BindJSON(c, &req) {
		return
	}

	a, err := h.buildAssignment(req)
	if err != nil {
		h.Error(c, err)
		return
	}

	if err := a.Validate(ctx); err != nil {
		h.Error(c, err)
		return
	}

	// The pair direction must match the journal type before anything is stored.
	j, err := h.journals.GetByID(ctx, a.JournalID)
	if err != nil {
		h.Error(c, err)
		return
	}
	if err := a.ValidateAgainstJournal(j); err != nil {
		h.Error(c, err)
		return
	}

	if err := h.registry.Create(ctx, a); err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromAssignment(a))
}

// Get handles GET /assignments/:id.
func (h *AssignmentHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	assignmentID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	a, err := h.registry.GetByID(ctx, assignmentID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromAssignment(a))
}

// List handles GET /assignments.
func (h *AssignmentHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	filter := domain.DefaultListFilter()
	filter.Search = c.Query("search")
	filter.Limit = h.ParseIntQuery(c, "limit", 50)
	filter.Offset = h.ParseIntQuery(c, "offset", 0)
	filter.OrderBy = c.DefaultQuery("orderBy", "created_at")
	filter.IncludeDeleted = c.Query("includeDeleted") == "true"

	result, err := h.registry.List(ctx, filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]any, len(result.Items))
	for i, item := range result.Items {
		items[i] = dto.FromAssignment(item)
	}

	c.JSON(http.StatusOK, dto.ListResponse{
		Items:      items,
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}

// Delete handles DELETE /assignments/:id.
func (h *AssignmentHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()

	assignmentID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	if err := h.registry.Delete(ctx, assignmentID); err != nil {
		h.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// buildAssignment maps the create request onto a domain assignment.
func (h *AssignmentHandler) buildAssignment(req dto.CreateAssignmentRequest) (*numbering.Assignment, error) {
	journalID, err := id.Parse(req.JournalID)
	if err != nil {
		return nil, apperror.NewValidation("invalid journal id format").WithDetail("field", "journalId")
	}
	fiscalYearID, err := id.Parse(req.FiscalYearID)
	if err != nil {
		return nil, apperror.NewValidation("invalid fiscal year id format").WithDetail("field", "fiscalYearId")
	}
	companyID, err := id.Parse(req.CompanyID)
	if err != nil {
		return nil, apperror.NewValidation("invalid company id format").WithDetail("field", "companyId")
	}
	deviceID, err := id.Parse(req.DeviceID)
	if err != nil {
		return nil, apperror.NewValidation("invalid device id format").WithDetail("field", "deviceId")
	}
	invoiceSeqID, err := id.Parse(req.InvoiceSequenceID)
	if err != nil {
		return nil, apperror.NewValidation("invalid invoice sequence id format").WithDetail("field", "invoiceSequenceId")
	}
	creditNoteSeqID, err := id.Parse(req.CreditNoteSequenceID)
	if err != nil {
		return nil, apperror.NewValidation("invalid credit note sequence id format").WithDetail("field", "creditNoteSequenceId")
	}

	pair := numbering.SequencePair{
		Direction:            journal.Type(req.Direction),
		InvoiceSequenceID:    &invoiceSeqID,
		CreditNoteSequenceID: &creditNoteSeqID,
	}

	a := numbering.NewAssignment(journalID, fiscalYearID, companyID, deviceID, pair)

	if req.PeriodID != nil && *req.PeriodID != "" {
		periodID, err := id.Parse(*req.PeriodID)
		if err != nil {
			return nil, apperror.NewValidation("invalid period id format").WithDetail("field", "periodId")
		}
		a.PeriodID = &periodID
	}

	return a, nil
}
